package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/gatepass/internal/app/models/dto"
	"github.com/campusgate/gatepass/internal/app/services"
)

// maxProvisionUpload bounds the uploaded account list to 5 MiB.
const maxProvisionUpload = 5 << 20

// ProvisionController handles bulk account creation uploads
type ProvisionController struct {
	provisionService *services.ProvisionService
}

// NewProvisionController creates a new ProvisionController
func NewProvisionController(provisionService *services.ProvisionService) *ProvisionController {
	return &ProvisionController{
		provisionService: provisionService,
	}
}

// ProvisionStudents handles a batch provisioning upload.
// The envelope is a multipart file holding a JSON array of account tuples.
// Only an unparseable envelope fails the request; per-account failures are
// reported in-band through the log, and the response stays 200.
// @Summary Provision student accounts in bulk
// @Description Creates one account per entry of the uploaded JSON array, reporting per-entry outcomes
// @Tags provisioning
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "JSON array of {email, password, name, roll, department}"
// @Success 200 {object} dto.ProvisionLogResponse "Per-entry outcome log, in input order"
// @Failure 400 {object} dto.ProvisionErrorResponse "Envelope could not be parsed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Router /admin/provision [post]
func (c *ProvisionController) ProvisionStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ProvisionErrorResponse{Error: "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ProvisionErrorResponse{Error: "could not open uploaded file"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxProvisionUpload))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ProvisionErrorResponse{Error: "could not read uploaded file"})
		return
	}

	var requests []services.AccountRequest
	if err := json.Unmarshal(payload, &requests); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ProvisionErrorResponse{Error: "uploaded file is not a valid JSON array of account requests"})
		return
	}

	logs := c.provisionService.ProvisionStudents(ctx, requests)

	ctx.JSON(http.StatusOK, dto.ProvisionLogResponse{Logs: logs})
}
