package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/app/models/dto"
	"github.com/campusgate/gatepass/internal/app/services"
	"github.com/campusgate/gatepass/internal/middleware"
)

// GatePassController handles the pass lifecycle endpoints
type GatePassController struct {
	gatePassService *services.GatePassService
}

// NewGatePassController creates a new GatePassController
func NewGatePassController(gatePassService *services.GatePassService) *GatePassController {
	return &GatePassController{
		gatePassService: gatePassService,
	}
}

// RequestPass handles a student's request for a new gate pass
// @Summary Request a gate pass
// @Description Creates a pending gate pass for the authenticated student
// @Tags gatepasses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePassRequest true "Pass request"
// @Success 201 {object} dto.APIResponse{data=models.GatePass} "Gate pass created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /passes [post]
func (c *GatePassController) RequestPass(ctx *gin.Context) {
	var req dto.CreatePassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pass request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date").WithField("date")
		errorDetail = errorDetail.WithDetails("Date must be in YYYY-MM-DD format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID := ctx.GetString(middleware.ContextProfileID)
	pass, err := c.gatePassService.RequestPass(ctx, studentID, req.Reason, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      pass,
		Timestamp: time.Now(),
	})
}

// ListMyPasses lists the authenticated student's passes
// @Summary List own gate passes
// @Description Retrieves the authenticated student's passes, newest first
// @Tags gatepasses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.GatePass} "Passes retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /passes/my [get]
func (c *GatePassController) ListMyPasses(ctx *gin.Context) {
	studentID := ctx.GetString(middleware.ContextProfileID)

	passes, err := c.gatePassService.ListForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      passes,
		Timestamp: time.Now(),
	})
}

// ListDepartmentPasses lists every pass of the caller's department
// @Summary List department gate passes
// @Description Retrieves all passes owned by students of the HOD's department, newest first
// @Tags gatepasses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.GatePass} "Passes retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Department query failed"
// @Router /passes/department [get]
func (c *GatePassController) ListDepartmentPasses(ctx *gin.Context) {
	department := ctx.GetString(middleware.ContextDepartment)

	passes, err := c.gatePassService.ListByDepartment(ctx, department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      passes,
		Timestamp: time.Now(),
	})
}

// VerifyPass retrieves one pass for gate verification
// @Summary Verify a gate pass
// @Description Retrieves a single pass with its owning student for guard-side verification
// @Tags gatepasses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gate pass ID"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyPassResponse} "Pass retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Gate pass not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /passes/{id} [get]
func (c *GatePassController) VerifyPass(ctx *gin.Context) {
	pass, err := c.gatePassService.GetPass(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.VerifyPassResponse{
		ID:     pass.ID,
		Reason: pass.Reason,
		Date:   pass.Date.Format("2006-01-02"),
		Status: string(pass.Status),
		QRURL:  pass.QRURL,
	}
	if pass.Student != nil {
		resp.StudentName = pass.Student.Name
		resp.Roll = pass.Student.Roll
		resp.Department = pass.Student.Department
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ApprovePass approves a pass and mints its credential
// @Summary Approve a gate pass
// @Description Generates a QR credential, stores it, and marks the pass approved
// @Tags gatepasses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gate pass ID"
// @Success 200 {object} dto.APIResponse{data=dto.PassDecisionResponse} "Pass approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Gate pass not found"
// @Failure 502 {object} dto.ErrorResponse "Credential generation failed"
// @Router /passes/{id}/approve [post]
func (c *GatePassController) ApprovePass(ctx *gin.Context) {
	hodID := ctx.GetString(middleware.ContextProfileID)

	pass, err := c.gatePassService.Approve(ctx, ctx.Param("id"), hodID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      decisionResponse(pass),
		Timestamp: time.Now(),
	})
}

// RejectPass rejects a pass
// @Summary Reject a gate pass
// @Description Marks the pass rejected, recording the acting HOD
// @Tags gatepasses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gate pass ID"
// @Success 200 {object} dto.APIResponse{data=dto.PassDecisionResponse} "Pass rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Gate pass not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /passes/{id}/reject [post]
func (c *GatePassController) RejectPass(ctx *gin.Context) {
	hodID := ctx.GetString(middleware.ContextProfileID)

	pass, err := c.gatePassService.Reject(ctx, ctx.Param("id"), hodID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      decisionResponse(pass),
		Timestamp: time.Now(),
	})
}

// UndoDecision returns a decided pass to pending
// @Summary Undo a gate pass decision
// @Description Resets an approved or rejected pass to pending, clearing credential and approver
// @Tags gatepasses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gate pass ID"
// @Success 200 {object} dto.APIResponse{data=dto.PassDecisionResponse} "Decision undone"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Gate pass not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /passes/{id}/undo [post]
func (c *GatePassController) UndoDecision(ctx *gin.Context) {
	pass, err := c.gatePassService.Undo(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      decisionResponse(pass),
		Timestamp: time.Now(),
	})
}

func decisionResponse(pass *models.GatePass) dto.PassDecisionResponse {
	return dto.PassDecisionResponse{
		ID:     pass.ID,
		Status: string(pass.Status),
		QRURL:  pass.QRURL,
		HODID:  pass.HODID,
	}
}
