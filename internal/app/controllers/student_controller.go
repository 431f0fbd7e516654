package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/gatepass/internal/app/models/dto"
	"github.com/campusgate/gatepass/internal/app/services"
	"github.com/campusgate/gatepass/internal/middleware"
)

// StudentController handles the HOD-facing roster and year operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents lists the caller's department roster
// @Summary List department students
// @Description Retrieves the students of the HOD's department, senior years first
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	department := ctx.GetString(middleware.ContextDepartment)

	students, err := c.studentService.ListStudents(ctx, department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		resp = append(resp, dto.StudentResponse{
			ID:         student.ID,
			Name:       student.Name,
			Roll:       student.Roll,
			Department: student.Department,
			Year:       services.NumericYear(student),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// PromoteStudent advances a student one year
// @Summary Promote a student
// @Description Advances the student's year by one; a student already in year 4 yields a warning no-op
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.YearChangeRequest true "Current year"
// @Success 200 {object} dto.APIResponse{data=dto.YearChangeResponse} "Year updated or boundary no-op"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 422 {object} dto.ErrorResponse "Year out of bounds"
// @Router /students/{id}/promote [post]
func (c *StudentController) PromoteStudent(ctx *gin.Context) {
	c.changeYear(ctx, c.studentService.Promote)
}

// DemoteStudent moves a student back one year
// @Summary Demote a student
// @Description Moves the student's year back by one; a student already in year 1 yields a warning no-op
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.YearChangeRequest true "Current year"
// @Success 200 {object} dto.APIResponse{data=dto.YearChangeResponse} "Year updated or boundary no-op"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 422 {object} dto.ErrorResponse "Year out of bounds"
// @Router /students/{id}/demote [post]
func (c *StudentController) DemoteStudent(ctx *gin.Context) {
	c.changeYear(ctx, c.studentService.Demote)
}

type yearOp func(ctx context.Context, studentID string, currentYear int) (*services.YearChange, error)

func (c *StudentController) changeYear(ctx *gin.Context, op yearOp) {
	var req dto.YearChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year change data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	change, err := op(ctx, ctx.Param("id"), req.CurrentYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.YearChangeResponse{
			StudentID: change.StudentID,
			Year:      change.Year,
			Changed:   change.Changed,
			Warning:   change.Warning,
		},
		Timestamp: time.Now(),
	})
}
