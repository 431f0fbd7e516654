package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusgate/gatepass/internal/app/controllers"
	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	gatePassController *controllers.GatePassController,
	studentController *controllers.StudentController,
	provisionController *controllers.ProvisionController,
	teacherController *controllers.TeacherController,
	authMiddleware *middleware.AuthMiddleware,
	policyGate *middleware.PolicyGate,
) {
	// Role-per-namespace policy on the page routes. API routes below carry
	// their own JWT middleware instead.
	router.Use(policyGate.Handler())

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		// Gate pass lifecycle
		passes := authenticated.Group("/passes")
		{
			// Students request and read their own passes
			passesStudent := passes.Group("")
			passesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				passesStudent.POST("", gatePassController.RequestPass)
				passesStudent.GET("/my", gatePassController.ListMyPasses)
			}

			// HODs see their department and decide
			passesHOD := passes.Group("")
			passesHOD.Use(authMiddleware.RoleRequired(models.RoleHOD))
			{
				passesHOD.GET("/department", gatePassController.ListDepartmentPasses)
				passesHOD.POST("/:id/approve", gatePassController.ApprovePass)
				passesHOD.POST("/:id/reject", gatePassController.RejectPass)
				passesHOD.POST("/:id/undo", gatePassController.UndoDecision)
			}

			// Guards verify scanned passes; HODs may inspect too
			passes.GET("/:id",
				authMiddleware.RoleRequired(models.RoleGuard, models.RoleHOD),
				gatePassController.VerifyPass)
		}

		// Department roster and year ledger (HOD only)
		students := authenticated.Group("/students")
		students.Use(authMiddleware.RoleRequired(models.RoleHOD))
		{
			students.GET("", studentController.ListStudents)
			students.POST("/:id/promote", studentController.PromoteStudent)
			students.POST("/:id/demote", studentController.DemoteStudent)
		}

		// Administrative surface (HOD only): bulk provisioning and the
		// staff directory
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleHOD))
		{
			admin.POST("/provision", provisionController.ProvisionStudents)
		}

		teachers := authenticated.Group("/teachers")
		{
			teachers.GET("", teacherController.GetAllTeachers)

			teachersHOD := teachers.Group("")
			teachersHOD.Use(authMiddleware.RoleRequired(models.RoleHOD))
			{
				teachersHOD.POST("", teacherController.CreateTeacher)
				teachersHOD.PUT("/:id", teacherController.UpdateTeacher)
				teachersHOD.DELETE("/:id", teacherController.DeleteTeacher)
			}
		}
	}
}
