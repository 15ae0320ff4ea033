package routes

import (
	"student-concern-api/controllers"
	"student-concern-api/middleware"
	"student-concern-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Reviewer authentication
			public.POST("/login", controllers.Login)

			// Student-facing endpoints (no session)
			public.POST("/concerns", controllers.SubmitConcern)
			public.GET("/concerns/track/:number", controllers.TrackConcern)
			public.POST("/evidence", controllers.UploadEvidence)
			public.GET("/categories", controllers.GetCategories)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Student Concern API is running",
				})
			})
		}

		// Protected routes (require an authenticated reviewer)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Reviewer profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Dashboards and libraries
			protected.GET("/dashboard", controllers.GetDashboard)
			protected.GET("/library", controllers.ListConcerns)
			protected.GET("/open-forum", middleware.RequireRole(models.RoleFaculty), controllers.GetOpenForumConcerns)

			// Concerns
			concerns := protected.Group("/concerns")
			{
				concerns.GET("/:id", controllers.GetConcern)

				// Class-level validity triage
				concerns.POST("/:id/ssc-review", middleware.RequireRole(models.RoleSSC), controllers.SSCDecision)

				// Department-level assessment and final resolution
				concerns.POST("/:id/usc-assessment", middleware.RequireRole(models.RoleUSC), controllers.USCAssessment)
				concerns.POST("/:id/resolution", middleware.RequireRole(models.RoleUSC), controllers.FinalResolution)

				// Faculty remarks and flags
				concerns.POST("/:id/faculty-remarks", middleware.RequireRole(models.RoleFaculty), controllers.FacultyRemarks)
			}

			// Escalation picker
			protected.GET("/faculty", middleware.RequireRole(models.RoleUSC), controllers.GetFacultyMentors)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
