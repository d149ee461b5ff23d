package routes

import (
	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes. The role set admitted to
// each endpoint is declared here, next to the route, so the authorization
// rules can be audited in one place.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	procedureHandler := handlers.NewProcedureHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	visitHandler := handlers.NewVisitHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)
	imageHandler := handlers.NewImageHandler(db, cfg)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(db, cfg))
	{
		authRoutes := private.Group("/auth")
		{
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.POST("/change-password", authHandler.ChangePassword)
			authRoutes.GET("/me", authHandler.Me)
		}

		userRoutes := private.Group("/users")
		{
			// Doctor listing is available to every authenticated role for
			// scheduling.
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.DeletePatient)
		}

		procedureRoutes := private.Group("/procedures")
		{
			procedureRoutes.GET("", procedureHandler.GetProcedures)
			procedureRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), procedureHandler.CreateProcedure)
			procedureRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), procedureHandler.UpdateProcedure)
			procedureRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), procedureHandler.DeleteProcedure)
		}

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments) // doctor scoping inside handler
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleReceptionist), appointmentHandler.DeleteAppointment)
		}

		visitRoutes := private.Group("/visits")
		{
			visitRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), visitHandler.CreateVisit)
			visitRoutes.GET("", visitHandler.GetVisits)
			visitRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), visitHandler.UpdateVisit)
		}

		paymentRoutes := private.Group("/payments")
		{
			paymentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin), paymentHandler.CreatePayment)
			paymentRoutes.GET("", paymentHandler.GetPayments)
		}

		imageRoutes := private.Group("/images")
		{
			imageRoutes.POST("/upload", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), imageHandler.UploadImage)
			imageRoutes.GET("/:id", imageHandler.GetImage)
			imageRoutes.GET("/patient/:patientId", imageHandler.GetPatientImages)
			imageRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), imageHandler.DeleteImage)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
