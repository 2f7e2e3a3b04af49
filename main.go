package main

import (
	"log"
	"net/http"

	"github.com/anitha-dev/gigconnect-api/config"
	"github.com/anitha-dev/gigconnect-api/controllers"
	"github.com/anitha-dev/gigconnect-api/middleware"
	"github.com/anitha-dev/gigconnect-api/models"
	"github.com/anitha-dev/gigconnect-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting GigConnect API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.JobApplication{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Custom binding rules
	utils.RegisterValidators()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := SetupRouter()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// SetupRouter builds the gin engine with all API routes mounted
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Browser clients are served from a separate origin
	router.Use(cors.Default())
	router.Use(middleware.TouchPresence())

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		// Accounts
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.POST("/send-otp", controllers.SendOTP)
		api.POST("/verify-otp", controllers.VerifyOTP)
		api.GET("/users/:id", controllers.GetUser)
		api.PUT("/users/:id", controllers.UpdateUser)
		api.GET("/users/:id/status", controllers.GetUserStatus)
		api.POST("/users/:id/heartbeat", controllers.Heartbeat)

		// Jobs and applications
		api.GET("/jobs", controllers.ListJobs)
		api.GET("/jobs/recommended", controllers.RecommendedJobs)
		api.GET("/jobs/:id", controllers.GetJob)
		api.POST("/jobs", controllers.CreateJob)
		api.DELETE("/jobs/:id", controllers.DeleteJob)
		api.POST("/jobs/:id/apply", controllers.ApplyToJob)
		api.POST("/jobs/:id/complete", controllers.CompleteJob)
		api.POST("/applications/:id/accept", controllers.AcceptApplication)
		api.POST("/applications/:id/reject", controllers.RejectApplication)
		api.POST("/applications/:id/cancel", controllers.CancelApplication)
		api.POST("/my-postings", controllers.MyPostings)
		api.POST("/my-applications", controllers.MyApplications)

		// Chat
		api.GET("/messages/:jobId", controllers.ListMessages)
		api.POST("/messages", controllers.SendMessage)
		api.POST("/messages/:jobId/mark-read", controllers.MarkMessagesRead)

		// Notifications
		api.GET("/notifications", controllers.ListNotifications)
		api.GET("/notifications/count", controllers.NotificationCount)
		api.POST("/notifications/:id/read", controllers.MarkNotificationRead)
		api.POST("/notifications/mark-all-read", controllers.MarkAllNotificationsRead)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
