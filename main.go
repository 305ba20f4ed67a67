package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/jobs"
	"github.com/bbbang105/flowershop-admin-sub001/middleware"
	"github.com/bbbang105/flowershop-admin-sub001/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	seedAdminUser()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"https://admin.flowershop.local", "http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Flower Shop Admin Server is running",
			"time":    time.Now().UTC(),
		})
	})

	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		authRoutes.POST("/login", routes.AdminLogin)

		// Reminder trigger endpoints, invoked by the external cron service
		reminders := api.Group("/reminders")
		reminders.Use(middleware.CronAuthMiddleware())
		reminders.GET("/hourly", routes.RunHourlyReminders)
		reminders.GET("/daily", routes.RunDailyReminders)

		// Protected admin routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", routes.GetCurrentAdmin)

			// Dashboard
			protected.GET("/dashboard/stats", routes.GetDashboardStats)

			// Sales (never deleted, only amended)
			protected.GET("/sales", routes.GetSales)
			protected.POST("/sales", routes.CreateSale)
			protected.PUT("/sales/:id", routes.UpdateSale)
			protected.GET("/sales/summary", routes.GetSalesSummary)

			// Deposit reconciliation ledger
			protected.GET("/deposits", routes.GetDepositLedger)
			protected.POST("/deposits/confirm", routes.ConfirmDeposits)
			protected.POST("/deposits/:id/revert", routes.RevertDeposit)

			// Card fee schedule settings
			protected.GET("/fee-schedules", routes.GetFeeSchedules)
			protected.POST("/fee-schedules", routes.CreateFeeSchedule)
			protected.PUT("/fee-schedules/:id", routes.UpdateFeeSchedule)

			// Reservation calendar
			protected.GET("/reservations", routes.GetReservations)
			protected.POST("/reservations", routes.CreateReservation)
			protected.PUT("/reservations/:id", routes.UpdateReservation)
			protected.POST("/reservations/:id/cancel", routes.CancelReservation)

			// Expenses
			protected.GET("/expenses", routes.GetExpenses)
			protected.POST("/expenses", routes.CreateExpense)
			protected.PUT("/expenses/:id", routes.UpdateExpense)
			protected.DELETE("/expenses/:id", routes.DeleteExpense)

			// Customers
			protected.GET("/customers", routes.GetCustomers)
			protected.POST("/customers", routes.CreateCustomer)
			protected.PUT("/customers/:id", routes.UpdateCustomer)
			protected.DELETE("/customers/:id", routes.DeleteCustomer)

			// Photo gallery
			protected.GET("/gallery", routes.GetGalleryPhotos)
			protected.POST("/gallery", routes.UploadGalleryPhotos)
			protected.POST("/gallery/reorder", routes.ReorderGalleryPhotos)
			protected.DELETE("/gallery/:id", routes.DeleteGalleryPhoto)

			// Push subscriptions
			protected.GET("/push/public-key", routes.GetVAPIDPublicKey)
			protected.POST("/push/subscribe", routes.RegisterPushSubscription)
			protected.POST("/push/unsubscribe", routes.UnregisterPushSubscription)
			protected.POST("/push/test", routes.SendTestNotification)
		}
	}

	// Get port from environment or use default
	port := config.AppConfig.Server.Port

	// Start background jobs
	cleanupJob := jobs.NewSubscriptionCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
