package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/config"
	"github.com/tripdesk/trip-booking-backend/internal/database"
	"github.com/tripdesk/trip-booking-backend/internal/handlers"
	"github.com/tripdesk/trip-booking-backend/internal/middleware"
	"github.com/tripdesk/trip-booking-backend/internal/services"
	"github.com/tripdesk/trip-booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting TripDesk Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories. The transactional repositories take
	// *sqlx.DB directly because their mutations span multiple statements.
	catalogRepo := database.NewCatalogRepository(db)
	templateRepo := database.NewTripTemplateRepository(db)
	occurrenceRepo := database.NewTripOccurrenceRepository(db)
	bookingRepo := database.NewBookingRepository(db.DB, cfg.Booking.ReservationCodeLength, cfg.Booking.ReservationCodeAttempts)
	paymentRepo := database.NewPaymentRepository(db.DB)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, 24*time.Hour)
	templateService := services.NewTemplateService(templateRepo, catalogRepo, logger)
	occurrenceService := services.NewOccurrenceService(templateRepo, occurrenceRepo, logger)
	bookingService := services.NewBookingService(
		bookingRepo, paymentRepo, occurrenceRepo, templateRepo,
		cfg.Booking.MaxSeatsPerBooking, logger,
	)
	lifecycleService := services.NewLifecycleService(bookingRepo, logger)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, logger)
	templateHandler := handlers.NewTripTemplateHandler(templateService, occurrenceService, logger)
	occurrenceHandler := handlers.NewOccurrenceHandler(occurrenceService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, lifecycleService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(middleware.RequestTimeout(cfg.Booking.RequestTimeout))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API routes. Everything under /api/v1 requires an operator token.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(jwtService, logger))
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/cities", catalogHandler.ListCities)
			catalog.GET("/vehicle-types", catalogHandler.ListVehicleTypes)
			catalog.GET("/time-slots", catalogHandler.ListTimeSlots)
		}

		templates := v1.Group("/templates")
		{
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:templateId", templateHandler.GetTemplate)
			templates.PUT("/:templateId", templateHandler.UpdateTemplate)
			templates.DELETE("/:templateId", templateHandler.DeactivateTemplate)
			templates.GET("/:templateId/upcoming-dates", templateHandler.GetUpcomingDates)
		}

		occurrences := v1.Group("/occurrences")
		{
			occurrences.POST("/resolve", occurrenceHandler.ResolveOccurrence)
			occurrences.GET("", occurrenceHandler.ListOccurrences)
			occurrences.GET("/:occurrenceId", occurrenceHandler.GetOccurrence)
			occurrences.DELETE("/:occurrenceId", occurrenceHandler.CancelOccurrence)
			occurrences.GET("/:occurrenceId/seats", bookingHandler.GetAvailableSeats)
			occurrences.POST("/:occurrenceId/bookings", bookingHandler.BookSeats)
			occurrences.GET("/:occurrenceId/bookings", bookingHandler.ListBookings)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.GET("/:bookingId", bookingHandler.GetBooking)
			bookings.GET("/:bookingId/payment", bookingHandler.GetPayment)
			bookings.PATCH("/:bookingId/status", bookingHandler.SetBookingStatus)
			bookings.GET("/by-code/:code", bookingHandler.GetBookingByCode)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
		}

		if operator, exists := middleware.GetOperatorContext(c); exists {
			fields["operator_id"] = operator.OperatorID
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			logger.WithFields(fields).Error("Request failed")
		case status >= 400:
			logger.WithFields(fields).Warn("Request rejected")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}

// healthCheckHandler returns the service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
			"version":  version,
		})
	}
}
