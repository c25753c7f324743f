package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pranavvermapv/real-estate-crm/internal/handler"
	mid "github.com/pranavvermapv/real-estate-crm/internal/middleware"
	"github.com/pranavvermapv/real-estate-crm/internal/upload"
	"github.com/pranavvermapv/real-estate-crm/pkg/config"
	"github.com/pranavvermapv/real-estate-crm/pkg/database"
	"github.com/pranavvermapv/real-estate-crm/pkg/logger"
	"github.com/pranavvermapv/real-estate-crm/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; missing files are fine, env vars may be set by the
	// environment directly
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting real-estate-crm",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize the upload store
	upload.Init(appConfig)
	log.Info("Upload store initialized", zap.String("dir", appConfig.Upload.Dir))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestID)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware(log))

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Lead API routes
	leadAPI := e.Group("/api/leads")
	leadAPI.GET("", handler.ListLeads)
	leadAPI.POST("", handler.CreateLead)
	leadAPI.PUT("/:id", handler.UpdateLead)
	leadAPI.DELETE("/:id", handler.DeleteLead)
	leadAPI.POST("/:id/documents", handler.UploadLeadDocument)

	// Property API routes
	propertyAPI := e.Group("/api/properties")
	propertyAPI.GET("", handler.ListProperties)
	propertyAPI.POST("", handler.CreateProperty)
	propertyAPI.PUT("/:id", handler.UpdateProperty)
	propertyAPI.DELETE("/:id", handler.DeleteProperty)

	// Document API routes
	e.GET("/api/documents", handler.ListDocuments)
	e.POST("/api/upload", handler.UploadDocument)

	// Serve stored PDFs
	e.Static("/uploads", appConfig.Upload.Dir)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
