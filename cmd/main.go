package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"challanmart/internal/caching"
	"challanmart/internal/config"
	"challanmart/internal/handlers"
	"challanmart/internal/jobs/background"
	"challanmart/internal/repositories"
	"challanmart/internal/services"
	"challanmart/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Database connection pool
	pool, err := database.NewPool(context.Background(), cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Cache service
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// MinIO service for archived challan PDFs
	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), cfg.Minio.Bucket); err != nil {
		log.Printf("WARN: failed to ensure bucket %s exists: %v", cfg.Minio.Bucket, err)
	}

	// Repositories and services
	orderRepo := repositories.NewOrderRepo(pool)
	taxCalc := services.NewTaxCalculator(cfg.Tax.CGSTRate, cfg.Tax.SGSTRate)
	renderer := services.NewChallanRenderer(cfg.Company, cfg.Tax.CGSTRate, cfg.Tax.SGSTRate)
	orderSvc := services.NewOrderService(orderRepo, taxCalc, renderer, cacheSvc)

	// Handlers
	orderHandlers := handlers.NewOrderHandlers(orderSvc, minioSvc, cfg.Minio.Bucket)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background challan archival
	if cfg.Archive.Enabled {
		scheduler, err := background.NewJobScheduler(
			orderRepo,
			renderer,
			minioSvc,
			cfg.Minio.Bucket,
			cfg.Archive.BatchSize,
			time.Duration(cfg.Archive.IntervalHours)*time.Hour,
		)
		if err != nil {
			log.Fatalf("Failed to create job scheduler: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health-check", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Order routes
	e.POST("/orders", orderHandlers.CreateOrder)
	e.GET("/orders", orderHandlers.GetOrders)
	e.GET("/orders/:dc_no", orderHandlers.GetOrder)
	e.GET("/orders/:dc_no/archive-url", orderHandlers.GetArchiveURL)
	e.GET("/pdf/:dc_no", orderHandlers.GeneratePDF)

	log.Printf("Challanmart server v%s starting on port %d", version, cfg.Server.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Server.Port)))
}
