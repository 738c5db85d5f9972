package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"h4g-voucherhub/internal/adapters/http/middleware"
	"h4g-voucherhub/internal/adapters/http/routes"
	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/storage"
	"h4g-voucherhub/internal/config"
	"h4g-voucherhub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "h4g-voucherhub/docs" // Swagger docs
)

// @title VoucherHub API
// @version 1.0
// @description Community voucher and pre-order backend

// @contact.name API Support

// @host localhost:3000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed bootstrap admin
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Connect object store for product and resident images
	store, err := storage.NewGCSStore(context.Background(), cfg.Storage.Bucket)
	if err != nil {
		log.Fatalf("❌ Failed to connect object store: %v", err)
	}
	defer store.Close()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "VoucherHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	reportService := routes.Setup(app, db, cfg, store)

	// Weekly inventory report (Monday 08:30)
	cronService := services.NewCronService(reportService)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron scheduler: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
