package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/salesdesk/salesdesk-api/internal/application/service"
	"github.com/salesdesk/salesdesk-api/internal/config"
	"github.com/salesdesk/salesdesk-api/internal/infrastructure/database"
	"github.com/salesdesk/salesdesk-api/internal/infrastructure/repository"
	"github.com/salesdesk/salesdesk-api/internal/presentation/http/handler"
	"github.com/salesdesk/salesdesk-api/internal/presentation/http/routes"
	"github.com/salesdesk/salesdesk-api/pkg/invoice"
	"github.com/salesdesk/salesdesk-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize invoice notifier
	notifier := invoice.NewNotifier(invoice.Config{
		Endpoint: cfg.Invoice.Endpoint,
		MediaURL: cfg.Invoice.MediaURL,
		Timeout:  cfg.Invoice.Timeout,
	})

	// Start the live sales feed
	feed := service.NewSalesFeed(saleRepo, cfg.Feed.RefreshInterval)
	if err := feed.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start sales feed: %v", err)
	}
	defer feed.Stop()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(catalogRepo)
	saleService := service.NewSaleService(saleRepo, catalogRepo, notifier, feed, cfg.App.BusinessName, cfg.Invoice.Timeout)
	dashboardService := service.NewDashboardService(feed)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Sale:      handler.NewSaleHandler(saleService, dashboardService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
