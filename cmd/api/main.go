package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nexuspdv/pdv-api/internal/application/service"
	"github.com/nexuspdv/pdv-api/internal/config"
	"github.com/nexuspdv/pdv-api/internal/infrastructure/database"
	"github.com/nexuspdv/pdv-api/internal/infrastructure/repository"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/handler"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/routes"
	"github.com/nexuspdv/pdv-api/pkg/utils"
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
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	settingsService := service.NewSettingsService(settingsRepo, auditService)
	authService := service.NewAuthService(userRepo, jwtManager, auditService)
	catalogService := service.NewCatalogService(productRepo, auditService)
	stockService := service.NewStockService(productRepo, auditService)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, settingsService, auditService)
	quoteService := service.NewQuoteService(quoteRepo, productRepo, customerRepo, saleService, auditService)
	customerService := service.NewCustomerService(customerRepo)
	metricsService := service.NewMetricsService(saleRepo, productRepo, customerRepo, quoteRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(catalogService, stockService),
		Sale:      handler.NewSaleHandler(saleService),
		Quote:     handler.NewQuoteHandler(quoteService),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(metricsService),
		Audit:     handler.NewAuditHandler(auditService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
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
