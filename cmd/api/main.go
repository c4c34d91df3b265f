package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tmaina/autoshop-api/internal/application/service"
	"github.com/tmaina/autoshop-api/internal/config"
	"github.com/tmaina/autoshop-api/internal/infrastructure/database"
	"github.com/tmaina/autoshop-api/internal/infrastructure/repository"
	"github.com/tmaina/autoshop-api/internal/presentation/http/handler"
	"github.com/tmaina/autoshop-api/internal/presentation/http/middleware"
	"github.com/tmaina/autoshop-api/internal/presentation/http/routes"
	"github.com/tmaina/autoshop-api/pkg/notify"
	"github.com/tmaina/autoshop-api/pkg/utils"
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

	// Seed demo tenant and reference data
	if err := database.SeedDefaultData(db, cfg.Seed.DefaultPIN); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Register HTTP metrics
	middleware.InitMetrics()

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	manualSaleRepo := repository.NewManualSaleRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	rateRepo := repository.NewCommissionRateRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize webhook notifier
	notifier := notify.NewWebhookNotifier(cfg.Notify.WebhookTimeout)

	// Initialize services
	loyaltyService := service.NewLoyaltyService(loyaltyRepo)
	commissionService := service.NewCommissionService(rateRepo)
	saleService := service.NewSaleService(saleRepo, manualSaleRepo, catalogRepo, discountRepo, employeeRepo, tenantRepo, loyaltyService, txManager, notifier)
	manualSaleService := service.NewManualSaleService(manualSaleRepo, saleRepo, employeeRepo, tenantRepo, commissionService)
	settlementService := service.NewSettlementService(saleRepo, manualSaleRepo, employeeRepo, tenantRepo, commissionService, cfg.Settlement.ReportWeeks)
	catalogService := service.NewCatalogService(catalogRepo)
	discountService := service.NewDiscountService(discountRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Sale:       handler.NewSaleHandler(saleService),
		ManualSale: handler.NewManualSaleHandler(manualSaleService),
		Loyalty:    handler.NewLoyaltyHandler(loyaltyService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Discount:   handler.NewDiscountHandler(discountService),
		Rate:       handler.NewRateHandler(commissionService),
		Report:     handler.NewReportHandler(settlementService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
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
