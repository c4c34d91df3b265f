package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmaina/autoshop-api/internal/config"
	domainRepo "github.com/tmaina/autoshop-api/internal/domain/repository"
	"github.com/tmaina/autoshop-api/internal/presentation/http/handler"
	"github.com/tmaina/autoshop-api/internal/presentation/http/middleware"
	"github.com/tmaina/autoshop-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale       *handler.SaleHandler
	ManualSale *handler.ManualSaleHandler
	Loyalty    *handler.LoyaltyHandler
	Catalog    *handler.CatalogHandler
	Discount   *handler.DiscountHandler
	Rate       *handler.RateHandler
	Report     *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.PrometheusMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	registerSaleRoutes(protected, h, deps)
	registerManualSaleRoutes(protected, h, deps)
	registerLoyaltyRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerDiscountRoutes(protected, h)
	registerRateRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		// Sale completion uses idempotency middleware so register retries
		// replay the original response
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
	}
}

func registerManualSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	manualSales := protected.Group("/manual-sales")
	{
		manualSales.GET("", h.ManualSale.List)
		manualSales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.ManualSale.Create)
	}
}

func registerLoyaltyRoutes(protected *gin.RouterGroup, h *Handlers) {
	loyalty := protected.Group("/loyalty")
	{
		loyalty.GET("/:cid", h.Loyalty.Status)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("/catalog")
	{
		catalog.GET("", h.Catalog.List)
		catalog.POST("", middleware.RequireRole("manager"), h.Catalog.Create)
	}
}

func registerDiscountRoutes(protected *gin.RouterGroup, h *Handlers) {
	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.POST("", middleware.RequireRole("manager"), h.Discount.Create)
	}
}

func registerRateRoutes(protected *gin.RouterGroup, h *Handlers) {
	rates := protected.Group("/commission-rates")
	{
		rates.GET("", h.Rate.List)
		rates.PUT("/:role", middleware.RequireRole("manager"), h.Rate.Set)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/settlement", h.Report.Settlement)
		reports.GET("/weekly", h.Report.Weekly)
	}
}
