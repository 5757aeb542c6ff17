package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexuspdv/pdv-api/internal/config"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	domainRepo "github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/handler"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/middleware"
	"github.com/nexuspdv/pdv-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Quote     *handler.QuoteHandler
	Customer  *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Audit     *handler.AuditHandler
	Settings  *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
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

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.Profile)

	// Settings
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings",
		middleware.RequireRole(enum.RoleAdmin, enum.RoleManager),
		h.Settings.Update)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)
	protected.GET("/dashboard/kpis", h.Dashboard.GetKPIs)

	// Products
	registerProductRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h, deps)

	// Quotes
	registerQuoteRoutes(protected, h, deps)

	// Customers
	registerCustomerRoutes(protected, h)

	// Audit trail
	registerAuditRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/services", h.Product.ListServices)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)

		// Catalog writes are restricted to stock-facing roles
		manage := middleware.RequireRole(enum.RoleAdmin, enum.RoleManager, enum.RoleStockKeeper)
		products.POST("", manage, h.Product.Create)
		products.PUT("/:id", manage, h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole(enum.RoleAdmin, enum.RoleManager), h.Product.Delete)
		products.POST("/:id/stock", manage, h.Product.AdjustStock)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		// Sale commit uses idempotency middleware to prevent duplicates
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Commit)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel",
			middleware.RequireRole(enum.RoleAdmin, enum.RoleManager),
			h.Sale.Cancel)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id/status", h.Quote.UpdateStatus)
		// Conversion commits a sale, so it carries the same idempotency guard
		quotes.POST("/:id/convert", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Quote.Convert)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id",
			middleware.RequireRole(enum.RoleAdmin, enum.RoleManager),
			h.Customer.Delete)
	}
}

func registerAuditRoutes(protected *gin.RouterGroup, h *Handlers) {
	audit := protected.Group("/audit")
	audit.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleManager))
	{
		audit.GET("", h.Audit.List)
		audit.GET("/entity/:id", h.Audit.History)
	}
}
