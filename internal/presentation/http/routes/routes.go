package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prospecta/prospecta-api/internal/config"
	domainRepo "github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/internal/presentation/http/handler"
	"github.com/prospecta/prospecta-api/internal/presentation/http/middleware"
	"github.com/prospecta/prospecta-api/pkg/logger"
	"github.com/prospecta/prospecta-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Lead      *handler.LeadHandler
	Stage     *handler.StageHandler
	Tag       *handler.TagHandler
	Product   *handler.ProductHandler
	Provider  *handler.ProviderHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	UserRepo        domainRepo.UserRepository
	Log             *logger.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
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
		protected.Use(middleware.ActorMiddleware(deps.UserRepo))

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
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Get)

	registerLeadRoutes(protected, h, deps)
	registerStageRoutes(protected, h)
	registerTagRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerLeadRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	leads := protected.Group("/leads")
	{
		leads.GET("", h.Lead.List)
		leads.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Lead.Create)
		leads.GET("/template", h.Lead.Template)
		leads.GET("/export", h.Lead.Export)
		leads.POST("/import", middleware.Idempotency(deps.IdempotencyRepo), h.Lead.Import)
		leads.GET("/:id", h.Lead.Get)
		leads.PUT("/:id", h.Lead.Update)
		leads.PUT("/:id/status", h.Lead.MoveToStage)
		leads.PUT("/:id/billing", h.Lead.SaveBilling)
		leads.POST("/:id/notifications/ack", h.Lead.AckNotification)
	}

	// Reports (managers only)
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireManager())
	{
		reports.GET("/billing", h.Lead.BillingReport)
	}
}

func registerStageRoutes(protected *gin.RouterGroup, h *Handlers) {
	stages := protected.Group("/stages")
	{
		stages.GET("", h.Stage.List)

		// Board configuration is restricted to managers
		managed := stages.Group("")
		managed.Use(middleware.RequireManager())
		{
			managed.POST("", h.Stage.Create)
			managed.PUT("/reorder", h.Stage.Reorder)
			managed.PUT("/:id", h.Stage.Update)
			managed.DELETE("/:id", h.Stage.Delete)
		}
	}
}

func registerTagRoutes(protected *gin.RouterGroup, h *Handlers) {
	tags := protected.Group("/tags")
	{
		tags.GET("", h.Tag.List)

		managed := tags.Group("")
		managed.Use(middleware.RequireManager())
		{
			managed.POST("", h.Tag.Create)
			managed.PUT("/:id", h.Tag.Update)
			managed.DELETE("/:id", h.Tag.Delete)
		}
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)

		managed := products.Group("")
		managed.Use(middleware.RequireManager())
		{
			managed.POST("", h.Product.Create)
			managed.PUT("/:id", h.Product.Update)
			managed.DELETE("/:id", h.Product.Delete)
		}
	}

	providers := protected.Group("/providers")
	{
		providers.GET("", h.Provider.List)

		managed := providers.Group("")
		managed.Use(middleware.RequireManager())
		{
			managed.POST("", h.Provider.Create)
			managed.PUT("/:id", h.Provider.Update)
			managed.DELETE("/:id", h.Provider.Delete)
		}
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireManager())
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
