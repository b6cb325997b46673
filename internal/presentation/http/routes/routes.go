package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/loyalty-admin/internal/config"
	domainRepo "github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/handler"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	User          *handler.UserHandler
	Store         *handler.StoreHandler
	Coupon        *handler.CouponHandler
	Settlement    *handler.SettlementHandler
	Survey        *handler.SurveyHandler
	DailyReward   *handler.DailyRewardHandler
	FAQ           *handler.FAQHandler
	Term          *handler.TermHandler
	Video         *handler.VideoHandler
	StoreSequence *handler.StoreSequenceHandler
	Dashboard     *handler.DashboardHandler
	Audit         *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// resourceHandler is served under /<resource> with the usual five routes
type resourceHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	limits := middleware.DefaultRateLimiterConfig()
	if deps.Cfg.RateLimit.Requests > 0 {
		limits.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(max(deps.Cfg.RateLimit.Duration, 1))
		limits.BurstSize = deps.Cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewOperatorRateLimiter(limits)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.TracingMiddleware())
	if deps.Cfg.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"version":      deps.Cfg.App.Version,
			"rate_limiter": rateLimiter.Stats(),
		})
	})
	if deps.Cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.OperatorMiddleware())
	v1.Use(rateLimiter.Middleware())
	v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
	{
		v1.GET("/dashboard", h.Dashboard.GetStats)
		v1.GET("/audit-logs", h.Audit.List)

		registerResource(v1, "/users", h.User)
		registerResource(v1, "/stores", h.Store)
		registerResource(v1, "/coupons", h.Coupon)
		registerSettlementRoutes(v1, h)
		registerSurveyRoutes(v1, h)
		registerDailyRewardRoutes(v1, h)
		registerResource(v1, "/faqs", h.FAQ)
		registerResource(v1, "/terms", h.Term)
		registerResource(v1, "/videos", h.Video)
		registerStoreSequenceRoutes(v1, h)
	}

	return router
}

func registerResource(rg *gin.RouterGroup, path string, h resourceHandler) *gin.RouterGroup {
	group := rg.Group(path)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Deactivate)
	}
	return group
}

func registerSettlementRoutes(rg *gin.RouterGroup, h *Handlers) {
	settlements := registerResource(rg, "/settlements", h.Settlement)
	settlements.POST("/calculate", h.Settlement.Calculate)
	settlements.GET("/export", h.Settlement.Export)
}

func registerSurveyRoutes(rg *gin.RouterGroup, h *Handlers) {
	surveys := registerResource(rg, "/surveys", h.Survey)
	surveys.POST("/:id/questions", h.Survey.AddQuestion)
	surveys.DELETE("/:id/questions/:questionId", h.Survey.RemoveQuestion)
}

func registerDailyRewardRoutes(rg *gin.RouterGroup, h *Handlers) {
	campaigns := registerResource(rg, "/daily-rewards", h.DailyReward)
	campaigns.POST("/:id/rewards", h.DailyReward.AddReward)
	campaigns.DELETE("/:id/rewards/:rewardId", h.DailyReward.RemoveReward)
}

func registerStoreSequenceRoutes(rg *gin.RouterGroup, h *Handlers) {
	sequence := rg.Group("/store-sequence")
	{
		sequence.GET("", h.StoreSequence.List)
		sequence.POST("", h.StoreSequence.Add)
		sequence.PUT("", h.StoreSequence.SetOrder)
		sequence.POST("/move", h.StoreSequence.Move)
		sequence.DELETE("/:id", h.StoreSequence.Remove)
	}
}
