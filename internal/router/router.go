package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/api"
	"github.com/pageza/mise/backend/internal/cache"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/middleware"
	"github.com/pageza/mise/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxBodySize caps request bodies at 1MB.
const maxBodySize = 1 << 20

// Dependencies are the connections the router builds services from. Redis,
// Store and Metrics may be nil.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Store   service.ObjectStore
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// SetupRouter configures the middleware chain and every route.
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.BodySizeLimit(maxBodySize))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	recipes := service.NewRecipeService(deps.DB, logger)
	scaling := service.NewScalingService(deps.DB, recipes, cfg.Scaling, deps.Metrics, logger)
	mealPlans := service.NewMealPlanService(deps.DB, recipes, cfg.Scaling, cfg.Shopping.NormalizeUnits, deps.Metrics, logger)

	var listCache service.ShoppingListCache
	if deps.Redis != nil {
		listCache = cache.NewShoppingListCache(deps.Redis, cfg.Shopping.CacheTTL, deps.Metrics, logger)
	}
	lists := service.NewShoppingListService(deps.DB, recipes, mealPlans, listCache, cfg.Scaling, cfg.Shopping.NormalizeUnits, deps.Metrics, logger)
	exports := service.NewExportService(lists, deps.Store, cfg.Storage.PresignTTL, deps.Metrics, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && deps.Redis != nil {
		limiter = middleware.NewShoppingListRateLimiter(deps.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	}

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)

	api.SetupAPI(router.Group("/api/v1"), api.Handlers{
		Health:        health,
		Ingredients:   api.NewIngredientHandler(cfg.Scaling, deps.Metrics),
		Recipes:       api.NewRecipeHandler(recipes, scaling),
		MealPlans:     api.NewMealPlanHandler(mealPlans),
		ShoppingLists: api.NewShoppingListHandler(lists, exports, limiter),
	})

	logger.Info("router configured",
		zap.Bool("redis", deps.Redis != nil),
		zap.Bool("export", deps.Store != nil),
		zap.Bool("rate_limit", limiter != nil),
	)
	return router
}
