package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/handlers/health"
	recipeHandler "recipe-catalog/internal/api/handlers/recipe"
	"recipe-catalog/internal/api/middleware"
	"recipe-catalog/internal/core/ai/cache"
	"recipe-catalog/internal/core/ai/heuristic"
	"recipe-catalog/internal/core/ai/service"
	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 超時設置
const timeoutDuration = 120 * time.Second

// Dependencies are the services the router exposes. CacheManager may be nil.
type Dependencies struct {
	Store        *recipe.Store
	Advisor      *heuristic.Advisor
	AIService    *service.Service
	CacheManager *cache.CacheManager
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Store == nil || deps.Advisor == nil || deps.AIService == nil {
		return nil, errors.New("router requires a store, an advisor and an AI service")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	metrics := middleware.NewMetrics()
	metrics.RegisterGauge("recipes_stored", "Number of recipes in the catalog", func() float64 {
		return float64(deps.Store.Len())
	})

	// 註冊基礎中間件
	router.Use(requestid.New())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(metrics.HTTPMiddleware())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "Location"},
		MaxAge:        12 * time.Hour,
	}))

	// 請求體大小限制
	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(requestTimeout(timeoutDuration))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, deps.Store, deps.CacheManager)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API 路由組
	v1 := router.Group("/api/v1")
	{
		// 只對新增食譜去重；助理端點是純函數
		var createGuards []gin.HandlerFunc
		if cfg.DedupWindow > 0 {
			createGuards = append(createGuards, middleware.NewDeduplicator(cfg.DedupWindow).Middleware())
		}
		recipeHandler.NewHandler(deps.Store).Register(v1, createGuards...)
		recipeHandler.NewAssistantHandler(deps.Store, deps.Advisor).Register(v1)
		v1.POST("/ai/suggest", handlers.NewAIHandler(deps.AIService, metrics).Suggest)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewError(common.ErrCodeNotFound, "route not found", http.StatusNotFound, nil).Response(false))
	})

	common.LogInfo("Router setup completed",
		zap.Bool("remote_suggestions", deps.AIService.Enabled()),
		zap.Bool("cache_enabled", deps.CacheManager != nil),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 全局中間件：設置請求超時
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// 檢查是否超時
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrRequestTimeout.Response(false))
		}
	}
}
