package api

import (
	"context"
	"net/http"
	"time"

	"reciplease/internal/api/handlers/conversion"
	"reciplease/internal/api/handlers/health"
	ingredientHandler "reciplease/internal/api/handlers/ingredient"
	recipeHandler "reciplease/internal/api/handlers/recipe"
	"reciplease/internal/api/middleware"
	"reciplease/internal/core/cache"
	"reciplease/internal/core/convert"
	recipeService "reciplease/internal/core/recipe"
	"reciplease/internal/infrastructure/config"
	"reciplease/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 請求超時
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，食材行是純文字
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, table *convert.Table, service *recipeService.Service, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 全局中間件：設置超時與配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/health/detail", health.DetailCheck(table, cacheManager))
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingredientInstance := ingredientHandler.NewHandler(service)
		recipeInstance := recipeHandler.NewHandler(service)
		conversionInstance := conversion.NewHandler(table)

		ingredientGroup := api.Group("/ingredient")
		{
			ingredientGroup.POST("/parse", ingredientInstance.HandleParse)
			ingredientGroup.POST("/batch", ingredientInstance.HandleBatch)
		}

		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.POST("/parse", recipeInstance.HandleParseRecipe)
		}

		conversionGroup := api.Group("/conversion")
		{
			conversionGroup.GET("", conversionInstance.HandleKeys)
			conversionGroup.GET("/:key", conversionInstance.HandleLookup)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Int("conversion_entries", table.Len()),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
