package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reciplease/internal/api"
	"reciplease/internal/core/cache"
	"reciplease/internal/core/convert"
	recipeService "reciplease/internal/core/recipe"
	"reciplease/internal/infrastructure/config"
	"reciplease/internal/pkg/common"
	"reciplease/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("conversion_source", cfg.Conversion.Source),
		zap.String("range_policy", cfg.Parser.RangePolicy),
		zap.Bool("storage_enabled", cfg.Storage.Enabled),
	)

	// 載入換算資料集
	loaderCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Conversion.Timeout)
	defer cancelLoad()

	dataset, err := convert.NewLoader(cfg.Conversion.Timeout).Load(loaderCtx, cfg.Conversion.Source)
	if err != nil {
		common.LogFatal("Failed to load conversion dataset", zap.Error(err))
	}
	table, err := convert.NewTable(dataset, cfg.Conversion.DefaultGramsPerCup)
	if err != nil {
		common.LogFatal("Failed to build conversion table", zap.Error(err))
	}
	common.LogInfo("換算表已載入",
		zap.String("version", table.Version()),
		zap.Int("entries", table.Len()),
	)

	// 初始化快取：有 Redis 位址時優先 Redis，否則記憶體
	var resultCache cache.ResultCache
	var cacheManager *cache.Manager
	if cfg.Cache.Enabled {
		if cfg.Cache.RedisAddr != "" {
			redisCache, err := cache.NewService(&cfg.Cache)
			if err != nil {
				common.LogFatal("Failed to connect to Redis cache", zap.Error(err))
			}
			resultCache = redisCache
		} else {
			cacheManager = cache.NewManager(&cfg.Cache)
			if cacheManager == nil {
				common.LogFatal("Failed to initialize cache manager")
			}
			resultCache = cacheManager
		}
		defer resultCache.Close()
	}

	// 初始化持久層
	var store recipeService.RecipeStore
	if cfg.Storage.Enabled {
		sqliteStore, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			common.LogFatal("Failed to open storage", zap.Error(err))
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	service := recipeService.NewService(cfg, table, resultCache, store)

	// 設置路由
	router, err := api.SetupRouter(cfg, table, service, cacheManager)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
