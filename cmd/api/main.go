package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-catalog/internal/api"
	"recipe-catalog/internal/core/ai/cache"
	"recipe-catalog/internal/core/ai/heuristic"
	aiservice "recipe-catalog/internal/core/ai/service"
	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/core/service"
	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/infrastructure/storage"
	"recipe-catalog/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	// 載入設定
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(common.LoggerOptions{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: true,
		Service: cfg.App.Name,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("suggestion_endpoint", cfg.Suggestion.Endpoint),
		zap.Bool("suggestion_enabled", cfg.Suggestion.Enabled),
	)

	// 初始化儲存
	kv, err := storage.NewKV(cfg)
	if err != nil {
		common.LogFatal("Failed to open storage", zap.Error(err))
	}
	defer kv.Close()

	advisor := heuristic.Default()
	store := recipe.NewStore(advisor, storage.NewPersistence(kv, cfg.Storage.Key),
		recipe.WithFilters(recipe.SearchFilters{MaxPrepTime: cfg.Filters.MaxPrepTime}),
	)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	seeded := store.Load(loadCtx)
	cancelLoad()
	common.LogInfo("Catalog loaded", zap.Int("recipes", store.Len()), zap.Bool("seeded", seeded))

	// 初始化快取
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	aiService := aiservice.NewService(cfg.Suggestion, service.NewSuggestionClient(cfg.Suggestion), cacheManager)

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Store:        store,
		Advisor:      advisor,
		AIService:    aiService,
		CacheManager: cacheManager,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	serverErr := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		common.LogError("Failed to start server", zap.Error(err))
		return
	}

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
