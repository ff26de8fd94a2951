package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flavorgraph/internal/api/handlers/health"
	recipeHandler "flavorgraph/internal/api/handlers/recipe"
	"flavorgraph/internal/api/middleware"
	"flavorgraph/internal/core/algorithm"
	"flavorgraph/internal/core/graph"
	"flavorgraph/internal/core/image"
	recipeService "flavorgraph/internal/core/recipe"
	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制與請求去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("mealdb_enabled", cfg.MealDB.Enabled),
		zap.String("dataset_path", cfg.Dataset.Path),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化食譜緩存與資料來源
	cache, err := recipeService.NewCache(&cfg.Cache)
	if err != nil {
		common.LogError("Failed to initialize recipe cache", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize recipe cache: %w", err)
	}

	dataset, err := recipeService.NewDatasetProvider(cfg.Dataset.Path)
	if err != nil {
		common.LogError("Failed to load recipe dataset", zap.Error(err))
		return nil, fmt.Errorf("failed to load recipe dataset: %w", err)
	}

	dataService := recipeService.NewService(cache,
		recipeService.NewSpoonacularProvider(&cfg.Spoonacular),
		recipeService.NewMealDBProvider(&cfg.MealDB),
		dataset,
	)

	// 建立食材關係圖並初始化推薦引擎
	ingredientGraph := graph.NewIngredientGraph(nil)
	ingredientGraph.Build()

	engine := algorithm.NewService(ingredientGraph, dataService, dataService, algorithm.Options{
		MaxCandidates:     cfg.Engine.MaxCandidates,
		DefaultMaxRecipes: cfg.Engine.DefaultMaxRecipes,
		SubstitutionLimit: cfg.Engine.SubstitutionLimit,
		FuzzyThreshold:    cfg.Engine.FuzzyMatchAccept,
	})

	// 初始化圖片服務
	imageService := image.NewService()

	common.LogInfo("Services initialized successfully",
		zap.Int("graph_nodes", ingredientGraph.NodeCount()),
		zap.Int("graph_edges", ingredientGraph.EdgeCount()),
		zap.Int("dataset_recipes", dataset.Count()),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 設置配置與引擎（健康檢查用）
		c.Set("config", cfg)
		c.Set("engine_service", engine)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := recipeHandler.NewHandler(engine, dataService, imageService)

		recipes := api.Group("/recipes")
		{
			// 依可用食材推薦食譜（三階段排序管線）
			recipes.POST("/suggest", handler.HandleSuggest)

			// 直接搜索食譜池
			recipes.GET("/search", handler.HandleSearch)
		}

		ingredients := api.Group("/ingredients")
		{
			// 指定食譜的缺口分析
			ingredients.POST("/gap-analysis", handler.HandleGapAnalysis)

			// 單個食材的替代品查詢
			ingredients.GET("/substitutions/:ingredient", handler.HandleSubstitutions)
		}

		// 演算法執行統計
		api.GET("/algorithms/stats", handler.HandleStats)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
