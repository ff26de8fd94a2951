package health

import (
	"net/http"
	"runtime"
	"time"

	"flavorgraph/internal/core/algorithm"
	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Graph     *GraphStatus           `json:"graph,omitempty"`
}

// GraphStatus 食材關係圖狀態
type GraphStatus struct {
	Ready bool `json:"ready"`
	Nodes int  `json:"nodes"`
	Edges int  `json:"edges"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 附加食材關係圖狀態
	if engine := engineFromContext(c); engine != nil {
		g := engine.Graph()
		response.Graph = &GraphStatus{
			Ready: g.IsReady(),
			Nodes: g.NodeCount(),
			Edges: g.EdgeCount(),
		}
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：食材關係圖建好後才算就緒
func ReadinessCheck(c *gin.Context) {
	engine := engineFromContext(c)
	if engine == nil || !engine.Graph().IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func engineFromContext(c *gin.Context) *algorithm.Service {
	value, exists := c.Get("engine_service")
	if !exists {
		return nil
	}
	engine, ok := value.(*algorithm.Service)
	if !ok {
		return nil
	}
	return engine
}
