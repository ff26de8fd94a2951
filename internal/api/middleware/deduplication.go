package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dedupCleanupInterval = 10 * time.Minute

// deduplicator 記錄最近請求指紋，攔截時間窗內的重複提交
type deduplicator struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
}

func newDeduplicator(window time.Duration) *deduplicator {
	if window <= 0 {
		window = time.Second
	}
	d := &deduplicator{
		seen:   make(map[string]time.Time),
		window: window,
	}
	go d.cleanupLoop()
	return d
}

func (d *deduplicator) cleanupLoop() {
	ticker := time.NewTicker(dedupCleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * d.window)
		d.mu.Lock()
		for fp, at := range d.seen {
			if at.Before(cutoff) {
				delete(d.seen, fp)
			}
		}
		d.mu.Unlock()
	}
}

// isDuplicate 檢查指紋是否在時間窗內出現過，未出現時記錄
func (d *deduplicator) isDuplicate(fingerprint string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.seen[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.seen[fingerprint] = now
	return false
}

// Deduplication 請求去重中間件，只針對 POST 請求
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	var window time.Duration
	if cfg != nil {
		window = cfg.DedupWindow
	}
	dedup := newDeduplicator(window)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("讀取請求體失敗", zap.Error(err))
				c.Next()
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			sum := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(sum[:])
		}

		if dedup.isDuplicate(fingerprint, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Duplicate request",
			})
			return
		}

		c.Next()
	}
}
