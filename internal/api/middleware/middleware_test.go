package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterDepletesAndRefills(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow(), "request %d should pass", i)
	}
	assert.False(t, rl.Allow(), "bucket should be empty")

	// 手動回撥時間模擬令牌補充
	rl.mu.Lock()
	rl.lastTime = rl.lastTime.Add(-2 * time.Hour)
	rl.mu.Unlock()
	assert.True(t, rl.Allow())
}

func TestRateLimiterCapacityBound(t *testing.T) {
	rl := NewRateLimiter(2, time.Millisecond)

	rl.mu.Lock()
	rl.lastTime = rl.lastTime.Add(-time.Minute)
	rl.mu.Unlock()

	require.True(t, rl.Allow())
	require.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "tokens must not exceed capacity")
}

func TestDeduplicatorWindow(t *testing.T) {
	d := newDeduplicator(time.Second)
	now := time.Now()

	assert.False(t, d.isDuplicate("POST:/api/v1/recipes/suggest:abc", now))
	assert.True(t, d.isDuplicate("POST:/api/v1/recipes/suggest:abc", now.Add(500*time.Millisecond)))
	assert.False(t, d.isDuplicate("POST:/api/v1/recipes/suggest:abc", now.Add(2*time.Second)))
	assert.False(t, d.isDuplicate("POST:/api/v1/recipes/suggest:other", now))
}

func TestDeduplicatorDefaultWindow(t *testing.T) {
	d := newDeduplicator(0)
	assert.Equal(t, time.Second, d.window)
}
