package recipe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Cache 食譜池查詢結果的 Redis 緩存
type Cache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewCache 創建食譜緩存，未啟用時所有操作都是 no-op
func NewCache(cfg *config.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return &Cache{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存的查詢結果
func (c *Cache) Get(ctx context.Context, query PoolQuery) ([]Recipe, error) {
	if !c.config.Enabled || c.client == nil {
		return nil, common.ErrCacheDisabled
	}

	data, err := c.client.Get(ctx, c.queryKey(query)).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("recipe_pool")
			return nil, common.ErrCacheDisabled
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var recipes []Recipe
	if err := common.ParseJSONBytes(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recipes: %w", err)
	}

	common.LogCacheHit("recipe_pool")
	return recipes, nil
}

// Set 緩存查詢結果
func (c *Cache) Set(ctx context.Context, query PoolQuery, recipes []Recipe) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}

	data, err := common.ToJSON(recipes)
	if err != nil {
		return fmt.Errorf("failed to marshal recipes: %w", err)
	}

	if err := c.client.Set(ctx, c.queryKey(query), data, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// queryKey 以查詢條件的摘要生成緩存鍵
func (c *Cache) queryKey(query PoolQuery) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%d",
		strings.Join(common.NormalizeIngredients(query.Ingredients), ","),
		strings.ToLower(query.Query),
		strings.ToLower(query.Cuisine),
		strings.ToLower(query.Diet),
		query.Limit,
	)
	sum := sha256.Sum256([]byte(raw))
	return "recipe:pool:" + hex.EncodeToString(sum[:])
}
