package recipe

import (
	"context"
	"errors"
	"time"

	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

// chainProvider 同時支援池查詢與單筆查詢的資料來源
type chainProvider interface {
	PoolProvider
	ByIDProvider
}

// Service 食譜資料服務
//
// 依序嘗試多個資料來源，取第一個有結果者；查詢結果經 Redis 緩存。
// 所有來源都查不到時返回空列表，由排序管線自行處理。
type Service struct {
	providers []chainProvider
	cache     *Cache
}

// NewService 創建食譜資料服務，providers 按優先序排列
func NewService(cache *Cache, providers ...chainProvider) *Service {
	return &Service{
		providers: providers,
		cache:     cache,
	}
}

// Name 資料來源名稱
func (s *Service) Name() string {
	return "chain"
}

// SearchRecipes 依序查詢各資料來源，返回第一個非空結果
func (s *Service) SearchRecipes(ctx context.Context, query PoolQuery) ([]Recipe, error) {
	if cached, err := s.cache.Get(ctx, query); err == nil {
		return cached, nil
	}

	for _, provider := range s.providers {
		start := time.Now()
		recipes, err := provider.SearchRecipes(ctx, query)
		common.LogProviderCall(provider.Name(), time.Since(start), len(recipes), err)
		if err != nil {
			// 單一來源失敗不中斷，換下一個來源
			continue
		}
		if len(recipes) == 0 {
			continue
		}

		if err := s.cache.Set(ctx, query, recipes); err != nil {
			common.LogWarn("食譜緩存寫入失敗", zap.Error(err))
		}
		return recipes, nil
	}

	common.LogInfo("所有食譜來源皆無結果",
		zap.Strings("ingredients", query.Ingredients),
		zap.String("query", query.Query),
	)
	return nil, nil
}

// GetRecipeByID 依序查詢各資料來源的單筆食譜
func (s *Service) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	for _, provider := range s.providers {
		rec, err := provider.GetRecipeByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrRecipeNotFound) {
				continue
			}
			common.LogWarn("單筆食譜查詢失敗",
				zap.String("provider", provider.Name()),
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		return rec, nil
	}
	return nil, common.ErrRecipeNotFound
}
