package recipe

import (
	"context"

	"flavorgraph/internal/pkg/common"
)

// Recipe 一筆食譜資料
//
// 各資料來源返回的食譜都會正規化成這個結構，
// 缺少的欄位在 provider 邊界補預設值，不在演算法內處理。
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions,omitempty"`
	PrepTime     int      `json:"prep_time,omitempty"`
	CookTime     int      `json:"cook_time,omitempty"`
	Servings     int      `json:"servings,omitempty"`
	Difficulty   string   `json:"difficulty"`
	Cuisine      string   `json:"cuisine"`
	ImageURL     string   `json:"image_url,omitempty"`
	Tags         []string `json:"tags"`
}

// NormalizedIngredients 返回正規化去重後的食材列表
func (r *Recipe) NormalizedIngredients() []string {
	return common.NormalizeIngredients(r.Ingredients)
}

// PoolQuery 食譜池查詢條件
type PoolQuery struct {
	Ingredients []string
	Query       string
	Cuisine     string
	Diet        string
	Limit       int
}

// PoolProvider 食譜池資料來源
type PoolProvider interface {
	// SearchRecipes 依查詢條件返回食譜列表，無結果時返回空列表而非錯誤
	SearchRecipes(ctx context.Context, query PoolQuery) ([]Recipe, error)
	// Name 資料來源名稱（日誌用）
	Name() string
}

// ByIDProvider 單筆食譜查詢來源
type ByIDProvider interface {
	// GetRecipeByID 依 id 查詢食譜，找不到時返回 common.ErrRecipeNotFound
	GetRecipeByID(ctx context.Context, id string) (*Recipe, error)
}
