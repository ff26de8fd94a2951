package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const mealDBDetailLimit = 10

// MealDBProvider TheMealDB API 食譜來源（免費，無需 API key）
type MealDBProvider struct {
	config *config.MealDBConfig
	client *resty.Client
}

// NewMealDBProvider 創建 TheMealDB 食譜來源
func NewMealDBProvider(cfg *config.MealDBConfig) *MealDBProvider {
	return &MealDBProvider{
		config: cfg,
		client: resty.New().SetBaseURL(cfg.BaseURL),
	}
}

// Name 資料來源名稱
func (p *MealDBProvider) Name() string {
	return "themealdb"
}

type mealDBResponse struct {
	Meals []map[string]any `json:"meals"`
}

// SearchRecipes 查詢食譜
//
// 有食材時以第一個食材走 filter.php 再逐筆 lookup.php 補細節；
// 只有關鍵字時走 search.php；兩者皆無時取幾筆 random.php。
func (p *MealDBProvider) SearchRecipes(ctx context.Context, query PoolQuery) ([]Recipe, error) {
	if !p.config.Enabled {
		return nil, nil
	}

	var recipes []Recipe
	var err error
	switch {
	case len(query.Ingredients) > 0:
		recipes, err = p.searchByIngredient(ctx, query.Ingredients[0])
	case query.Query != "":
		recipes, err = p.searchByName(ctx, query.Query)
	default:
		recipes, err = p.randomRecipes(ctx, 5)
	}
	if err != nil {
		return nil, err
	}

	if query.Limit > 0 && len(recipes) > query.Limit {
		recipes = recipes[:query.Limit]
	}
	common.LogDebug("TheMealDB 查詢完成", zap.Int("count", len(recipes)))
	return recipes, nil
}

// GetRecipeByID 以 lookup.php 查詢單筆食譜
func (p *MealDBProvider) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	if !p.config.Enabled {
		return nil, common.ErrRecipeNotFound
	}

	meals, err := p.fetchMeals(ctx, "/lookup.php", map[string]string{"i": id})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, common.ErrRecipeNotFound
	}
	recipe := formatMealDBRecipe(meals[0])
	return &recipe, nil
}

func (p *MealDBProvider) searchByIngredient(ctx context.Context, ingredient string) ([]Recipe, error) {
	meals, err := p.fetchMeals(ctx, "/filter.php", map[string]string{
		"i": strings.TrimSpace(ingredient),
	})
	if err != nil {
		return nil, err
	}
	if len(meals) > mealDBDetailLimit {
		meals = meals[:mealDBDetailLimit]
	}

	// filter.php 只返回摘要，逐筆補詳細資料
	var recipes []Recipe
	for _, meal := range meals {
		id, _ := meal["idMeal"].(string)
		if id == "" {
			continue
		}
		detail, err := p.GetRecipeByID(ctx, id)
		if err != nil {
			common.LogWarn("TheMealDB 詳細資料查詢失敗",
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		recipes = append(recipes, *detail)
	}
	return recipes, nil
}

func (p *MealDBProvider) searchByName(ctx context.Context, name string) ([]Recipe, error) {
	meals, err := p.fetchMeals(ctx, "/search.php", map[string]string{"s": name})
	if err != nil {
		return nil, err
	}
	if len(meals) > mealDBDetailLimit {
		meals = meals[:mealDBDetailLimit]
	}

	recipes := make([]Recipe, 0, len(meals))
	for _, meal := range meals {
		recipes = append(recipes, formatMealDBRecipe(meal))
	}
	return recipes, nil
}

func (p *MealDBProvider) randomRecipes(ctx context.Context, count int) ([]Recipe, error) {
	var recipes []Recipe
	for i := 0; i < count; i++ {
		meals, err := p.fetchMeals(ctx, "/random.php", nil)
		if err != nil {
			return recipes, err
		}
		if len(meals) > 0 {
			recipes = append(recipes, formatMealDBRecipe(meals[0]))
		}
	}
	return recipes, nil
}

func (p *MealDBProvider) fetchMeals(ctx context.Context, path string, params map[string]string) ([]map[string]any, error) {
	req := p.client.R().
		SetContext(ctx).
		SetResult(&mealDBResponse{})
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to query themealdb %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("themealdb API returned status %d", resp.StatusCode())
	}
	return resp.Result().(*mealDBResponse).Meals, nil
}

// formatMealDBRecipe 把 TheMealDB 回應轉成標準食譜結構
//
// 食材分佈在 strIngredient1 到 strIngredient20 二十個欄位中。
func formatMealDBRecipe(meal map[string]any) Recipe {
	var ingredients []string
	for i := 1; i <= 20; i++ {
		name := mealDBString(meal, fmt.Sprintf("strIngredient%d", i))
		if name != "" {
			ingredients = append(ingredients, strings.ToLower(name))
		}
	}

	category := mealDBString(meal, "strCategory")
	area := mealDBString(meal, "strArea")
	if area == "" {
		area = "International"
	}

	var tags []string
	if category != "" {
		tags = append(tags, strings.ToLower(category))
	}

	name := mealDBString(meal, "strMeal")
	if name == "" {
		name = "Unknown Recipe"
	}

	return Recipe{
		ID:           mealDBString(meal, "idMeal"),
		Name:         name,
		Description:  fmt.Sprintf("%s from %s cuisine", orDefault(category, "Recipe"), area),
		Ingredients:  ingredients,
		Instructions: splitMealDBInstructions(mealDBString(meal, "strInstructions")),
		PrepTime:     15,
		CookTime:     30,
		Servings:     4,
		Difficulty:   "medium",
		Cuisine:      strings.ToLower(area),
		ImageURL:     mealDBString(meal, "strMealThumb"),
		Tags:         tags,
	}
}

// splitMealDBInstructions 把整段操作說明拆成步驟，最多保留 10 步
func splitMealDBInstructions(raw string) []string {
	if raw == "" {
		return nil
	}

	var steps []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			steps = append(steps, s)
		}
	}
	if len(steps) == 1 {
		// 單一長段落時改以句號切分
		var sentences []string
		for _, s := range strings.Split(steps[0], ".") {
			if s = strings.TrimSpace(s); s != "" {
				sentences = append(sentences, s+".")
			}
		}
		steps = sentences
	}
	if len(steps) > 10 {
		steps = steps[:10]
	}
	return steps
}

func mealDBString(meal map[string]any, key string) string {
	if v, ok := meal[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
