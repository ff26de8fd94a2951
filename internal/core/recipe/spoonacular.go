package recipe

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var htmlTagPattern = regexp.MustCompile(`<.*?>`)

// SpoonacularProvider Spoonacular API 食譜來源
type SpoonacularProvider struct {
	config *config.SpoonacularConfig
	client *resty.Client
}

// NewSpoonacularProvider 創建 Spoonacular 食譜來源
func NewSpoonacularProvider(cfg *config.SpoonacularConfig) *SpoonacularProvider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("apiKey", cfg.APIKey)

	return &SpoonacularProvider{
		config: cfg,
		client: client,
	}
}

// Name 資料來源名稱
func (p *SpoonacularProvider) Name() string {
	return "spoonacular"
}

// Available API key 已設置時才可用
func (p *SpoonacularProvider) Available() bool {
	return p.config.APIKey != ""
}

type spoonacularSearchResponse struct {
	Results []spoonacularRecipe `json:"results"`
}

type spoonacularRecipe struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Summary             string   `json:"summary"`
	Image               string   `json:"image"`
	ReadyInMinutes      int      `json:"readyInMinutes"`
	PreparationMinutes  int      `json:"preparationMinutes"`
	CookingMinutes      int      `json:"cookingMinutes"`
	Servings            int      `json:"servings"`
	Vegetarian          bool     `json:"vegetarian"`
	Vegan               bool     `json:"vegan"`
	GlutenFree          bool     `json:"glutenFree"`
	DairyFree           bool     `json:"dairyFree"`
	Cuisines            []string `json:"cuisines"`
	DishTypes           []string `json:"dishTypes"`
	ExtendedIngredients []struct {
		Name string `json:"name"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Step string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
}

// SearchRecipes 以 complexSearch 查詢食譜
func (p *SpoonacularProvider) SearchRecipes(ctx context.Context, query PoolQuery) ([]Recipe, error) {
	if !p.Available() {
		return nil, nil
	}

	req := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"includeIngredients":   strings.Join(query.Ingredients, ","),
			"number":               strconv.Itoa(query.Limit),
			"addRecipeInformation": "true",
			"fillIngredients":      "true",
			"instructionsRequired": "true",
			"sort":                 "max-used-ingredients",
		}).
		SetResult(&spoonacularSearchResponse{})
	if query.Query != "" {
		req.SetQueryParam("query", query.Query)
	}
	if query.Cuisine != "" {
		req.SetQueryParam("cuisine", query.Cuisine)
	}
	if query.Diet != "" {
		req.SetQueryParam("diet", query.Diet)
	}

	resp, err := req.Get("/complexSearch")
	if err != nil {
		return nil, fmt.Errorf("failed to search spoonacular: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("Spoonacular API 返回錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, fmt.Errorf("spoonacular API returned status %d", resp.StatusCode())
	}

	result := resp.Result().(*spoonacularSearchResponse)
	recipes := make([]Recipe, 0, len(result.Results))
	for i := range result.Results {
		recipes = append(recipes, formatSpoonacularRecipe(&result.Results[i]))
	}

	common.LogDebug("Spoonacular 查詢完成",
		zap.Int("count", len(recipes)),
		zap.Strings("ingredients", query.Ingredients),
	)
	return recipes, nil
}

// GetRecipeByID 以 information 端點查詢單筆食譜
func (p *SpoonacularProvider) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	if !p.Available() {
		return nil, common.ErrRecipeNotFound
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("includeNutrition", "false").
		SetResult(&spoonacularRecipe{}).
		Get(fmt.Sprintf("/%s/information", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get spoonacular recipe %s: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, common.ErrRecipeNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("spoonacular API returned status %d", resp.StatusCode())
	}

	recipe := formatSpoonacularRecipe(resp.Result().(*spoonacularRecipe))
	return &recipe, nil
}

// formatSpoonacularRecipe 把 Spoonacular 回應轉成標準食譜結構
func formatSpoonacularRecipe(raw *spoonacularRecipe) Recipe {
	ingredients := make([]string, 0, len(raw.ExtendedIngredients))
	for _, ing := range raw.ExtendedIngredients {
		ingredients = append(ingredients, strings.ToLower(ing.Name))
	}

	var instructions []string
	for _, group := range raw.AnalyzedInstructions {
		for _, step := range group.Steps {
			instructions = append(instructions, step.Step)
		}
	}

	cuisine := "international"
	if len(raw.Cuisines) > 0 {
		cuisine = strings.ToLower(raw.Cuisines[0])
	}

	servings := raw.Servings
	if servings <= 0 {
		servings = 1
	}

	return Recipe{
		ID:           strconv.Itoa(raw.ID),
		Name:         raw.Title,
		Description:  truncate(stripHTML(raw.Summary), 300),
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     raw.PreparationMinutes,
		CookTime:     raw.CookingMinutes,
		Servings:     servings,
		Difficulty:   spoonacularDifficulty(raw),
		Cuisine:      cuisine,
		ImageURL:     raw.Image,
		Tags:         spoonacularTags(raw),
	}
}

// spoonacularDifficulty 依總時間、食材數與步驟數估算難度
func spoonacularDifficulty(raw *spoonacularRecipe) string {
	steps := 0
	for _, group := range raw.AnalyzedInstructions {
		steps += len(group.Steps)
	}
	complexity := float64(raw.ReadyInMinutes)*0.1 +
		float64(len(raw.ExtendedIngredients))*2 +
		float64(steps)*1.5

	switch {
	case complexity <= 20:
		return "easy"
	case complexity <= 50:
		return "medium"
	default:
		return "hard"
	}
}

func spoonacularTags(raw *spoonacularRecipe) []string {
	var tags []string
	if raw.Vegetarian {
		tags = append(tags, "vegetarian")
	}
	if raw.Vegan {
		tags = append(tags, "vegan")
	}
	if raw.GlutenFree {
		tags = append(tags, "gluten-free")
	}
	if raw.DairyFree {
		tags = append(tags, "dairy-free")
	}
	for _, cuisine := range raw.Cuisines {
		tags = append(tags, strings.ToLower(cuisine))
	}
	for _, dishType := range raw.DishTypes {
		tags = append(tags, strings.ToLower(dishType))
	}
	return tags
}

func stripHTML(text string) string {
	return htmlTagPattern.ReplaceAllString(text, "")
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
