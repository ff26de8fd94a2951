package recipe

import (
	"net/http"

	"flavorgraph/internal/core/algorithm"
	"flavorgraph/internal/core/image"
	recipeService "flavorgraph/internal/core/recipe"
	"flavorgraph/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜與食材分析處理程序
type Handler struct {
	engine       *algorithm.Service
	recipeData   *recipeService.Service
	imageService *image.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(engine *algorithm.Service, recipeData *recipeService.Service, imageService *image.Service) *Handler {
	return &Handler{
		engine:       engine,
		recipeData:   recipeData,
		imageService: imageService,
	}
}

// SuggestResponse 食譜推薦響應
type SuggestResponse struct {
	Recipes   []algorithm.RankedRecipe `json:"recipes"`
	Count     int                      `json:"count"`
	RequestID string                   `json:"request_id"`
}

// HandleSuggest 依可用食材推薦食譜
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req algorithm.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("request_id", requestID),
		zap.Strings("ingredients", req.AvailableIngredients),
		zap.Int("max_recipes", req.MaxRecipes),
	)

	results, err := h.engine.Suggest(c.Request.Context(), req)
	if err != nil {
		common.LogError("食譜推薦失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe suggestion failed"})
		return
	}

	// 沒有圖片的食譜補上關鍵字比對的圖片
	for i := range results {
		if results[i].Recipe.ImageURL == "" {
			results[i].Recipe.ImageURL = h.imageService.RecipeImage(
				results[i].Recipe.Name,
				results[i].Recipe.Cuisine,
				results[i].Recipe.Ingredients,
			)
		}
	}

	c.JSON(http.StatusOK, SuggestResponse{
		Recipes:   results,
		Count:     len(results),
		RequestID: requestID,
	})
}

// SearchRequest 食譜搜索請求
type SearchRequest struct {
	Query       string   `form:"q"`
	Ingredients []string `form:"ingredients"`
	Cuisine     string   `form:"cuisine"`
	Diet        string   `form:"diet"`
	Limit       int      `form:"limit"`
}

// HandleSearch 直接搜索食譜池（不經排序管線）
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if req.Query == "" && len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q or ingredients is required"})
		return
	}
	if req.Limit <= 0 || req.Limit > 50 {
		req.Limit = 20
	}

	recipes, err := h.recipeData.SearchRecipes(c.Request.Context(), recipeService.PoolQuery{
		Ingredients: req.Ingredients,
		Query:       req.Query,
		Cuisine:     req.Cuisine,
		Diet:        req.Diet,
		Limit:       req.Limit,
	})
	if err != nil {
		common.LogError("食譜搜索失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe search failed"})
		return
	}

	for i := range recipes {
		if recipes[i].ImageURL == "" {
			recipes[i].ImageURL = h.imageService.RecipeImage(recipes[i].Name, recipes[i].Cuisine, recipes[i].Ingredients)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":    recipes,
		"count":      len(recipes),
		"request_id": requestID,
	})
}

// ensureRequestID 確保每個請求都有 X-Request-ID
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}
