package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"flavorgraph/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GapAnalysisRequest 食材缺口分析請求
type GapAnalysisRequest struct {
	AvailableIngredients []string `json:"available_ingredients" binding:"required"`
	RecipeID             string   `json:"recipe_id" binding:"required"`
}

// HandleGapAnalysis 分析指定食譜缺少的食材與可行性
func (h *Handler) HandleGapAnalysis(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req GapAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	report, err := h.engine.AnalyzeGap(c.Request.Context(), req.AvailableIngredients, req.RecipeID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingGapTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		case errors.Is(err, common.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			common.LogError("缺口分析失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("recipe_id", req.RecipeID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gap analysis failed"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// HandleSubstitutions 查詢單個食材的替代品
func (h *Handler) HandleSubstitutions(c *gin.Context) {
	ingredient := c.Param("ingredient")
	if ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	results := h.engine.SubstitutesFor(ingredient, limit)

	c.JSON(http.StatusOK, gin.H{
		"ingredient":    ingredient,
		"substitutions": results,
		"count":         len(results),
	})
}

// HandleStats 返回演算法執行統計
func (h *Handler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Stats())
}
