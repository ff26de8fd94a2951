package algorithm

import (
	"fmt"

	"flavorgraph/internal/core/graph"
	"flavorgraph/internal/core/recipe"
	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

// SubstitutionRecommendation 缺口分析中被接受的替代建議
type SubstitutionRecommendation struct {
	Original        string  `json:"original"`
	Substitute      string  `json:"substitute"`
	SimilarityScore float64 `json:"similarity_score"`
	Reason          string  `json:"reason"`
	CategoryMatch   bool    `json:"category_match"`
}

// GapReport 單個目標食譜的缺口分析結果
type GapReport struct {
	RecipeID             string                       `json:"recipe_id"`
	RecipeName           string                       `json:"recipe_name"`
	AvailableIngredients []string                     `json:"available_ingredients"`
	MissingIngredients   []string                     `json:"missing_ingredients"`
	Recommendations      []SubstitutionRecommendation `json:"substitution_recommendations"`
	FeasibilityScore     float64                      `json:"feasibility_score"`
}

// GapAnalyzer 缺口分析：對一個目標食譜評估缺少哪些食材、替代後的可行性
type GapAnalyzer struct {
	graph    *graph.IngredientGraph
	resolver *graph.Resolver
}

// NewGapAnalyzer 創建缺口分析器
func NewGapAnalyzer(g *graph.IngredientGraph, resolver *graph.Resolver) *GapAnalyzer {
	return &GapAnalyzer{graph: g, resolver: resolver}
}

// Analyze 計算目標食譜的缺口報告
//
// 每個缺少的食材取替代建議中第一個實際可用者；
// 可行性 = (已有食材交集數 + 接受的替代數) / 食譜食材總數。
// 食譜沒有任何食材時可行性記 0，不視為錯誤。
func (a *GapAnalyzer) Analyze(available []string, target *recipe.Recipe) *GapReport {
	normalized := common.NormalizeIngredients(available)
	availableSet := common.StringSet(normalized)

	report := &GapReport{
		RecipeID:             target.ID,
		RecipeName:           target.Name,
		AvailableIngredients: normalized,
		MissingIngredients:   []string{},
		Recommendations:      []SubstitutionRecommendation{},
	}

	ingredients := target.NormalizedIngredients()
	if len(ingredients) == 0 {
		common.LogWarn("缺口分析：目標食譜沒有食材",
			zap.String("recipe_id", target.ID),
			zap.String("recipe_name", target.Name),
		)
		return report
	}

	haveCount := 0
	for _, ing := range ingredients {
		if _, ok := availableSet[ing]; ok {
			haveCount++
			continue
		}
		report.MissingIngredients = append(report.MissingIngredients, ing)

		if rec, ok := a.acceptSubstitute(ing, availableSet); ok {
			report.Recommendations = append(report.Recommendations, rec)
		}
	}

	feasibility := float64(haveCount+len(report.Recommendations)) / float64(len(ingredients))
	if feasibility > 1 {
		feasibility = 1
	}
	report.FeasibilityScore = feasibility
	return report
}

// acceptSubstitute 取該食材替代建議中第一個實際可用者
func (a *GapAnalyzer) acceptSubstitute(missing string, available map[string]struct{}) (SubstitutionRecommendation, bool) {
	for _, sub := range a.resolver.Resolve(missing) {
		if _, ok := available[sub.Ingredient]; !ok {
			continue
		}
		return SubstitutionRecommendation{
			Original:        missing,
			Substitute:      sub.Ingredient,
			SimilarityScore: sub.SimilarityScore,
			Reason:          substitutionReason(missing, sub),
			CategoryMatch:   a.graph.CategoryOf(missing) == a.graph.CategoryOf(sub.Ingredient),
		}, true
	}
	return SubstitutionRecommendation{}, false
}

func substitutionReason(missing string, sub graph.SubstitutionResult) string {
	switch sub.RelationshipType {
	case graph.KindDirectSubstitution:
		return fmt.Sprintf("%s 是 %s 的直接替代品，相似度 %.2f", sub.Ingredient, missing, sub.SimilarityScore)
	case graph.KindIndirectSubstitution:
		return fmt.Sprintf("%s 可經由 %v 間接替代 %s，相似度 %.2f", sub.Ingredient, sub.Path, missing, sub.SimilarityScore)
	default:
		return fmt.Sprintf("%s 可替代 %s，相似度 %.2f", sub.Ingredient, missing, sub.SimilarityScore)
	}
}
