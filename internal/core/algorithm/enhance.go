package algorithm

import (
	"flavorgraph/internal/core/graph"
	"flavorgraph/internal/pkg/common"
)

const (
	substitutionScoreFactor = 10.0
	importanceScoreFactor   = 5.0
	complementaryPairBonus  = 5.0
)

// GraphEnhancer 圖分析階段：用食材關係圖為貪婪候選補充替代情報
type GraphEnhancer struct {
	graph    *graph.IngredientGraph
	resolver *graph.Resolver
}

// NewGraphEnhancer 創建圖分析器
func NewGraphEnhancer(g *graph.IngredientGraph, resolver *graph.Resolver) *GraphEnhancer {
	return &GraphEnhancer{graph: g, resolver: resolver}
}

// Enhance 就地為每個候選計算圖分數與替代建議
//
// 缺少的食材若有可用替代品，加 相似度×10；
// 已有的食材按其全域重要度加 重要度×5；
// 食譜食材落在可用食材的互補集合中時，每個加 5 分。
func (e *GraphEnhancer) Enhance(candidates []*Candidate, available []string) {
	normalized := common.NormalizeIngredients(available)
	availableSet := common.StringSet(normalized)
	complementary := common.StringSet(e.graph.Complementary(normalized))

	for _, c := range candidates {
		e.enhanceOne(c, availableSet, complementary)
	}
}

func (e *GraphEnhancer) enhanceOne(c *Candidate, available, complementary map[string]struct{}) {
	score := 0.0
	c.MissingIngredients = nil
	c.SubstitutionSuggestions = make(map[string][]string)
	c.ComplementaryMatches = nil

	for _, ing := range c.Ingredients {
		if _, ok := available[ing]; ok {
			if centrality, known := e.graph.CentralityOf(ing); known {
				score += centrality.Importance * importanceScoreFactor
			}
			continue
		}

		c.MissingIngredients = append(c.MissingIngredients, ing)
		subs := e.resolver.Resolve(ing)
		for _, sub := range subs {
			c.SubstitutionSuggestions[ing] = append(c.SubstitutionSuggestions[ing], sub.Ingredient)
		}
		// 只計第一個實際可用的替代品
		for _, sub := range subs {
			if _, ok := available[sub.Ingredient]; ok {
				score += sub.SimilarityScore * substitutionScoreFactor
				break
			}
		}
	}

	for _, ing := range c.Ingredients {
		if _, ok := complementary[ing]; ok {
			score += complementaryPairBonus
			c.ComplementaryMatches = append(c.ComplementaryMatches, ing)
		}
	}

	c.GraphScore = score
}
