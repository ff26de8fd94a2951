package algorithm

import (
	"flavorgraph/internal/core/recipe"
)

// Candidate 排序管線中的食譜候選
//
// 每個請求擁有自己的候選列表，三個階段依序附加分數，
// 請求結束後即丟棄，不做任何持久化。
type Candidate struct {
	Recipe      recipe.Recipe
	Ingredients []string // 正規化後的食材列表

	GreedyScore float64
	GraphScore  float64

	MissingIngredients      []string
	SubstitutionSuggestions map[string][]string
	ComplementaryMatches    []string
}

// TotalScore 貪婪分數與圖分數之和，回溯搜索的基礎分
func (c *Candidate) TotalScore() float64 {
	return c.GreedyScore + c.GraphScore
}

// MatchScore 食譜食材與可用食材的匹配比例
func (c *Candidate) MatchScore(available map[string]struct{}) float64 {
	if len(c.Ingredients) == 0 {
		return 0
	}
	matched := 0
	for _, ing := range c.Ingredients {
		if _, ok := available[ing]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(c.Ingredients))
}
