package algorithm

import (
	"sort"
	"strings"

	"flavorgraph/internal/core/recipe"
	"flavorgraph/internal/pkg/common"
)

const (
	matchRatioFactor     = 100.0
	missingPenalty       = 10.0
	dietaryBonus         = 20.0
	cuisineBonus         = 15.0
	defaultMaxCandidates = 50
)

// CandidateFilter 貪婪階段：以簡單啟發式對原始食譜池做第一輪排序與修剪
//
// 每個食譜的去留在單次局部判斷中決定，被淘汰的食譜不再回頭考慮。
type CandidateFilter struct {
	maxCandidates int
}

// NewCandidateFilter 創建貪婪過濾器，maxCandidates 為候選數上限
func NewCandidateFilter(maxCandidates int) *CandidateFilter {
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}
	return &CandidateFilter{maxCandidates: maxCandidates}
}

// Filter 為食譜池打分，保留分數大於零的食譜並按分數降冪截斷
func (f *CandidateFilter) Filter(pool []recipe.Recipe, available []string, diets []string, cuisine string) []*Candidate {
	availableSet := common.StringSet(common.NormalizeIngredients(available))

	var candidates []*Candidate
	for _, rec := range pool {
		ingredients := rec.NormalizedIngredients()
		score := f.Score(ingredients, availableSet, rec.Tags, rec.Cuisine, diets, cuisine)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, &Candidate{
			Recipe:      rec,
			Ingredients: ingredients,
			GreedyScore: score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].GreedyScore != candidates[j].GreedyScore {
			return candidates[i].GreedyScore > candidates[j].GreedyScore
		}
		return candidates[i].Recipe.Name < candidates[j].Recipe.Name
	})
	if len(candidates) > f.maxCandidates {
		candidates = candidates[:f.maxCandidates]
	}
	return candidates
}

// Score 單個食譜的貪婪分數
//
// 基礎分 = 100 × 匹配比例 − 10 × 缺少食材數，
// 滿足飲食限制加 20 分，菜系符合偏好加 15 分。
func (f *CandidateFilter) Score(ingredients []string, available map[string]struct{}, tags []string, recipeCuisine string, diets []string, cuisine string) float64 {
	if len(ingredients) == 0 {
		return 0
	}

	matched, missing := 0, 0
	for _, ing := range ingredients {
		if _, ok := available[ing]; ok {
			matched++
		} else {
			missing++
		}
	}

	score := matchRatioFactor*float64(matched)/float64(len(ingredients)) - missingPenalty*float64(missing)
	if matchesDietary(tags, diets) {
		score += dietaryBonus
	}
	if cuisine != "" && strings.EqualFold(recipeCuisine, cuisine) {
		score += cuisineBonus
	}
	return score
}

func matchesDietary(tags []string, diets []string) bool {
	for _, diet := range diets {
		for _, tag := range tags {
			if strings.EqualFold(tag, diet) {
				return true
			}
		}
	}
	return false
}
