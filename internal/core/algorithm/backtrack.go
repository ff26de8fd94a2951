package algorithm

import (
	"math"
	"sort"

	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	diversityBonusFactor    = 2.0
	availabilityBonusFactor = 3.0

	// AlgorithmBacktracking 回溯搜索選出的結果
	AlgorithmBacktracking = "backtracking_optimization"
	// AlgorithmGreedyFallback 回溯無解時退回貪婪排序的結果
	AlgorithmGreedyFallback = "greedy_fallback"
)

// CombinatorialSelector 回溯階段：在候選中搜索總分最高的食譜組合
//
// 搜索同時考慮組合總分、食材多樣性與可用食材覆蓋率，
// 兩種剪枝讓 50 個以內的候選規模保持可行。
type CombinatorialSelector struct{}

// NewCombinatorialSelector 創建組合選擇器
func NewCombinatorialSelector() *CombinatorialSelector {
	return &CombinatorialSelector{}
}

// Select 選出至多 maxRecipes 個候選的最佳組合
//
// 候選先按基礎分降冪排序以提高剪枝效率；
// 回溯找不到任何組合時（理論上不會發生）退回前 maxRecipes 個候選。
// 返回選中的候選與使用的演算法標記。
func (s *CombinatorialSelector) Select(candidates []*Candidate, available []string, maxRecipes int) ([]*Candidate, string) {
	if len(candidates) == 0 || maxRecipes <= 0 {
		return nil, AlgorithmBacktracking
	}

	sorted := make([]*Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore() > sorted[j].TotalScore()
	})

	search := &combinationSearch{
		candidates: sorted,
		available:  common.StringSet(common.NormalizeIngredients(available)),
		maxRecipes: maxRecipes,
		bestScore:  math.Inf(-1),
	}
	for _, c := range sorted {
		bonus := (diversityBonusFactor + availabilityBonusFactor) * float64(len(c.Ingredients))
		if bonus > search.maxBonus {
			search.maxBonus = bonus
		}
	}
	search.run(0, nil, make(map[string]struct{}), 0)

	if len(search.best) == 0 {
		common.LogWarn("回溯搜索無解，退回貪婪排序",
			zap.Int("candidates", len(sorted)),
			zap.Int("max_recipes", maxRecipes),
		)
		if len(sorted) > maxRecipes {
			sorted = sorted[:maxRecipes]
		}
		return sorted, AlgorithmGreedyFallback
	}
	return search.best, AlgorithmBacktracking
}

type combinationSearch struct {
	candidates []*Candidate
	available  map[string]struct{}
	maxRecipes int
	maxBonus   float64

	best      []*Candidate
	bestScore float64
}

// run 在 index 處分「選入」與「跳過」兩個分支遞迴搜索
//
// current 與 used 對每次呼叫都是不可變的：選入分支以副本遞迴，
// 讓剪枝條件與分支邏輯可以各自獨立驗證。
func (cs *combinationSearch) run(index int, current []*Candidate, used map[string]struct{}, score float64) {
	if len(current) == cs.maxRecipes || index == len(cs.candidates) {
		if len(current) > 0 && score > cs.bestScore {
			cs.bestScore = score
			cs.best = append([]*Candidate(nil), current...)
		}
		return
	}

	// 上界剪枝：剩餘名額全取前方最高基礎分也追不上現任最佳時放棄
	slots := cs.maxRecipes - len(current)
	if score+cs.bestAhead(index, slots) <= cs.bestScore {
		return
	}

	// 選入分支
	candidate := cs.candidates[index]
	nextUsed := make(map[string]struct{}, len(used)+len(candidate.Ingredients))
	for ing := range used {
		nextUsed[ing] = struct{}{}
	}
	gain := cs.incrementalScore(candidate, used)
	for _, ing := range candidate.Ingredients {
		nextUsed[ing] = struct{}{}
	}
	cs.run(index+1, append(append([]*Candidate(nil), current...), candidate), nextUsed, score+gain)

	// 跳過分支：剩餘候選不足以填滿名額時不再探索
	if len(cs.candidates)-index-1 >= slots {
		cs.run(index+1, current, used, score)
	}
}

// incrementalScore 把候選加入組合時的增量分數
//
// 基礎分 + 2×新增食材數 + 3×可用食材交集數 − 與既用食材的重疊數。
func (cs *combinationSearch) incrementalScore(c *Candidate, used map[string]struct{}) float64 {
	newCount, overlap, availCount := 0, 0, 0
	for _, ing := range c.Ingredients {
		if _, ok := used[ing]; ok {
			overlap++
		} else {
			newCount++
		}
		if _, ok := cs.available[ing]; ok {
			availCount++
		}
	}
	return c.TotalScore() +
		diversityBonusFactor*float64(newCount) +
		availabilityBonusFactor*float64(availCount) -
		float64(overlap)
}

// bestAhead 剩餘 slots 個名額可再得分數的上界
//
// 排序保證 sorted[index:index+slots] 是前方最高的基礎分；
// 每個名額另外加上全場最大的增量加分，確保是可靠的上界。
func (cs *combinationSearch) bestAhead(index, slots int) float64 {
	total := 0.0
	for i := index; i < len(cs.candidates) && i < index+slots; i++ {
		total += cs.candidates[i].TotalScore() + cs.maxBonus
	}
	return total
}
