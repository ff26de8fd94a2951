package graph

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// 二階替代路徑的權重折扣
	indirectSubstitutionFactor = 0.7
	// 模糊比對的預設接受門檻
	defaultFuzzyThreshold = 0.7
)

// 替代關係種類
const (
	KindDirectSubstitution   = "direct_substitution"
	KindIndirectSubstitution = "indirect_substitution"
)

// SubstitutionResult 單個替代建議
type SubstitutionResult struct {
	Ingredient       string   `json:"ingredient"`
	SimilarityScore  float64  `json:"similarity_score"`
	RelationshipType string   `json:"relationship_type"`
	Category         string   `json:"category"`
	Path             []string `json:"path,omitempty"`
}

// SimilarityFunc 名稱模糊比對函數，返回 0~1 的相似度
type SimilarityFunc func(a, b string) float64

// LevenshteinRatio 以編輯距離換算的名稱相似度
func LevenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// Resolver 替代品查找器
type Resolver struct {
	graph      *IngredientGraph
	limit      int
	threshold  float64
	similarity SimilarityFunc
}

// NewResolver 創建替代品查找器，limit 為每次查找返回的建議上限
func NewResolver(g *IngredientGraph, limit int) *Resolver {
	if limit <= 0 {
		limit = 3
	}
	return &Resolver{
		graph:      g,
		limit:      limit,
		threshold:  defaultFuzzyThreshold,
		similarity: LevenshteinRatio,
	}
}

// WithThreshold 調整模糊比對的接受門檻，超出 (0,1] 範圍時不變更
func (r *Resolver) WithThreshold(threshold float64) *Resolver {
	if threshold > 0 && threshold <= 1 {
		r.threshold = threshold
	}
	return r
}

// WithSimilarity 替換名稱模糊比對函數（測試用）
func (r *Resolver) WithSimilarity(fn SimilarityFunc) *Resolver {
	if fn != nil {
		r.similarity = fn
	}
	return r
}

// Resolve 查找食材的替代品
//
// 名稱不在圖中時先做模糊比對，超過門檻的最佳匹配視為查詢目標；
// 直接替代品優先，不足時再走二階替代路徑補滿，按分數降冪返回。
func (r *Resolver) Resolve(name string) []SubstitutionResult {
	norm := common.NormalizeIngredient(name)
	if norm == "" {
		return nil
	}

	resolved, ok := r.resolveName(norm)
	if !ok {
		common.LogDebug("替代品查找：無匹配食材", zap.String("ingredient", norm))
		return nil
	}

	results := r.directSubstitutes(resolved)
	if len(results) < r.limit {
		results = append(results, r.indirectSubstitutes(resolved, results)...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].Ingredient < results[j].Ingredient
	})
	if len(results) > r.limit {
		results = results[:r.limit]
	}
	return results
}

// resolveName 把輸入名稱對應到圖中節點，必要時做模糊比對
func (r *Resolver) resolveName(norm string) (string, bool) {
	if r.graph.Contains(norm) {
		return norm, true
	}

	best := ""
	bestScore := r.threshold
	for _, candidate := range r.graph.Nodes() {
		score := r.similarity(norm, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best == "" {
		return "", false
	}

	common.LogDebug("替代品查找：模糊比對命中",
		zap.String("input", norm),
		zap.String("matched", best),
		zap.Float64("score", bestScore),
	)
	return best, true
}

func (r *Resolver) directSubstitutes(name string) []SubstitutionResult {
	var out []SubstitutionResult
	for _, sub := range r.graph.DirectSubstitutes(name) {
		out = append(out, SubstitutionResult{
			Ingredient:       sub.Name,
			SimilarityScore:  sub.Weight,
			RelationshipType: KindDirectSubstitution,
			Category:         string(r.graph.CategoryOf(sub.Name)),
		})
		if len(out) >= r.limit {
			break
		}
	}
	return out
}

// indirectSubstitutes 經由一個非替代關係的中介食材找二階替代品
//
// 第二跳走主圖的全部鄰居（含類別與互補邊），兩跳都取主圖權重。
func (r *Resolver) indirectSubstitutes(name string, existing []SubstitutionResult) []SubstitutionResult {
	seen := common.StringSet([]string{name})
	for _, res := range existing {
		seen[res.Ingredient] = struct{}{}
	}

	var out []SubstitutionResult
	for _, mid := range r.graph.NeighborRelations(name) {
		if mid.Relation == RelationSubstitution {
			continue
		}
		for _, second := range r.graph.NeighborRelations(mid.Name) {
			if _, dup := seen[second.Name]; dup {
				continue
			}
			seen[second.Name] = struct{}{}
			out = append(out, SubstitutionResult{
				Ingredient:       second.Name,
				SimilarityScore:  mid.Weight * second.Weight * indirectSubstitutionFactor,
				RelationshipType: KindIndirectSubstitution,
				Category:         string(r.graph.CategoryOf(second.Name)),
				Path:             []string{name, mid.Name, second.Name},
			})
			if len(existing)+len(out) >= r.limit {
				return out
			}
		}
	}
	return out
}
