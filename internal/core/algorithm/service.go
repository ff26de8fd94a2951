package algorithm

import (
	"context"
	"sync/atomic"
	"time"

	"flavorgraph/internal/core/graph"
	"flavorgraph/internal/core/recipe"
	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

// SuggestRequest 食譜推薦請求
type SuggestRequest struct {
	AvailableIngredients []string `json:"available_ingredients" binding:"required,min=1"`
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	CuisinePreference    string   `json:"cuisine_preference"`
	MaxRecipes           int      `json:"max_recipes"`
}

// RankedRecipe 推薦結果中的單筆食譜
type RankedRecipe struct {
	Recipe                  recipe.Recipe       `json:"recipe"`
	MatchScore              float64             `json:"match_score"`
	TotalScore              float64             `json:"total_score"`
	MissingIngredients      []string            `json:"missing_ingredients"`
	SubstitutionSuggestions map[string][]string `json:"substitution_suggestions"`
	ComplementaryMatches    []string            `json:"complementary_ingredients,omitempty"`
	AlgorithmUsed           string              `json:"algorithm_used"`
}

// StatsSnapshot 演算法執行統計
//
// 計數只增不減，行程重啟才歸零。
type StatsSnapshot struct {
	GreedySelections     int64   `json:"greedy_selections"`
	GraphTraversals      int64   `json:"graph_traversals"`
	BacktrackingCalls    int64   `json:"backtracking_calls"`
	TotalExecutionTimeMS float64 `json:"total_execution_time_ms"`
	GraphNodes           int     `json:"graph_nodes"`
	GraphEdges           int     `json:"graph_edges"`
}

type stats struct {
	greedySelections  atomic.Int64
	graphTraversals   atomic.Int64
	backtrackingCalls atomic.Int64
	executionNanos    atomic.Int64
}

// Service 食譜推薦引擎：三階段排序管線與缺口分析的進入點
type Service struct {
	graph    *graph.IngredientGraph
	resolver *graph.Resolver
	filter   *CandidateFilter
	enhancer *GraphEnhancer
	selector *CombinatorialSelector
	analyzer *GapAnalyzer

	pool recipe.PoolProvider
	byID recipe.ByIDProvider

	defaultMaxRecipes int
	fuzzyThreshold    float64
	stats             stats
}

// Options 引擎參數
type Options struct {
	MaxCandidates     int
	DefaultMaxRecipes int
	SubstitutionLimit int
	FuzzyThreshold    float64
}

// NewService 創建推薦引擎
func NewService(g *graph.IngredientGraph, pool recipe.PoolProvider, byID recipe.ByIDProvider, opts Options) *Service {
	if opts.DefaultMaxRecipes <= 0 {
		opts.DefaultMaxRecipes = 10
	}
	resolver := graph.NewResolver(g, opts.SubstitutionLimit).WithThreshold(opts.FuzzyThreshold)
	return &Service{
		graph:             g,
		resolver:          resolver,
		filter:            NewCandidateFilter(opts.MaxCandidates),
		enhancer:          NewGraphEnhancer(g, resolver),
		selector:          NewCombinatorialSelector(),
		analyzer:          NewGapAnalyzer(g, resolver),
		pool:              pool,
		byID:              byID,
		defaultMaxRecipes: opts.DefaultMaxRecipes,
		fuzzyThreshold:    opts.FuzzyThreshold,
	}
}

// Suggest 依可用食材推薦食譜
//
// 先從資料來源取得原始食譜池，再走 貪婪過濾 → 圖分析 → 回溯選擇 三個階段；
// 食譜池為空時返回空列表，不視為錯誤。
func (s *Service) Suggest(ctx context.Context, req SuggestRequest) ([]RankedRecipe, error) {
	start := time.Now()
	defer func() {
		s.stats.executionNanos.Add(int64(time.Since(start)))
	}()

	maxRecipes := req.MaxRecipes
	if maxRecipes <= 0 {
		maxRecipes = s.defaultMaxRecipes
	}

	diet := ""
	if len(req.DietaryRestrictions) > 0 {
		diet = req.DietaryRestrictions[0]
	}
	pool, err := s.pool.SearchRecipes(ctx, recipe.PoolQuery{
		Ingredients: req.AvailableIngredients,
		Cuisine:     req.CuisinePreference,
		Diet:        diet,
		Limit:       maxRecipes * 5,
	})
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		common.LogInfo("食譜池為空，返回空結果",
			zap.Strings("ingredients", req.AvailableIngredients),
		)
		return []RankedRecipe{}, nil
	}

	candidates := s.filter.Filter(pool, req.AvailableIngredients, req.DietaryRestrictions, req.CuisinePreference)
	s.stats.greedySelections.Add(1)
	if len(candidates) == 0 {
		return []RankedRecipe{}, nil
	}

	s.enhancer.Enhance(candidates, req.AvailableIngredients)
	s.stats.graphTraversals.Add(1)

	selected, algorithmUsed := s.selector.Select(candidates, req.AvailableIngredients, maxRecipes)
	s.stats.backtrackingCalls.Add(1)

	availableSet := common.StringSet(common.NormalizeIngredients(req.AvailableIngredients))
	results := make([]RankedRecipe, 0, len(selected))
	for _, c := range selected {
		results = append(results, RankedRecipe{
			Recipe:                  c.Recipe,
			MatchScore:              c.MatchScore(availableSet),
			TotalScore:              c.TotalScore(),
			MissingIngredients:      append([]string{}, c.MissingIngredients...),
			SubstitutionSuggestions: c.SubstitutionSuggestions,
			ComplementaryMatches:    c.ComplementaryMatches,
			AlgorithmUsed:           algorithmUsed,
		})
	}

	common.LogInfo("食譜推薦完成",
		zap.Int("pool_size", len(pool)),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(results)),
		zap.String("algorithm", algorithmUsed),
		zap.Duration("duration", time.Since(start)),
	)
	return results, nil
}

// AnalyzeGap 對單個目標食譜做缺口分析
//
// targetID 為空或查無食譜時返回錯誤，由呼叫端轉成拒絕請求。
func (s *Service) AnalyzeGap(ctx context.Context, available []string, targetID string) (*GapReport, error) {
	start := time.Now()
	defer func() {
		s.stats.executionNanos.Add(int64(time.Since(start)))
	}()

	if targetID == "" {
		return nil, common.ErrMissingGapTarget
	}
	target, err := s.byID.GetRecipeByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	s.stats.graphTraversals.Add(1)
	return s.analyzer.Analyze(available, target), nil
}

// SubstitutesFor 查詢單個食材的替代品
func (s *Service) SubstitutesFor(name string, limit int) []graph.SubstitutionResult {
	s.stats.graphTraversals.Add(1)
	resolver := s.resolver
	if limit > 0 {
		resolver = graph.NewResolver(s.graph, limit).WithThreshold(s.fuzzyThreshold)
	}
	return resolver.Resolve(name)
}

// Stats 返回當前統計快照
func (s *Service) Stats() StatsSnapshot {
	return StatsSnapshot{
		GreedySelections:     s.stats.greedySelections.Load(),
		GraphTraversals:      s.stats.graphTraversals.Load(),
		BacktrackingCalls:    s.stats.backtrackingCalls.Load(),
		TotalExecutionTimeMS: float64(s.stats.executionNanos.Load()) / float64(time.Millisecond),
		GraphNodes:           s.graph.NodeCount(),
		GraphEdges:           s.graph.EdgeCount(),
	}
}

// Graph 返回底層食材關係圖（健康檢查用）
func (s *Service) Graph() *graph.IngredientGraph {
	return s.graph
}
