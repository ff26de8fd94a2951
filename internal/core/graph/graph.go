package graph

import (
	"iter"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// 反向替代邊進入主圖時的權重折扣
	reverseSubstitutionFactor = 0.8
	// 互補關係邊的固定權重
	complementaryWeight = 0.8
	// 同類別相似邊的固定權重
	categoryWeight = 0.5
)

// Centrality 食材的中心性指標
type Centrality struct {
	Degree      float64 `json:"degree_centrality"`
	Betweenness float64 `json:"betweenness_centrality"`
	Importance  float64 `json:"importance"`
}

// WeightedNeighbor 帶權重與關係種類的相鄰食材
type WeightedNeighbor struct {
	Name     string
	Weight   float64
	Relation Relation
}

// edgeKey 主圖無向邊的查找鍵（id 較小者在前）
type edgeKey struct {
	a, b int64
}

func newEdgeKey(a, b int64) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// graphState 一次 Build 產生的不可變圖狀態
type graphState struct {
	main       *simple.WeightedUndirectedGraph
	subs       *simple.WeightedDirectedGraph
	ids        map[string]int64
	names      map[int64]string
	categories map[string]Category
	relations  map[edgeKey]Relation
	centrality map[string]Centrality
	edgeCount  int
}

// IngredientGraph 食材關係圖
//
// Build 會整個重建內部狀態並以原子方式替換，之後所有查詢都是唯讀；
// 多個請求可同時讀取同一份狀態。
type IngredientGraph struct {
	mu    sync.RWMutex
	data  *BaseData
	state *graphState
}

// NewIngredientGraph 創建食材關係圖，data 為 nil 時使用預設資料
func NewIngredientGraph(data *BaseData) *IngredientGraph {
	if data == nil {
		data = DefaultBaseData()
	}
	return &IngredientGraph{data: data}
}

// Build 重建食材關係圖：清空、重新加入節點與三類邊，並重算中心性指標
func (g *IngredientGraph) Build() {
	st := &graphState{
		main:       simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		subs:       simple.NewWeightedDirectedGraph(0, math.Inf(1)),
		ids:        make(map[string]int64),
		names:      make(map[int64]string),
		categories: make(map[string]Category),
		relations:  make(map[edgeKey]Relation),
		centrality: make(map[string]Centrality),
	}

	// 加入節點：類別表內的每個食材各成一個節點
	// 名稱排序後再配 id，讓重複 Build 產生完全相同的結果
	type catName struct {
		name string
		cat  Category
	}
	var all []catName
	for cat, names := range g.data.Categories {
		for _, name := range names {
			norm := common.NormalizeIngredient(name)
			if norm == "" {
				continue
			}
			all = append(all, catName{name: norm, cat: cat})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	for _, cn := range all {
		if _, exists := st.ids[cn.name]; exists {
			continue
		}
		id := int64(len(st.ids))
		st.ids[cn.name] = id
		st.names[id] = cn.name
		st.categories[cn.name] = cn.cat
		st.main.AddNode(simple.Node(id))
		st.subs.AddNode(simple.Node(id))
	}

	// 替代邊：有向替代圖保留原始權重，主圖以 0.8 倍權重加入無向邊
	for ingredient, subs := range g.data.Substitutions {
		aid, ok := st.ids[common.NormalizeIngredient(ingredient)]
		if !ok {
			continue
		}
		for _, sub := range subs {
			bid, ok := st.ids[common.NormalizeIngredient(sub.Name)]
			if !ok || bid == aid {
				continue
			}
			st.subs.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(aid), T: simple.Node(bid), W: sub.Weight,
			})
			st.setMainEdge(aid, bid, sub.Weight*reverseSubstitutionFactor, RelationSubstitution)
		}
	}

	// 互補邊
	for _, pair := range g.data.Complementary {
		aid, okA := st.ids[common.NormalizeIngredient(pair[0])]
		bid, okB := st.ids[common.NormalizeIngredient(pair[1])]
		if !okA || !okB || aid == bid {
			continue
		}
		st.setMainEdge(aid, bid, complementaryWeight, RelationComplementary)
	}

	// 類別邊：同類別且尚無邊的 unordered pair
	for _, names := range g.data.Categories {
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				aid, okA := st.ids[common.NormalizeIngredient(names[i])]
				bid, okB := st.ids[common.NormalizeIngredient(names[j])]
				if !okA || !okB || aid == bid {
					continue
				}
				if st.main.HasEdgeBetween(aid, bid) {
					continue
				}
				st.setMainEdge(aid, bid, categoryWeight, RelationCategory)
			}
		}
	}

	st.edgeCount = len(st.relations)

	// 重算中心性指標
	computeMetrics(st)

	g.mu.Lock()
	g.state = st
	g.mu.Unlock()

	common.LogInfo("食材關係圖建立完成",
		zap.Int("nodes", len(st.ids)),
		zap.Int("edges", st.edgeCount),
	)
}

// setMainEdge 在主圖設置無向邊並記錄關係種類（覆蓋既有邊）
func (st *graphState) setMainEdge(aid, bid int64, weight float64, rel Relation) {
	st.main.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(aid), T: simple.Node(bid), W: weight,
	})
	st.relations[newEdgeKey(aid, bid)] = rel
}

// snapshot 取得當前圖狀態，未 Build 時返回 nil
func (g *IngredientGraph) snapshot() *graphState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// IsReady 節點數與邊數皆大於零時視為可用
func (g *IngredientGraph) IsReady() bool {
	st := g.snapshot()
	return st != nil && len(st.ids) > 0 && st.edgeCount > 0
}

// NodeCount 節點數
func (g *IngredientGraph) NodeCount() int {
	st := g.snapshot()
	if st == nil {
		return 0
	}
	return len(st.ids)
}

// EdgeCount 主圖邊數
func (g *IngredientGraph) EdgeCount() int {
	st := g.snapshot()
	if st == nil {
		return 0
	}
	return st.edgeCount
}

// Contains 檢查食材是否存在於圖中
func (g *IngredientGraph) Contains(name string) bool {
	st := g.snapshot()
	if st == nil {
		return false
	}
	_, ok := st.ids[common.NormalizeIngredient(name)]
	return ok
}

// Nodes 返回排序後的全部食材名稱
func (g *IngredientGraph) Nodes() []string {
	st := g.snapshot()
	if st == nil {
		return nil
	}
	names := make([]string, 0, len(st.ids))
	for name := range st.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryOf 返回食材類別，未知食材返回 CategoryUnknown
func (g *IngredientGraph) CategoryOf(name string) Category {
	st := g.snapshot()
	if st == nil {
		return CategoryUnknown
	}
	if cat, ok := st.categories[common.NormalizeIngredient(name)]; ok {
		return cat
	}
	return CategoryUnknown
}

// CentralityOf 返回食材的中心性指標；未知食材返回零值（不視為錯誤）
func (g *IngredientGraph) CentralityOf(name string) (Centrality, bool) {
	st := g.snapshot()
	if st == nil {
		return Centrality{}, false
	}
	c, ok := st.centrality[common.NormalizeIngredient(name)]
	return c, ok
}

// Similarity 計算兩個食材的相似度
//
// 有直接邊時取邊權重；否則取加權最短路徑長度換算 1/(1+d)；
// 無路徑或任一食材未知時返回 0。
func (g *IngredientGraph) Similarity(a, b string) float64 {
	st := g.snapshot()
	if st == nil {
		return 0
	}
	aid, okA := st.ids[common.NormalizeIngredient(a)]
	bid, okB := st.ids[common.NormalizeIngredient(b)]
	if !okA || !okB || aid == bid {
		return 0
	}

	if w, ok := st.main.Weight(aid, bid); ok {
		return w
	}

	shortest := path.DijkstraFrom(st.main.Node(aid), st.main)
	dist := shortest.WeightTo(bid)
	if math.IsInf(dist, 1) {
		return 0
	}
	return 1.0 / (1.0 + dist)
}

// Neighbors 返回相鄰食材的惰性序列，可用 rel 過濾關係種類（空字串表示不過濾）
//
// 序列可重複走訪，且名稱排序後輸出以保證順序穩定。
func (g *IngredientGraph) Neighbors(name string, rel Relation) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range g.NeighborRelations(name) {
			if rel != "" && n.Relation != rel {
				continue
			}
			if !yield(n.Name) {
				return
			}
		}
	}
}

// NeighborRelations 返回主圖中全部相鄰食材（含權重與關係種類），按名稱排序
func (g *IngredientGraph) NeighborRelations(name string) []WeightedNeighbor {
	st := g.snapshot()
	if st == nil {
		return nil
	}
	aid, ok := st.ids[common.NormalizeIngredient(name)]
	if !ok {
		return nil
	}

	var out []WeightedNeighbor
	nodes := st.main.From(aid)
	for nodes.Next() {
		bid := nodes.Node().ID()
		w, _ := st.main.Weight(aid, bid)
		out = append(out, WeightedNeighbor{
			Name:     st.names[bid],
			Weight:   w,
			Relation: st.relations[newEdgeKey(aid, bid)],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DirectSubstitutes 返回有向替代圖上的直接替代品，按權重降冪（同分按名稱）
func (g *IngredientGraph) DirectSubstitutes(name string) []WeightedNeighbor {
	st := g.snapshot()
	if st == nil {
		return nil
	}
	aid, ok := st.ids[common.NormalizeIngredient(name)]
	if !ok {
		return nil
	}

	var out []WeightedNeighbor
	nodes := st.subs.From(aid)
	for nodes.Next() {
		bid := nodes.Node().ID()
		w, _ := st.subs.Weight(aid, bid)
		out = append(out, WeightedNeighbor{
			Name:     st.names[bid],
			Weight:   w,
			Relation: RelationSubstitution,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Complementary 返回與給定食材互補的食材集合（排序去重）
func (g *IngredientGraph) Complementary(names []string) []string {
	set := make(map[string]struct{})
	for _, name := range names {
		for neighbor := range g.Neighbors(name, RelationComplementary) {
			set[neighbor] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
