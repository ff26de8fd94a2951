package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBaseData() *BaseData {
	return &BaseData{
		Categories: map[Category][]string{
			CategoryProtein:   {"chicken", "turkey", "tofu"},
			CategoryVegetable: {"onion", "tomato"},
			CategoryHerb:      {"basil"},
			CategoryGrain:     {"rice"},
		},
		Substitutions: map[string][]Substitute{
			"chicken": {{Name: "turkey", Weight: 0.9}, {Name: "tofu", Weight: 0.6}},
		},
		Complementary: [][2]string{
			{"tomato", "basil"},
		},
	}
}

func builtGraph(t *testing.T) *IngredientGraph {
	t.Helper()
	g := NewIngredientGraph(testBaseData())
	g.Build()
	return g
}

func TestBuildReadiness(t *testing.T) {
	g := NewIngredientGraph(testBaseData())
	assert.False(t, g.IsReady(), "Build 之前不應為可用狀態")
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0.0, g.Similarity("chicken", "turkey"))

	g.Build()
	require.True(t, g.IsReady())
	assert.Equal(t, 7, g.NodeCount())
	assert.Greater(t, g.EdgeCount(), 0)
}

func TestSubstitutionEdgeMirroring(t *testing.T) {
	g := builtGraph(t)

	// 有向替代邊以 0.8 倍權重鏡射進主圖，兩個方向讀到相同權重
	assert.InDelta(t, 0.9*0.8, g.Similarity("chicken", "turkey"), 1e-9)
	assert.InDelta(t, 0.9*0.8, g.Similarity("turkey", "chicken"), 1e-9)
	assert.InDelta(t, 0.6*0.8, g.Similarity("chicken", "tofu"), 1e-9)

	// 反方向不產生有向替代邊
	assert.Empty(t, g.DirectSubstitutes("turkey"))
	subs := g.DirectSubstitutes("chicken")
	require.Len(t, subs, 2)
	assert.Equal(t, "turkey", subs[0].Name)
	assert.InDelta(t, 0.9, subs[0].Weight, 1e-9)
}

func TestCategoryAndComplementaryEdges(t *testing.T) {
	g := builtGraph(t)

	// 同類別且無其他關係的食材間有 0.5 權重邊
	assert.InDelta(t, 0.5, g.Similarity("onion", "tomato"), 1e-9)
	// 既有替代邊不被類別邊覆蓋
	assert.InDelta(t, 0.9*0.8, g.Similarity("chicken", "turkey"), 1e-9)
	// 互補邊權重 0.8
	assert.InDelta(t, 0.8, g.Similarity("tomato", "basil"), 1e-9)

	comp := g.Complementary([]string{"tomato", "rice"})
	assert.Equal(t, []string{"basil"}, comp)
	assert.Empty(t, g.Complementary([]string{"chicken"}))
}

func TestSimilarityBounds(t *testing.T) {
	g := builtGraph(t)

	nodes := g.Nodes()
	for _, a := range nodes {
		for _, b := range nodes {
			if a == b {
				continue
			}
			s := g.Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0, "%s-%s", a, b)
			assert.LessOrEqual(t, s, 1.0, "%s-%s", a, b)
		}
	}

	// 未知食材一律為 0
	assert.Equal(t, 0.0, g.Similarity("chicken", "dragonfruit"))
	assert.Equal(t, 0.0, g.Similarity("dragonfruit", "chicken"))
}

func TestSimilarityViaPath(t *testing.T) {
	g := NewIngredientGraph(&BaseData{
		Categories: map[Category][]string{
			CategoryProtein:   {"chicken"},
			CategoryVegetable: {"onion"},
			CategoryHerb:      {"basil"},
		},
		Complementary: [][2]string{
			{"chicken", "onion"},
			{"onion", "basil"},
		},
	})
	g.Build()

	// chicken 與 basil 無直接邊，經 onion 的最短路徑長 1.6
	assert.InDelta(t, 1.0/(1.0+1.6), g.Similarity("chicken", "basil"), 1e-9)
}

func TestBuildIdempotent(t *testing.T) {
	g := builtGraph(t)
	nodes := g.NodeCount()
	edges := g.EdgeCount()
	sim := g.Similarity("chicken", "turkey")
	names := g.Nodes()

	g.Build()
	assert.Equal(t, nodes, g.NodeCount())
	assert.Equal(t, edges, g.EdgeCount())
	assert.Equal(t, sim, g.Similarity("chicken", "turkey"))
	assert.Equal(t, names, g.Nodes())
}

func TestNeighborsFiltering(t *testing.T) {
	g := builtGraph(t)

	var subs []string
	for name := range g.Neighbors("chicken", RelationSubstitution) {
		subs = append(subs, name)
	}
	assert.Equal(t, []string{"tofu", "turkey"}, subs)

	var all []string
	for name := range g.Neighbors("chicken", "") {
		all = append(all, name)
	}
	assert.Equal(t, []string{"tofu", "turkey"}, all)

	// 序列可重複走訪
	count := 0
	seq := g.Neighbors("onion", "")
	for range seq {
		count++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, count, second)
	assert.Nil(t, g.NeighborRelations("dragonfruit"))
}

func TestCentrality(t *testing.T) {
	g := builtGraph(t)

	c, ok := g.CentralityOf("chicken")
	require.True(t, ok)
	assert.Greater(t, c.Degree, 0.0)
	assert.LessOrEqual(t, c.Degree, 1.0)
	assert.Greater(t, c.Importance, 0.0)

	_, ok = g.CentralityOf("dragonfruit")
	assert.False(t, ok)

	// 全域重要度總和為 1
	total := 0.0
	for _, name := range g.Nodes() {
		c, _ := g.CentralityOf(name)
		total += c.Importance
	}
	assert.InDelta(t, 1.0, total, 1e-3)
}

func TestCategoryOf(t *testing.T) {
	g := builtGraph(t)
	assert.Equal(t, CategoryProtein, g.CategoryOf("chicken"))
	assert.Equal(t, CategoryProtein, g.CategoryOf("  Chicken "))
	assert.Equal(t, CategoryUnknown, g.CategoryOf("dragonfruit"))
}
