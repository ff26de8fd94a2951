package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDirectSubstitutes(t *testing.T) {
	g := builtGraph(t)
	r := NewResolver(g, 3)

	results := r.Resolve("chicken")
	require.Len(t, results, 2)

	assert.Equal(t, "turkey", results[0].Ingredient)
	assert.InDelta(t, 0.9, results[0].SimilarityScore, 1e-9)
	assert.Equal(t, KindDirectSubstitution, results[0].RelationshipType)
	assert.Equal(t, string(CategoryProtein), results[0].Category)
	assert.Empty(t, results[0].Path)

	assert.Equal(t, "tofu", results[1].Ingredient)
	assert.InDelta(t, 0.6, results[1].SimilarityScore, 1e-9)
}

func TestResolveFuzzyMatch(t *testing.T) {
	g := builtGraph(t)
	r := NewResolver(g, 3)

	// 拼寫誤差在門檻內時視為同一食材
	results := r.Resolve("chiken")
	require.NotEmpty(t, results)
	assert.Equal(t, "turkey", results[0].Ingredient)

	// 完全不相干的名稱不匹配
	assert.Empty(t, r.Resolve("xyzzy"))
	assert.Empty(t, r.Resolve(""))
}

func TestResolveIndirectSubstitutes(t *testing.T) {
	g := NewIngredientGraph(&BaseData{
		Categories: map[Category][]string{
			CategoryProtein: {"beef", "pork", "lamb"},
		},
		Substitutions: map[string][]Substitute{
			"pork": {{Name: "lamb", Weight: 0.8}},
		},
	})
	g.Build()
	r := NewResolver(g, 3)

	// beef 無直接替代品，經類別鄰居在主圖上找二階替代：
	// 主圖邊 pork–lamb 0.64（替代鏡像）、beef–lamb 0.5、beef–pork 0.5（類別）
	results := r.Resolve("beef")
	require.Len(t, results, 2)

	assert.Equal(t, "lamb", results[0].Ingredient)
	assert.Equal(t, KindIndirectSubstitution, results[0].RelationshipType)
	assert.InDelta(t, 0.5*0.64*0.7, results[0].SimilarityScore, 1e-9)
	assert.Equal(t, []string{"beef", "pork", "lamb"}, results[0].Path)

	assert.Equal(t, "pork", results[1].Ingredient)
	assert.InDelta(t, 0.5*0.64*0.7, results[1].SimilarityScore, 1e-9)
	assert.Equal(t, []string{"beef", "lamb", "pork"}, results[1].Path)
}

func TestResolveIndirectViaComplementaryEdge(t *testing.T) {
	g := NewIngredientGraph(&BaseData{
		Categories: map[Category][]string{
			CategoryProtein:   {"beef", "pork"},
			CategoryVegetable: {"zucchini"},
		},
		Complementary: [][2]string{{"pork", "zucchini"}},
	})
	g.Build()
	r := NewResolver(g, 3)

	// 中介食材與候選之間只有互補邊時仍可作為二階替代
	results := r.Resolve("beef")
	require.Len(t, results, 1)
	assert.Equal(t, "zucchini", results[0].Ingredient)
	assert.Equal(t, KindIndirectSubstitution, results[0].RelationshipType)
	assert.InDelta(t, 0.5*0.8*0.7, results[0].SimilarityScore, 1e-9)
	assert.Equal(t, []string{"beef", "pork", "zucchini"}, results[0].Path)
	assert.Equal(t, string(CategoryVegetable), results[0].Category)
}

func TestResolveLimit(t *testing.T) {
	g := builtGraph(t)
	r := NewResolver(g, 1)

	results := r.Resolve("chicken")
	require.Len(t, results, 1)
	assert.Equal(t, "turkey", results[0].Ingredient)
}

func TestResolveDeterministicOrder(t *testing.T) {
	g := builtGraph(t)
	r := NewResolver(g, 3)

	first := r.Resolve("chicken")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Resolve("chicken"))
	}
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinRatio("tomato", "tomato"))
	assert.Equal(t, 1.0, LevenshteinRatio("", ""))
	assert.Greater(t, LevenshteinRatio("chicken", "chiken"), 0.7)
	assert.Less(t, LevenshteinRatio("chicken", "rice"), 0.5)
}
