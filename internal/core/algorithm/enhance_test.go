package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flavorgraph/internal/core/graph"
)

func enhancerGraph(t *testing.T) *graph.IngredientGraph {
	t.Helper()
	g := graph.NewIngredientGraph(&graph.BaseData{
		Categories: map[graph.Category][]string{
			graph.CategoryFat:       {"butter"},
			graph.CategoryOil:       {"olive oil"},
			graph.CategoryGrain:     {"rice"},
			graph.CategoryVegetable: {"onion", "tomato"},
			graph.CategoryHerb:      {"basil"},
		},
		Substitutions: map[string][]graph.Substitute{
			"butter": {{Name: "olive oil", Weight: 0.8}},
		},
		Complementary: [][2]string{
			{"tomato", "basil"},
		},
	})
	g.Build()
	return g
}

func TestEnhanceScoring(t *testing.T) {
	g := enhancerGraph(t)
	e := NewGraphEnhancer(g, graph.NewResolver(g, 3))
	available := []string{"rice", "olive oil", "basil"}

	c := &Candidate{
		Recipe:      makeRecipe("x", "rice", "butter", "tomato"),
		Ingredients: []string{"rice", "butter", "tomato"},
		GreedyScore: 30,
	}
	e.Enhance([]*Candidate{c}, available)

	assert.Equal(t, []string{"butter", "tomato"}, c.MissingIngredients)
	assert.Equal(t, []string{"olive oil"}, c.SubstitutionSuggestions["butter"])
	assert.NotContains(t, c.SubstitutionSuggestions, "tomato")
	assert.Equal(t, []string{"tomato"}, c.ComplementaryMatches)

	// 替代加分 0.8×10、互補加分 5、rice 的重要度加分在 (0, 5) 之間
	assert.Greater(t, c.GraphScore, 13.0)
	assert.Less(t, c.GraphScore, 18.0)
}

func TestEnhanceScoresFirstAvailableSubstituteOnly(t *testing.T) {
	g := graph.NewIngredientGraph(&graph.BaseData{
		Categories: map[graph.Category][]string{
			graph.CategoryDairy: {"milk", "almond milk", "soy milk", "oat milk"},
		},
		Substitutions: map[string][]graph.Substitute{
			"milk": {
				{Name: "almond milk", Weight: 0.8},
				{Name: "soy milk", Weight: 0.8},
				{Name: "oat milk", Weight: 0.7},
			},
		},
	})
	g.Build()
	e := NewGraphEnhancer(g, graph.NewResolver(g, 5))

	c := &Candidate{
		Recipe:      makeRecipe("m", "milk"),
		Ingredients: []string{"milk"},
		GreedyScore: 20,
	}
	e.Enhance([]*Candidate{c}, []string{"almond milk", "soy milk"})

	require.Equal(t, []string{"milk"}, c.MissingIngredients)
	// 不可用的替代品也要列出，但可用的替代加分只計一次
	assert.Equal(t, []string{"almond milk", "soy milk", "oat milk"}, c.SubstitutionSuggestions["milk"])
	assert.InDelta(t, 8.0, c.GraphScore, 1e-9)
}

func TestEnhanceNoMissing(t *testing.T) {
	g := enhancerGraph(t)
	e := NewGraphEnhancer(g, graph.NewResolver(g, 3))

	c := &Candidate{
		Recipe:      makeRecipe("y", "rice"),
		Ingredients: []string{"rice"},
		GreedyScore: 100,
	}
	e.Enhance([]*Candidate{c}, []string{"rice"})

	assert.Empty(t, c.MissingIngredients)
	assert.Empty(t, c.SubstitutionSuggestions)
	assert.Greater(t, c.GraphScore, 0.0)
	assert.InDelta(t, 100+c.GraphScore, c.TotalScore(), 1e-9)
}

func TestEnhanceUnknownIngredients(t *testing.T) {
	g := enhancerGraph(t)
	e := NewGraphEnhancer(g, graph.NewResolver(g, 3))

	// 圖中不存在的食材不產生分數也不報錯
	c := &Candidate{
		Recipe:      makeRecipe("z", "dragonfruit", "starfruit"),
		Ingredients: []string{"dragonfruit", "starfruit"},
		GreedyScore: 10,
	}
	e.Enhance([]*Candidate{c}, []string{"rice"})

	require.Equal(t, []string{"dragonfruit", "starfruit"}, c.MissingIngredients)
	assert.Empty(t, c.SubstitutionSuggestions)
	assert.Equal(t, 0.0, c.GraphScore)
}
