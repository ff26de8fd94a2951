package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flavorgraph/internal/core/graph"
	"flavorgraph/internal/core/recipe"
)

func gapGraph(t *testing.T) *graph.IngredientGraph {
	t.Helper()
	g := graph.NewIngredientGraph(&graph.BaseData{
		Categories: map[graph.Category][]string{
			graph.CategoryGrain:   {"flour"},
			graph.CategoryProtein: {"eggs"},
			graph.CategoryDairy:   {"milk", "almond milk"},
		},
		Substitutions: map[string][]graph.Substitute{
			"milk": {{Name: "almond milk", Weight: 0.8}},
		},
	})
	g.Build()
	return g
}

func newGapAnalyzer(t *testing.T) *GapAnalyzer {
	g := gapGraph(t)
	return NewGapAnalyzer(g, graph.NewResolver(g, 3))
}

func TestAnalyzeSubstituteUnavailable(t *testing.T) {
	a := newGapAnalyzer(t)
	target := recipe.Recipe{ID: "42", Name: "pancakes", Ingredients: []string{"flour", "eggs", "milk"}}

	report := a.Analyze([]string{"flour", "eggs"}, &target)

	assert.Equal(t, "42", report.RecipeID)
	assert.Equal(t, []string{"milk"}, report.MissingIngredients)
	// almond milk 不在可用食材中，不產生替代建議
	assert.Empty(t, report.Recommendations)
	assert.InDelta(t, 2.0/3.0, report.FeasibilityScore, 1e-9)
}

func TestAnalyzeSubstituteAccepted(t *testing.T) {
	a := newGapAnalyzer(t)
	target := recipe.Recipe{ID: "42", Name: "pancakes", Ingredients: []string{"flour", "eggs", "milk"}}

	report := a.Analyze([]string{"flour", "eggs", "almond milk"}, &target)

	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	assert.Equal(t, "milk", rec.Original)
	assert.Equal(t, "almond milk", rec.Substitute)
	assert.InDelta(t, 0.8, rec.SimilarityScore, 1e-9)
	assert.True(t, rec.CategoryMatch)
	assert.NotEmpty(t, rec.Reason)
	assert.InDelta(t, 1.0, report.FeasibilityScore, 1e-9)
}

func TestAnalyzeDegenerateRecipe(t *testing.T) {
	a := newGapAnalyzer(t)
	target := recipe.Recipe{ID: "0", Name: "nothing"}

	report := a.Analyze([]string{"flour"}, &target)
	assert.Equal(t, 0.0, report.FeasibilityScore)
	assert.Empty(t, report.MissingIngredients)
	assert.Empty(t, report.Recommendations)
}

func TestAnalyzeFeasibilityBounds(t *testing.T) {
	a := newGapAnalyzer(t)
	targets := []recipe.Recipe{
		{ID: "1", Ingredients: []string{"flour"}},
		{ID: "2", Ingredients: []string{"flour", "eggs", "milk", "almond milk"}},
		{ID: "3", Ingredients: []string{"unknown-a", "unknown-b"}},
	}
	availables := [][]string{
		nil,
		{"flour"},
		{"flour", "eggs", "milk", "almond milk"},
	}

	for _, target := range targets {
		for _, available := range availables {
			report := a.Analyze(available, &target)
			assert.GreaterOrEqual(t, report.FeasibilityScore, 0.0)
			assert.LessOrEqual(t, report.FeasibilityScore, 1.0)
		}
	}
}
