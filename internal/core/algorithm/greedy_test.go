package algorithm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flavorgraph/internal/core/recipe"
	"flavorgraph/internal/pkg/common"
)

func makeRecipe(id string, ingredients ...string) recipe.Recipe {
	return recipe.Recipe{ID: id, Name: "recipe-" + id, Ingredients: ingredients}
}

func TestGreedyZeroMissingBeatsPartialMatch(t *testing.T) {
	f := NewCandidateFilter(50)
	available := []string{"rice", "onion"}

	// A 匹配 2 個食材但缺 1 個，B 只用 1 個食材且完全匹配
	a := makeRecipe("a", "rice", "onion", "chicken")
	b := makeRecipe("b", "rice")

	candidates := f.Filter([]recipe.Recipe{a, b}, available, nil, "")
	require.Len(t, candidates, 2)
	assert.Equal(t, "b", candidates[0].Recipe.ID)
	assert.Greater(t, candidates[0].GreedyScore, candidates[1].GreedyScore)
}

func TestGreedyMonotonicity(t *testing.T) {
	f := NewCandidateFilter(50)

	// 缺少數固定時，匹配比例越高分數不降
	available := common.StringSet([]string{"rice", "onion", "egg"})
	low := f.Score([]string{"rice", "chicken"}, available, nil, "", nil, "")
	high := f.Score([]string{"rice", "onion", "chicken"}, available, nil, "", nil, "")
	assert.GreaterOrEqual(t, high, low)
}

func TestGreedyBonuses(t *testing.T) {
	f := NewCandidateFilter(50)
	available := common.StringSet([]string{"rice"})

	base := f.Score([]string{"rice"}, available, nil, "", nil, "")
	withDiet := f.Score([]string{"rice"}, available, []string{"Vegetarian"}, "", []string{"vegetarian"}, "")
	withCuisine := f.Score([]string{"rice"}, available, nil, "Thai", nil, "thai")

	assert.InDelta(t, base+dietaryBonus, withDiet, 1e-9)
	assert.InDelta(t, base+cuisineBonus, withCuisine, 1e-9)
}

func TestGreedyDropsNonPositiveAndEmpty(t *testing.T) {
	f := NewCandidateFilter(50)

	candidates := f.Filter([]recipe.Recipe{
		makeRecipe("good", "rice"),
		makeRecipe("bad", "chicken", "beef", "pork", "lamb", "fish",
			"milk", "cheese", "butter", "flour", "sugar", "salt"),
		makeRecipe("empty"),
	}, []string{"rice"}, nil, "")

	require.Len(t, candidates, 1)
	assert.Equal(t, "good", candidates[0].Recipe.ID)
}

func TestGreedyCandidateCeiling(t *testing.T) {
	f := NewCandidateFilter(5)

	var pool []recipe.Recipe
	for i := 0; i < 20; i++ {
		pool = append(pool, makeRecipe(fmt.Sprintf("r%02d", i), "rice"))
	}
	candidates := f.Filter(pool, []string{"rice"}, nil, "")
	assert.Len(t, candidates, 5)
}
