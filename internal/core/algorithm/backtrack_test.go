package algorithm

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flavorgraph/internal/pkg/common"
)

// comboScore 依選入順序重算一個組合的總分
func comboScore(combo []*Candidate, available map[string]struct{}) float64 {
	used := make(map[string]struct{})
	total := 0.0
	for _, c := range combo {
		newCount, overlap, availCount := 0, 0, 0
		for _, ing := range c.Ingredients {
			if _, ok := used[ing]; ok {
				overlap++
			} else {
				newCount++
			}
			if _, ok := available[ing]; ok {
				availCount++
			}
		}
		total += c.TotalScore() + 2*float64(newCount) + 3*float64(availCount) - float64(overlap)
		for _, ing := range c.Ingredients {
			used[ing] = struct{}{}
		}
	}
	return total
}

// bruteForceBest 窮舉所有大小不超過 maxRecipes 的組合，返回最高分
func bruteForceBest(candidates []*Candidate, available map[string]struct{}, maxRecipes int) float64 {
	sorted := make([]*Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore() > sorted[j].TotalScore()
	})

	best := math.Inf(-1)
	for mask := 1; mask < 1<<len(sorted); mask++ {
		var combo []*Candidate
		for i := range sorted {
			if mask&(1<<i) != 0 {
				combo = append(combo, sorted[i])
			}
		}
		if len(combo) > maxRecipes {
			continue
		}
		if score := comboScore(combo, available); score > best {
			best = score
		}
	}
	return best
}

func randomCandidates(r *rand.Rand, n int) []*Candidate {
	alphabet := []string{"rice", "onion", "chicken", "tomato", "basil", "egg", "milk", "flour"}
	out := make([]*Candidate, 0, n)
	for i := 0; i < n; i++ {
		count := 1 + r.Intn(4)
		seen := common.StringSet(nil)
		var ingredients []string
		for len(ingredients) < count {
			ing := alphabet[r.Intn(len(alphabet))]
			if _, dup := seen[ing]; dup {
				continue
			}
			seen[ing] = struct{}{}
			ingredients = append(ingredients, ing)
		}
		out = append(out, &Candidate{
			Recipe:      makeRecipe(fmt.Sprintf("r%02d", i), ingredients...),
			Ingredients: ingredients,
			GreedyScore: 20 + r.Float64()*80,
			GraphScore:  r.Float64() * 30,
		})
	}
	return out
}

func TestSelectMatchesExhaustiveSearch(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := NewCombinatorialSelector()
	available := []string{"rice", "onion", "tomato"}
	availableSet := common.StringSet(available)

	for trial := 0; trial < 20; trial++ {
		candidates := randomCandidates(r, 3+r.Intn(10))
		maxRecipes := 1 + r.Intn(4)

		selected, used := s.Select(candidates, available, maxRecipes)
		require.NotEmpty(t, selected, "trial %d", trial)
		assert.Equal(t, AlgorithmBacktracking, used)

		want := bruteForceBest(candidates, availableSet, maxRecipes)
		got := comboScore(selected, availableSet)
		assert.InDelta(t, want, got, 1e-9, "trial %d", trial)
	}
}

func TestSelectCap(t *testing.T) {
	s := NewCombinatorialSelector()
	candidates := randomCandidates(rand.New(rand.NewSource(7)), 8)

	for _, maxRecipes := range []int{1, 3, 8, 20} {
		selected, _ := s.Select(candidates, nil, maxRecipes)
		assert.LessOrEqual(t, len(selected), maxRecipes)
		assert.LessOrEqual(t, len(selected), len(candidates))
		assert.NotEmpty(t, selected)
	}
}

func TestSelectEmptyInput(t *testing.T) {
	s := NewCombinatorialSelector()

	selected, _ := s.Select(nil, []string{"rice"}, 3)
	assert.Empty(t, selected)

	selected, _ = s.Select(randomCandidates(rand.New(rand.NewSource(1)), 3), nil, 0)
	assert.Empty(t, selected)
}

func TestSelectDeterministic(t *testing.T) {
	candidates := randomCandidates(rand.New(rand.NewSource(99)), 10)
	s := NewCombinatorialSelector()

	first, _ := s.Select(candidates, []string{"rice", "egg"}, 3)
	for i := 0; i < 5; i++ {
		again, _ := s.Select(candidates, []string{"rice", "egg"}, 3)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Recipe.ID, again[j].Recipe.ID)
		}
	}
}
