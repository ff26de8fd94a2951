package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flavorgraph/internal/infrastructure/config"
	"flavorgraph/internal/pkg/common"
)

type stubProvider struct {
	name    string
	recipes []Recipe
	err     error
	calls   int
}

func (s *stubProvider) SearchRecipes(ctx context.Context, q PoolQuery) ([]Recipe, error) {
	s.calls++
	return s.recipes, s.err
}

func (s *stubProvider) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	s.calls++
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return &s.recipes[i], nil
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, common.ErrRecipeNotFound
}

func (s *stubProvider) Name() string { return s.name }

func disabledCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(&config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	return cache
}

func TestChainFirstNonEmptyWins(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	failing := &stubProvider{name: "failing", err: errors.New("boom")}
	hit := &stubProvider{name: "hit", recipes: []Recipe{{ID: "1", Name: "Fried Rice"}}}
	last := &stubProvider{name: "last", recipes: []Recipe{{ID: "2", Name: "Stew"}}}

	s := NewService(disabledCache(t), empty, failing, hit, last)
	recipes, err := s.SearchRecipes(context.Background(), PoolQuery{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "1", recipes[0].ID)

	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, hit.calls)
	assert.Equal(t, 0, last.calls, "第一個有結果的來源之後不再查詢")
}

func TestChainAllEmpty(t *testing.T) {
	s := NewService(disabledCache(t), &stubProvider{name: "a"}, &stubProvider{name: "b"})

	recipes, err := s.SearchRecipes(context.Background(), PoolQuery{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestChainGetByID(t *testing.T) {
	first := &stubProvider{name: "first"}
	second := &stubProvider{name: "second", recipes: []Recipe{{ID: "7", Name: "Soup"}}}
	s := NewService(disabledCache(t), first, second)

	rec, err := s.GetRecipeByID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Soup", rec.Name)

	_, err = s.GetRecipeByID(context.Background(), "404")
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestCacheDisabledIsNoop(t *testing.T) {
	cache := disabledCache(t)
	ctx := context.Background()
	query := PoolQuery{Ingredients: []string{"rice"}}

	_, err := cache.Get(ctx, query)
	assert.ErrorIs(t, err, common.ErrCacheDisabled)
	assert.NoError(t, cache.Set(ctx, query, []Recipe{{ID: "1"}}))
}

func TestNormalizedIngredients(t *testing.T) {
	rec := Recipe{Ingredients: []string{" Rice ", "rice", "Green Onions"}}
	assert.Equal(t, []string{"rice", "green onions"}, rec.NormalizedIngredients())
}
