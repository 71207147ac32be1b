package recipe

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier labels recipes by simple markers and counts its calls.
type stubClassifier struct {
	difficultyCalls int
	cuisineCalls    int
}

func (c *stubClassifier) EstimateDifficulty(ingredients, instructions []string) Difficulty {
	c.difficultyCalls++
	if len(instructions) > 3 {
		return DifficultyHard
	}
	return DifficultyEasy
}

func (c *stubClassifier) DetectCuisine(ingredients []string, name string) string {
	c.cuisineCalls++
	text := strings.ToLower(strings.Join(ingredients, " ") + " " + name)
	if strings.Contains(text, "pasta") {
		return "Italian"
	}
	return "International"
}

type memPersister struct {
	mu     sync.Mutex
	stored []Recipe
	ok     bool
	saves  int
}

func (p *memPersister) Load(context.Context) ([]Recipe, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stored, p.ok
}

func (p *memPersister) Save(_ context.Context, recipes []Recipe) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stored = recipes
	p.ok = true
	p.saves++
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, *stubClassifier, *memPersister, *fakeClock) {
	t.Helper()
	cls := &stubClassifier{}
	p := &memPersister{}
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	n := 0
	s := NewStore(cls, p,
		WithClock(clock.now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}))
	return s, cls, p, clock
}

func pastaDraft() Draft {
	return Draft{
		Name:         "Weeknight Pasta",
		Description:  "Quick tomato pasta",
		Ingredients:  []string{"pasta", " ", "tomato"},
		Instructions: []string{"Boil", "", "Toss"},
		PrepTime:     10,
		CookTime:     15,
		Servings:     2,
		Tags:         []string{"quick", "  "},
		Rating:       4,
	}
}

func TestStore_LoadSeedsWhenNothingSaved(t *testing.T) {
	s, _, p, _ := newTestStore(t)

	seeded := s.Load(context.Background())

	assert.True(t, seeded)
	recipes := s.List()
	require.Len(t, recipes, 2)
	assert.Equal(t, "Spaghetti Carbonara", recipes[0].Name)
	assert.Equal(t, "Chicken Tikka Masala", recipes[1].Name)
	assert.Equal(t, 1, p.saves)
	assert.Len(t, p.stored, 2)
	for _, r := range recipes {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Difficulty)
		assert.NotEmpty(t, r.Cuisine)
		require.NotNil(t, r.Rating)
	}
}

func TestStore_LoadUsesSavedData(t *testing.T) {
	s, _, p, _ := newTestStore(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bad := 9
	p.stored = []Recipe{
		{ID: "a", Name: "Pasta bake", Ingredients: []string{"pasta"}, CreatedAt: created, UpdatedAt: created.Add(-time.Hour), Rating: &bad},
		{ID: "a", Name: "Duplicate"},
		{ID: "", Name: "No id"},
		{ID: "b", Name: "Soup", Status: "weird", CreatedAt: created, UpdatedAt: created},
	}
	p.ok = true

	seeded := s.Load(context.Background())

	assert.False(t, seeded)
	recipes := s.List()
	require.Len(t, recipes, 2)
	assert.Equal(t, created, recipes[0].UpdatedAt)
	assert.Nil(t, recipes[0].Rating)
	assert.Equal(t, "Italian", recipes[0].Cuisine)
	assert.Equal(t, StatusNone, recipes[1].Status)
	assert.Equal(t, 0, p.saves)
}

func TestStore_Add(t *testing.T) {
	s, _, p, clock := newTestStore(t)

	r, err := s.Add(context.Background(), pastaDraft())

	require.NoError(t, err)
	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, []string{"pasta", "tomato"}, r.Ingredients)
	assert.Equal(t, []string{"Boil", "Toss"}, r.Instructions)
	assert.Equal(t, []string{"quick"}, r.Tags)
	assert.Equal(t, DifficultyEasy, r.Difficulty)
	assert.Equal(t, "Italian", r.Cuisine)
	assert.Equal(t, StatusNone, r.Status)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4, *r.Rating)
	assert.Equal(t, clock.t, r.CreatedAt)
	assert.Equal(t, clock.t, r.UpdatedAt)
	assert.Equal(t, 1, p.saves)
	assert.Equal(t, 25, r.TotalTime())
}

func TestStore_AddRejectsInvalidDrafts(t *testing.T) {
	tests := []struct {
		name  string
		draft func(d *Draft)
	}{
		{"blank name", func(d *Draft) { d.Name = "   " }},
		{"negative prep", func(d *Draft) { d.PrepTime = -1 }},
		{"zero servings", func(d *Draft) { d.Servings = 0 }},
		{"rating too high", func(d *Draft) { d.Rating = 6 }},
		{"unknown status", func(d *Draft) { d.Status = "later" }},
		{"bad image", func(d *Draft) { d.Image = "not a url" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, p, _ := newTestStore(t)
			d := pastaDraft()
			tt.draft(&d)

			_, err := s.Add(context.Background(), d)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 0, p.saves)
		})
	}
}

func TestStore_UpdateRederivesOnlyWhenRelevant(t *testing.T) {
	s, cls, _, _ := newTestStore(t)
	r, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)
	cls.difficultyCalls, cls.cuisineCalls = 0, 0

	desc := "new description"
	_, err = s.Update(context.Background(), r.ID, Patch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 0, cls.difficultyCalls)
	assert.Equal(t, 0, cls.cuisineCalls)

	steps := []string{"a", "b", "c", "d"}
	updated, err := s.Update(context.Background(), r.ID, Patch{Instructions: &steps})
	require.NoError(t, err)
	assert.Equal(t, 1, cls.difficultyCalls)
	assert.Equal(t, 0, cls.cuisineCalls)
	assert.Equal(t, DifficultyHard, updated.Difficulty)
	assert.Equal(t, "Italian", updated.Cuisine)

	name := "Soup"
	ingredients := []string{"water", "leek"}
	updated, err = s.Update(context.Background(), r.ID, Patch{Name: &name, Ingredients: &ingredients})
	require.NoError(t, err)
	assert.Equal(t, 2, cls.difficultyCalls)
	assert.Equal(t, 1, cls.cuisineCalls)
	assert.Equal(t, "International", updated.Cuisine)
}

func TestStore_UpdateFields(t *testing.T) {
	s, _, p, clock := newTestStore(t)
	r, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)
	clock.advance(time.Hour)

	status := StatusFavorite
	zero := 0
	tags := []string{"dinner", ""}
	updated, err := s.Update(context.Background(), r.ID, Patch{Status: &status, Rating: &zero, Tags: &tags})

	require.NoError(t, err)
	assert.Equal(t, StatusFavorite, updated.Status)
	assert.Nil(t, updated.Rating)
	assert.Equal(t, []string{"dinner"}, updated.Tags)
	assert.Equal(t, r.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock.t, updated.UpdatedAt)
	assert.Equal(t, 2, p.saves)
}

func TestStore_UpdateNeverMovesUpdatedAtBeforeCreatedAt(t *testing.T) {
	s, _, _, clock := newTestStore(t)
	r, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)
	clock.advance(-24 * time.Hour)

	desc := "clock went backwards"
	updated, err := s.Update(context.Background(), r.ID, Patch{Description: &desc})

	require.NoError(t, err)
	assert.Equal(t, updated.CreatedAt, updated.UpdatedAt)
}

func TestStore_UpdateErrors(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	r, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)

	desc := "x"
	_, err = s.Update(context.Background(), "missing", Patch{Description: &desc})
	assert.ErrorIs(t, err, ErrNotFound)

	blank := " "
	_, err = s.Update(context.Background(), r.ID, Patch{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalid)

	six := 6
	_, err = s.Update(context.Background(), r.ID, Patch{Rating: &six})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStore_DeleteAndGet(t *testing.T) {
	s, _, p, _ := newTestStore(t)
	first, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)
	second, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)

	got, err := s.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)

	require.NoError(t, s.Delete(context.Background(), first.ID))
	_, err = s.Get(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), first.ID), ErrNotFound)

	recipes := s.List()
	require.Len(t, recipes, 1)
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Len(t, p.stored, 1)
}

func TestStore_ReturnedRecipesAreCopies(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	r, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)

	r.Ingredients[0] = "changed"
	list := s.List()
	list[0].Tags[0] = "changed"

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "pasta", got.Ingredients[0])
	assert.Equal(t, "quick", got.Tags[0])
}

func TestStore_FiltersAndCuisines(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	assert.Equal(t, DefaultFilters(), s.Filters())

	_, err := s.Add(context.Background(), pastaDraft())
	require.NoError(t, err)
	soup := pastaDraft()
	soup.Name = "Leek soup"
	soup.Description = "Warming"
	soup.Ingredients = []string{"leek", "stock"}
	soup.PrepTime = 200
	_, err = s.Add(context.Background(), soup)
	require.NoError(t, err)

	assert.Equal(t, []string{"International", "Italian"}, s.Cuisines())
	assert.Len(t, s.Filtered(), 1)

	require.NoError(t, s.SetFilters(SearchFilters{Ingredient: "LEEK"}))
	filtered := s.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Leek soup", filtered[0].Name)

	err = s.SetFilters(SearchFilters{Difficulty: "Impossible"})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "LEEK", s.Filters().Ingredient)
}

func TestStore_WithFilters(t *testing.T) {
	s := NewStore(&stubClassifier{}, nil, WithFilters(SearchFilters{MaxPrepTime: 30}))

	_, err := s.Add(context.Background(), pastaDraft())

	require.NoError(t, err)
	assert.Equal(t, 30, s.Filters().MaxPrepTime)
	assert.Len(t, s.Filtered(), 1)
}
