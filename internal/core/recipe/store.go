package recipe

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipe-catalog/internal/pkg/common"
)

// Store is the in-memory recipe collection plus the current search filters.
// Every mutation is persisted as a whole-collection snapshot while the write
// lock is held, so saves happen in mutation order.
type Store struct {
	mu         sync.RWMutex
	recipes    []Recipe
	filters    SearchFilters
	classifier Classifier
	persister  Persister
	now        func() time.Time
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithFilters sets the initial filters.
func WithFilters(f SearchFilters) Option {
	return func(s *Store) { s.filters = f }
}

// NewStore creates an empty store. A nil persister keeps everything in memory.
func NewStore(classifier Classifier, persister Persister, opts ...Option) *Store {
	s := &Store{
		filters:    DefaultFilters(),
		classifier: classifier,
		persister:  persister,
		now:        time.Now,
		newID:      common.GenerateUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the persisted one. When nothing usable is
// persisted the sample recipes are created and saved instead. It reports
// whether seeding happened.
func (s *Store) Load(ctx context.Context) (seeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loaded []Recipe
	ok := false
	if s.persister != nil {
		loaded, ok = s.persister.Load(ctx)
	}
	if ok {
		s.recipes = s.sanitize(loaded)
		common.LogInfo("Recipes loaded", zap.Int("count", len(s.recipes)))
		return false
	}

	s.recipes = s.recipes[:0]
	for _, d := range SeedDrafts() {
		s.recipes = append(s.recipes, s.build(d))
	}
	s.persistLocked(ctx)
	common.LogInfo("Seeded sample recipes", zap.Int("count", len(s.recipes)))
	return true
}

// sanitize restores the recipe invariants on data read back from storage.
func (s *Store) sanitize(in []Recipe) []Recipe {
	out := make([]Recipe, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		if r.ID == "" {
			common.LogWarn("Dropping stored recipe without id", zap.String("name", r.Name))
			continue
		}
		if _, dup := seen[r.ID]; dup {
			common.LogWarn("Dropping duplicate stored recipe", zap.String("id", r.ID))
			continue
		}
		seen[r.ID] = struct{}{}

		r = r.Clone()
		if r.UpdatedAt.Before(r.CreatedAt) {
			r.UpdatedAt = r.CreatedAt
		}
		if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
			r.Rating = nil
		}
		if !r.Status.Valid() {
			r.Status = StatusNone
		}
		s.derive(&r)
		out = append(out, r)
	}
	return out
}

// Add validates d, derives difficulty and cuisine, and stores the new recipe.
func (s *Store) Add(ctx context.Context, d Draft) (Recipe, error) {
	if err := d.Validate(); err != nil {
		return Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.build(d)
	s.recipes = append(s.recipes, r)
	s.persistLocked(ctx)

	common.LogInfo("Recipe added",
		zap.String("id", r.ID),
		zap.String("name", r.Name),
		zap.String("difficulty", string(r.Difficulty)),
		zap.String("cuisine", r.Cuisine))
	return r.Clone(), nil
}

func (s *Store) build(d Draft) Recipe {
	now := s.now()
	r := Recipe{
		ID:           s.newID(),
		Name:         d.Name,
		Description:  d.Description,
		Ingredients:  compact(d.Ingredients),
		Instructions: compact(d.Instructions),
		PrepTime:     d.PrepTime,
		CookTime:     d.CookTime,
		Servings:     d.Servings,
		Status:       d.Status,
		Tags:         compact(d.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
		Image:        d.Image,
	}
	if r.Status == "" {
		r.Status = StatusNone
	}
	if d.Rating > 0 {
		r.Rating = intPtr(d.Rating)
	}
	s.derive(&r)
	return r
}

func (s *Store) derive(r *Recipe) {
	r.Difficulty = s.classifier.EstimateDifficulty(r.Ingredients, r.Instructions)
	r.Cuisine = s.classifier.DetectCuisine(r.Ingredients, r.Name)
}

// Update merges p into the recipe with the given id. Difficulty is
// recomputed only when ingredients or instructions are supplied, cuisine
// only when ingredients or name are supplied.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Recipe, error) {
	if err := p.Validate(); err != nil {
		return Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r := &s.recipes[idx]

	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Ingredients != nil {
		r.Ingredients = compact(*p.Ingredients)
	}
	if p.Instructions != nil {
		r.Instructions = compact(*p.Instructions)
	}
	if p.PrepTime != nil {
		r.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		r.CookTime = *p.CookTime
	}
	if p.Servings != nil {
		r.Servings = *p.Servings
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Tags != nil {
		r.Tags = compact(*p.Tags)
	}
	if p.Rating != nil {
		if *p.Rating == 0 {
			r.Rating = nil
		} else {
			r.Rating = intPtr(*p.Rating)
		}
	}
	if p.Image != nil {
		r.Image = *p.Image
	}

	if p.Ingredients != nil || p.Instructions != nil {
		r.Difficulty = s.classifier.EstimateDifficulty(r.Ingredients, r.Instructions)
	}
	if p.Ingredients != nil || p.Name != nil {
		r.Cuisine = s.classifier.DetectCuisine(r.Ingredients, r.Name)
	}

	r.UpdatedAt = s.now()
	if r.UpdatedAt.Before(r.CreatedAt) {
		r.UpdatedAt = r.CreatedAt
	}

	out := r.Clone()
	s.persistLocked(ctx)
	common.LogInfo("Recipe updated", zap.String("id", id))
	return out, nil
}

// Delete removes the recipe with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.recipes = append(s.recipes[:idx], s.recipes[idx+1:]...)
	s.persistLocked(ctx)
	common.LogInfo("Recipe deleted", zap.String("id", id))
	return nil
}

// Get returns a copy of the recipe with the given id.
func (s *Store) Get(id string) (Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.recipes[idx].Clone(), nil
}

// List returns every recipe in insertion order.
func (s *Store) List() []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len is the number of stored recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Filters returns the current filter snapshot.
func (s *Store) Filters() SearchFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filters wholesale.
func (s *Store) SetFilters(f SearchFilters) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
	return nil
}

// Filtered applies the current filters to the collection.
func (s *Store) Filtered() []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Apply(s.snapshotLocked())
}

// Cuisines lists the distinct cuisine labels in the collection, sorted.
func (s *Store) Cuisines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range s.recipes {
		if r.Cuisine == "" {
			continue
		}
		if _, ok := seen[r.Cuisine]; ok {
			continue
		}
		seen[r.Cuisine] = struct{}{}
		out = append(out, r.Cuisine)
	}
	sort.Strings(out)
	return out
}

func (s *Store) indexLocked(id string) int {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Recipe {
	out := make([]Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	s.persister.Save(ctx, s.snapshotLocked())
}
