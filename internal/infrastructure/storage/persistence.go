package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/pkg/common"
)

// DefaultKey is the key the recipe blob lives under.
const DefaultKey = "recipe-management-data"

// document is the persisted shape: {"recipes": [...]}.
type document struct {
	Recipes *[]recipe.Recipe `json:"recipes"`
}

// Persistence adapts a KV backend to recipe.Persister. Backend failures are
// logged and never returned.
type Persistence struct {
	kv  KV
	key string
}

var _ recipe.Persister = (*Persistence)(nil)

// NewPersistence stores the collection under key, or DefaultKey when empty.
func NewPersistence(kv KV, key string) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{kv: kv, key: key}
}

// Load reads the collection. Missing, unreadable or malformed data all
// report ok=false.
func (p *Persistence) Load(ctx context.Context) ([]recipe.Recipe, bool) {
	data, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			common.LogError("Failed to load recipes", zap.String("key", p.key), zap.Error(err))
		}
		return nil, false
	}

	var doc document
	if err := common.ParseJSONBytes(data, &doc); err != nil {
		common.LogWarn("Discarding malformed recipe data", zap.String("key", p.key), zap.Error(err))
		return nil, false
	}
	if doc.Recipes == nil {
		common.LogWarn("Discarding recipe data without a recipes field", zap.String("key", p.key))
		return nil, false
	}
	return *doc.Recipes, true
}

// Save writes the whole collection.
func (p *Persistence) Save(ctx context.Context, recipes []recipe.Recipe) {
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	data, err := json.Marshal(document{Recipes: &recipes})
	if err != nil {
		common.LogError("Failed to encode recipes", zap.Error(err))
		return
	}
	if err := p.kv.Set(ctx, p.key, data); err != nil {
		common.LogError("Failed to save recipes", zap.String("key", p.key), zap.Error(err))
		return
	}
	common.LogDebug("Recipes saved", zap.String("key", p.key), zap.Int("count", len(recipes)))
}
