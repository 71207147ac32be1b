// Package recipe holds the recipe catalog: the Recipe model, search filters
// and the in-memory Store that derives difficulty and cuisine on mutation.
package recipe

import (
	"context"
	"errors"
	"time"
)

// Difficulty is derived from ingredients and instructions; users never set it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank orders difficulties Easy < Medium < Hard. Unknown values rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	return d.Rank() > 0
}

// Status is the user's relationship with a recipe.
type Status string

const (
	StatusFavorite   Status = "favorite"
	StatusToTry      Status = "to-try"
	StatusMadeBefore Status = "made-before"
	StatusNone       Status = "none"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusFavorite, StatusToTry, StatusMadeBefore, StatusNone:
		return true
	}
	return false
}

// Recipe is a catalog entry. Difficulty and Cuisine always reflect the
// current Ingredients, Instructions and Name.
type Recipe struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     int        `json:"prepTime"`
	CookTime     int        `json:"cookTime"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Cuisine      string     `json:"cuisine"`
	Status       Status     `json:"status"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Rating       *int       `json:"rating,omitempty"`
	Image        string     `json:"image,omitempty"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// Clone returns a deep copy so callers never share slices with the store.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = cloneStrings(r.Ingredients)
	out.Instructions = cloneStrings(r.Instructions)
	out.Tags = cloneStrings(r.Tags)
	if r.Rating != nil {
		v := *r.Rating
		out.Rating = &v
	}
	return out
}

// Draft is the user-supplied part of a new recipe. A zero Rating means unrated.
type Draft struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prepTime" validate:"gte=0"`
	CookTime     int      `json:"cookTime" validate:"gte=0"`
	Servings     int      `json:"servings" validate:"gte=1"`
	Status       Status   `json:"status" validate:"omitempty,oneof=favorite to-try made-before none"`
	Tags         []string `json:"tags"`
	Rating       int      `json:"rating" validate:"gte=0,lte=5"`
	Image        string   `json:"image" validate:"omitempty,url"`
}

// Patch is a partial update. Nil fields are left untouched; a Rating of 0
// clears the rating.
type Patch struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients  *[]string `json:"ingredients,omitempty"`
	Instructions *[]string `json:"instructions,omitempty"`
	PrepTime     *int      `json:"prepTime,omitempty" validate:"omitempty,gte=0"`
	CookTime     *int      `json:"cookTime,omitempty" validate:"omitempty,gte=0"`
	Servings     *int      `json:"servings,omitempty" validate:"omitempty,gte=1"`
	Status       *Status   `json:"status,omitempty" validate:"omitempty,oneof=favorite to-try made-before none"`
	Tags         *[]string `json:"tags,omitempty"`
	Rating       *int      `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Image        *string   `json:"image,omitempty" validate:"omitempty,url"`
}

// SearchFilters is a snapshot of the current catalog query. It is replaced
// wholesale, never edited field by field.
type SearchFilters struct {
	Query       string `json:"query" form:"query"`
	Cuisine     string `json:"cuisine" form:"cuisine"`
	MaxPrepTime int    `json:"maxPrepTime" form:"maxPrepTime" validate:"gte=0"`
	Difficulty  string `json:"difficulty" form:"difficulty"`
	Status      string `json:"status" form:"status"`
	Ingredient  string `json:"ingredient" form:"ingredient"`
}

// DefaultMaxPrepTime is the prep-time ceiling of a fresh filter set.
const DefaultMaxPrepTime = 180

// DefaultFilters returns empty filters with the default prep-time ceiling.
func DefaultFilters() SearchFilters {
	return SearchFilters{MaxPrepTime: DefaultMaxPrepTime}
}

// Classifier derives the computed recipe fields.
type Classifier interface {
	EstimateDifficulty(ingredients, instructions []string) Difficulty
	DetectCuisine(ingredients []string, name string) string
}

// Persister stores the whole collection. Load reports ok=false when there is
// no usable saved data; Save failures are the persister's to handle.
type Persister interface {
	Load(ctx context.Context) (recipes []Recipe, ok bool)
	Save(ctx context.Context, recipes []Recipe)
}

var (
	ErrNotFound = errors.New("recipe not found")
	ErrInvalid  = errors.New("invalid recipe")
)

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
