package heuristic

import (
	"sort"
	"strings"

	"recipe-catalog/internal/core/recipe"
)

// Advisor applies a fixed set of keyword tables.
type Advisor struct {
	tables Tables
}

var _ recipe.Classifier = (*Advisor)(nil)

// New returns an Advisor over a private copy of t.
func New(t Tables) *Advisor {
	return &Advisor{tables: t.clone()}
}

// Default returns an Advisor over DefaultTables.
func Default() *Advisor {
	return New(DefaultTables())
}

func (t Tables) clone() Tables {
	out := t
	out.ComplexIngredients = append([]string(nil), t.ComplexIngredients...)
	out.ComplexTechniques = append([]string(nil), t.ComplexTechniques...)
	out.Cuisines = make([]CuisineKeywords, len(t.Cuisines))
	for i, c := range t.Cuisines {
		out.Cuisines[i] = CuisineKeywords{Cuisine: c.Cuisine, Keywords: append([]string(nil), c.Keywords...)}
	}
	out.Substitutions = make([]Substitution, len(t.Substitutions))
	for i, s := range t.Substitutions {
		out.Substitutions[i] = Substitution{Base: s.Base, Alternatives: append([]string(nil), s.Alternatives...)}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func countContaining(items, keywords []string) int {
	n := 0
	for _, it := range items {
		if containsAny(it, keywords) {
			n++
		}
	}
	return n
}

// EstimateDifficulty scores complex ingredients, complex techniques and long
// instruction lists. Every input maps to a level.
func (a *Advisor) EstimateDifficulty(ingredients, instructions []string) recipe.Difficulty {
	score := countContaining(ingredients, a.tables.ComplexIngredients) +
		countContaining(instructions, a.tables.ComplexTechniques)
	if len(instructions) > a.tables.LongRecipeSteps {
		score += a.tables.LongRecipePenalty
	}
	switch {
	case score >= a.tables.HardScore:
		return recipe.DifficultyHard
	case score >= a.tables.MediumScore:
		return recipe.DifficultyMedium
	default:
		return recipe.DifficultyEasy
	}
}

// DetectCuisine picks the cuisine with the most keyword hits in the
// ingredients and name. Ties keep the earlier cuisine in table order; no hits
// yields the fallback label.
func (a *Advisor) DetectCuisine(ingredients []string, name string) string {
	text := strings.ToLower(strings.Join(append(append([]string(nil), ingredients...), name), " "))

	best, bestScore := a.tables.FallbackCuisine, 0
	for _, c := range a.tables.Cuisines {
		score := 0
		for _, k := range c.Keywords {
			if strings.Contains(text, strings.ToLower(k)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c.Cuisine, score
		}
	}
	return best
}

// SuggestSubstitutions returns the alternatives of the first base ingredient
// contained in ingredient, or an empty list.
func (a *Advisor) SuggestSubstitutions(ingredient string) []string {
	lower := strings.ToLower(ingredient)
	for _, s := range a.tables.Substitutions {
		if strings.Contains(lower, strings.ToLower(s.Base)) {
			return append([]string{}, s.Alternatives...)
		}
	}
	return []string{}
}

// CommonSubstitutions lists the whole substitution table.
func (a *Advisor) CommonSubstitutions() []Substitution {
	return a.tables.clone().Substitutions
}

// GenerateShoppingList flattens the ingredients of recipes and drops entries
// that overlap an already accepted one by case-insensitive substring in
// either direction. The first spelling wins; the result is sorted.
func (a *Advisor) GenerateShoppingList(recipes []recipe.Recipe) []string {
	accepted := []string{}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			normalized := strings.ToLower(strings.TrimSpace(ing))
			dup := false
			for _, item := range accepted {
				lower := strings.ToLower(item)
				if strings.Contains(lower, normalized) || strings.Contains(normalized, lower) {
					dup = true
					break
				}
			}
			if !dup {
				accepted = append(accepted, ing)
			}
		}
	}
	sort.Strings(accepted)
	return accepted
}

// PlannedShoppingList builds the shopping list for recipes marked favorite
// or to-try.
func (a *Advisor) PlannedShoppingList(recipes []recipe.Recipe) []string {
	planned := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Status == recipe.StatusFavorite || r.Status == recipe.StatusToTry {
			planned = append(planned, r)
		}
	}
	return a.GenerateShoppingList(planned)
}

// SuggestRecipesByIngredients ranks recipes by how many of their ingredients
// overlap an available one. Recipes with no overlap are dropped, equal
// scores keep collection order, and at most MaxSuggestions are returned.
func (a *Advisor) SuggestRecipesByIngredients(available []string, recipes []recipe.Recipe) []recipe.Recipe {
	lowered := make([]string, len(available))
	for i, s := range available {
		lowered[i] = strings.ToLower(s)
	}

	type scored struct {
		recipe recipe.Recipe
		score  int
	}
	matches := make([]scored, 0, len(recipes))
	for _, r := range recipes {
		score := 0
		for _, ing := range r.Ingredients {
			ing = strings.ToLower(ing)
			for _, av := range lowered {
				if strings.Contains(ing, av) || strings.Contains(av, ing) {
					score++
					break
				}
			}
		}
		if score > 0 {
			matches = append(matches, scored{recipe: r, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > a.tables.MaxSuggestions {
		matches = matches[:a.tables.MaxSuggestions]
	}

	out := make([]recipe.Recipe, len(matches))
	for i, m := range matches {
		out[i] = m.recipe
	}
	return out
}

// ParseIngredientList splits a comma separated list, trimming entries and
// dropping blanks.
func ParseIngredientList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
