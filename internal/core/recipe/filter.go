package recipe

import "strings"

// Matches reports whether r passes every active filter. Empty string filters
// are inactive; a MaxPrepTime of zero means no ceiling.
func (f SearchFilters) Matches(r Recipe) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) {
			return false
		}
	}
	if f.Cuisine != "" && r.Cuisine != f.Cuisine {
		return false
	}
	if f.MaxPrepTime > 0 && r.PrepTime > f.MaxPrepTime {
		return false
	}
	if f.Difficulty != "" && string(r.Difficulty) != f.Difficulty {
		return false
	}
	if f.Status != "" && string(r.Status) != f.Status {
		return false
	}
	if f.Ingredient != "" {
		want := strings.ToLower(f.Ingredient)
		found := false
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the recipes that match f, preserving order.
func (f SearchFilters) Apply(recipes []Recipe) []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
