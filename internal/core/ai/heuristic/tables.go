// Package heuristic holds the keyword rules used to classify recipes and
// assist with cooking: difficulty estimation, cuisine detection, ingredient
// substitutions, shopping list consolidation and ingredient-based
// suggestions. All functions are pure; the keyword tables are injected.
package heuristic

// CuisineKeywords is one row of the cuisine table.
type CuisineKeywords struct {
	Cuisine  string
	Keywords []string
}

// Substitution maps a base ingredient to its alternatives.
type Substitution struct {
	Base         string   `json:"base"`
	Alternatives []string `json:"alternatives"`
}

// Tables is the immutable rule set an Advisor works from. Slices are ordered;
// order decides ties and first-match lookups.
type Tables struct {
	ComplexIngredients []string
	ComplexTechniques  []string
	LongRecipeSteps    int
	LongRecipePenalty  int
	MediumScore        int
	HardScore          int
	Cuisines           []CuisineKeywords
	FallbackCuisine    string
	Substitutions      []Substitution
	MaxSuggestions     int
}

// DefaultTables returns the built-in keyword tables.
func DefaultTables() Tables {
	return Tables{
		ComplexIngredients: []string{"wine", "sauce", "marinade", "roux"},
		ComplexTechniques:  []string{"fold", "whisk", "temper", "reduce"},
		LongRecipeSteps:    8,
		LongRecipePenalty:  2,
		MediumScore:        2,
		HardScore:          4,
		Cuisines: []CuisineKeywords{
			{"Italian", []string{"pasta", "parmesan", "basil", "tomato", "mozzarella", "oregano", "pizza", "risotto"}},
			{"Mexican", []string{"cumin", "cilantro", "lime", "jalapeño", "avocado", "chili", "salsa", "tortilla"}},
			{"Asian", []string{"soy sauce", "ginger", "garlic", "sesame", "rice", "sriracha", "miso", "wasabi"}},
			{"Indian", []string{"curry", "turmeric", "garam masala", "cardamom", "cumin", "coriander", "naan"}},
			{"French", []string{"butter", "cream", "wine", "herbs", "brie", "croissant", "baguette"}},
			{"Mediterranean", []string{"olive oil", "feta", "olives", "lemon", "herbs", "hummus", "pita"}},
		},
		FallbackCuisine: "International",
		Substitutions: []Substitution{
			{"butter", []string{"coconut oil", "olive oil", "avocado oil", "applesauce"}},
			{"sugar", []string{"honey", "maple syrup", "stevia", "agave nectar"}},
			{"flour", []string{"almond flour", "coconut flour", "oat flour", "rice flour"}},
			{"milk", []string{"almond milk", "oat milk", "coconut milk", "soy milk"}},
			{"eggs", []string{"flax eggs", "chia eggs", "applesauce", "banana"}},
			{"cream", []string{"coconut cream", "cashew cream", "greek yogurt"}},
		},
		MaxSuggestions: 5,
	}
}
