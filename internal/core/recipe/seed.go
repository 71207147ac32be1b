package recipe

func intPtr(v int) *int { return &v }

// SeedDrafts returns the sample recipes used when there is no saved data.
func SeedDrafts() []Draft {
	return []Draft{
		{
			Name:        "Spaghetti Carbonara",
			Description: "Classic Italian pasta dish with eggs, cheese, and pancetta",
			Ingredients: []string{"400g spaghetti", "200g pancetta", "4 eggs", "100g parmesan cheese", "black pepper", "salt"},
			Instructions: []string{
				"Cook spaghetti according to package instructions",
				"Fry pancetta until crispy",
				"Beat eggs with parmesan and pepper",
				"Combine hot pasta with pancetta",
				"Add egg mixture and toss quickly",
			},
			PrepTime: 15,
			CookTime: 20,
			Servings: 4,
			Status:   StatusFavorite,
			Tags:     []string{"pasta", "quick", "dinner"},
			Rating:   5,
		},
		{
			Name:        "Chicken Tikka Masala",
			Description: "Creamy Indian curry with tender chicken pieces",
			Ingredients: []string{"500g chicken breast", "yogurt", "garam masala", "tomato sauce", "cream", "onion", "ginger", "garlic"},
			Instructions: []string{
				"Marinate chicken in yogurt and spices",
				"Grill chicken pieces",
				"Make curry sauce with tomatoes and cream",
				"Combine chicken with sauce",
				"Simmer until heated through",
			},
			PrepTime: 30,
			CookTime: 40,
			Servings: 4,
			Status:   StatusMadeBefore,
			Tags:     []string{"curry", "spicy", "dinner"},
			Rating:   4,
		},
	}
}
