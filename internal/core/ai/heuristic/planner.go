package heuristic

import "recipe-catalog/internal/core/recipe"

// Weekdays in plan order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// PlanYourOwn labels a day with no recipe assigned.
const PlanYourOwn = "Plan your own meal"

// MealPlanDay is one entry of a weekly plan. RecipeID is empty when no recipe
// was assigned.
type MealPlanDay struct {
	Day        string `json:"day"`
	RecipeID   string `json:"recipeId,omitempty"`
	RecipeName string `json:"recipeName"`
}

// RecipeLabel pairs a recipe with one freshly computed label.
type RecipeLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// WeeklyMealPlan cycles through the first seven Easy recipes, in collection
// order, over the days of the week.
func WeeklyMealPlan(recipes []recipe.Recipe) []MealPlanDay {
	easy := make([]recipe.Recipe, 0, len(Weekdays))
	for _, r := range recipes {
		if r.Difficulty != recipe.DifficultyEasy {
			continue
		}
		easy = append(easy, r)
		if len(easy) == len(Weekdays) {
			break
		}
	}

	plan := make([]MealPlanDay, len(Weekdays))
	for i, day := range Weekdays {
		plan[i] = MealPlanDay{Day: day, RecipeName: PlanYourOwn}
		if len(easy) > 0 {
			r := easy[i%len(easy)]
			plan[i].RecipeID = r.ID
			plan[i].RecipeName = r.Name
		}
	}
	return plan
}

// AnalyzeDifficulty estimates the difficulty of every recipe from its
// current ingredients and instructions.
func (a *Advisor) AnalyzeDifficulty(recipes []recipe.Recipe) []RecipeLabel {
	out := make([]RecipeLabel, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeLabel{ID: r.ID, Name: r.Name, Label: string(a.EstimateDifficulty(r.Ingredients, r.Instructions))}
	}
	return out
}

// AnalyzeCuisine detects the cuisine of every recipe.
func (a *Advisor) AnalyzeCuisine(recipes []recipe.Recipe) []RecipeLabel {
	out := make([]RecipeLabel, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeLabel{ID: r.ID, Name: r.Name, Label: a.DetectCuisine(r.Ingredients, r.Name)}
	}
	return out
}
