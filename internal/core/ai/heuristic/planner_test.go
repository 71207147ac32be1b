package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-catalog/internal/core/recipe"
)

func named(id string, d recipe.Difficulty) recipe.Recipe {
	return recipe.Recipe{ID: id, Name: "Recipe " + id, Difficulty: d}
}

func TestWeeklyMealPlan_CyclesEasyRecipes(t *testing.T) {
	recipes := []recipe.Recipe{
		named("1", recipe.DifficultyEasy),
		named("2", recipe.DifficultyHard),
		named("3", recipe.DifficultyEasy),
		named("4", recipe.DifficultyMedium),
		named("5", recipe.DifficultyEasy),
	}

	plan := WeeklyMealPlan(recipes)

	require.Len(t, plan, 7)
	ids := make([]string, len(plan))
	for i, d := range plan {
		assert.Equal(t, Weekdays[i], d.Day)
		ids[i] = d.RecipeID
	}
	assert.Equal(t, []string{"1", "3", "5", "1", "3", "5", "1"}, ids)
	assert.Equal(t, "Recipe 1", plan[0].RecipeName)
}

func TestWeeklyMealPlan_UsesFirstSevenEasy(t *testing.T) {
	recipes := make([]recipe.Recipe, 0, 9)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		recipes = append(recipes, named(id, recipe.DifficultyEasy))
	}

	plan := WeeklyMealPlan(recipes)

	assert.Equal(t, "g", plan[6].RecipeID)
}

func TestWeeklyMealPlan_NoEasyRecipes(t *testing.T) {
	plan := WeeklyMealPlan([]recipe.Recipe{named("1", recipe.DifficultyHard)})

	require.Len(t, plan, 7)
	for _, d := range plan {
		assert.Empty(t, d.RecipeID)
		assert.Equal(t, PlanYourOwn, d.RecipeName)
	}
}

func TestAnalyze(t *testing.T) {
	a := Default()
	recipes := []recipe.Recipe{
		{ID: "1", Name: "Risotto", Ingredients: []string{"rice", "white wine", "parmesan"}, Instructions: []string{"Stir", "Reduce stock"}, Difficulty: recipe.DifficultyEasy},
		{ID: "2", Name: "Toast", Ingredients: []string{"bread"}},
	}

	difficulty := a.AnalyzeDifficulty(recipes)
	cuisine := a.AnalyzeCuisine(recipes)

	require.Len(t, difficulty, 2)
	assert.Equal(t, RecipeLabel{ID: "1", Name: "Risotto", Label: "Medium"}, difficulty[0])
	assert.Equal(t, "Easy", difficulty[1].Label)
	require.Len(t, cuisine, 2)
	assert.Equal(t, "Italian", cuisine[0].Label)
	assert.Equal(t, "International", cuisine[1].Label)
	assert.Empty(t, a.AnalyzeDifficulty(nil))
}
