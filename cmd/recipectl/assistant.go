package main

import (
	"fmt"
	"strings"

	"recipe-catalog/internal/core/ai/cache"
	"recipe-catalog/internal/core/ai/heuristic"
	aiservice "recipe-catalog/internal/core/ai/service"
	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/core/service"
	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/pkg/common"

	"github.com/spf13/cobra"
)

func shoppingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shopping-list [id...]",
		Short: "Consolidate ingredients of the given recipes, or of favorites and to-try",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			var items []string
			if len(args) == 0 {
				items = c.advisor.PlannedShoppingList(c.store.List())
			} else {
				selected := make([]recipe.Recipe, 0, len(args))
				for _, ref := range args {
					id, err := resolveID(c.store, ref)
					if err != nil {
						return err
					}
					r, err := c.store.Get(id)
					if err != nil {
						return err
					}
					selected = append(selected, r)
				}
				items = c.advisor.GenerateShoppingList(selected)
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to buy.")
				return nil
			}
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "[ ] %s\n", item)
			}
			return nil
		},
	}
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [ingredients]",
		Short: "Rank recipes by the ingredients you have, e.g. \"eggs, rice\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			available := heuristic.ParseIngredientList(strings.Join(args, ","))
			if len(available) == 0 {
				return fmt.Errorf("at least one ingredient is required")
			}

			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			matches := c.advisor.SuggestRecipesByIngredients(available, c.store.List())
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recipe uses those ingredients.")
				return nil
			}
			for _, r := range matches {
				printRecipeLine(cmd, r)
			}
			return nil
		},
	}
}

func substitutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "substitutes [ingredient]",
		Short: "Show substitutions for an ingredient, or the whole table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			advisor := heuristic.Default()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, s := range advisor.CommonSubstitutions() {
					fmt.Fprintf(out, "%-8s %s\n", s.Base, strings.Join(s.Alternatives, ", "))
				}
				return nil
			}

			alts := advisor.SuggestSubstitutions(args[0])
			if len(alts) == 0 {
				fmt.Fprintf(out, "No substitutions known for %s.\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", args[0], strings.Join(alts, ", "))
			return nil
		},
	}
}

func mealPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meal-plan",
		Short: "Spread the easy recipes over the week",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			for _, day := range heuristic.WeeklyMealPlan(c.store.List()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", day.Day, day.RecipeName)
			}
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "analyze [difficulty|cuisine]",
		Short:     "Re-run the classifiers over every recipe",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"difficulty", "cuisine"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			recipes := c.store.List()
			out := cmd.OutOrStdout()
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}

			if kind == "" || kind == "difficulty" {
				fmt.Fprintln(out, "Difficulty:")
				for _, l := range c.advisor.AnalyzeDifficulty(recipes) {
					fmt.Fprintf(out, "  %-40s %s\n", common.Truncate(l.Name, 40), l.Label)
				}
			}
			if kind == "" || kind == "cuisine" {
				fmt.Fprintln(out, "Cuisine:")
				for _, l := range c.advisor.AnalyzeCuisine(recipes) {
					fmt.Fprintf(out, "  %-40s %s\n", common.Truncate(l.Name, 40), l.Label)
				}
			}
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [ingredients]",
		Short: "Ask the remote suggestion service for a recipe",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			cacheManager := cache.NewManager(cfg.Cache)
			defer cacheManager.Close()
			svc := aiservice.NewService(cfg.Suggestion, service.NewSuggestionClient(cfg.Suggestion), cacheManager)

			resp, err := svc.ProcessRequest(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
			return nil
		},
	}
}
