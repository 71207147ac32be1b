package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"recipe-catalog/internal/core/ai/heuristic"
	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/infrastructure/storage"
	"recipe-catalog/internal/pkg/common"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "recipectl",
		Short:        "Manage the recipe catalog from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return common.InitLogger(common.LoggerOptions{Level: "debug", Console: verbose, Service: "recipectl"})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stdout")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(cuisinesCmd())
	rootCmd.AddCommand(shoppingListCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(substitutesCmd())
	rootCmd.AddCommand(mealPlanCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(askCmd())

	return rootCmd
}

// catalog is an opened store plus what it was opened with.
type catalog struct {
	cfg     *config.Config
	kv      storage.KV
	advisor *heuristic.Advisor
	store   *recipe.Store
}

func (c *catalog) Close() error {
	return c.kv.Close()
}

func getCatalog(ctx context.Context) (*catalog, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	kv, err := storage.NewKV(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	advisor := heuristic.Default()
	store := recipe.NewStore(advisor, storage.NewPersistence(kv, cfg.Storage.Key),
		recipe.WithFilters(recipe.SearchFilters{MaxPrepTime: cfg.Filters.MaxPrepTime}),
	)
	store.Load(ctx)

	return &catalog{cfg: cfg, kv: kv, advisor: advisor, store: store}, nil
}

// resolveID accepts a full id or an unambiguous prefix.
func resolveID(s *recipe.Store, ref string) (string, error) {
	if _, err := s.Get(ref); err == nil {
		return ref, nil
	}

	var matches []string
	for _, r := range s.List() {
		if strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no recipe matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func printRecipeLine(cmd *cobra.Command, r recipe.Recipe) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s %-13s %-6s %s\n",
		common.ShortID(r.ID), common.Truncate(r.Name, 40), r.Cuisine, r.Difficulty, r.Status)
}

func printRecipe(cmd *cobra.Command, r recipe.Recipe) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", r.ID)
	fmt.Fprintf(out, "Name:        %s\n", r.Name)
	if r.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", r.Description)
	}
	fmt.Fprintf(out, "Cuisine:     %s\n", r.Cuisine)
	fmt.Fprintf(out, "Difficulty:  %s\n", r.Difficulty)
	fmt.Fprintf(out, "Status:      %s\n", r.Status)
	fmt.Fprintf(out, "Time:        %d min prep, %d min cook\n", r.PrepTime, r.CookTime)
	fmt.Fprintf(out, "Servings:    %d\n", r.Servings)
	if r.Rating != nil {
		fmt.Fprintf(out, "Rating:      %s\n", strings.Repeat("*", *r.Rating))
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(out, "Tags:        %s\n", strings.Join(r.Tags, ", "))
	}

	fmt.Fprintln(out, "\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(out, "  - %s\n", ing)
	}
	fmt.Fprintln(out, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
}
