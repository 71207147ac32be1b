package main

import (
	"fmt"
	"strconv"

	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/pkg/common"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			recipes := c.store.List()
			if len(recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recipes yet. Use 'recipectl add' to create one.")
				return nil
			}
			for _, r := range recipes {
				printRecipeLine(cmd, r)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show recipe details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := resolveID(c.store, args[0])
			if err != nil {
				return err
			}
			r, err := c.store.Get(id)
			if err != nil {
				return err
			}
			printRecipe(cmd, r)
			return nil
		},
	}
}

// recipeFlags are the editable fields shared by add and edit.
type recipeFlags struct {
	name         string
	description  string
	ingredients  []string
	instructions []string
	prepTime     int
	cookTime     int
	servings     int
	status       string
	tags         []string
	rating       int
	image        string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "recipe name")
	cmd.Flags().StringVar(&f.description, "description", "", "short description")
	cmd.Flags().StringArrayVarP(&f.ingredients, "ingredient", "i", nil, "ingredient (repeatable)")
	cmd.Flags().StringArrayVarP(&f.instructions, "step", "s", nil, "instruction step (repeatable)")
	cmd.Flags().IntVar(&f.prepTime, "prep", 0, "prep time in minutes")
	cmd.Flags().IntVar(&f.cookTime, "cook", 0, "cook time in minutes")
	cmd.Flags().IntVar(&f.servings, "servings", 1, "number of servings")
	cmd.Flags().StringVar(&f.status, "status", "", "favorite, to-try, made-before or none")
	cmd.Flags().StringSliceVarP(&f.tags, "tag", "t", nil, "tags (comma separated or repeated)")
	cmd.Flags().IntVar(&f.rating, "rating", 0, "rating 1-5, 0 for unrated")
	cmd.Flags().StringVar(&f.image, "image", "", "image URL")
}

func (f *recipeFlags) draft() recipe.Draft {
	return recipe.Draft{
		Name:         f.name,
		Description:  f.description,
		Ingredients:  f.ingredients,
		Instructions: f.instructions,
		PrepTime:     f.prepTime,
		CookTime:     f.cookTime,
		Servings:     f.servings,
		Status:       recipe.Status(f.status),
		Tags:         f.tags,
		Rating:       f.rating,
		Image:        f.image,
	}
}

// patch carries only the flags the user set.
func (f *recipeFlags) patch(cmd *cobra.Command) recipe.Patch {
	var p recipe.Patch
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = &f.name
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("ingredient") {
		p.Ingredients = &f.ingredients
	}
	if changed("step") {
		p.Instructions = &f.instructions
	}
	if changed("prep") {
		p.PrepTime = &f.prepTime
	}
	if changed("cook") {
		p.CookTime = &f.cookTime
	}
	if changed("servings") {
		p.Servings = &f.servings
	}
	if changed("status") {
		s := recipe.Status(f.status)
		p.Status = &s
	}
	if changed("tag") {
		p.Tags = &f.tags
	}
	if changed("rating") {
		p.Rating = &f.rating
	}
	if changed("image") {
		p.Image = &f.image
	}
	return p
}

func addCmd() *cobra.Command {
	var flags recipeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			r, err := c.store.Add(cmd.Context(), flags.draft())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added recipe: %s\n", common.ShortID(r.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "Classified as %s, %s\n", r.Cuisine, r.Difficulty)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func editCmd() *cobra.Command {
	var flags recipeFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change fields of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := resolveID(c.store, args[0])
			if err != nil {
				return err
			}
			r, err := c.store.Update(cmd.Context(), id, flags.patch(cmd))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe: %s (%s, %s)\n", common.ShortID(r.ID), r.Cuisine, r.Difficulty)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := resolveID(c.store, args[0])
			if err != nil {
				return err
			}
			if err := c.store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe: %s\n", common.ShortID(id))
			return nil
		},
	}
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate [id] [0-5]",
		Short: "Rate a recipe; 0 clears the rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}

			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := resolveID(c.store, args[0])
			if err != nil {
				return err
			}
			if _, err := c.store.Update(cmd.Context(), id, recipe.Patch{Rating: &rating}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rated %s: %d\n", common.ShortID(id), rating)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [favorite|to-try|made-before|none]",
		Short: "Set the status of a recipe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := resolveID(c.store, args[0])
			if err != nil {
				return err
			}
			status := recipe.Status(args[1])
			if _, err := c.store.Update(cmd.Context(), id, recipe.Patch{Status: &status}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", common.ShortID(id), status)
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var f recipe.SearchFilters

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter recipes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.Query = args[0]
			}
			if err := f.Validate(); err != nil {
				return err
			}

			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			results := f.Apply(c.store.List())
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching recipes.")
				return nil
			}
			for _, r := range results {
				printRecipeLine(cmd, r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Cuisine, "cuisine", "", "exact cuisine")
	cmd.Flags().StringVar(&f.Difficulty, "difficulty", "", "Easy, Medium or Hard")
	cmd.Flags().StringVar(&f.Status, "status", "", "favorite, to-try, made-before or none")
	cmd.Flags().StringVar(&f.Ingredient, "ingredient", "", "ingredient substring")
	cmd.Flags().IntVar(&f.MaxPrepTime, "max-prep", recipe.DefaultMaxPrepTime, "prep time ceiling in minutes, 0 for none")
	return cmd
}

func cuisinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cuisines",
		Short: "List the cuisines in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			for _, cuisine := range c.store.Cuisines() {
				fmt.Fprintln(cmd.OutOrStdout(), cuisine)
			}
			return nil
		},
	}
}
