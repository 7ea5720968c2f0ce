package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pantryhq/pantry/internal/graph/model"
	"github.com/pantryhq/pantry/internal/output"
	"github.com/pantryhq/pantry/internal/pantry"
	"github.com/pantryhq/pantry/internal/ui"
)

var (
	ingredientJSON         bool
	ingredientCategoryID   int
	ingredientCategoryName string
	ingredientName         string
	ingredientForce        bool
)

var ingredientCmd = &cobra.Command{
	Use:     "ingredient",
	Aliases: []string{"ing", "ingredients"},
	Short:   "Manage ingredients",
}

var ingredientListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List ingredients",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		ctx := cmd.Context()

		var (
			ings []*pantry.Ingredient
			err  error
		)
		if cmd.Flags().Changed("category-id") {
			ings, err = pantryStore.IngredientsInCategory(ctx, uint(max(ingredientCategoryID, 0)))
		} else {
			ings, err = r.Query().AllIngredients(ctx)
		}
		if err != nil {
			return failure(ingredientJSON, err)
		}

		if ingredientJSON {
			return output.SuccessMultiple(ings)
		}

		if len(ings) == 0 {
			fmt.Println(ui.Muted.Render("No ingredients found"))
			return nil
		}

		cats, err := r.Query().AllCategories(ctx)
		if err != nil {
			return err
		}
		names := make(map[uint]string, len(cats))
		for _, c := range cats {
			names[c.ID] = c.Name
		}

		rows := make([][]string, len(ings))
		for i, ing := range ings {
			category, ok := names[ing.CategoryID]
			if !ok {
				category = ui.Danger.Render("missing #" + pantry.FormatID(ing.CategoryID))
			}
			rows[i] = []string{ui.ID.Render(pantry.FormatID(ing.ID)), ing.Name, category}
		}
		fmt.Print(ui.Table([]string{"ID", "NAME", "CATEGORY"}, rows))
		return nil
	},
}

var ingredientShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		ctx := cmd.Context()

		ing, err := r.Query().IngredientByID(ctx, args[0])
		if err != nil {
			return failure(ingredientJSON, err)
		}
		if ing == nil {
			return cmdError(ingredientJSON, output.ErrNotFound, "ingredient with ID %s not found", args[0])
		}

		if ingredientJSON {
			return output.Success(ing, "")
		}

		category := ui.Danger.Render("missing")
		if c, err := r.Ingredient().Category(ctx, ing); err == nil {
			category = c.Name
		} else if !pantry.IsNotFound(err) {
			return err
		}

		fmt.Println(ui.Header.Render(ing.Name))
		fmt.Println(ui.Muted.Render("id        ") + ui.ID.Render(pantry.FormatID(ing.ID)))
		fmt.Println(ui.Muted.Render("category  ") + category + ui.Muted.Render(" (#"+pantry.FormatID(ing.CategoryID)+")"))
		fmt.Println(ui.Muted.Render("created   ") + ing.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Println(ui.Muted.Render("updated   ") + ing.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

var ingredientCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an ingredient",
	Long: `Creates an ingredient in an existing category, given either its id
(--category-id) or its name (--category). When several categories share the
name, the one created first is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		byID := cmd.Flags().Changed("category-id")
		byName := cmd.Flags().Changed("category")
		if byID == byName {
			return cmdError(ingredientJSON, output.ErrValidation, "exactly one of --category-id or --category is required")
		}

		m := newResolver().Mutation()
		var (
			payload *model.CreateIngredientPayload
			err     error
		)
		if byID {
			payload, err = m.CreateIngredient(cmd.Context(), args[0], ingredientCategoryID)
		} else {
			payload, err = m.CreateIngredientByCategoryName(cmd.Context(), args[0], ingredientCategoryName)
		}
		if err != nil {
			return failure(ingredientJSON, err)
		}

		if ingredientJSON {
			return output.Success(payload.Ingredient, "Ingredient created")
		}
		fmt.Println(ui.Success.Render("Created ") + ui.ID.Render(pantry.FormatID(payload.Ingredient.ID)) + " " + ui.Name.Render(payload.Ingredient.Name))
		return nil
	},
}

var ingredientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename an ingredient or move it to another category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			name       *string
			categoryID *int
		)
		if cmd.Flags().Changed("name") {
			name = &ingredientName
		}
		if cmd.Flags().Changed("category-id") {
			categoryID = &ingredientCategoryID
		}

		payload, err := newResolver().Mutation().UpdateIngredient(cmd.Context(), args[0], name, categoryID)
		if err != nil {
			return failure(ingredientJSON, err)
		}

		if ingredientJSON {
			return output.Success(payload.Ingredient, "Ingredient updated")
		}
		if name == nil && categoryID == nil {
			fmt.Println(ui.Muted.Render("Nothing to change"))
			return nil
		}
		fmt.Println(ui.Success.Render("Updated ") + ui.ID.Render(pantry.FormatID(payload.Ingredient.ID)) + " " + ui.Name.Render(payload.Ingredient.Name))
		return nil
	},
}

var ingredientDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an ingredient",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		ctx := cmd.Context()

		if !ingredientForce && !ingredientJSON {
			ing, err := r.Query().IngredientByID(ctx, args[0])
			if err != nil {
				return err
			}
			if ing == nil {
				return fmt.Errorf("ingredient with ID %s not found", args[0])
			}
			ok, err := confirmFunc(fmt.Sprintf("Delete ingredient '%s'?", ing.Name), "")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled")
				return nil
			}
		}

		payload, err := r.Mutation().DeleteIngredient(ctx, args[0])
		if err != nil {
			return failure(ingredientJSON, err)
		}

		if ingredientJSON {
			if !payload.Success {
				return output.Error(output.ErrNotFound, payload.Message)
			}
			return output.SuccessMessage(payload.Message)
		}
		if !payload.Success {
			return fmt.Errorf("%s", payload.Message)
		}
		fmt.Println(ui.Success.Render(payload.Message))
		return nil
	},
}

func init() {
	ingredientCmd.PersistentFlags().BoolVar(&ingredientJSON, "json", false, "Output as JSON")

	ingredientListCmd.Flags().IntVar(&ingredientCategoryID, "category-id", 0, "Only list ingredients in this category")

	ingredientCreateCmd.Flags().IntVar(&ingredientCategoryID, "category-id", 0, "Category id")
	ingredientCreateCmd.Flags().StringVar(&ingredientCategoryName, "category", "", "Category name")

	ingredientUpdateCmd.Flags().StringVar(&ingredientName, "name", "", "New name")
	ingredientUpdateCmd.Flags().IntVar(&ingredientCategoryID, "category-id", 0, "Move to this category")

	ingredientDeleteCmd.Flags().BoolVarP(&ingredientForce, "force", "f", false, "Skip confirmation")

	ingredientCmd.AddCommand(ingredientListCmd, ingredientShowCmd, ingredientCreateCmd, ingredientUpdateCmd, ingredientDeleteCmd)
	rootCmd.AddCommand(ingredientCmd)
}
