package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pantryhq/pantry/internal/output"
	"github.com/pantryhq/pantry/internal/pantry"
	"github.com/pantryhq/pantry/internal/ui"
)

var (
	categoryJSON  bool
	categoryTree  bool
	categoryForce bool
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat", "categories"},
	Short:   "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories",
	Long:    `Lists all categories ordered by id. Use --tree to show each category's ingredients.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		ctx := cmd.Context()

		cats, err := r.Query().AllCategories(ctx)
		if err != nil {
			return failure(categoryJSON, err)
		}

		if categoryTree {
			ings, err := r.Query().AllIngredients(ctx)
			if err != nil {
				return failure(categoryJSON, err)
			}
			nodes := ui.BuildTree(cats, ings)
			if categoryJSON {
				out := make([]*ui.TreeNodeJSON, len(nodes))
				for i, n := range nodes {
					out[i] = n.ToJSON()
				}
				return output.SuccessMultiple(out)
			}
			fmt.Print(ui.RenderTree(nodes))
			return nil
		}

		if categoryJSON {
			return output.SuccessMultiple(cats)
		}

		if len(cats) == 0 {
			fmt.Println(ui.Muted.Render("No categories yet. Create one with 'pantry category create <name>'."))
			return nil
		}

		rows := make([][]string, len(cats))
		for i, c := range cats {
			rows[i] = []string{ui.ID.Render(pantry.FormatID(c.ID)), c.Name, ui.Muted.Render(c.UpdatedAt.Local().Format("2006-01-02 15:04"))}
		}
		fmt.Print(ui.Table([]string{"ID", "NAME", "UPDATED"}, rows))
		return nil
	},
}

var categoryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a category and its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		ctx := cmd.Context()

		c, err := r.Query().CategoryByID(ctx, args[0])
		if err != nil {
			return failure(categoryJSON, err)
		}
		if c == nil {
			return cmdError(categoryJSON, output.ErrNotFound, "category with ID %s not found", args[0])
		}

		ings, err := r.Category().Ingredients(ctx, c)
		if err != nil {
			return failure(categoryJSON, err)
		}

		if categoryJSON {
			return output.Success((&ui.TreeNode{Category: c, Ingredients: ings}).ToJSON(), "")
		}

		fmt.Println(ui.Header.Render(c.Name))
		fmt.Println(ui.Muted.Render("id       ") + ui.ID.Render(pantry.FormatID(c.ID)))
		fmt.Println(ui.Muted.Render("created  ") + c.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Println(ui.Muted.Render("updated  ") + c.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Println()
		if len(ings) == 0 {
			fmt.Println(ui.Muted.Render("No ingredients"))
			return nil
		}
		fmt.Print(ui.RenderTree([]*ui.TreeNode{{Category: c, Ingredients: ings}}))
		return nil
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := newResolver().Mutation().CreateCategory(cmd.Context(), args[0])
		if err != nil {
			return failure(categoryJSON, err)
		}

		if categoryJSON {
			return output.Success(payload.Category, "Category created")
		}
		fmt.Println(ui.Success.Render("Created ") + ui.ID.Render(pantry.FormatID(payload.Category.ID)) + " " + ui.Name.Render(payload.Category.Name))
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := newResolver().Mutation().UpdateCategory(cmd.Context(), args[0], args[1])
		if err != nil {
			return failure(categoryJSON, err)
		}

		if categoryJSON {
			return output.Success(payload.Category, "Category renamed")
		}
		fmt.Println(ui.Success.Render("Renamed ") + ui.ID.Render(pantry.FormatID(payload.Category.ID)) + " to " + ui.Name.Render(payload.Category.Name))
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a category",
	Long: `Deletes a category after confirmation (use -f to skip confirmation).

Ingredients in the category are kept; they will point at a category that no
longer exists until they are moved with 'pantry ingredient update'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		ctx := cmd.Context()

		// JSON implies force (no prompts for machines)
		if !categoryForce && !categoryJSON {
			c, err := r.Query().CategoryByID(ctx, args[0])
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("category with ID %s not found", args[0])
			}

			ings, err := r.Category().Ingredients(ctx, c)
			if err != nil {
				return err
			}

			description := ""
			if len(ings) > 0 {
				description = fmt.Sprintf("%d ingredient(s) will keep pointing at it.", len(ings))
			}
			ok, err := confirmFunc(fmt.Sprintf("Delete category '%s'?", c.Name), description)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled")
				return nil
			}
		}

		payload, err := r.Mutation().DeleteCategory(ctx, args[0])
		if err != nil {
			return failure(categoryJSON, err)
		}

		if categoryJSON {
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
	categoryCmd.PersistentFlags().BoolVar(&categoryJSON, "json", false, "Output as JSON")
	categoryListCmd.Flags().BoolVar(&categoryTree, "tree", false, "Show ingredients under each category")
	categoryDeleteCmd.Flags().BoolVarP(&categoryForce, "force", "f", false, "Skip confirmation")

	categoryCmd.AddCommand(categoryListCmd, categoryShowCmd, categoryCreateCmd, categoryRenameCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}
