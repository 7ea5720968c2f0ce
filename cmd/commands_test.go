package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryhq/pantry/internal/output"
	"github.com/pantryhq/pantry/internal/pantry"
)

// runJSON runs a subcommand in --json mode and decodes the envelope it prints.
func runJSON(t *testing.T, cmd *cobra.Command, flags map[string]string, args ...string) (output.Response, error) {
	t.Helper()

	var buf bytes.Buffer
	oldWriter := output.Writer
	output.Writer = &buf
	t.Cleanup(func() { output.Writer = oldWriter })

	t.Cleanup(func() { resetFlags(cmd) })
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}

	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)

	var resp output.Response
	if buf.Len() > 0 {
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp), buf.String())
	}
	return resp, err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.LocalNonPersistentFlags().VisitAll(reset)
}

func withJSON(t *testing.T, flag *bool) {
	t.Helper()
	*flag = true
	t.Cleanup(func() { *flag = false })
}

func TestCategoryCommands(t *testing.T) {
	testStore, cleanup := setupQueryTestStore(t)
	defer cleanup()
	withJSON(t, &categoryJSON)

	t.Run("create", func(t *testing.T) {
		resp, err := runJSON(t, categoryCreateCmd, nil, "Dairy")
		require.NoError(t, err)
		assert.True(t, resp.Success)

		c, err := testStore.Categories.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Dairy", c.Name)
	})

	t.Run("create blank name", func(t *testing.T) {
		resp, err := runJSON(t, categoryCreateCmd, nil, " ")
		var jsonErr *output.JSONError
		require.ErrorAs(t, err, &jsonErr)
		assert.False(t, resp.Success)
		assert.Equal(t, output.ErrValidation, resp.Code)
	})

	t.Run("rename", func(t *testing.T) {
		_, err := runJSON(t, categoryRenameCmd, nil, "1", "Milk products")
		require.NoError(t, err)

		c, err := testStore.Categories.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Milk products", c.Name)
	})

	t.Run("rename missing", func(t *testing.T) {
		resp, err := runJSON(t, categoryRenameCmd, nil, "42", "Nope")
		require.Error(t, err)
		assert.Equal(t, output.ErrNotFound, resp.Code)
	})

	t.Run("list", func(t *testing.T) {
		resp, err := runJSON(t, categoryListCmd, nil)
		require.NoError(t, err)
		require.NotNil(t, resp.Count)
		assert.Equal(t, 1, *resp.Count)
	})

	t.Run("list tree", func(t *testing.T) {
		createQueryTestIngredient(t, testStore, "Milk", 1)
		createQueryTestIngredient(t, testStore, "Flour", 7)

		resp, err := runJSON(t, categoryListCmd, map[string]string{"tree": "true"})
		require.NoError(t, err)
		require.NotNil(t, resp.Count)
		// Milk products, then the orphan group
		assert.Equal(t, 2, *resp.Count)
	})

	t.Run("show", func(t *testing.T) {
		resp, err := runJSON(t, categoryShowCmd, nil, "1")
		require.NoError(t, err)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "Milk products", data["name"])
		assert.Len(t, data["ingredients"], 1)
	})

	t.Run("show missing", func(t *testing.T) {
		resp, err := runJSON(t, categoryShowCmd, nil, "9")
		require.Error(t, err)
		assert.Equal(t, output.ErrNotFound, resp.Code)
	})

	t.Run("show malformed id", func(t *testing.T) {
		resp, err := runJSON(t, categoryShowCmd, nil, "abc")
		require.Error(t, err)
		assert.Equal(t, output.ErrValidation, resp.Code)
	})

	t.Run("delete keeps ingredients", func(t *testing.T) {
		resp, err := runJSON(t, categoryDeleteCmd, nil, "1")
		require.NoError(t, err)
		assert.Equal(t, "Category with ID 1 deleted.", resp.Message)

		n, err := testStore.Ingredients.Count(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("delete missing", func(t *testing.T) {
		resp, err := runJSON(t, categoryDeleteCmd, nil, "1")
		require.Error(t, err)
		assert.Equal(t, output.ErrNotFound, resp.Code)
		assert.Equal(t, "Category with ID 1 not found.", resp.Error)
	})
}

func TestCategoryDeleteConfirmation(t *testing.T) {
	testStore, cleanup := setupQueryTestStore(t)
	defer cleanup()
	c := createQueryTestCategory(t, testStore, "Dairy")

	oldConfirm := confirmFunc
	defer func() { confirmFunc = oldConfirm }()

	var asked string
	confirmFunc = func(title, description string) (bool, error) {
		asked = title
		return false, nil
	}

	categoryDeleteCmd.SetContext(context.Background())
	require.NoError(t, categoryDeleteCmd.RunE(categoryDeleteCmd, []string{pantry.FormatID(c.ID)}))
	assert.Contains(t, asked, "Dairy")

	_, err := testStore.Categories.Get(context.Background(), c.ID)
	assert.NoError(t, err, "declined delete must keep the category")

	confirmFunc = func(string, string) (bool, error) { return false, errors.New("no tty") }
	assert.Error(t, categoryDeleteCmd.RunE(categoryDeleteCmd, []string{pantry.FormatID(c.ID)}))
}

func TestIngredientCommands(t *testing.T) {
	testStore, cleanup := setupQueryTestStore(t)
	defer cleanup()
	withJSON(t, &ingredientJSON)

	dairy := createQueryTestCategory(t, testStore, "Dairy")
	bakery := createQueryTestCategory(t, testStore, "Bakery")

	t.Run("create by category id", func(t *testing.T) {
		resp, err := runJSON(t, ingredientCreateCmd, map[string]string{"category-id": pantry.FormatID(dairy.ID)}, "Milk")
		require.NoError(t, err)
		assert.True(t, resp.Success)

		ing, err := testStore.Ingredients.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, dairy.ID, ing.CategoryID)
	})

	t.Run("create by category name", func(t *testing.T) {
		_, err := runJSON(t, ingredientCreateCmd, map[string]string{"category": "Bakery"}, "Bread")
		require.NoError(t, err)

		ing, err := testStore.Ingredients.Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, bakery.ID, ing.CategoryID)
	})

	t.Run("create needs exactly one category flag", func(t *testing.T) {
		resp, err := runJSON(t, ingredientCreateCmd, nil, "Eggs")
		require.Error(t, err)
		assert.Equal(t, output.ErrValidation, resp.Code)

		resp, err = runJSON(t, ingredientCreateCmd, map[string]string{"category": "Dairy", "category-id": "1"}, "Eggs")
		require.Error(t, err)
		assert.Equal(t, output.ErrValidation, resp.Code)
	})

	t.Run("create unknown category", func(t *testing.T) {
		resp, err := runJSON(t, ingredientCreateCmd, map[string]string{"category": "Produce"}, "Apple")
		require.Error(t, err)
		assert.Equal(t, output.ErrNotFound, resp.Code)
	})

	t.Run("list", func(t *testing.T) {
		resp, err := runJSON(t, ingredientListCmd, nil)
		require.NoError(t, err)
		require.NotNil(t, resp.Count)
		assert.Equal(t, 2, *resp.Count)
	})

	t.Run("list by category", func(t *testing.T) {
		resp, err := runJSON(t, ingredientListCmd, map[string]string{"category-id": pantry.FormatID(bakery.ID)})
		require.NoError(t, err)
		require.NotNil(t, resp.Count)
		assert.Equal(t, 1, *resp.Count)
	})

	t.Run("update moves and renames", func(t *testing.T) {
		_, err := runJSON(t, ingredientUpdateCmd, map[string]string{"name": "Oat milk", "category-id": pantry.FormatID(bakery.ID)}, "1")
		require.NoError(t, err)

		ing, err := testStore.Ingredients.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Oat milk", ing.Name)
		assert.Equal(t, bakery.ID, ing.CategoryID)
	})

	t.Run("update without flags leaves record alone", func(t *testing.T) {
		before, err := testStore.Ingredients.Get(context.Background(), 1)
		require.NoError(t, err)

		resp, err := runJSON(t, ingredientUpdateCmd, nil, "1")
		require.NoError(t, err)
		assert.True(t, resp.Success)

		after, err := testStore.Ingredients.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
	})

	t.Run("show", func(t *testing.T) {
		resp, err := runJSON(t, ingredientShowCmd, nil, "2")
		require.NoError(t, err)
		assert.Equal(t, "Bread", resp.Data.(map[string]any)["name"])
	})

	t.Run("delete", func(t *testing.T) {
		resp, err := runJSON(t, ingredientDeleteCmd, nil, "2")
		require.NoError(t, err)
		assert.Equal(t, "Ingredient with ID 2 deleted.", resp.Message)

		resp, err = runJSON(t, ingredientDeleteCmd, nil, "2")
		require.Error(t, err)
		assert.Equal(t, "Ingredient with ID 2 not found.", resp.Error)
	})
}
