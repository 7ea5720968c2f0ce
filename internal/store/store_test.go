package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryhq/pantry/internal/config"
	"github.com/pantryhq/pantry/internal/pantry"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createCategory(t *testing.T, s *Store, name string) *pantry.Category {
	t.Helper()
	c := &pantry.Category{Name: name}
	require.NoError(t, s.Categories.Save(context.Background(), c))
	return c
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestCategoryCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	c := createCategory(t, s, "Dairy")
	require.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	t.Run("get", func(t *testing.T) {
		got, err := s.Categories.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dairy", got.Name)
	})

	t.Run("update", func(t *testing.T) {
		got, err := s.Categories.Get(ctx, c.ID)
		require.NoError(t, err)
		got.Name = "Milk Products"
		require.NoError(t, s.Categories.Save(ctx, got))

		reloaded, err := s.Categories.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Milk Products", reloaded.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Categories.Delete(ctx, c.ID))
		_, err := s.Categories.Get(ctx, c.ID)
		assert.True(t, pantry.IsNotFound(err))
	})
}

func TestRepositoryNotFound(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Categories.Get(ctx, 99)
	var nf *pantry.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Category with ID 99 not found", nf.Error())

	err = s.Ingredients.Delete(ctx, 5)
	assert.True(t, pantry.IsNotFound(err))

	_, err = s.Categories.FirstBy(ctx, "name", "Spices")
	require.Error(t, err)
	assert.Equal(t, "Category with name 'Spices' not found", err.Error())
}

func TestListOrderedByID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Produce", "Bakery", "Dairy"} {
		createCategory(t, s, name)
	}

	list, err := s.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Produce", list[0].Name)
	assert.Equal(t, "Bakery", list[1].Name)
	assert.Equal(t, "Dairy", list[2].Name)

	n, err := s.Categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestFirstByPicksLowestID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := createCategory(t, s, "Dairy")
	createCategory(t, s, "Dairy")

	got, err := s.Categories.FirstBy(ctx, "name", "Dairy")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestSaveValidates(t *testing.T) {
	s := setupTestStore(t)

	err := s.Categories.Save(context.Background(), &pantry.Category{Name: "  "})
	assert.True(t, pantry.IsValidation(err))

	n, err := s.Categories.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCategoryDeleteDoesNotCascade(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	dairy := createCategory(t, s, "Dairy")
	milk := &pantry.Ingredient{Name: "Milk", CategoryID: dairy.ID}
	require.NoError(t, s.Ingredients.Save(ctx, milk))

	require.NoError(t, s.Categories.Delete(ctx, dairy.ID))

	got, err := s.Ingredients.Get(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, dairy.ID, got.CategoryID, "ingredient keeps its (now dangling) reference")
}

func TestIngredientsInCategory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	dairy := createCategory(t, s, "Dairy")
	produce := createCategory(t, s, "Produce")
	for _, ing := range []*pantry.Ingredient{
		{Name: "Milk", CategoryID: dairy.ID},
		{Name: "Apple", CategoryID: produce.ID},
		{Name: "Butter", CategoryID: dairy.ID},
	} {
		require.NoError(t, s.Ingredients.Save(ctx, ing))
	}

	list, err := s.IngredientsInCategory(ctx, dairy.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Milk", list[0].Name)
	assert.Equal(t, "Butter", list[1].Name)

	empty, err := s.IngredientsInCategory(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPing(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
