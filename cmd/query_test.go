package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pantryhq/pantry/internal/config"
	"github.com/pantryhq/pantry/internal/pantry"
	"github.com/pantryhq/pantry/internal/store"
)

func setupQueryTestStore(t *testing.T) (*store.Store, func()) {
	t.Helper()

	testStore, err := store.Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	// Save and restore the global store
	oldStore := pantryStore
	pantryStore = testStore

	cleanup := func() {
		pantryStore = oldStore
		testStore.Close()
	}

	return testStore, cleanup
}

func createQueryTestCategory(t *testing.T, s *store.Store, name string) *pantry.Category {
	t.Helper()
	c := &pantry.Category{Name: name}
	if err := s.Categories.Save(context.Background(), c); err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

func createQueryTestIngredient(t *testing.T, s *store.Store, name string, categoryID uint) *pantry.Ingredient {
	t.Helper()
	i := &pantry.Ingredient{Name: name, CategoryID: categoryID}
	if err := s.Ingredients.Save(context.Background(), i); err != nil {
		t.Fatalf("failed to create test ingredient: %v", err)
	}
	return i
}

func TestExecuteQuery(t *testing.T) {
	testStore, cleanup := setupQueryTestStore(t)
	defer cleanup()

	dairy := createQueryTestCategory(t, testStore, "Dairy")
	bakery := createQueryTestCategory(t, testStore, "Bakery")
	createQueryTestIngredient(t, testStore, "Milk", dairy.ID)
	createQueryTestIngredient(t, testStore, "Butter", dairy.ID)
	createQueryTestIngredient(t, testStore, "Bread", bakery.ID)

	ctx := context.Background()

	t.Run("all categories", func(t *testing.T) {
		result, err := executeQuery(ctx, `{ allCategories { id name } }`, nil, "")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}

		var data struct {
			AllCategories []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"allCategories"`
		}
		if err := json.Unmarshal(result, &data); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if len(data.AllCategories) != 2 {
			t.Fatalf("got %d categories, want 2", len(data.AllCategories))
		}
		if data.AllCategories[0].Name != "Dairy" || data.AllCategories[1].Name != "Bakery" {
			t.Errorf("categories = %+v, want Dairy then Bakery", data.AllCategories)
		}
	})

	t.Run("category with ingredients", func(t *testing.T) {
		result, err := executeQuery(ctx, `{ categoryById(id: "1") { name ingredients { name category { name } } } }`, nil, "")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}

		var data struct {
			CategoryByID struct {
				Name        string `json:"name"`
				Ingredients []struct {
					Name     string `json:"name"`
					Category struct {
						Name string `json:"name"`
					} `json:"category"`
				} `json:"ingredients"`
			} `json:"categoryById"`
		}
		if err := json.Unmarshal(result, &data); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		got := data.CategoryByID
		if len(got.Ingredients) != 2 {
			t.Fatalf("got %d ingredients, want 2", len(got.Ingredients))
		}
		for _, ing := range got.Ingredients {
			if ing.Category.Name != "Dairy" {
				t.Errorf("%s category = %q, want Dairy", ing.Name, ing.Category.Name)
			}
		}
	})

	t.Run("query with variables", func(t *testing.T) {
		query := `query Get($id: ID!) { ingredientById(id: $id) { name categoryId } }`
		result, err := executeQuery(ctx, query, map[string]any{"id": "3"}, "")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}

		if !strings.Contains(string(result), `"name":"Bread"`) {
			t.Errorf("result = %s, want Bread", result)
		}
	})

	t.Run("operation name selects operation", func(t *testing.T) {
		query := `
			query Cats { allCategories { name } }
			query Ings { allIngredients { name } }
		`
		result, err := executeQuery(ctx, query, nil, "Ings")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}
		if !strings.Contains(string(result), "allIngredients") || strings.Contains(string(result), "allCategories") {
			t.Errorf("result = %s, want only allIngredients", result)
		}
	})

	t.Run("mutation", func(t *testing.T) {
		query := `mutation { createIngredientByCategoryName(name: "Cheese", categoryName: "Dairy") { ingredient { id categoryId } } }`
		result, err := executeQuery(ctx, query, nil, "")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}
		if !strings.Contains(string(result), `"categoryId":"1"`) {
			t.Errorf("result = %s, want categoryId 1", result)
		}
	})

	t.Run("resolver error carries path and code", func(t *testing.T) {
		_, err := executeQuery(ctx, `mutation { createIngredient(name: "Eggs", categoryId: 99) { ingredient { id } } }`, nil, "")
		if err == nil {
			t.Fatal("expected error")
		}
		msg := err.Error()
		if !strings.Contains(msg, "createIngredient") || !strings.Contains(msg, "NOT_FOUND") {
			t.Errorf("error = %q, want path and NOT_FOUND code", msg)
		}
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := executeQuery(ctx, `{ nope }`, nil, "")
		if err == nil {
			t.Fatal("expected error for invalid query")
		}
	})
}

func TestGetGraphQLSchema(t *testing.T) {
	schema := GetGraphQLSchema()

	for _, want := range []string{"type Category", "type Ingredient", "createIngredientByCategoryName", "DeleteCategoryPayload"} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema does not contain %q", want)
		}
	}
}
