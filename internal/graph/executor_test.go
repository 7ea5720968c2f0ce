package graph

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/executor"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/pantryhq/pantry/internal/pantry"
	"github.com/pantryhq/pantry/internal/store"
)

func setupTestExecutor(t *testing.T) (*executor.Executor, *store.Store) {
	t.Helper()
	resolver, s := setupTestResolver(t)
	return NewExecutor(NewExecutableSchema(Config{Resolvers: resolver})), s
}

func run(t *testing.T, exec *executor.Executor, query string, vars map[string]any) (map[string]any, gqlerror.List) {
	t.Helper()
	resp := Execute(context.Background(), exec, &graphql.RawParams{Query: query, Variables: vars})
	if resp == nil {
		t.Fatal("Execute() returned nil response")
	}

	var data map[string]any
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("invalid response data %s: %v", resp.Data, err)
		}
	}
	return data, resp.Errors
}

func TestExecCreateAndFetch(t *testing.T) {
	exec, _ := setupTestExecutor(t)

	data, errs := run(t, exec, `mutation { createCategory(name: "Dairy") { category { id name } } }`, nil)
	if errs != nil {
		t.Fatalf("createCategory errors: %v", errs)
	}
	cat := data["createCategory"].(map[string]any)["category"].(map[string]any)
	id := cat["id"].(string)
	if cat["name"] != "Dairy" {
		t.Errorf("name = %v, want Dairy", cat["name"])
	}

	data, errs = run(t, exec, `query Get($id: ID!) { categoryById(id: $id) { name ingredients { id } } }`, map[string]any{"id": id})
	if errs != nil {
		t.Fatalf("categoryById errors: %v", errs)
	}
	got := data["categoryById"].(map[string]any)
	if got["name"] != "Dairy" {
		t.Errorf("name = %v, want Dairy", got["name"])
	}
	if ings, ok := got["ingredients"].([]any); !ok || len(ings) != 0 {
		t.Errorf("ingredients = %v, want empty list", got["ingredients"])
	}
}

func TestExecMissingByIDIsNull(t *testing.T) {
	exec, _ := setupTestExecutor(t)

	data, errs := run(t, exec, `{ categoryById(id: "12") { name } ingredientById(id: 3) { name } }`, nil)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if data["categoryById"] != nil || data["ingredientById"] != nil {
		t.Errorf("data = %v, want nulls", data)
	}
}

func TestExecErrorCodes(t *testing.T) {
	exec, s := setupTestExecutor(t)
	createTestCategory(t, s, "Dairy")

	tests := []struct {
		name     string
		query    string
		field    string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "unknown category id",
			query:    `mutation { createIngredient(name: "Milk", categoryId: 42) { ingredient { id } } }`,
			field:    "createIngredient",
			wantCode: CodeNotFound,
			wantMsg:  "42",
		},
		{
			name:     "unknown category name",
			query:    `mutation { createIngredientByCategoryName(name: "Milk", categoryName: "Bakery") { ingredient { id } } }`,
			field:    "createIngredientByCategoryName",
			wantCode: CodeNotFound,
			wantMsg:  "Bakery",
		},
		{
			name:     "blank name",
			query:    `mutation { createCategory(name: "") { category { id } } }`,
			field:    "createCategory",
			wantCode: CodeValidation,
			wantMsg:  "name",
		},
		{
			name:     "malformed id",
			query:    `mutation { updateCategory(id: "x1", name: "A") { category { id } } }`,
			field:    "updateCategory",
			wantCode: CodeValidation,
			wantMsg:  "x1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, errs := run(t, exec, tt.query, nil)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if data[tt.field] != nil {
				t.Errorf("%s = %v, want null", tt.field, data[tt.field])
			}
			if code := errs[0].Extensions["code"]; code != tt.wantCode {
				t.Errorf("code = %v, want %s", code, tt.wantCode)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", errs[0].Message, tt.wantMsg)
			}
			if errs[0].Path.String() != tt.field {
				t.Errorf("path = %q, want %q", errs[0].Path.String(), tt.field)
			}
			if len(errs[0].Locations) == 0 {
				t.Error("error has no location")
			}
		})
	}
}

func TestExecDeleteIngredientStructured(t *testing.T) {
	exec, _ := setupTestExecutor(t)

	data, errs := run(t, exec, `mutation { deleteIngredient(id: "9") { success message } }`, nil)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	res := data["deleteIngredient"].(map[string]any)
	if res["success"] != false {
		t.Errorf("success = %v, want false", res["success"])
	}
	if !strings.Contains(res["message"].(string), "9") {
		t.Errorf("message %q does not contain the id", res["message"])
	}
}

func TestExecDanglingCategory(t *testing.T) {
	exec, s := setupTestExecutor(t)
	dairy := createTestCategory(t, s, "Dairy")
	createTestIngredient(t, s, "Milk", dairy.ID)

	_, errs := run(t, exec, `mutation($id: ID!) { deleteCategory(id: $id) { success } }`,
		map[string]any{"id": pantry.FormatID(dairy.ID)})
	if errs != nil {
		t.Fatalf("deleteCategory errors: %v", errs)
	}

	data, errs := run(t, exec, `{ allIngredients { name category { name } } }`, nil)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Extensions["code"] != CodeNotFound {
		t.Errorf("code = %v, want %s", errs[0].Extensions["code"], CodeNotFound)
	}
	if got := errs[0].Path.String(); got != "allIngredients[0].category" {
		t.Errorf("path = %q", got)
	}

	ings := data["allIngredients"].([]any)
	milk := ings[0].(map[string]any)
	if milk["name"] != "Milk" || milk["category"] != nil {
		t.Errorf("ingredient = %v, want Milk with null category", milk)
	}
}

func TestExecSelectionFeatures(t *testing.T) {
	exec, s := setupTestExecutor(t)
	dairy := createTestCategory(t, s, "Dairy")
	createTestIngredient(t, s, "Milk", dairy.ID)

	query := `
		query Pantry($withIngredients: Boolean!) {
			cats: allCategories {
				__typename
				...CategoryParts
				ingredients @include(if: $withIngredients) { name }
			}
			allIngredients { ... on Ingredient { label: name categoryId } }
		}
		fragment CategoryParts on Category { id name }
	`

	t.Run("include", func(t *testing.T) {
		data, errs := run(t, exec, query, map[string]any{"withIngredients": true})
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		cat := data["cats"].([]any)[0].(map[string]any)
		if cat["__typename"] != "Category" || cat["name"] != "Dairy" {
			t.Errorf("category = %v", cat)
		}
		if _, ok := cat["ingredients"]; !ok {
			t.Error("ingredients missing with @include(if: true)")
		}

		ing := data["allIngredients"].([]any)[0].(map[string]any)
		if ing["label"] != "Milk" || ing["categoryId"] != pantry.FormatID(dairy.ID) {
			t.Errorf("ingredient = %v", ing)
		}
	})

	t.Run("skip", func(t *testing.T) {
		data, errs := run(t, exec, query, map[string]any{"withIngredients": false})
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		cat := data["cats"].([]any)[0].(map[string]any)
		if _, ok := cat["ingredients"]; ok {
			t.Error("ingredients present with @include(if: false)")
		}
	})
}

func TestExecResponseKeepsSelectionOrder(t *testing.T) {
	exec, s := setupTestExecutor(t)
	createTestCategory(t, s, "Dairy")

	resp := Execute(context.Background(), exec, &graphql.RawParams{Query: `{ allCategories { name id } }`})
	if resp.Errors != nil {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}
	if want := `{"allCategories":[{"name":"Dairy","id":"1"}]}`; string(resp.Data) != want {
		t.Errorf("data = %s, want %s", resp.Data, want)
	}
}

func TestExecIntrospection(t *testing.T) {
	exec, _ := setupTestExecutor(t)

	data, errs := run(t, exec, `{
		__schema { queryType { name } mutationType { name } types { name } }
		__type(name: "Ingredient") {
			kind
			fields { name type { kind name ofType { name } } }
		}
	}`, nil)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	schema := data["__schema"].(map[string]any)
	if schema["queryType"].(map[string]any)["name"] != "Query" {
		t.Errorf("queryType = %v", schema["queryType"])
	}
	if schema["mutationType"].(map[string]any)["name"] != "Mutation" {
		t.Errorf("mutationType = %v", schema["mutationType"])
	}

	typ := data["__type"].(map[string]any)
	if typ["kind"] != "OBJECT" {
		t.Errorf("kind = %v, want OBJECT", typ["kind"])
	}
	fields := map[string]map[string]any{}
	for _, f := range typ["fields"].([]any) {
		m := f.(map[string]any)
		fields[m["name"].(string)] = m["type"].(map[string]any)
	}
	if got := fields["id"]; got["kind"] != "NON_NULL" || got["ofType"].(map[string]any)["name"] != "ID" {
		t.Errorf("id type = %v, want ID!", got)
	}
	if got := fields["category"]; got["kind"] != "OBJECT" || got["name"] != "Category" {
		t.Errorf("category type = %v, want nullable Category", got)
	}

	t.Run("unknown type", func(t *testing.T) {
		data, errs := run(t, exec, `{ __type(name: "Nope") { name } }`, nil)
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if data["__type"] != nil {
			t.Errorf("__type = %v, want null", data["__type"])
		}
	})
}

func TestExecValidationFailure(t *testing.T) {
	exec, _ := setupTestExecutor(t)

	resp := Execute(context.Background(), exec, &graphql.RawParams{Query: `{ allCategories { nope } }`})
	if len(resp.Errors) == 0 {
		t.Fatal("expected a validation error")
	}
	if resp.Data != nil {
		t.Errorf("data = %s, want none", resp.Data)
	}
}

func TestSchemaParses(t *testing.T) {
	es := NewExecutableSchema(Config{Resolvers: &Resolver{}})
	for _, name := range []string{"Category", "Ingredient", "DeleteIngredientPayload"} {
		if es.Schema().Types[name] == nil {
			t.Errorf("schema has no type %s", name)
		}
	}
}
