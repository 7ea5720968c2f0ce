package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryhq/pantry/internal/config"
	"github.com/pantryhq/pantry/internal/pantry"
	"github.com/pantryhq/pantry/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cfg := config.Default().Server
	return New(s, cfg, nil), s
}

type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, r http.Handler, query string, vars map[string]any) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()

	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestGraphQL_CreateAndQuery(t *testing.T) {
	r, _ := setupTestServer(t)

	w, resp := postGraphQL(t, r, `mutation { createCategory(name: "Dairy") { category { id name } } }`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp.Errors)

	cat := resp.Data["createCategory"].(map[string]any)["category"].(map[string]any)
	assert.Equal(t, "Dairy", cat["name"])

	_, resp = postGraphQL(t, r,
		`mutation($name: String!, $cat: Int!) { createIngredient(name: $name, categoryId: $cat) { ingredient { name category { name } } } }`,
		map[string]any{"name": "Milk", "cat": 1})
	require.Empty(t, resp.Errors)
	ing := resp.Data["createIngredient"].(map[string]any)["ingredient"].(map[string]any)
	assert.Equal(t, "Milk", ing["name"])
	assert.Equal(t, "Dairy", ing["category"].(map[string]any)["name"])

	_, resp = postGraphQL(t, r, `{ allCategories { name ingredients { name } } }`, nil)
	require.Empty(t, resp.Errors)
	cats := resp.Data["allCategories"].([]any)
	require.Len(t, cats, 1)
	assert.Len(t, cats[0].(map[string]any)["ingredients"], 1)
}

func TestGraphQL_NotFoundCode(t *testing.T) {
	r, _ := setupTestServer(t)

	_, resp := postGraphQL(t, r, `mutation { createIngredientByCategoryName(name: "Milk", categoryName: "Dairy") { ingredient { id } } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])
	assert.Contains(t, resp.Errors[0].Message, "Dairy")
	assert.Nil(t, resp.Data["createIngredientByCategoryName"])
}

func TestGraphQL_Playground(t *testing.T) {
	r, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestGraphQL_GetQuery(t *testing.T) {
	r, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query="+`%7BallCategories%7Bid%7D%7D`, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"allCategories":[]}}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	r, s := setupTestServer(t)
	require.NoError(t, s.Categories.Save(context.Background(), &pantry.Category{Name: "Dairy"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["categories"])
	assert.Equal(t, float64(0), body["ingredients"])
}

func TestHealth_DatabaseClosed(t *testing.T) {
	r, s := setupTestServer(t)
	require.NoError(t, s.Close())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestID(t *testing.T) {
	r, _ := setupTestServer(t)

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	postGraphQL(t, r, `{ allCategories { id } }`, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "pantry_graphql_operations_total"), "missing graphql metrics")
	assert.True(t, strings.Contains(body, "pantry_http_requests_total"), "missing http metrics")
}

func TestCORS(t *testing.T) {
	r, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLandingPage(t *testing.T) {
	r, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pantry")
}
