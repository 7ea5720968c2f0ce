package graph

//go:generate go run github.com/99designs/gqlgen generate --config ../../gqlgen.yml

import (
	"log/slog"

	"github.com/pantryhq/pantry/internal/logging"
	"github.com/pantryhq/pantry/internal/store"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds a reference to the store for data access.
type Resolver struct {
	Store  *store.Store
	Logger *slog.Logger
}

func (r *Resolver) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.L()
}

// Query returns the QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Mutation returns the MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Category returns the CategoryResolver implementation.
func (r *Resolver) Category() CategoryResolver { return &categoryResolver{r} }

// Ingredient returns the IngredientResolver implementation.
func (r *Resolver) Ingredient() IngredientResolver { return &ingredientResolver{r} }

type queryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type categoryResolver struct{ *Resolver }
type ingredientResolver struct{ *Resolver }
