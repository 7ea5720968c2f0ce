package graph

import (
	"context"
	"errors"

	"github.com/pantryhq/pantry/internal/graph/model"
	"github.com/pantryhq/pantry/internal/pantry"
)

// Ingredients is the resolver for the ingredients field.
func (r *categoryResolver) Ingredients(ctx context.Context, obj *pantry.Category) ([]*pantry.Ingredient, error) {
	return r.Store.IngredientsInCategory(ctx, obj.ID)
}

// Category is the resolver for the category field.
// A dangling reference surfaces as a not-found error on this field.
func (r *ingredientResolver) Category(ctx context.Context, obj *pantry.Ingredient) (*pantry.Category, error) {
	return r.Store.Categories.Get(ctx, obj.CategoryID)
}

// CreateCategory is the resolver for the createCategory field.
func (r *mutationResolver) CreateCategory(ctx context.Context, name string) (*model.CreateCategoryPayload, error) {
	c := &pantry.Category{Name: name}
	if err := r.Store.Categories.Save(ctx, c); err != nil {
		return nil, err
	}

	r.log().InfoContext(ctx, "category created", "id", c.ID, "name", c.Name)
	return &model.CreateCategoryPayload{Category: c}, nil
}

// CreateIngredient is the resolver for the createIngredient field.
func (r *mutationResolver) CreateIngredient(ctx context.Context, name string, categoryID int) (*model.CreateIngredientPayload, error) {
	cid, err := categoryRef(categoryID)
	if err != nil {
		return nil, err
	}
	c, err := r.Store.Categories.Get(ctx, cid)
	if err != nil {
		return nil, err
	}

	i, err := r.createIngredient(ctx, name, c)
	if err != nil {
		return nil, err
	}
	return &model.CreateIngredientPayload{Ingredient: i}, nil
}

// CreateIngredientByCategoryName is the resolver for the createIngredientByCategoryName field.
func (r *mutationResolver) CreateIngredientByCategoryName(ctx context.Context, name string, categoryName string) (*model.CreateIngredientPayload, error) {
	c, err := r.Store.Categories.FirstBy(ctx, "name", categoryName)
	if err != nil {
		return nil, err
	}

	i, err := r.createIngredient(ctx, name, c)
	if err != nil {
		return nil, err
	}
	return &model.CreateIngredientPayload{Ingredient: i}, nil
}

func (r *mutationResolver) createIngredient(ctx context.Context, name string, c *pantry.Category) (*pantry.Ingredient, error) {
	i := &pantry.Ingredient{Name: name, CategoryID: c.ID}
	if err := r.Store.Ingredients.Save(ctx, i); err != nil {
		return nil, err
	}

	r.log().InfoContext(ctx, "ingredient created", "id", i.ID, "name", i.Name, "category_id", c.ID)
	return i, nil
}

// UpdateCategory is the resolver for the updateCategory field.
func (r *mutationResolver) UpdateCategory(ctx context.Context, id string, name string) (*model.UpdateCategoryPayload, error) {
	pk, err := pantry.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	c, err := r.Store.Categories.Get(ctx, pk)
	if err != nil {
		return nil, err
	}

	c.Name = name
	if err := r.Store.Categories.Save(ctx, c); err != nil {
		return nil, err
	}

	r.log().InfoContext(ctx, "category updated", "id", c.ID, "name", c.Name)
	return &model.UpdateCategoryPayload{Category: c}, nil
}

// UpdateIngredient is the resolver for the updateIngredient field.
func (r *mutationResolver) UpdateIngredient(ctx context.Context, id string, name *string, categoryID *int) (*model.UpdateIngredientPayload, error) {
	pk, err := pantry.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	i, err := r.Store.Ingredients.Get(ctx, pk)
	if err != nil {
		return nil, err
	}

	if name == nil && categoryID == nil {
		return &model.UpdateIngredientPayload{Ingredient: i}, nil
	}

	if name != nil {
		i.Name = *name
	}
	if categoryID != nil {
		cid, err := categoryRef(*categoryID)
		if err != nil {
			return nil, err
		}
		c, err := r.Store.Categories.Get(ctx, cid)
		if err != nil {
			return nil, err
		}
		i.CategoryID = c.ID
	}

	if err := r.Store.Ingredients.Save(ctx, i); err != nil {
		return nil, err
	}

	r.log().InfoContext(ctx, "ingredient updated", "id", i.ID, "name", i.Name, "category_id", i.CategoryID)
	return &model.UpdateIngredientPayload{Ingredient: i}, nil
}

// DeleteCategory is the resolver for the deleteCategory field.
func (r *mutationResolver) DeleteCategory(ctx context.Context, id string) (*model.DeleteCategoryPayload, error) {
	pk, err := pantry.ParseID("id", id)
	if err != nil {
		return nil, err
	}

	msg, err := r.deleteResult(r.Store.Categories.Delete(ctx, pk), pantry.EntityCategory, pk)
	if err != nil {
		return nil, err
	}
	return &model.DeleteCategoryPayload{Success: msg.success, Message: msg.text}, nil
}

// DeleteIngredient is the resolver for the deleteIngredient field.
func (r *mutationResolver) DeleteIngredient(ctx context.Context, id string) (*model.DeleteIngredientPayload, error) {
	pk, err := pantry.ParseID("id", id)
	if err != nil {
		return nil, err
	}

	msg, err := r.deleteResult(r.Store.Ingredients.Delete(ctx, pk), pantry.EntityIngredient, pk)
	if err != nil {
		return nil, err
	}
	return &model.DeleteIngredientPayload{Success: msg.success, Message: msg.text}, nil
}

type deleteOutcome struct {
	success bool
	text    string
}

// deleteResult turns a repository delete error into the structured payload
// fields. Only unexpected failures are returned as errors.
func (r *mutationResolver) deleteResult(err error, entity string, id uint) (deleteOutcome, error) {
	var nf *pantry.NotFoundError
	switch {
	case err == nil:
		r.log().Info("deleted", "entity", entity, "id", id)
		return deleteOutcome{success: true, text: entity + " with ID " + pantry.FormatID(id) + " deleted."}, nil
	case errors.As(err, &nf):
		return deleteOutcome{success: false, text: nf.Error() + "."}, nil
	default:
		return deleteOutcome{}, err
	}
}

// AllCategories is the resolver for the allCategories field.
func (r *queryResolver) AllCategories(ctx context.Context) ([]*pantry.Category, error) {
	return r.Store.Categories.List(ctx)
}

// AllIngredients is the resolver for the allIngredients field.
func (r *queryResolver) AllIngredients(ctx context.Context) ([]*pantry.Ingredient, error) {
	return r.Store.Ingredients.List(ctx)
}

// CategoryByID is the resolver for the categoryById field.
func (r *queryResolver) CategoryByID(ctx context.Context, id string) (*pantry.Category, error) {
	pk, err := pantry.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	c, err := r.Store.Categories.Get(ctx, pk)
	if pantry.IsNotFound(err) {
		return nil, nil
	}
	return c, err
}

// IngredientByID is the resolver for the ingredientById field.
func (r *queryResolver) IngredientByID(ctx context.Context, id string) (*pantry.Ingredient, error) {
	pk, err := pantry.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	i, err := r.Store.Ingredients.Get(ctx, pk)
	if pantry.IsNotFound(err) {
		return nil, nil
	}
	return i, err
}

// categoryRef validates a categoryId argument.
func categoryRef(id int) (uint, error) {
	if id <= 0 {
		return 0, &pantry.ValidationError{Field: "categoryId", Message: "must be a positive integer"}
	}
	return uint(id), nil
}
