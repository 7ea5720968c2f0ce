// Package pantry defines the category and ingredient entities together with the
// error kinds shared by the store, the GraphQL resolvers and the CLI.
package pantry

import (
	"strconv"
	"strings"
	"time"
)

// Entity names used in error messages.
const (
	EntityCategory   = "Category"
	EntityIngredient = "Ingredient"
)

// Category groups ingredients. Deleting a category never touches the
// ingredients that reference it.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name" validate:"notblank,max=255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ingredient belongs to exactly one category.
//
// The reference is kept as a plain column rather than a gorm association so
// that no foreign key constraint is created: a category delete must neither
// cascade nor be rejected.
type Ingredient struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name" validate:"notblank,max=255"`
	CategoryID uint      `gorm:"not null;index" json:"categoryId" validate:"required"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ParseID converts an external identifier (GraphQL ID, CLI argument) into a
// primary key. Anything that is not a positive integer is a validation error.
func ParseID(field, raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, &ValidationError{Field: field, Message: "must be a positive integer, got " + strconv.Quote(raw)}
	}
	return uint(n), nil
}

// FormatID renders a primary key the way it is exposed over GraphQL.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
