package pantry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError reports that no record of Entity matched Field == Key.
type NotFoundError struct {
	Entity string
	Field  string
	Key    any
}

func (e *NotFoundError) Error() string {
	if e.Field == "name" {
		return fmt.Sprintf("%s with name '%v' not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s with %s %v not found", e.Entity, e.Field, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports an input that was rejected before touching the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CategoryNotFound builds the error for a missing category id.
func CategoryNotFound(id uint) error {
	return &NotFoundError{Entity: EntityCategory, Field: "ID", Key: id}
}

// CategoryNameNotFound builds the error for a missing category name.
func CategoryNameNotFound(name string) error {
	return &NotFoundError{Entity: EntityCategory, Field: "name", Key: name}
}

// IngredientNotFound builds the error for a missing ingredient id.
func IngredientNotFound(id uint) error {
	return &NotFoundError{Entity: EntityIngredient, Field: "ID", Key: id}
}

// IsNotFound reports whether err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
