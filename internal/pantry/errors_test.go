package pantry

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"category by id", CategoryNotFound(3), "Category with ID 3 not found"},
		{"category by name", CategoryNameNotFound("Dairy"), "Category with name 'Dairy' not found"},
		{"ingredient by id", IngredientNotFound(7), "Ingredient with ID 7 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("creating ingredient: %w", CategoryNotFound(1))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped) = false, want true")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation(wrapped) = true, want false")
	}

	var nf *NotFoundError
	if !errors.As(wrapped, &nf) {
		t.Fatal("errors.As(*NotFoundError) failed")
	}
	if nf.Entity != EntityCategory || nf.Key != uint(1) {
		t.Errorf("NotFoundError = %+v, want Category/1", nf)
	}

	verr := fmt.Errorf("wrap: %w", &ValidationError{Field: "name", Message: "must not be empty"})
	if !IsValidation(verr) {
		t.Error("IsValidation(verr) = false, want true")
	}
	if IsNotFound(verr) {
		t.Error("IsNotFound(verr) = true, want false")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseID("id", tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsValidation(err) {
					t.Errorf("ParseID(%q) error kind = %T, want *ValidationError", tt.raw, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
