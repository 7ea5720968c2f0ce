package pantry

import (
	"errors"
	"strings"
	"testing"
)

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name      string
		category  Category
		wantField string
	}{
		{"valid", Category{Name: "Dairy"}, ""},
		{"empty name", Category{Name: ""}, "name"},
		{"blank name", Category{Name: "   "}, "name"},
		{"max length", Category{Name: strings.Repeat("x", 255)}, ""},
		{"too long", Category{Name: strings.Repeat("x", 256)}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestIngredientValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		i := Ingredient{Name: "Milk", CategoryID: 1}
		if err := i.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		i := Ingredient{Name: "Milk"}
		var verr *ValidationError
		if err := i.Validate(); !errors.As(err, &verr) {
			t.Fatalf("Validate() error = %v, want *ValidationError", err)
		}
		if verr.Field != "categoryId" {
			t.Errorf("Field = %q, want %q", verr.Field, "categoryId")
		}
	})
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Milk"); err != nil {
		t.Errorf("ValidateName(Milk) error = %v", err)
	}
	err := ValidateName("")
	if !IsValidation(err) {
		t.Fatalf("ValidateName(\"\") error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "must not be empty") {
		t.Errorf("error = %q, want it to mention emptiness", err.Error())
	}
}
