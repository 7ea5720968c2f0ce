package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Writer
	Writer = &buf
	t.Cleanup(func() { Writer = prev })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	return m
}

func TestSuccess(t *testing.T) {
	buf := capture(t)

	if err := Success(map[string]string{"name": "Dairy"}, "Category created"); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	got := decode(t, buf)
	if got["success"] != true {
		t.Errorf("success = %v, want true", got["success"])
	}
	if got["message"] != "Category created" {
		t.Errorf("message = %v", got["message"])
	}
	if got["data"].(map[string]any)["name"] != "Dairy" {
		t.Errorf("data = %v", got["data"])
	}
	if _, ok := got["error"]; ok {
		t.Error("error key present on success")
	}
}

func TestSuccessMultiple(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  float64
	}{
		{"nil", nil, 0},
		{"two", []string{"a", "b"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			if err := SuccessMultiple(tt.items); err != nil {
				t.Fatalf("SuccessMultiple() error = %v", err)
			}
			got := decode(t, buf)
			if got["count"] != tt.want {
				t.Errorf("count = %v, want %v", got["count"], tt.want)
			}
			if _, ok := got["items"].([]any); !ok {
				t.Errorf("items = %v, want a list", got["items"])
			}
		})
	}
}

func TestError(t *testing.T) {
	buf := capture(t)

	err := Error(ErrNotFound, "Category with ID 3 not found")

	var jsonErr *JSONError
	if !errors.As(err, &jsonErr) {
		t.Fatalf("Error() = %T, want *JSONError", err)
	}
	if jsonErr.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", jsonErr.Code, ErrNotFound)
	}

	got := decode(t, buf)
	if got["success"] != false || got["code"] != ErrNotFound {
		t.Errorf("envelope = %v", got)
	}
	if got["error"] != "Category with ID 3 not found" {
		t.Errorf("error = %v", got["error"])
	}
}
