// Package output writes the JSON envelopes printed by CLI commands in --json mode.
package output

import (
	"encoding/json"
	"io"
	"os"
)

// Error codes reported in the "code" field of failed responses.
const (
	ErrNotFound   = "NOT_FOUND"
	ErrValidation = "VALIDATION_ERROR"
	ErrDatabase   = "DATABASE_ERROR"
	ErrConfig     = "CONFIG_ERROR"
	ErrGraphQL    = "GRAPHQL_ERROR"
	ErrCancelled  = "CANCELLED"
)

// Writer receives all JSON output. Tests swap it for a buffer.
var Writer io.Writer = os.Stdout

// Response is the envelope for every JSON response.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Items   any    `json:"items,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// JSONError is returned after a failure envelope has been printed, so the
// caller can exit non-zero without printing the message again.
type JSONError struct {
	Code    string
	Message string
}

func (e *JSONError) Error() string {
	return e.Message
}

// JSON prints r as indented JSON.
func JSON(r Response) error {
	enc := json.NewEncoder(Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Success prints a single result.
func Success(data any, message string) error {
	return JSON(Response{Success: true, Data: data, Message: message})
}

// SuccessMessage prints a result that carries only a message.
func SuccessMessage(message string) error {
	return JSON(Response{Success: true, Message: message})
}

// SuccessMultiple prints a list of results together with its length.
func SuccessMultiple[T any](items []T) error {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	return JSON(Response{Success: true, Items: items, Count: &n})
}

// Error prints a failure envelope and returns a *JSONError.
func Error(code, message string) error {
	if err := JSON(Response{Success: false, Error: message, Code: code}); err != nil {
		return err
	}
	return &JSONError{Code: code, Message: message}
}
