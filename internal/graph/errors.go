package graph

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/pantryhq/pantry/internal/logging"
	"github.com/pantryhq/pantry/internal/pantry"
)

// Values of extensions.code on resolver errors.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_FAILED"
	CodeInternal   = "INTERNAL"
)

// ErrorPresenter classifies resolver errors. Not-found and validation errors
// keep their message and carry a code plus the offending entity or field;
// anything else is logged and reported as an internal error.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)
	if gqlErr.Extensions == nil {
		gqlErr.Extensions = map[string]any{}
	}
	if _, ok := gqlErr.Extensions["code"]; ok {
		return gqlErr
	}
	if len(gqlErr.Locations) == 0 {
		gqlErr.Locations = fieldLocation(ctx)
	}

	var (
		notFound   *pantry.NotFoundError
		validation *pantry.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		gqlErr.Extensions["code"] = CodeNotFound
		gqlErr.Extensions["entity"] = notFound.Entity
		gqlErr.Extensions["key"] = fmt.Sprint(notFound.Key)
	case errors.As(err, &validation):
		gqlErr.Extensions["code"] = CodeValidation
		gqlErr.Extensions["field"] = validation.Field
	default:
		gqlErr.Extensions["code"] = CodeInternal
		if gqlErr.Err != nil {
			logging.L().ErrorContext(ctx, "graphql resolver failed",
				"path", gqlErr.Path.String(),
				"error", gqlErr.Err,
			)
			gqlErr.Message = "internal error"
		}
	}
	return gqlErr
}

// Recover turns a resolver panic into an internal error.
func Recover(ctx context.Context, err any) error {
	logging.L().ErrorContext(ctx, "graphql resolver panicked",
		"panic", fmt.Sprint(err),
		"stack", string(debug.Stack()),
	)
	return gqlerror.Errorf("internal system error")
}

func fieldLocation(ctx context.Context) []gqlerror.Location {
	for fc := graphql.GetFieldContext(ctx); fc != nil; fc = fc.Parent {
		if fc.Field.Field != nil && fc.Field.Position != nil {
			return []gqlerror.Location{{Line: fc.Field.Position.Line, Column: fc.Field.Position.Column}}
		}
	}
	return nil
}
