package graph

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/executor"
	"github.com/99designs/gqlgen/graphql/handler/extension"
)

// NewExecutor returns an in-process executor configured like the HTTP
// handler: introspection enabled, errors classified, panics recovered.
func NewExecutor(es graphql.ExecutableSchema) *executor.Executor {
	exec := executor.New(es)
	exec.Use(extension.Introspection{})
	exec.Use(Metrics{})
	exec.SetErrorPresenter(ErrorPresenter)
	exec.SetRecoverFunc(Recover)
	return exec
}

// Execute runs a single operation. Parse and validation failures are
// returned as a response carrying only errors.
func Execute(ctx context.Context, exec *executor.Executor, params *graphql.RawParams) *graphql.Response {
	ctx = graphql.StartOperationTrace(ctx)

	opCtx, errs := exec.CreateOperationContext(ctx, params)
	if errs != nil {
		return exec.DispatchError(graphql.WithOperationContext(ctx, opCtx), errs)
	}

	ctx = graphql.WithOperationContext(ctx, opCtx)
	handler, ctx := exec.DispatchOperation(ctx, opCtx)
	return handler(ctx)
}
