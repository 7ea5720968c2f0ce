package graph

import (
	"context"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// operationsTotal counts executed operations by type and result
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantry_graphql_operations_total",
		Help: "Total GraphQL operations by type and result",
	}, []string{"type", "result"})

	// operationDuration tracks end-to-end operation latency
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pantry_graphql_operation_duration_seconds",
		Help:    "GraphQL operation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"type"})

	// resolverDuration tracks resolver method latency
	resolverDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pantry_graphql_resolver_duration_seconds",
		Help:    "GraphQL resolver duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"object", "field"})

	// errorsTotal counts response errors by extensions.code
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantry_graphql_errors_total",
		Help: "Total GraphQL errors by code",
	}, []string{"code"})
)

// Metrics is a gqlgen handler extension that records Prometheus metrics for
// every operation and resolver call.
type Metrics struct{}

var _ interface {
	graphql.HandlerExtension
	graphql.ResponseInterceptor
	graphql.FieldInterceptor
} = Metrics{}

func (Metrics) ExtensionName() string {
	return "PrometheusMetrics"
}

func (Metrics) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (Metrics) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	if !graphql.HasOperationContext(ctx) {
		return next(ctx)
	}

	start := time.Now()
	resp := next(ctx)
	if resp == nil {
		return resp
	}

	typ := operationType(graphql.GetOperationContext(ctx))
	result := "success"
	if len(resp.Errors) > 0 {
		result = "error"
	}
	operationsTotal.WithLabelValues(typ, result).Inc()
	operationDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())

	for _, err := range resp.Errors {
		code, _ := err.Extensions["code"].(string)
		if code == "" {
			code = "UNKNOWN"
		}
		errorsTotal.WithLabelValues(code).Inc()
	}
	return resp
}

func (Metrics) InterceptField(ctx context.Context, next graphql.Resolver) (any, error) {
	fc := graphql.GetFieldContext(ctx)
	if fc == nil || !fc.IsResolver {
		return next(ctx)
	}

	start := time.Now()
	res, err := next(ctx)
	resolverDuration.WithLabelValues(fc.Object, fc.Field.Name).Observe(time.Since(start).Seconds())
	return res, err
}

// operationType is query, mutation or subscription, or "unknown" when the
// document failed before an operation was selected.
func operationType(opCtx *graphql.OperationContext) string {
	if opCtx == nil || opCtx.Operation == nil {
		return "unknown"
	}
	return string(opCtx.Operation.Operation)
}
