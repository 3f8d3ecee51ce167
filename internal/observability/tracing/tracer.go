// Package tracing provides OpenTelemetry instrumentation for the HTTP
// surface and the aggregation pipeline.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer for the application.
var tracer = otel.Tracer("stockai-news")

// GetTracer returns the application tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "news.FetchAll")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
