// Package tracing wires one process-wide OpenTelemetry tracer provider,
// emitting spans to stdout. It exists so each pipeline stage (ingest
// fetch, moment extraction's LLM call, video match search, chat
// retrieval) can be traced end to end even though the spec's Non-goals
// scope out an editorial/auth surface, not observability.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "hansardkb"

// Init builds a stdout-exporting tracer provider and installs it as the
// global provider, returning a shutdown func for a clean process exit.
func Init(ctx context.Context) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

// Tracer returns the shared tracer used by every pipeline stage.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a span named "stage.action" and returns the
// derived context and the span to End().
func StartSpan(ctx context.Context, stage, action string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, stage+"."+action)
}
