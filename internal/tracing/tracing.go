// Package tracing wires the OpenTelemetry SDK around the two places a
// request spends meaningful time: the C4 SSH round trip and the C5 tool
// dispatch that wraps it. Disabled by default; when Init is called with
// enabled false it leaves otel's default no-op provider in place, so callers
// never need to branch on whether tracing is live.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/0xEkho/ALE-OmniSwitch-MCP"

// Shutdown flushes and stops the tracer provider installed by Init. Safe to
// call on a disabled/no-op provider.
type Shutdown func(context.Context) error

// Init configures the global tracer provider. When enabled is false it
// leaves otel's default no-op provider in place and returns a Shutdown that
// does nothing. serviceName defaults to "aosgwd" when empty; otlpEndpoint
// defaults to the exporter's own documented default (localhost:4318) when
// empty.
func Init(ctx context.Context, enabled bool, serviceName, otlpEndpoint string) (Shutdown, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	var opts []otlptracehttp.Option
	if otlpEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(otlpEndpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	if serviceName == "" {
		serviceName = "aosgwd"
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer returns this package's tracer from whatever provider Init
// installed (or the no-op default if Init was never called).
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSSHSpan opens a span around one C4 SSH command execution.
func StartSSHSpan(ctx context.Context, host, command string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "ssh.run",
		trace.WithAttributes(
			attribute.String("aos.device.host", host),
			attribute.String("aos.command", command),
		),
	)
}

// StartToolSpan opens a span around one C5 tool dispatch.
func StartToolSpan(ctx context.Context, tool string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "tool.dispatch", trace.WithAttributes(attribute.String("aos.tool", tool)))
}

// EndWithError records err on span (if non-nil) and ends it.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
