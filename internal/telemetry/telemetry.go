// Package telemetry provides OpenTelemetry tracing for arena generation.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "bulletarena"
	serviceVersion = "0.1.0"
)

// Config selects where spans are exported.
type Config struct {
	// Endpoint is the OTLP HTTP base URL. Empty disables export.
	Endpoint string
	// Headers are sent with every export request (e.g. API keys).
	Headers map[string]string
	// Environment is recorded as deployment.environment.
	Environment string
}

// Enabled reports whether spans should be exported.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}

// Setup installs a global tracer provider that batches spans to the OTLP HTTP
// endpoint in cfg. With no endpoint it installs nothing and returns a no-op
// shutdown, leaving the default no-op provider in place.
//
// The returned shutdown function flushes pending spans and should be called
// on exit.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Endpoint)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource describes this process. It is built from scratch rather than
// merged with resource.Default() to avoid schema URL conflicts.
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", hostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
	}
	if cfg.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", cfg.Environment))
	}
	return resource.New(ctx, resource.WithAttributes(attrs...))
}

// Tracer returns a named tracer for the given component. It resolves the
// global provider on every call so providers installed later are picked up.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
