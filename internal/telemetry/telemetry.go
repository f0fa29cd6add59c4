// Package telemetry provides OpenTelemetry tracing exported to Honeycomb.
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
	serviceName    = "dungeongen"
	serviceVersion = "0.2.0"

	// DefaultEndpoint is the Honeycomb OTLP ingest URL.
	DefaultEndpoint = "https://api.honeycomb.io"
	defaultDataset  = "dungeongen"
)

// Config selects where spans are sent.
type Config struct {
	APIKey   string
	Dataset  string
	Endpoint string
}

// Enabled reports whether an exporter should be created.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// Headers returns the OTLP headers Honeycomb expects.
func (c Config) Headers() map[string]string {
	dataset := c.Dataset
	if dataset == "" {
		dataset = defaultDataset
	}
	return map[string]string{
		"x-honeycomb-team":    c.APIKey,
		"x-honeycomb-dataset": dataset,
	}
}

// Setup initializes OpenTelemetry with an OTLP HTTP exporter.
// Without an API key nothing is registered and the global no-op provider
// stays in place.
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithHeaders(cfg.Headers()),
	)
	if err != nil {
		return nil, err
	}

	// Own resource rather than merging with Default() to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
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

// Tracer returns a named tracer for the given component.
// Generation stages and HTTP handlers each get their own.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
