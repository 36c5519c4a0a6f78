package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/progressive/logger"
)

const instrumentationName = "github.com/kbukum/progressive/observability"

// Span and event names. A run is one span; each slice is an event on it.
const (
	SpanRun    = "progressive.run"
	EventSlice = "slice"
)

// Attribute keys set on the run span and its slice events.
const (
	AttrRunID      = "run.id"
	AttrLoader     = "loader"
	AttrInputs     = "inputs"
	AttrTotal      = "total_elements"
	AttrDone       = "done"
	AttrElements   = "elements"
	AttrSlices     = "slices"
	AttrElapsedUs  = "elapsed_us"
	AttrBudgetUs   = "budget_us"
	AttrDurationMs = "duration_ms"
)

// TracerConfig configures run span export.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP collector, host:port.
	Endpoint string
	Insecure bool
	// SampleRate is the fraction of runs traced, from 0 to 1.
	SampleRate float64
}

// DefaultTracerConfig traces every run to a local collector.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName: serviceName,
		Environment: "development",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		SampleRate:  1.0,
	}
}

// InitTracer installs a batching OTLP tracer provider as the global one.
// Callers must Shutdown it so buffered run spans are flushed.
func InitTracer(ctx context.Context, config TracerConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(runSampler(config.SampleRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Debug("tracer initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"sample_rate", config.SampleRate,
	))
	return tp, nil
}

func runSampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// newResource describes this process to trace and metric backends.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", environment),
		),
	)
}

// startRunSpan opens the span covering one waiter's lifetime, using
// whichever tracer provider is installed globally.
func startRunSpan(ctx context.Context, id, loaderName string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, SpanRun,
		trace.WithAttributes(
			attribute.String(AttrRunID, id),
			attribute.String(AttrLoader, loaderName),
		))
}

func sliceEvent(elements int, elapsedUs, budgetUs int64, done bool) trace.EventOption {
	return trace.WithAttributes(
		attribute.Int(AttrElements, elements),
		attribute.Int64(AttrElapsedUs, elapsedUs),
		attribute.Int64(AttrBudgetUs, budgetUs),
		attribute.Bool(AttrDone, done),
	)
}
