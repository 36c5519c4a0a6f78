package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/progressive/logger"
	"github.com/kbukum/progressive/progressive"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Instrument names.
const (
	MetricSlices        = "progressive.slices"
	MetricElements      = "progressive.elements"
	MetricSliceDuration = "progressive.slice.duration"
	MetricOverBudget    = "progressive.slice.over_budget"
	MetricCompleted     = "progressive.completed"
)

// SliceMetrics holds the instruments fed by a waiter. It satisfies
// progressive.Recorder.
type SliceMetrics struct {
	slices        metric.Int64Counter
	elements      metric.Int64Counter
	sliceDuration metric.Float64Histogram
	overBudget    metric.Int64Counter
	completed     metric.Int64Counter
}

var _ progressive.Recorder = (*SliceMetrics)(nil)

// NewSliceMetrics creates slice instruments on the given meter.
func NewSliceMetrics(meter metric.Meter) (*SliceMetrics, error) {
	slices, err := meter.Int64Counter(MetricSlices,
		metric.WithDescription("Number of Query calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSlices, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Number of elements processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	sliceDuration, err := meter.Float64Histogram(MetricSliceDuration,
		metric.WithDescription("Time spent inside a Query call in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricSliceDuration, err)
	}

	overBudget, err := meter.Int64Counter(MetricOverBudget,
		metric.WithDescription("Query calls that ran past their time budget"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricOverBudget, err)
	}

	completed, err := meter.Int64Counter(MetricCompleted,
		metric.WithDescription("Number of loaders driven to completion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCompleted, err)
	}

	return &SliceMetrics{
		slices:        slices,
		elements:      elements,
		sliceDuration: sliceDuration,
		overBudget:    overBudget,
		completed:     completed,
	}, nil
}

// RecordSlice records one Query call for the named loader.
func (m *SliceMetrics) RecordSlice(name string, stats progressive.SliceStats) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String(AttrLoader, name),
		attribute.Bool(AttrDone, stats.Done),
	)

	m.slices.Add(ctx, 1, attrs)
	m.elements.Add(ctx, int64(stats.Elements), attrs)
	m.sliceDuration.Record(ctx, stats.Elapsed.Seconds(), attrs)
	if stats.Elapsed > stats.Budget {
		m.overBudget.Add(ctx, 1, attrs)
	}
	if stats.Done {
		m.completed.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrLoader, name)))
	}
}
