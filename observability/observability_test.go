package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/progressive/progressive"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

// newTestMeter returns slice metrics backed by a manual reader.
func newTestMeter(t *testing.T) (*SliceMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewSliceMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewSliceMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", m.Name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestSliceMetrics_RecordSlice(t *testing.T) {
	m, reader := newTestMeter(t)

	m.RecordSlice("sum", progressive.SliceStats{Elements: 4, Elapsed: 2 * time.Millisecond, Budget: 8 * time.Millisecond})
	m.RecordSlice("sum", progressive.SliceStats{Elements: 6, Elapsed: 9 * time.Millisecond, Budget: 8 * time.Millisecond})
	m.RecordSlice("sum", progressive.SliceStats{Elements: 0, Elapsed: time.Microsecond, Budget: 8 * time.Millisecond, Done: true})

	got := collect(t, reader)

	tests := []struct {
		name string
		want int64
	}{
		{MetricSlices, 3},
		{MetricElements, 10},
		{MetricOverBudget, 1},
		{MetricCompleted, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := got[tt.name]
			if !ok {
				t.Fatalf("metric %s not collected", tt.name)
			}
			if v := sumOf(t, m); v != tt.want {
				t.Errorf("expected %d, got %d", tt.want, v)
			}
		})
	}

	hist, ok := got[MetricSliceDuration].Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", got[MetricSliceDuration].Data)
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 3 {
		t.Errorf("expected 3 duration samples, got %d", count)
	}
}

func TestSliceMetrics_LoaderAttribute(t *testing.T) {
	m, reader := newTestMeter(t)

	m.RecordSlice("a", progressive.SliceStats{Elements: 1})
	m.RecordSlice("b", progressive.SliceStats{Elements: 1})

	sum := collect(t, reader)[MetricSlices].Data.(metricdata.Sum[int64])
	loaders := map[string]bool{}
	for _, dp := range sum.DataPoints {
		v, ok := dp.Attributes.Value(attribute.Key(AttrLoader))
		if !ok {
			t.Fatal("expected loader attribute on data point")
		}
		loaders[v.AsString()] = true
	}
	if !loaders["a"] || !loaders["b"] {
		t.Errorf("expected data points for loaders a and b, got %v", loaders)
	}
}

func TestSliceMetrics_FromWaiter(t *testing.T) {
	m, reader := newTestMeter(t)

	w := progressive.NewSized[int, int, []int, struct{}](
		progressive.NewCollector[int, struct{}](),
		progressive.FromSlice([]int{1, 2, 3}),
		progressive.WithName("collect"),
		progressive.WithRecorder(m),
	)
	out := progressive.Drain(w.Waiter, time.Hour, struct{}{}, nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 collected elements, got %d", len(out))
	}

	got := collect(t, reader)
	if v := sumOf(t, got[MetricElements]); v != 3 {
		t.Errorf("expected 3 elements, got %d", v)
	}
	if v := sumOf(t, got[MetricCompleted]); v != 1 {
		t.Errorf("expected 1 completion, got %d", v)
	}
}

func useTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	prev := otel.GetTracerProvider()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestStartRun(t *testing.T) {
	exporter := useTestTracer(t)
	m, reader := newTestMeter(t)

	ctx, run := StartRun(context.Background(), "run-1", "sum", m)
	if RunFromContext(ctx) != run {
		t.Fatal("expected run to be stored in context")
	}

	run.RecordSlice("sum", progressive.SliceStats{Elements: 2, Budget: time.Millisecond})
	run.RecordSlice("sum", progressive.SliceStats{Elements: 1, Budget: time.Millisecond, Done: true})
	run.End(nil)

	if run.Slices() != 2 {
		t.Errorf("expected 2 slices, got %d", run.Slices())
	}
	if run.Elements() != 3 {
		t.Errorf("expected 3 elements, got %d", run.Elements())
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != SpanRun {
		t.Errorf("expected span %q, got %q", SpanRun, span.Name)
	}
	if len(span.Events) != 2 {
		t.Errorf("expected 2 slice events, got %d", len(span.Events))
	}
	for _, kv := range span.Attributes {
		if kv.Key == AttrRunID && kv.Value.AsString() != "run-1" {
			t.Errorf("expected run id 'run-1', got %s", kv.Value.AsString())
		}
	}

	if v := sumOf(t, collect(t, reader)[MetricSlices]); v != 2 {
		t.Errorf("expected metrics to receive 2 slices, got %d", v)
	}
}

func TestStartRun_NilMetrics(t *testing.T) {
	_, run := StartRun(context.Background(), "run-2", "sum", nil)
	run.RecordSlice("sum", progressive.SliceStats{Elements: 1})
	run.End(nil)
}

func TestRun_EndWithError(t *testing.T) {
	exporter := useTestTracer(t)

	_, run := StartRun(context.Background(), "run-3", "sum", nil)
	run.End(fmt.Errorf("boom"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
}

func TestRunFromContext_NotSet(t *testing.T) {
	if RunFromContext(context.Background()) != nil {
		t.Error("expected nil when run not set")
	}
}

func TestMeter(t *testing.T) {
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestRun_Describe(t *testing.T) {
	exporter := useTestTracer(t)

	_, run := StartRun(context.Background(), "run-4", "wordcount", nil)
	run.Describe([]string{"a.txt", "b.txt"}, 42)
	run.End(nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	attrs := map[string]attribute.Value{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value
	}
	if got := attrs[AttrInputs].AsStringSlice(); len(got) != 2 || got[1] != "b.txt" {
		t.Errorf("expected inputs [a.txt b.txt], got %v", got)
	}
	if got := attrs[AttrTotal].AsInt64(); got != 42 {
		t.Errorf("expected total 42, got %d", got)
	}
	if got := attrs[AttrLoader].AsString(); got != "wordcount" {
		t.Errorf("expected loader wordcount, got %q", got)
	}
}

func TestRunSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		if got := runSampler(tc.rate).Description(); got != tc.want {
			t.Errorf("runSampler(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}
