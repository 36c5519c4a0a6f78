package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/progressive/progressive"
)

// Run ties one waiter's lifetime to a span. Every slice becomes a span
// event and is forwarded to the optional SliceMetrics. Run satisfies
// progressive.Recorder, so it can be passed to progressive.WithRecorder.
type Run struct {
	ID        string
	Loader    string
	StartTime time.Time
	Metrics   *SliceMetrics

	span     trace.Span
	slices   int
	elements int
}

var _ progressive.Recorder = (*Run)(nil)

type runKey struct{}

// StartRun opens a span named "progressive.run" for the given loader.
// If metrics is nil, metric recording is silently skipped.
func StartRun(ctx context.Context, id, loaderName string, metrics *SliceMetrics) (context.Context, *Run) {
	ctx, span := startRunSpan(ctx, id, loaderName)
	r := &Run{
		ID:        id,
		Loader:    loaderName,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	return context.WithValue(ctx, runKey{}, r), r
}

// RunFromContext retrieves the Run from context, or nil.
func RunFromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey{}).(*Run); ok {
		return r
	}
	return nil
}

// RecordSlice adds a span event for the slice and forwards it to Metrics.
func (r *Run) RecordSlice(name string, stats progressive.SliceStats) {
	r.slices++
	r.elements += stats.Elements

	if r.span.IsRecording() {
		r.span.AddEvent(EventSlice, sliceEvent(stats.Elements,
			stats.Elapsed.Microseconds(), stats.Budget.Microseconds(), stats.Done))
	}
	if r.Metrics != nil {
		r.Metrics.RecordSlice(name, stats)
	}
}

// Describe records what the run consumes: the input names and the total
// number of elements they hold.
func (r *Run) Describe(inputs []string, total int) {
	r.span.SetAttributes(
		attribute.StringSlice(AttrInputs, inputs),
		attribute.Int(AttrTotal, total),
	)
}

// Slices returns how many slices were recorded.
func (r *Run) Slices() int { return r.slices }

// Elements returns the total number of elements across recorded slices.
func (r *Run) Elements() int { return r.elements }

// Duration returns the time since the run started.
func (r *Run) Duration() time.Duration { return time.Since(r.StartTime) }

// End closes the span. A non-nil err marks the span as failed.
func (r *Run) End(err error) {
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	}
	r.span.SetAttributes(
		attribute.Int(AttrSlices, r.slices),
		attribute.Int(AttrElements, r.elements),
		attribute.Int64(AttrDurationMs, r.Duration().Milliseconds()),
	)
	r.span.End()
}
