package progressive

import (
	"time"

	"github.com/kbukum/progressive/errors"
	"github.com/kbukum/progressive/logger"
)

// State is the lifecycle state of a Waiter.
type State int

const (
	// StateActive means the waiter still owns its loader.
	StateActive State = iota
	// StateFinished means the loader has been consumed. It is terminal.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Waiter feeds the elements of a Source into a Loader in time slices.
type Waiter[D, P, O, C any] struct {
	src    Source[D]
	loader Loader[D, P, O, C] // nil once finished
	state  State
	count  int
	last   SliceStats
	opts   options
}

// New creates a Waiter that owns loader and src. Neither may be used by the
// caller afterwards.
func New[D, P, O, C any](loader Loader[D, P, O, C], src Source[D], opts ...Option) *Waiter[D, P, O, C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Waiter[D, P, O, C]{
		src:    src,
		loader: loader,
		state:  StateActive,
		opts:   o,
	}
}

// Query processes elements until budget has elapsed or the source is
// exhausted. It returns Loading with the latest progress update in the
// first case; in the second it finishes the loader and returns Done with
// its output.
//
// At least one element is processed per call while any remain, whatever
// the budget. Query panics if the waiter is already finished.
func (w *Waiter[D, P, O, C]) Query(budget time.Duration, c C) LoadResult[P, O] {
	if w.state == StateFinished {
		panic(errors.LoaderFinished("Query"))
	}

	start := w.opts.clock.Now()
	processed := 0

	for {
		data, ok := w.src.Next()
		if !ok {
			break
		}
		w.count++
		processed++
		update := w.loader.Operate(data, c)

		if elapsed := w.opts.clock.Since(start); elapsed >= budget {
			w.endSlice(SliceStats{Elements: processed, Elapsed: elapsed, Budget: budget})
			return Loading[P, O](update)
		}
	}

	loader := w.loader
	w.loader = nil
	w.state = StateFinished
	output := loader.Finish(c)

	w.endSlice(SliceStats{
		Elements: processed,
		Elapsed:  w.opts.clock.Since(start),
		Budget:   budget,
		Done:     true,
	})
	return Done[P, O](output)
}

// FinishedCount returns how many elements have been processed. It is valid
// in every state.
func (w *Waiter[D, P, O, C]) FinishedCount() int {
	return w.count
}

// State returns the current lifecycle state.
func (w *Waiter[D, P, O, C]) State() State {
	return w.state
}

// IsFinished reports whether the final output has been produced.
func (w *Waiter[D, P, O, C]) IsFinished() bool {
	return w.state == StateFinished
}

// Loader returns the loader the waiter owns, for inspection between slices.
// It panics once the waiter is finished.
func (w *Waiter[D, P, O, C]) Loader() Loader[D, P, O, C] {
	if w.state == StateFinished {
		panic(errors.LoaderFinished("Loader"))
	}
	return w.loader
}

// LastSlice returns the stats of the most recent Query call.
func (w *Waiter[D, P, O, C]) LastSlice() SliceStats {
	return w.last
}

func (w *Waiter[D, P, O, C]) endSlice(stats SliceStats) {
	w.last = stats

	if w.opts.recorder != nil {
		w.opts.recorder.RecordSlice(w.opts.name, stats)
	}
	if w.opts.log == nil {
		return
	}

	fields := logger.MergeWithDuration(logger.Fields(
		"loader", w.opts.name,
		logger.FieldElements, stats.Elements,
		logger.FieldCount, w.count,
	), stats.Elapsed)
	if stats.Done {
		w.opts.log.Info("loader finished", fields)
		return
	}
	w.opts.log.Debug("slice complete", fields)
}
