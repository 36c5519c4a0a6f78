package progressive

import (
	"time"

	"github.com/kbukum/progressive/logger"
)

// Clock measures elapsed time for the budget check. Implementations must be
// monotonic; wall-clock adjustments must not affect Since.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock uses the runtime's monotonic clock reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time                  { return time.Now() }
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// SliceStats describes one Query call.
type SliceStats struct {
	// Elements is how many elements the call processed.
	Elements int
	// Elapsed is the time spent inside the call.
	Elapsed time.Duration
	// Budget is the time budget the caller allowed.
	Budget time.Duration
	// Done is true for the call that returned the final output.
	Done bool
}

// Recorder receives SliceStats after every Query call.
type Recorder interface {
	RecordSlice(name string, stats SliceStats)
}

// Option configures a Waiter.
type Option func(*options)

type options struct {
	name     string
	clock    Clock
	log      *logger.Logger
	recorder Recorder
}

func defaultOptions() options {
	return options{
		name:  "progressive",
		clock: SystemClock{},
	}
}

// WithName sets the name used in log fields and recorded stats.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger logs every slice at debug level and completion at info level.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRecorder reports every slice to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}
