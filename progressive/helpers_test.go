package progressive

import (
	"testing"
	"time"

	"github.com/kbukum/progressive/errors"
)

// fakeClock only moves when told to.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time                  { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fakeClock) Advance(d time.Duration)         { c.now = c.now.Add(d) }

type unit = struct{}

// sumLoader returns a summing loader that advances clock by step per element.
func sumLoader(clock *fakeClock, step time.Duration) Loader[int, int, int, unit] {
	sum := NewFold(0, func(acc, n int, _ unit) int { return acc + n })
	return LoaderFuncs[int, int, int, unit]{
		OperateFunc: func(n int, c unit) int {
			clock.Advance(step)
			return sum.Operate(n, c)
		},
		FinishFunc: sum.Finish,
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// expectFinishedPanic runs fn and fails unless it panics with LOADER_FINISHED.
func expectFinishedPanic(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		appErr := errors.FromPanic(recover())
		if appErr == nil {
			t.Fatalf("expected %s to panic", op)
		}
		if appErr.Code != errors.ErrCodeLoaderFinished {
			t.Errorf("expected LOADER_FINISHED, got %s", appErr.Code)
		}
		if appErr.Details["operation"] != op {
			t.Errorf("expected operation=%s, got %v", op, appErr.Details["operation"])
		}
	}()
	fn()
}
