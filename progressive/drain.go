package progressive

import "time"

// Drain queries w with the given budget until it finishes and returns the
// output. onUpdate, when non-nil, receives every intermediate progress
// update. Drain blocks the caller for the whole run; it suits headless
// callers that only want the slicing for its progress reports.
func Drain[D, P, O, C any](w *Waiter[D, P, O, C], budget time.Duration, c C, onUpdate func(P)) O {
	for {
		res := w.Query(budget, c)
		if out, ok := res.Output(); ok {
			return out
		}
		if onUpdate != nil {
			update, _ := res.Update()
			onUpdate(update)
		}
	}
}
