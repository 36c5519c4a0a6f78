// Package progressive drives long-running, element-by-element work in
// bounded time slices so that a single-threaded caller (an event loop, a UI
// frame handler, a cooperative scheduler) can interleave it with other
// responsibilities.
//
// A Loader consumes one element at a time and is consumed itself once the
// input is exhausted. A Waiter owns a Loader and a Source and feeds elements
// to the loader until the caller's time budget is spent, returning a
// LoadResult that is either a progress update or the final output.
//
// # Usage
//
//	sum := progressive.NewFold(0, func(acc, n int, _ struct{}) int { return acc + n })
//	w := progressive.NewSized[int, int, int, struct{}](sum, progressive.FromSlice(values))
//
//	// once per frame:
//	res := w.Query(4*time.Millisecond, struct{}{})
//	if out, ok := res.Output(); ok {
//	    // done; w must not be queried again
//	}
//	bar.Set(w.Progress())
//
// Every Query call processes at least one element while any remain, even
// when the budget is zero, and the budget is only checked between
// elements: a single slow Operate call stalls the caller for its full
// duration.
//
// Calling Query or Loader after the final result has been returned is a
// programming error and panics with an *errors.AppError whose code is
// errors.ErrCodeLoaderFinished.
//
// A Waiter is not safe for concurrent use. Cancellation is dropping it.
package progressive
