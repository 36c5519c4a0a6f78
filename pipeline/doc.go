// Package pipeline composes progressive sources.
//
// Operators are lazy: no element is pulled until the resulting source is.
// Operators that cannot change the number of elements have a Sized variant
// that keeps Len exact, so the result can still feed a SizedWaiter.
//
// # Usage
//
//	lines := pipeline.ConcatSized(progressive.FromSlice(a), progressive.FromSlice(b))
//	trimmed := pipeline.MapSized(lines, strings.TrimSpace)
//	first := pipeline.TakeSized(trimmed, 1000)
//	w := progressive.NewSized(counter, first)
package pipeline
