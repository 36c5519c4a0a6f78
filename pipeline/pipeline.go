package pipeline

import "github.com/kbukum/progressive/progressive"

// Map returns a source yielding fn applied to every element of src.
func Map[I, O any](src progressive.Source[I], fn func(I) O) progressive.Source[O] {
	return &mapSource[I, O]{src: src, fn: fn}
}

// MapSized is Map for sized sources.
func MapSized[I, O any](src progressive.SizedSource[I], fn func(I) O) progressive.SizedSource[O] {
	return &sizedMapSource[I, O]{mapSource: mapSource[I, O]{src: src, fn: fn}, sized: src}
}

// Concat returns a source yielding every element of each source in turn.
func Concat[T any](sources ...progressive.Source[T]) progressive.Source[T] {
	return &concatSource[T]{sources: sources}
}

// ConcatSized is Concat for sized sources. Len is the sum of the remaining
// lengths.
func ConcatSized[T any](sources ...progressive.SizedSource[T]) progressive.SizedSource[T] {
	plain := make([]progressive.Source[T], len(sources))
	for i, s := range sources {
		plain[i] = s
	}
	return &sizedConcatSource[T]{concatSource: concatSource[T]{sources: plain}, sized: sources}
}

// Take returns a source yielding at most n elements of src.
func Take[T any](src progressive.Source[T], n int) progressive.Source[T] {
	return &takeSource[T]{src: src, left: max(n, 0)}
}

// TakeSized is Take for sized sources.
func TakeSized[T any](src progressive.SizedSource[T], n int) progressive.SizedSource[T] {
	return &sizedTakeSource[T]{takeSource: takeSource[T]{src: src, left: max(n, 0)}, sized: src}
}

// Collect pulls every remaining element of src into a slice.
func Collect[T any](src progressive.Source[T]) []T {
	var out []T
	for {
		v, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

type mapSource[I, O any] struct {
	src progressive.Source[I]
	fn  func(I) O
}

func (s *mapSource[I, O]) Next() (O, bool) {
	v, ok := s.src.Next()
	if !ok {
		var zero O
		return zero, false
	}
	return s.fn(v), true
}

type sizedMapSource[I, O any] struct {
	mapSource[I, O]
	sized progressive.SizedSource[I]
}

func (s *sizedMapSource[I, O]) Len() int { return s.sized.Len() }

type concatSource[T any] struct {
	sources []progressive.Source[T]
	index   int
}

func (s *concatSource[T]) Next() (T, bool) {
	for s.index < len(s.sources) {
		if v, ok := s.sources[s.index].Next(); ok {
			return v, true
		}
		s.index++
	}
	var zero T
	return zero, false
}

type sizedConcatSource[T any] struct {
	concatSource[T]
	sized []progressive.SizedSource[T]
}

func (s *sizedConcatSource[T]) Len() int {
	n := 0
	for _, src := range s.sized[s.index:] {
		n += src.Len()
	}
	return n
}

type takeSource[T any] struct {
	src  progressive.Source[T]
	left int
}

func (s *takeSource[T]) Next() (T, bool) {
	if s.left == 0 {
		var zero T
		return zero, false
	}
	v, ok := s.src.Next()
	if !ok {
		s.left = 0
		return v, false
	}
	s.left--
	return v, true
}

type sizedTakeSource[T any] struct {
	takeSource[T]
	sized progressive.SizedSource[T]
}

func (s *sizedTakeSource[T]) Len() int { return min(s.left, s.sized.Len()) }
