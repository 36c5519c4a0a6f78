package progressive

// Source is a lazy, pull-based sequence. Elements are never replayed.
type Source[D any] interface {
	// Next returns the next element, or false once the sequence is exhausted.
	Next() (D, bool)
}

// SizedSource is a Source that knows exactly how many elements remain
// without consuming them.
type SizedSource[D any] interface {
	Source[D]
	// Len returns the number of elements not yet returned by Next.
	Len() int
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[D any] func() (D, bool)

// Next calls f.
func (f SourceFunc[D]) Next() (D, bool) { return f() }

// FromFunc creates a Source from a pull function.
func FromFunc[D any](next func() (D, bool)) Source[D] {
	return SourceFunc[D](next)
}

// FromSlice creates a SizedSource over items. The slice is not copied and
// must not be modified while the source is in use.
func FromSlice[D any](items []D) SizedSource[D] {
	return &sliceSource[D]{items: items}
}

// Sized wraps src with a caller-asserted exact element count n. Len counts
// down as elements are pulled and drops to zero once src reports exhaustion.
// The count is not enforced: if src yields more than n elements, Len stays
// at zero for the extras and a SizedWaiter's TotalElements grows past n.
func Sized[D any](src Source[D], n int) SizedSource[D] {
	if n < 0 {
		n = 0
	}
	return &sizedSource[D]{src: src, left: n}
}

type sliceSource[D any] struct {
	items []D
	index int
}

func (s *sliceSource[D]) Next() (D, bool) {
	if s.index >= len(s.items) {
		var zero D
		return zero, false
	}
	val := s.items[s.index]
	s.index++
	return val, true
}

func (s *sliceSource[D]) Len() int { return len(s.items) - s.index }

type sizedSource[D any] struct {
	src  Source[D]
	left int
}

func (s *sizedSource[D]) Next() (D, bool) {
	val, ok := s.src.Next()
	switch {
	case !ok:
		s.left = 0
	case s.left > 0:
		s.left--
	}
	return val, ok
}

func (s *sizedSource[D]) Len() int { return s.left }
