package progressive

// SizedWaiter is a Waiter over a SizedSource, adding progress accounting.
type SizedWaiter[D, P, O, C any] struct {
	*Waiter[D, P, O, C]
	sized SizedSource[D]
}

// NewSized creates a SizedWaiter that owns loader and src.
func NewSized[D, P, O, C any](loader Loader[D, P, O, C], src SizedSource[D], opts ...Option) *SizedWaiter[D, P, O, C] {
	return &SizedWaiter[D, P, O, C]{
		Waiter: New(loader, Source[D](src), opts...),
		sized:  src,
	}
}

// TotalElements returns how many elements there are to process, including
// the ones already done. It is constant while the source's Len is exact,
// and equals FinishedCount once the waiter finishes.
func (w *SizedWaiter[D, P, O, C]) TotalElements() int {
	return w.count + w.sized.Len()
}

// ElementsLeft returns how many elements remain to be processed.
func (w *SizedWaiter[D, P, O, C]) ElementsLeft() int {
	return w.sized.Len()
}

// Progress returns how far through the waiter is, from 0 to 1. A waiter
// with no elements at all reports 1.
func (w *SizedWaiter[D, P, O, C]) Progress() float64 {
	total := w.TotalElements()
	if total == 0 {
		return 1
	}
	return float64(w.count) / float64(total)
}
