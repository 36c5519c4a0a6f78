package progressive

// Loader handles a stream of data that might take a long time to process.
//
// D is the element type, P the progress update returned for each element,
// O the final output and C auxiliary context passed to every call. Use
// struct{} for any of them that carry no information.
type Loader[D, P, O, C any] interface {
	// Operate processes one element. It is called in a tight loop, so its
	// cost should be small relative to the caller's time budget.
	Operate(data D, c C) P
	// Finish is called exactly once, after the input is exhausted, and
	// returns what the loader has been building towards. The loader is not
	// used again afterwards.
	Finish(c C) O
}

// LoaderFuncs adapts a pair of functions to the Loader interface.
// A nil FinishFunc yields the zero output.
type LoaderFuncs[D, P, O, C any] struct {
	OperateFunc func(data D, c C) P
	FinishFunc  func(c C) O
}

// Operate calls OperateFunc.
func (l LoaderFuncs[D, P, O, C]) Operate(data D, c C) P {
	return l.OperateFunc(data, c)
}

// Finish calls FinishFunc.
func (l LoaderFuncs[D, P, O, C]) Finish(c C) O {
	if l.FinishFunc == nil {
		var zero O
		return zero
	}
	return l.FinishFunc(c)
}

// Fold accumulates elements into a single value. The running accumulator is
// both the progress update and the final output.
type Fold[D, O, C any] struct {
	acc  O
	step func(acc O, data D, c C) O
}

// NewFold creates a Fold starting from initial.
func NewFold[D, O, C any](initial O, step func(acc O, data D, c C) O) *Fold[D, O, C] {
	return &Fold[D, O, C]{acc: initial, step: step}
}

func (f *Fold[D, O, C]) Operate(data D, c C) O {
	f.acc = f.step(f.acc, data, c)
	return f.acc
}

func (f *Fold[D, O, C]) Finish(_ C) O {
	return f.acc
}

// Collector gathers every element into a slice. Its progress update is the
// number of elements collected so far.
type Collector[D, C any] struct {
	items []D
}

// NewCollector creates an empty Collector.
func NewCollector[D, C any]() *Collector[D, C] {
	return &Collector[D, C]{}
}

func (c *Collector[D, C]) Operate(data D, _ C) int {
	c.items = append(c.items, data)
	return len(c.items)
}

func (c *Collector[D, C]) Finish(_ C) []D {
	items := c.items
	c.items = nil
	return items
}
