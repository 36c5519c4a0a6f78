package progressive

import "fmt"

// LoadResult reports whether a Waiter has finished. It holds either a
// progress update (Loading) or the final output (Done).
type LoadResult[P, O any] struct {
	done   bool
	update P
	output O
}

// Loading creates an in-progress result carrying update.
func Loading[P, O any](update P) LoadResult[P, O] {
	return LoadResult[P, O]{update: update}
}

// Done creates a final result carrying output.
func Done[P, O any](output O) LoadResult[P, O] {
	return LoadResult[P, O]{done: true, output: output}
}

// IsDone reports whether this is the final result.
func (r LoadResult[P, O]) IsDone() bool { return r.done }

// Update returns the progress update; ok is false for a final result.
func (r LoadResult[P, O]) Update() (update P, ok bool) {
	return r.update, !r.done
}

// Output returns the final output; ok is false while still loading.
func (r LoadResult[P, O]) Output() (output O, ok bool) {
	return r.output, r.done
}

func (r LoadResult[P, O]) String() string {
	if r.done {
		return fmt.Sprintf("Done(%v)", r.output)
	}
	return fmt.Sprintf("Loading(%v)", r.update)
}
