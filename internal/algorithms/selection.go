package algorithms

import (
	"iter"

	"github.com/san-kum/sortsim/internal/ops"
)

// Selection scans the unsorted suffix for its minimum and swaps it into
// place. The swap is emitted even when the minimum is already in place.
func Selection(input []float64) iter.Seq[ops.Operation] {
	return produce(input, selection[float64])
}

func selection[T any](e *emitter[T]) {
	n := len(e.a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if !e.compare(j, minIdx) {
				return
			}
			if e.less(e.a[j], e.a[minIdx]) {
				minIdx = j
			}
		}
		if !e.swap(minIdx, i) || !e.mark(i) {
			return
		}
	}
	e.mark(n - 1)
}
