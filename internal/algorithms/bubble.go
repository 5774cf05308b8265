package algorithms

import (
	"iter"

	"github.com/san-kum/sortsim/internal/ops"
)

// Bubble compares every adjacent pair of the unsorted prefix and swaps
// out-of-order pairs; each pass fixes the last position of the prefix.
func Bubble(input []float64) iter.Seq[ops.Operation] {
	return produce(input, bubble[float64])
}

func bubble[T any](e *emitter[T]) {
	n := len(e.a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if !e.compare(j, j+1) {
				return
			}
			if e.less(e.a[j+1], e.a[j]) && !e.swap(j, j+1) {
				return
			}
		}
		if !e.mark(n - 1 - i) {
			return
		}
	}
	e.mark(0)
}
