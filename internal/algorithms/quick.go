package algorithms

import (
	"iter"

	"github.com/san-kum/sortsim/internal/ops"
)

// Quick partitions around the last element of each range (Lomuto), marks
// the pivot's final slot, then recurses left before right.
func Quick(input []float64) iter.Seq[ops.Operation] {
	return produce(input, quick[float64])
}

func quick[T any](e *emitter[T]) {
	var sortRange func(low, high int) bool
	sortRange = func(low, high int) bool {
		if low > high {
			return true
		}
		if low == high {
			return e.mark(low)
		}
		pi, ok := partition(e, low, high)
		if !ok {
			return false
		}
		return sortRange(low, pi-1) && sortRange(pi+1, high)
	}
	sortRange(0, len(e.a)-1)
}

func partition[T any](e *emitter[T], low, high int) (int, bool) {
	pivot := e.a[high]
	i := low - 1
	for j := low; j <= high-1; j++ {
		if !e.compare(j, high) {
			return 0, false
		}
		if e.less(e.a[j], pivot) {
			i++
			if !e.swap(i, j) {
				return 0, false
			}
		}
	}
	pi := i + 1
	if !e.swap(pi, high) || !e.mark(pi) {
		return 0, false
	}
	return pi, true
}
