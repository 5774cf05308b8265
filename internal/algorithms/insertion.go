package algorithms

import (
	"iter"

	"github.com/san-kum/sortsim/internal/ops"
)

// Insertion lifts each element out as the key, shifts larger elements of
// the sorted prefix one slot right and writes the key into the gap.
func Insertion(input []float64) iter.Seq[ops.Operation] {
	return produce(input, insertion[float64])
}

func insertion[T any](e *emitter[T]) {
	n := len(e.a)
	for i := 1; i < n; i++ {
		key := e.a[i]
		j := i - 1
		for j >= 0 {
			// j+1 is the gap the key currently occupies.
			if !e.compare(j, j+1) {
				return
			}
			if !e.less(key, e.a[j]) {
				break
			}
			if !e.overwrite(j+1, e.a[j]) {
				return
			}
			j--
		}
		if !e.overwrite(j+1, key) {
			return
		}
	}
	e.markAll()
}
