package algorithms

import (
	"iter"

	"github.com/san-kum/sortsim/internal/ops"
)

// Merge sorts both halves recursively and merges them back through
// auxiliary copies. Ties take the left run, so equal values keep their
// input order.
func Merge(input []float64) iter.Seq[ops.Operation] {
	return produce(input, mergeSort[float64])
}

func mergeSort[T any](e *emitter[T]) {
	var sortRange func(l, r int) bool
	sortRange = func(l, r int) bool {
		if l >= r {
			return true
		}
		m := l + (r-l)/2
		return sortRange(l, m) && sortRange(m+1, r) && merge(e, l, m, r)
	}
	if !sortRange(0, len(e.a)-1) {
		return
	}
	e.markAll()
}

func merge[T any](e *emitter[T], l, m, r int) bool {
	left := append([]T(nil), e.a[l:m+1]...)
	right := append([]T(nil), e.a[m+1:r+1]...)

	i, j, k := 0, 0, l
	for i < len(left) && j < len(right) {
		if !e.compare(l+i, m+1+j) {
			return false
		}
		var v T
		if !e.less(right[j], left[i]) {
			v = left[i]
			i++
		} else {
			v = right[j]
			j++
		}
		if !e.overwrite(k, v) {
			return false
		}
		k++
	}
	for ; i < len(left); i++ {
		if !e.overwrite(k, left[i]) {
			return false
		}
		k++
	}
	for ; j < len(right); j++ {
		if !e.overwrite(k, right[j]) {
			return false
		}
		k++
	}
	return true
}
