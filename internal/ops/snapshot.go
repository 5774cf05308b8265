package ops

import (
	"fmt"
	"math"
)

// Snapshot is the mutable, fixed-length copy of an array that operations
// are applied against.
type Snapshot struct {
	values []float64
}

// NewSnapshot copies input; the caller's slice is never touched afterwards.
func NewSnapshot(input []float64) *Snapshot {
	return &Snapshot{values: Clone(input)}
}

func (s *Snapshot) Len() int { return len(s.values) }

func (s *Snapshot) At(i int) float64 { return s.values[i] }

// Values returns a copy of the current contents.
func (s *Snapshot) Values() []float64 { return Clone(s.values) }

// Apply executes op in place. Compare and MarkSorted only validate their
// indices.
func (s *Snapshot) Apply(op Operation) error {
	for _, i := range op.Indices() {
		if i < 0 || i >= len(s.values) {
			return &OutOfBoundsError{Op: op, Len: len(s.values)}
		}
	}
	switch op.Kind {
	case KindSwap:
		s.values[op.I], s.values[op.J] = s.values[op.J], s.values[op.I]
	case KindOverwrite:
		s.values[op.I] = op.Value
	}
	return nil
}

// Clone returns an independent copy of a.
func Clone(a []float64) []float64 {
	c := make([]float64, len(a))
	copy(c, a)
	return c
}

// ValidateInput checks that input can be sorted and drawn: it must be
// non-empty and every value finite. NaN has no order and infinities have
// no bar height.
func ValidateInput(input []float64) error {
	if len(input) == 0 {
		return ErrInvalidInput
	}
	for i, v := range input {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %d is %v", ErrInvalidInput, i, v)
		}
	}
	return nil
}

// IsSorted reports whether a is non-decreasing. A slice holding NaN is
// never sorted.
func IsSorted(a []float64) bool {
	for i, v := range a {
		if math.IsNaN(v) || i > 0 && a[i-1] > v {
			return false
		}
	}
	return true
}

// IsPermutation reports whether a and b hold the same multiset of values.
func IsPermutation(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[float64]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Inversions counts pairs i < j with a[i] > a[j] in O(n log n).
func Inversions(a []float64) int {
	if len(a) < 2 {
		return 0
	}
	work := Clone(a)
	buf := make([]float64, len(a))
	return countInversions(work, buf)
}

func countInversions(a, buf []float64) int {
	n := len(a)
	if n < 2 {
		return 0
	}
	mid := n / 2
	count := countInversions(a[:mid], buf[:mid]) + countInversions(a[mid:], buf[mid:])

	i, j, k := 0, mid, 0
	for i < mid && j < n {
		if a[i] <= a[j] {
			buf[k] = a[i]
			i++
		} else {
			buf[k] = a[j]
			count += mid - i
			j++
		}
		k++
	}
	k += copy(buf[k:], a[i:mid])
	copy(buf[k:], a[j:])
	copy(a, buf[:n])
	return count
}
