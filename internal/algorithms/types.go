package algorithms

import (
	"iter"
	"slices"

	"github.com/san-kum/sortsim/internal/ops"
)

// Producer builds the operation sequence of one algorithm over input.
type Producer func(input []float64) iter.Seq[ops.Operation]

// Algorithm pairs a registry identifier with its producer.
type Algorithm struct {
	Name    string
	Produce Producer
}

// emitter holds the producer's private working copy and forwards
// operations to the consumer. Once yield returns false every method
// reports false and the algorithm unwinds.
type emitter[T any] struct {
	yield   func(ops.Operation) bool
	a       []T
	less    func(x, y T) bool
	value   func(T) float64
	stopped bool
}

func (e *emitter[T]) emit(op ops.Operation) bool {
	if e.stopped {
		return false
	}
	if !e.yield(op) {
		e.stopped = true
		return false
	}
	return true
}

func (e *emitter[T]) compare(i, j int) bool {
	return e.emit(ops.Compare(i, j))
}

func (e *emitter[T]) swap(i, j int) bool {
	e.a[i], e.a[j] = e.a[j], e.a[i]
	return e.emit(ops.Swap(i, j))
}

func (e *emitter[T]) overwrite(i int, v T) bool {
	e.a[i] = v
	return e.emit(ops.Overwrite(i, e.value(v)))
}

func (e *emitter[T]) mark(i int) bool {
	return e.emit(ops.MarkSorted(i))
}

func (e *emitter[T]) markAll() bool {
	for i := range e.a {
		if !e.mark(i) {
			return false
		}
	}
	return true
}

func lessFloat(x, y float64) bool { return x < y }

func identity(x float64) float64 { return x }

// produce wraps a generic algorithm body as a float64 producer. The input
// is copied once here and again for every iteration of the sequence.
func produce(input []float64, run func(e *emitter[float64])) iter.Seq[ops.Operation] {
	src := ops.Clone(input)
	return func(yield func(ops.Operation) bool) {
		if len(src) < 2 {
			return
		}
		run(&emitter[float64]{
			yield: yield,
			a:     ops.Clone(src),
			less:  lessFloat,
			value: identity,
		})
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[ops.Operation]) []ops.Operation {
	return slices.Collect(seq)
}

// Replay applies every operation of seq to a fresh copy of input and
// returns the final values.
func Replay(input []float64, seq iter.Seq[ops.Operation]) ([]float64, error) {
	snap := ops.NewSnapshot(input)
	for op := range seq {
		if err := snap.Apply(op); err != nil {
			return nil, err
		}
	}
	return snap.Values(), nil
}
