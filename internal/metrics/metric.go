package metrics

import (
	"sort"

	"github.com/san-kum/sortsim/internal/ops"
)

// Metric accumulates a statistic over the operations applied to one run.
// values is the snapshot after op has been applied and must not be retained.
type Metric interface {
	Name() string
	Observe(op ops.Operation, values []float64)
	Value() float64
	Reset()
}

// Primer is implemented by metrics that depend on the initial snapshot.
type Primer interface {
	Prime(values []float64)
}

// Set is the ordered collection of metrics owned by one controller.
type Set []Metric

// DefaultSet returns fresh comparisons, swaps, writes and inversions metrics.
func DefaultSet() Set {
	return Set{
		NewComparisons(),
		NewSwaps(),
		NewWrites(),
		NewInversions(),
	}
}

func (s Set) Observe(op ops.Operation, values []float64) {
	for _, m := range s {
		m.Observe(op, values)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Prime hands the initial snapshot to every metric that implements Primer.
func (s Set) Prime(values []float64) {
	for _, m := range s {
		if p, ok := m.(Primer); ok {
			p.Prime(values)
		}
	}
}

// Values returns name -> value for every metric in the set.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns the metric names in set order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name()
	}
	return names
}

// SortedKeys returns the keys of a Values map in lexical order.
func SortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
