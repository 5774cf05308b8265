package metrics

import "github.com/san-kum/sortsim/internal/ops"

// Inversions tracks how far the snapshot is from sorted. The count is only
// recomputed after mutating operations.
type Inversions struct {
	name    string
	current int
	seen    bool
}

func NewInversions() *Inversions {
	return &Inversions{name: "inversions"}
}

func (m *Inversions) Name() string { return m.name }

func (m *Inversions) Observe(op ops.Operation, values []float64) {
	if m.seen && !op.Kind.Mutates() {
		return
	}
	m.current = ops.Inversions(values)
	m.seen = true
}

func (m *Inversions) Value() float64 { return float64(m.current) }

func (m *Inversions) Reset() {
	m.current = 0
	m.seen = false
}

// Prime sets the count for the initial snapshot before any operation.
func (m *Inversions) Prime(values []float64) {
	m.current = ops.Inversions(values)
	m.seen = true
}
