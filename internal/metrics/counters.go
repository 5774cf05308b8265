package metrics

import "github.com/san-kum/sortsim/internal/ops"

// Counter counts applied operations of a single kind.
type Counter struct {
	name  string
	kind  ops.Kind
	count int
}

func NewComparisons() *Counter { return &Counter{name: "comparisons", kind: ops.KindCompare} }
func NewSwaps() *Counter       { return &Counter{name: "swaps", kind: ops.KindSwap} }
func NewWrites() *Counter      { return &Counter{name: "writes", kind: ops.KindOverwrite} }

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(op ops.Operation, _ []float64) {
	if op.Kind == c.kind {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() { c.count = 0 }
