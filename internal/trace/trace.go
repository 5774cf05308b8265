// Package trace records the full operation log of a sorting run so it can
// be exported, inspected and played back without the producing algorithm.
package trace

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/ops"
)

var ErrNotSorted = errors.New("sortsim: trace does not sort its input")

// Step is the serialized form of one operation.
type Step struct {
	Kind  string  `json:"kind" jsonschema:"enum=compare,enum=swap,enum=overwrite,enum=mark" jsonschema_description:"Operation kind"`
	I     int     `json:"i" jsonschema_description:"First index"`
	J     int     `json:"j,omitempty" jsonschema_description:"Second index (compare and swap)"`
	Value float64 `json:"value,omitempty" jsonschema_description:"Written value (overwrite)"`
}

type Trace struct {
	ID         string    `json:"id" jsonschema_description:"Unique trace identifier"`
	Algorithm  string    `json:"algorithm" jsonschema_description:"Registry name of the producing algorithm"`
	Input      []float64 `json:"input" jsonschema_description:"Array the operations apply to"`
	Created    time.Time `json:"created"`
	Operations []Step    `json:"operations"`
}

func encode(op ops.Operation) Step {
	return Step{Kind: op.Kind.String(), I: op.I, J: op.J, Value: op.Value}
}

func (s Step) decode() (ops.Operation, error) {
	k, err := ops.ParseKind(s.Kind)
	if err != nil {
		return ops.Operation{}, err
	}
	op := ops.Operation{Kind: k, I: s.I}
	switch k {
	case ops.KindCompare, ops.KindSwap:
		op.J = s.J
	case ops.KindOverwrite:
		op.Value = s.Value
	}
	return op, nil
}

// Record runs alg over input to exhaustion and captures every operation.
func Record(alg algorithms.Algorithm, input []float64) *Trace {
	t := &Trace{
		ID:        uuid.NewString(),
		Algorithm: alg.Name,
		Input:     ops.Clone(input),
		Created:   time.Now().UTC(),
	}
	for op := range alg.Produce(input) {
		t.Operations = append(t.Operations, encode(op))
	}
	return t
}

// Ops decodes the recorded operations.
func (t *Trace) Ops() ([]ops.Operation, error) {
	out := make([]ops.Operation, 0, len(t.Operations))
	for i, s := range t.Operations {
		op, err := s.decode()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		out = append(out, op)
	}
	return out, nil
}

// Player returns an algorithm that replays the trace. The producer ignores
// its argument; start the controller with t.Input.
func (t *Trace) Player() (algorithms.Algorithm, error) {
	recorded, err := t.Ops()
	if err != nil {
		return algorithms.Algorithm{}, err
	}
	produce := func([]float64) iter.Seq[ops.Operation] {
		return func(yield func(ops.Operation) bool) {
			for _, op := range recorded {
				if !yield(op) {
					return
				}
			}
		}
	}
	return algorithms.Algorithm{Name: t.Algorithm, Produce: produce}, nil
}

// Verify replays the trace and checks that it sorts a permutation of its
// input.
func (t *Trace) Verify() error {
	if err := ops.ValidateInput(t.Input); err != nil {
		return err
	}
	p, err := t.Player()
	if err != nil {
		return err
	}
	out, err := algorithms.Replay(t.Input, p.Produce(t.Input))
	if err != nil {
		return err
	}
	if !ops.IsSorted(out) || !ops.IsPermutation(t.Input, out) {
		return fmt.Errorf("%w: ended with %v", ErrNotSorted, out)
	}
	return nil
}

// Counts tallies operations by kind name.
func (t *Trace) Counts() map[string]int {
	counts := make(map[string]int)
	for _, s := range t.Operations {
		counts[s.Kind]++
	}
	return counts
}

// Schema describes the JSON form of a Trace.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&Trace{})
}
