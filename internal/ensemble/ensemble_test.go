package ensemble

import (
	"context"
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
)

func all() []algorithms.Algorithm {
	return []algorithms.Algorithm{
		{Name: "bubble", Produce: algorithms.Bubble},
		{Name: "selection", Produce: algorithms.Selection},
		{Name: "insertion", Produce: algorithms.Insertion},
		{Name: "merge", Produce: algorithms.Merge},
		{Name: "quick", Produce: algorithms.Quick},
	}
}

func TestEnsembleRun(t *testing.T) {
	input := []float64{5, 1, 4, 2, 8, 3, 3, 7}
	results, err := New(all()).Run(context.Background(), input)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	for i, r := range results {
		if r.Algorithm != all()[i].Name {
			t.Errorf("result %d is %s, want %s", i, r.Algorithm, all()[i].Name)
		}
		if r.Final.State != playback.Completed {
			t.Errorf("%s: final state %v", r.Algorithm, r.Final.State)
		}
		if !ops.IsSorted(r.Final.Values) || !ops.IsPermutation(input, r.Final.Values) {
			t.Errorf("%s: not sorted: %v", r.Algorithm, r.Final.Values)
		}
		want := len(algorithms.Collect(all()[i].Produce(input)))
		if r.Final.Step != want {
			t.Errorf("%s: %d steps, want %d", r.Algorithm, r.Final.Step, want)
		}
		inv := r.Series("inversions")
		if inv[0] != float64(ops.Inversions(input)) || inv[len(inv)-1] != 0 {
			t.Errorf("%s: inversions series %v", r.Algorithm, inv)
		}
	}

	if input[0] != 5 {
		t.Errorf("input mutated: %v", input)
	}
}

func TestEnsembleEvery(t *testing.T) {
	algs := []algorithms.Algorithm{{Name: "bubble", Produce: algorithms.Bubble}}
	results, err := New(algs, WithEvery(4)).Run(context.Background(), []float64{3, 2, 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, f := range results[0].Frames[1 : len(results[0].Frames)-1] {
		if f.Step%4 != 0 {
			t.Errorf("kept frame at step %d", f.Step)
		}
	}
	if results[0].Frames[0].Step != 0 {
		t.Error("initial frame missing")
	}
}

func TestEnsembleInvalid(t *testing.T) {
	if _, err := New(all()).Run(context.Background(), nil); !errors.Is(err, ops.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := New(all()).Run(context.Background(), []float64{2, math.NaN()}); !errors.Is(err, ops.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for NaN, got %v", err)
	}
	if _, err := New(nil).Run(context.Background(), []float64{1}); err == nil {
		t.Error("expected error for empty ensemble")
	}
}

func TestEnsembleFault(t *testing.T) {
	broken := func([]float64) iter.Seq[ops.Operation] {
		return func(yield func(ops.Operation) bool) {
			yield(ops.Swap(0, 99))
		}
	}
	algs := append(all(), algorithms.Algorithm{Name: "broken", Produce: broken})

	_, err := New(algs).Run(context.Background(), []float64{2, 1})
	if !errors.Is(err, ops.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestEnsembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(all()).Run(ctx, []float64{3, 2, 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
