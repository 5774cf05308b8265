// Package ensemble plays several algorithms over the same input
// concurrently, one controller per algorithm, and reports once every run
// has finished.
package ensemble

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/completion"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
)

// Result is the outcome of one algorithm's run.
type Result struct {
	Algorithm string
	// Frames holds the initial frame, every nth frame and the final frame.
	Frames []playback.Frame
	Final  playback.Frame
}

// Series returns the named statistic for each kept frame.
func (r *Result) Series(stat string) []float64 {
	data := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		data[i] = f.Stats[stat]
	}
	return data
}

type Ensemble struct {
	algs   []algorithms.Algorithm
	every  int
	logger *slog.Logger
}

type Option func(*Ensemble)

// WithEvery keeps one frame in n. Values below 1 keep every frame.
func WithEvery(n int) Option {
	return func(e *Ensemble) {
		e.every = max(n, 1)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Ensemble) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(algs []algorithms.Algorithm, opts ...Option) *Ensemble {
	e := &Ensemble{
		algs:   algs,
		every:  1,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run plays every algorithm to completion over its own copy of input and
// returns the results in algorithm order. The first run error is returned
// once all runs have reported.
func (e *Ensemble) Run(ctx context.Context, input []float64) ([]*Result, error) {
	if err := ops.ValidateInput(input); err != nil {
		return nil, err
	}
	tracker, err := completion.New(len(e.algs), func() {
		e.logger.Debug("ensemble complete", "runs", len(e.algs))
	})
	if err != nil {
		return nil, fmt.Errorf("ensemble: %w", err)
	}

	results := make([]*Result, len(e.algs))
	errs := make([]error, len(e.algs))
	for i, alg := range e.algs {
		go func(idx int, alg algorithms.Algorithm) {
			defer tracker.NotifyDone()
			results[idx], errs[idx] = e.play(ctx, input, alg)
		}(i, alg)
	}

	if err := tracker.Wait(ctx); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.algs[i].Name, err)
		}
	}
	return results, nil
}

func (e *Ensemble) play(ctx context.Context, input []float64, alg algorithms.Algorithm) (*Result, error) {
	c := playback.New(
		playback.WithClock(playback.HeldClock()),
		playback.WithID(alg.Name),
		playback.WithLogger(e.logger),
	)
	defer c.Close()

	if err := c.Start(input, alg); err != nil {
		return nil, err
	}
	c.Pause()

	r := &Result{Algorithm: alg.Name, Frames: []playback.Frame{c.Frame()}}
	for c.State() != playback.Completed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.Step(); err != nil {
			return nil, err
		}
		f := c.Frame()
		if f.State == playback.Completed || f.Step%e.every == 0 {
			r.Frames = append(r.Frames, f)
		}
	}
	r.Final = r.Frames[len(r.Frames)-1]
	e.logger.Debug("run finished", "algorithm", alg.Name, "steps", r.Final.Step)
	return r, nil
}
