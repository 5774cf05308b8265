package playback

import (
	"log/slog"
	"time"

	"github.com/san-kum/sortsim/internal/metrics"
)

// DefaultInterval is the auto-advance period used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the initial auto-advance period. Non-positive values
// are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithMetrics replaces the default metric set. Each controller needs its
// own instances.
func WithMetrics(set metrics.Set) Option {
	return func(c *Controller) { c.metrics = set }
}

// WithFrameHook is called with a fresh frame after every state change.
func WithFrameHook(fn func(Frame)) Option {
	return func(c *Controller) { c.onFrame = fn }
}

// WithCompletionHook is called once per run when the sequence is exhausted.
func WithCompletionHook(fn func()) Option {
	return func(c *Controller) { c.onDone = fn }
}

// WithErrorHook is called when a run faults.
func WithErrorHook(fn func(error)) Option {
	return func(c *Controller) { c.onError = fn }
}

// WithID overrides the generated controller id.
func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}
