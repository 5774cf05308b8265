package playback

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/ops"
)

// Controller plays one algorithm over one private copy of an input array.
// All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id       string
	clock    Clock
	interval time.Duration
	logger   *slog.Logger
	metrics  metrics.Set
	onFrame  func(Frame)
	onDone   func()
	onError  func(error)

	state  State
	alg    algorithms.Algorithm
	input  []float64
	snap   *ops.Snapshot
	next   func() (ops.Operation, bool)
	stop   func()
	active []ops.Highlight
	sorted []bool
	step   int
	last   ops.Operation
	fired  bool
	err    error

	gen   uint64
	timer Timer
}

// events collects hook calls to run once the lock is released.
type events struct {
	frame *Frame
	dirty bool
	done  bool
	err   error
}

func New(opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		clock:    RealClock(),
		interval: DefaultInterval,
		logger:   slog.New(slog.DiscardHandler),
		metrics:  metrics.DefaultSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ID() string { return c.id }

// Start begins a new run of alg over a copy of input, from any state.
func (c *Controller) Start(input []float64, alg algorithms.Algorithm) error {
	c.mu.Lock()
	c.teardown()

	err := ops.ValidateInput(input)
	if err == nil && alg.Produce == nil {
		err = fmt.Errorf("%w: %q has no producer", ops.ErrUnknownAlgorithm, alg.Name)
	}
	if err != nil {
		c.alg = algorithms.Algorithm{}
		c.input = nil
		c.snap = nil
		c.clearRun()
		c.setState(Idle)
		c.mu.Unlock()
		return err
	}

	c.alg = alg
	c.input = ops.Clone(input)
	c.fired = false
	c.rewind()
	c.setState(Running)
	c.schedule()

	ev := events{dirty: true}
	c.finish(&ev)
	c.mu.Unlock()
	c.dispatch(ev)
	return nil
}

// Step applies exactly one operation. It is a no-op in Idle and Completed.
func (c *Controller) Step() error {
	c.mu.Lock()
	var ev events
	var err error
	if c.state == Running || c.state == Paused {
		err = c.advance(&ev)
	}
	c.finish(&ev)
	c.mu.Unlock()
	c.dispatch(ev)
	return err
}

func (c *Controller) Play() {
	c.mu.Lock()
	var ev events
	if c.state == Paused {
		c.setState(Running)
		c.schedule()
		ev.dirty = true
	}
	c.finish(&ev)
	c.mu.Unlock()
	c.dispatch(ev)
}

func (c *Controller) Pause() {
	c.mu.Lock()
	var ev events
	if c.state == Running {
		c.cancelTimer()
		c.setState(Paused)
		ev.dirty = true
	}
	c.finish(&ev)
	c.mu.Unlock()
	c.dispatch(ev)
}

// Reset stops the run and restores the original input. Calling it again
// changes nothing.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.teardown()
	if c.input != nil {
		c.snap = ops.NewSnapshot(c.input)
	}
	c.clearRun()
	c.setState(Idle)
	ev := events{dirty: true}
	c.finish(&ev)
	c.mu.Unlock()
	c.dispatch(ev)
}

// Close releases the timer and the pulled sequence.
func (c *Controller) Close() { c.Reset() }

// SetSpeed changes the auto-advance period. A tick that is already
// scheduled keeps its deadline.
func (c *Controller) SetSpeed(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s", ops.ErrInvalidInterval, d)
	}
	c.mu.Lock()
	c.interval = d
	c.logger.Debug("playback interval", "id", c.id, "interval", d)
	c.mu.Unlock()
	return nil
}

// StepBack rebuilds the run one operation earlier and pauses it.
func (c *Controller) StepBack() error {
	c.mu.Lock()
	n := c.step - 1
	ev, err := c.seek(n)
	c.mu.Unlock()
	c.dispatch(ev)
	return err
}

// Seek rebuilds the run by replaying its first n operations from the input
// and leaves it Paused, or Completed when the sequence ran out first.
func (c *Controller) Seek(n int) error {
	c.mu.Lock()
	ev, err := c.seek(n)
	c.mu.Unlock()
	c.dispatch(ev)
	return err
}

func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Err returns the fault that ended the last run, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller) seek(n int) (events, error) {
	var ev events
	if c.state == Idle || c.alg.Produce == nil {
		return ev, nil
	}
	if n < 0 {
		n = 0
	}

	c.teardown()
	c.rewind()
	c.setState(Paused)
	ev.dirty = true

	var err error
	for c.step < n && c.state == Paused {
		if err = c.advance(&ev); err != nil {
			break
		}
	}
	c.finish(&ev)
	return ev, err
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != Running {
		c.mu.Unlock()
		return
	}
	c.timer = nil

	var ev events
	if err := c.advance(&ev); err == nil && c.state == Running {
		c.schedule()
	}
	c.finish(&ev)
	c.mu.Unlock()
	c.dispatch(ev)
}

// advance pulls and applies one operation. Callers hold c.mu.
func (c *Controller) advance(ev *events) error {
	op, ok := c.next()
	if !ok {
		c.complete(ev)
		return nil
	}
	if err := c.snap.Apply(op); err != nil {
		c.fault(err, ev)
		return err
	}

	c.step++
	c.last = op
	c.active = op.Highlights()
	if op.Kind == ops.KindMarkSorted {
		c.sorted[op.I] = true
	}
	c.metrics.Observe(op, c.snap.Values())
	ev.dirty = true
	return nil
}

func (c *Controller) complete(ev *events) {
	c.teardown()
	c.active = nil
	for i := range c.sorted {
		c.sorted[i] = true
	}
	c.setState(Completed)
	if !c.fired {
		c.fired = true
		ev.done = true
	}
	ev.dirty = true
}

func (c *Controller) fault(err error, ev *events) {
	c.teardown()
	c.err = err
	c.setState(Idle)
	c.logger.Error("playback fault", "id", c.id, "algorithm", c.alg.Name, "step", c.step, "err", err)
	ev.err = err
	ev.dirty = true
}

// rewind restores the snapshot from the input and pulls a fresh sequence.
func (c *Controller) rewind() {
	c.snap = ops.NewSnapshot(c.input)
	c.next, c.stop = iter.Pull(c.alg.Produce(c.input))
	c.clearRun()
}

func (c *Controller) clearRun() {
	c.active = nil
	c.sorted = make([]bool, len(c.input))
	c.step = 0
	c.last = ops.Operation{}
	c.err = nil
	c.metrics.Reset()
	if c.input != nil {
		c.metrics.Prime(c.input)
	}
}

func (c *Controller) teardown() {
	c.cancelTimer()
	if c.stop != nil {
		c.stop()
	}
	c.next, c.stop = nil, nil
}

func (c *Controller) schedule() {
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.interval, func() { c.tick(gen) })
}

func (c *Controller) cancelTimer() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.logger.Debug("playback state", "id", c.id, "algorithm", c.alg.Name, "from", c.state, "to", s, "step", c.step)
	c.state = s
}

func (c *Controller) frameLocked() Frame {
	f := Frame{
		ID:        c.id,
		Algorithm: c.alg.Name,
		State:     c.state,
		Active:    slices.Clone(c.active),
		Sorted:    slices.Clone(c.sorted),
		Step:      c.step,
		Last:      c.last,
		Stats:     c.metrics.Values(),
	}
	if c.snap != nil {
		f.Values = c.snap.Values()
	}
	return f
}

// finish captures the frame for the hook while the lock is still held.
func (c *Controller) finish(ev *events) {
	if ev.dirty && c.onFrame != nil {
		f := c.frameLocked()
		ev.frame = &f
	}
}

func (c *Controller) dispatch(ev events) {
	if ev.frame != nil {
		c.onFrame(*ev.frame)
	}
	if ev.err != nil && c.onError != nil {
		c.onError(ev.err)
	}
	if ev.done && c.onDone != nil {
		c.onDone()
	}
}
