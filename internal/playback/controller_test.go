package playback_test

import (
	"iter"
	"math"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
)

const tick = playback.DefaultInterval

var bubble = algorithms.Algorithm{Name: "bubble", Produce: algorithms.Bubble}

func broken(input []float64) iter.Seq[ops.Operation] {
	return func(yield func(ops.Operation) bool) {
		if !yield(ops.Compare(0, 1)) {
			return
		}
		yield(ops.Swap(0, len(input)+3))
	}
}

var _ = Describe("Controller", func() {
	var (
		clock  *fakeClock
		ctrl   *playback.Controller
		input  []float64
		done   atomic.Int32
		faults []error
		total  int
	)

	BeforeEach(func() {
		clock = &fakeClock{}
		input = []float64{5, 1, 4, 2, 8}
		total = len(algorithms.Collect(algorithms.Bubble(input)))
		done.Store(0)
		faults = nil
		ctrl = playback.New(
			playback.WithClock(clock),
			playback.WithCompletionHook(func() { done.Add(1) }),
			playback.WithErrorHook(func(err error) { faults = append(faults, err) }),
		)
	})

	AfterEach(func() {
		ctrl.Close()
	})

	Describe("Start", func() {
		It("rejects an empty input and stays idle", func() {
			err := ctrl.Start(nil, bubble)
			Expect(err).To(MatchError(ops.ErrInvalidInput))
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(clock.Pending()).To(BeZero())
		})

		It("rejects NaN and infinite values and stays idle", func() {
			for _, bad := range [][]float64{{3, math.NaN(), 1}, {1, math.Inf(1)}, {math.Inf(-1)}} {
				err := ctrl.Start(bad, bubble)
				Expect(err).To(MatchError(ops.ErrInvalidInput))
				Expect(ctrl.State()).To(Equal(playback.Idle))
				Expect(clock.Pending()).To(BeZero())
			}
		})

		It("rejects an algorithm without a producer", func() {
			err := ctrl.Start(input, algorithms.Algorithm{Name: "bogo"})
			Expect(err).To(MatchError(ops.ErrUnknownAlgorithm))
			Expect(ctrl.State()).To(Equal(playback.Idle))
		})

		It("copies the input and begins running", func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
			input[0] = 99

			f := ctrl.Frame()
			Expect(f.State).To(Equal(playback.Running))
			Expect(f.Values).To(Equal([]float64{5, 1, 4, 2, 8}))
			Expect(f.Step).To(BeZero())
			Expect(f.Stats["inversions"]).To(Equal(4.0))
		})

		It("restarts a completed run and reports completion again", func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
			clock.Advance(time.Duration(total+1) * tick)
			Expect(ctrl.State()).To(Equal(playback.Completed))

			Expect(ctrl.Start(input, bubble)).To(Succeed())
			Expect(ctrl.Frame().Step).To(BeZero())
			clock.Advance(time.Duration(total+1) * tick)
			Expect(done.Load()).To(Equal(int32(2)))
		})
	})

	Describe("auto-advance", func() {
		BeforeEach(func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
		})

		It("applies one operation per interval", func() {
			clock.Advance(tick - time.Millisecond)
			Expect(ctrl.Frame().Step).To(BeZero())

			clock.Advance(time.Millisecond)
			f := ctrl.Frame()
			Expect(f.Step).To(Equal(1))
			Expect(f.Last).To(Equal(ops.Compare(0, 1)))
			Expect(f.Active).To(ConsistOf(
				ops.Highlight{Index: 0, Role: ops.RoleCompared},
				ops.Highlight{Index: 1, Role: ops.RoleCompared},
			))

			clock.Advance(tick)
			f = ctrl.Frame()
			Expect(f.Last).To(Equal(ops.Swap(0, 1)))
			Expect(f.Values).To(Equal([]float64{1, 5, 4, 2, 8}))
		})

		It("completes exactly once and stops scheduling", func() {
			clock.Advance(time.Duration(total+5) * tick)

			f := ctrl.Frame()
			Expect(f.State).To(Equal(playback.Completed))
			Expect(f.Step).To(Equal(total))
			Expect(f.Values).To(Equal([]float64{1, 2, 4, 5, 8}))
			Expect(f.Sorted).To(HaveEach(BeTrue()))
			Expect(f.Active).To(BeEmpty())
			Expect(done.Load()).To(Equal(int32(1)))
			Expect(clock.Pending()).To(BeZero())

			Expect(ctrl.Step()).To(Succeed())
			ctrl.Play()
			clock.Advance(10 * tick)
			Expect(ctrl.Frame().Step).To(Equal(total))
			Expect(done.Load()).To(Equal(int32(1)))
		})

		It("keeps the scheduled deadline when the speed changes", func() {
			Expect(ctrl.SetSpeed(tick / 2)).To(Succeed())

			clock.Advance(tick / 2)
			Expect(ctrl.Frame().Step).To(BeZero())

			clock.Advance(tick / 2)
			Expect(ctrl.Frame().Step).To(Equal(1))

			clock.Advance(tick / 2)
			Expect(ctrl.Frame().Step).To(Equal(2))
			Expect(ctrl.Interval()).To(Equal(tick / 2))
		})

		It("rejects non-positive intervals", func() {
			Expect(ctrl.SetSpeed(0)).To(MatchError(ops.ErrInvalidInterval))
			Expect(ctrl.SetSpeed(-time.Second)).To(MatchError(ops.ErrInvalidInterval))
			Expect(ctrl.Interval()).To(Equal(tick))
		})
	})

	Describe("pause and play", func() {
		BeforeEach(func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
			clock.Advance(tick)
			ctrl.Pause()
		})

		It("freezes the run while paused", func() {
			Expect(ctrl.State()).To(Equal(playback.Paused))
			clock.Advance(20 * tick)
			Expect(ctrl.Frame().Step).To(Equal(1))
		})

		It("ignores callbacks from cancelled timers", func() {
			clock.FireStopped()
			Expect(ctrl.Frame().Step).To(Equal(1))

			ctrl.Play()
			clock.FireStopped()
			Expect(ctrl.Frame().Step).To(Equal(1))
		})

		It("steps manually while paused", func() {
			Expect(ctrl.Step()).To(Succeed())
			Expect(ctrl.Frame().Step).To(Equal(2))
			Expect(ctrl.State()).To(Equal(playback.Paused))
		})

		It("resumes on play", func() {
			ctrl.Play()
			Expect(ctrl.State()).To(Equal(playback.Running))
			clock.Advance(tick)
			Expect(ctrl.Frame().Step).To(Equal(2))
		})

		It("treats repeated pause and play as no-ops", func() {
			ctrl.Pause()
			Expect(ctrl.State()).To(Equal(playback.Paused))
			ctrl.Play()
			ctrl.Play()
			Expect(ctrl.State()).To(Equal(playback.Running))
			Expect(clock.Pending()).To(Equal(1))
		})
	})

	Describe("idle", func() {
		It("ignores step, play and pause", func() {
			Expect(ctrl.Step()).To(Succeed())
			ctrl.Play()
			ctrl.Pause()
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Frame().Step).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("is idempotent and restores the input", func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
			clock.Advance(3 * tick)

			ctrl.Reset()
			first := ctrl.Frame()
			ctrl.Reset()
			second := ctrl.Frame()

			Expect(first.State).To(Equal(playback.Idle))
			Expect(first.Values).To(Equal([]float64{5, 1, 4, 2, 8}))
			Expect(first.Step).To(BeZero())
			Expect(second).To(Equal(first))
			Expect(clock.Pending()).To(BeZero())

			clock.FireStopped()
			Expect(ctrl.Frame()).To(Equal(first))
			Expect(done.Load()).To(BeZero())
		})
	})

	Describe("single stepping", func() {
		It("matches a full replay of the sequence", func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
			ctrl.Pause()

			for i := 0; i < 100 && ctrl.State() != playback.Completed; i++ {
				Expect(ctrl.Step()).To(Succeed())
			}

			want, err := algorithms.Replay(input, algorithms.Bubble(input))
			Expect(err).NotTo(HaveOccurred())
			f := ctrl.Frame()
			Expect(f.State).To(Equal(playback.Completed))
			Expect(f.Values).To(Equal(want))
			Expect(f.Step).To(Equal(total))
			Expect(f.Stats["comparisons"]).To(Equal(10.0))
			Expect(f.Stats["swaps"]).To(Equal(4.0))
			Expect(f.Stats["inversions"]).To(BeZero())
			Expect(done.Load()).To(Equal(int32(1)))
		})
	})

	Describe("StepBack and Seek", func() {
		BeforeEach(func() {
			Expect(ctrl.Start(input, bubble)).To(Succeed())
			clock.Advance(3 * tick)
		})

		It("rebuilds the run one operation earlier", func() {
			Expect(ctrl.StepBack()).To(Succeed())

			seq := algorithms.Collect(algorithms.Bubble(input))
			want, _ := algorithms.Replay(input, func(yield func(ops.Operation) bool) {
				for _, op := range seq[:2] {
					yield(op)
				}
			})
			f := ctrl.Frame()
			Expect(f.State).To(Equal(playback.Paused))
			Expect(f.Step).To(Equal(2))
			Expect(f.Last).To(Equal(seq[1]))
			Expect(f.Values).To(Equal(want))
			Expect(clock.Pending()).To(BeZero())
		})

		It("completes once when seeking past the end", func() {
			Expect(ctrl.Seek(total + 10)).To(Succeed())
			Expect(ctrl.State()).To(Equal(playback.Completed))
			Expect(done.Load()).To(Equal(int32(1)))

			Expect(ctrl.StepBack()).To(Succeed())
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(ctrl.Frame().Step).To(Equal(total - 1))

			Expect(ctrl.Seek(total + 10)).To(Succeed())
			Expect(done.Load()).To(Equal(int32(1)))
		})

		It("clamps negative targets to the start", func() {
			Expect(ctrl.Seek(-4)).To(Succeed())
			f := ctrl.Frame()
			Expect(f.Step).To(BeZero())
			Expect(f.Values).To(Equal(input))
		})

		It("does nothing when idle", func() {
			ctrl.Reset()
			Expect(ctrl.Seek(5)).To(Succeed())
			Expect(ctrl.State()).To(Equal(playback.Idle))
		})
	})

	Describe("faults", func() {
		It("stops the run on an out-of-bounds operation", func() {
			alg := algorithms.Algorithm{Name: "broken", Produce: broken}
			Expect(ctrl.Start([]float64{2, 1}, alg)).To(Succeed())
			ctrl.Pause()

			Expect(ctrl.Step()).To(Succeed())
			err := ctrl.Step()
			Expect(err).To(MatchError(ops.ErrOutOfBounds))

			var oob *ops.OutOfBoundsError
			Expect(err).To(BeAssignableToTypeOf(oob))
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Err()).To(MatchError(ops.ErrOutOfBounds))
			Expect(faults).To(HaveLen(1))
			Expect(ctrl.Frame().Values).To(Equal([]float64{2, 1}))
			Expect(done.Load()).To(BeZero())
		})
	})

	Describe("hooks", func() {
		It("may call back into the controller", func() {
			var states []playback.State
			var c *playback.Controller
			c = playback.New(
				playback.WithClock(clock),
				playback.WithFrameHook(func(f playback.Frame) {
					states = append(states, c.State())
				}),
			)
			defer c.Close()

			Expect(c.Start([]float64{2, 1}, bubble)).To(Succeed())
			clock.Advance(10 * tick)
			Expect(states).To(ContainElement(playback.Completed))
			Expect(states[0]).To(Equal(playback.Running))
		})

		It("hands out frames the hook may keep", func() {
			var frames []playback.Frame
			c := playback.New(
				playback.WithClock(clock),
				playback.WithFrameHook(func(f playback.Frame) { frames = append(frames, f) }),
			)
			defer c.Close()

			Expect(c.Start([]float64{2, 1}, bubble)).To(Succeed())
			clock.Advance(10 * tick)
			Expect(frames[0].Values).To(Equal([]float64{2, 1}))
			Expect(frames[len(frames)-1].Values).To(Equal([]float64{1, 2}))
		})
	})
})
