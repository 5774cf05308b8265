package playback

import "time"

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules the auto-advance callback.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

type heldClock struct{}

type heldTimer struct{}

func (heldClock) AfterFunc(time.Duration, func()) Timer { return heldTimer{} }

func (heldTimer) Stop() bool { return true }

// HeldClock returns a Clock whose timers never fire. A controller using it
// only moves on Step, Seek or StepBack.
func HeldClock() Clock { return heldClock{} }
