package playback

import "github.com/san-kum/sortsim/internal/ops"

// State is the lifecycle position of a controller.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Frame is a renderable copy of the controller's state after the most
// recent operation. Slices and maps are owned by the receiver.
type Frame struct {
	ID        string
	Algorithm string
	State     State
	Values    []float64
	Active    []ops.Highlight
	Sorted    []bool
	Step      int
	Last      ops.Operation
	Stats     map[string]float64
}

// HasLast reports whether any operation has been applied in this run.
func (f Frame) HasLast() bool { return f.Last.Kind != 0 }

// Role returns the highlight role of index i, or 0 when i is not active.
func (f Frame) Role(i int) ops.Role {
	for _, h := range f.Active {
		if h.Index == i {
			return h.Role
		}
	}
	if i >= 0 && i < len(f.Sorted) && f.Sorted[i] {
		return ops.RoleSorted
	}
	return 0
}
