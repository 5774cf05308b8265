package ops

import (
	"fmt"
	"strconv"
)

// Kind tags the variant of an Operation.
type Kind uint8

const (
	KindCompare Kind = iota + 1
	KindSwap
	KindOverwrite
	KindMarkSorted
)

var kindNames = map[Kind]string{
	KindCompare:    "compare",
	KindSwap:       "swap",
	KindOverwrite:  "overwrite",
	KindMarkSorted: "mark",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("sortsim: unknown operation kind %q", s)
}

// Mutates reports whether operations of this kind change snapshot values.
func (k Kind) Mutates() bool {
	return k == KindSwap || k == KindOverwrite
}

// Operation is one atomic algorithm action. J is used by Compare and Swap,
// Value only by Overwrite.
type Operation struct {
	Kind  Kind
	I     int
	J     int
	Value float64
}

func Compare(i, j int) Operation           { return Operation{Kind: KindCompare, I: i, J: j} }
func Swap(i, j int) Operation              { return Operation{Kind: KindSwap, I: i, J: j} }
func Overwrite(i int, v float64) Operation { return Operation{Kind: KindOverwrite, I: i, Value: v} }
func MarkSorted(i int) Operation           { return Operation{Kind: KindMarkSorted, I: i} }

// Indices returns the snapshot positions the operation touches.
func (o Operation) Indices() []int {
	switch o.Kind {
	case KindCompare, KindSwap:
		return []int{o.I, o.J}
	default:
		return []int{o.I}
	}
}

func (o Operation) String() string {
	switch o.Kind {
	case KindCompare, KindSwap:
		return fmt.Sprintf("%s(%d, %d)", o.Kind, o.I, o.J)
	case KindOverwrite:
		return fmt.Sprintf("%s(%d, %g)", o.Kind, o.I, o.Value)
	default:
		return fmt.Sprintf("%s(%d)", o.Kind, o.I)
	}
}

// Role tags an index highlighted by the most recent operation.
type Role uint8

const (
	RoleCompared Role = iota + 1
	RoleSwapped
	RoleWritten
	RoleSorted
)

func (r Role) String() string {
	switch r {
	case RoleCompared:
		return "compared"
	case RoleSwapped:
		return "swapped"
	case RoleWritten:
		return "written"
	case RoleSorted:
		return "sorted"
	}
	return "none"
}

// Highlight is one active index of a rendered frame.
type Highlight struct {
	Index int
	Role  Role
}

// Highlights maps an operation to the indices a renderer should emphasise.
func (o Operation) Highlights() []Highlight {
	var role Role
	switch o.Kind {
	case KindCompare:
		role = RoleCompared
	case KindSwap:
		role = RoleSwapped
	case KindOverwrite:
		role = RoleWritten
	case KindMarkSorted:
		role = RoleSorted
	}
	idx := o.Indices()
	hs := make([]Highlight, 0, len(idx))
	for _, i := range idx {
		hs = append(hs, Highlight{Index: i, Role: role})
	}
	return hs
}
