package filter

import (
	"fmt"

	"github.com/cwbudde/algo-pyramid/matrix"
)

// Spec selects a filter either by table name or by raw taps. It is resolved
// once, when a pyramid is constructed.
type Spec struct {
	name string
	taps *matrix.Matrix
	raw  []float64
}

// ByName selects a filter from the named table.
func ByName(name string) Spec {
	return Spec{name: name}
}

// FromTaps selects an explicit 1D tap vector.
func FromTaps(taps ...float64) Spec {
	return Spec{raw: append([]float64(nil), taps...)}
}

// FromArray selects an explicit tap array; it must have at most one
// non-trivial axis.
func FromArray(m *matrix.Matrix) Spec {
	return Spec{taps: m}
}

// IsZero reports whether the spec selects nothing.
func (s Spec) IsZero() bool {
	return s.name == "" && s.taps == nil && s.raw == nil
}

// Resolve looks up or validates the selected filter.
func (s Spec) Resolve() (Filter, error) {
	switch {
	case s.name != "":
		return Named(s.name)
	case s.taps != nil:
		return FromMatrix(s.taps)
	case s.raw != nil:
		return New(s.raw, Column)
	default:
		return Filter{}, fmt.Errorf("%w: empty filter spec", ErrInvalidFilterShape)
	}
}

func (s Spec) String() string {
	switch {
	case s.name != "":
		return s.name
	case s.taps != nil:
		return fmt.Sprintf("taps%s", s.taps.Shape())
	case s.raw != nil:
		return fmt.Sprintf("taps(%d)", len(s.raw))
	default:
		return "<none>"
	}
}
