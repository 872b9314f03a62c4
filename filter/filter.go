package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pyramid/matrix"
)

var (
	// ErrInvalidFilterShape indicates a filter array with more than one non-trivial axis
	// or no taps at all.
	ErrInvalidFilterShape = errors.New("filter: filter must be a 1D vector")
	// ErrUnknownFilterName indicates a name missing from the filter table.
	ErrUnknownFilterName = errors.New("filter: unknown filter name")
)

// Orientation is the axis a filter vector lies along.
type Orientation int

const (
	// Column is an Nx1 vector; it filters along the row axis (vertically).
	Column Orientation = iota
	// Row is a 1xN vector; it filters along the column axis (horizontally).
	Row
)

func (o Orientation) String() string {
	if o == Row {
		return "row"
	}
	return "column"
}

// Filter is a 1D tap vector with an explicit orientation.
// The zero value is not usable; construct with New or FromMatrix.
type Filter struct {
	taps   []float64
	orient Orientation
}

// New creates a filter from taps. The taps are copied.
func New(taps []float64, o Orientation) (Filter, error) {
	if len(taps) == 0 {
		return Filter{}, fmt.Errorf("%w: no taps", ErrInvalidFilterShape)
	}
	c := make([]float64, len(taps))
	copy(c, taps)
	return Filter{taps: c, orient: o}, nil
}

// FromMatrix interprets a 1xN or Nx1 matrix as a filter with the matching
// orientation. A 1x1 matrix becomes a row filter.
func FromMatrix(m *matrix.Matrix) (Filter, error) {
	if m == nil {
		return Filter{}, fmt.Errorf("%w: nil matrix", ErrInvalidFilterShape)
	}
	if m.Len() > max(m.Rows(), m.Cols()) {
		return Filter{}, fmt.Errorf("%w: got shape %s", ErrInvalidFilterShape, m.Shape())
	}
	o := Row
	if m.Rows() > 1 {
		o = Column
	}
	return New(m.Data(), o)
}

// Len returns the number of taps.
func (f Filter) Len() int {
	return len(f.taps)
}

// Taps returns a copy of the tap vector.
func (f Filter) Taps() []float64 {
	c := make([]float64, len(f.taps))
	copy(c, f.taps)
	return c
}

// Orientation returns the axis the filter lies along.
func (f Filter) Orientation() Orientation {
	return f.orient
}

// Shape returns the filter extent as a matrix shape: (1,N) for row filters,
// (N,1) for column filters.
func (f Filter) Shape() matrix.Shape {
	if f.orient == Row {
		return matrix.Shape{Rows: 1, Cols: len(f.taps)}
	}
	return matrix.Shape{Rows: len(f.taps), Cols: 1}
}

// Center returns the index of the tap aligned with the output sample.
func (f Filter) Center() int {
	return len(f.taps) / 2
}

// T returns the filter with the opposite orientation. Taps are shared.
func (f Filter) T() Filter {
	o := Row
	if f.orient == Row {
		o = Column
	}
	return Filter{taps: f.taps, orient: o}
}

// AsRow returns the filter oriented as a 1xN vector.
func (f Filter) AsRow() Filter {
	return Filter{taps: f.taps, orient: Row}
}

// AsColumn returns the filter oriented as an Nx1 vector.
func (f Filter) AsColumn() Filter {
	return Filter{taps: f.taps, orient: Column}
}

// Matrix returns the filter as a 1xN or Nx1 matrix.
func (f Filter) Matrix() *matrix.Matrix {
	s := f.Shape()
	m, _ := matrix.FromData(s.Rows, s.Cols, f.Taps())
	return m
}

// Sum returns the DC gain of the filter.
func (f Filter) Sum() float64 {
	return vecmath.Sum(f.taps)
}

// Stagger returns the sampling lattice offset used for the low-pass branch
// of a QMF decomposition: 1 for even-length filters, 0 for odd-length.
func (f Filter) Stagger() int {
	return (len(f.taps) + 1) % 2
}

// ModulateFlip derives the QMF high-pass partner of a low-pass filter by
// reversing the taps and alternating their signs:
//
//	h[i] = lo[L-1-i] * (-1)^(L-i-ceil(L/2))
//
// The orientation is preserved.
func ModulateFlip(lo Filter) Filter {
	n := len(lo.taps)
	half := (n + 1) / 2
	h := make([]float64, n)
	for i := range n {
		sign := 1.0
		if (n-i-half)%2 != 0 {
			sign = -1
		}
		h[i] = lo.taps[n-1-i] * sign
	}
	return Filter{taps: h, orient: lo.orient}
}

// Norm returns the L2 norm of the taps.
func (f Filter) Norm() float64 {
	return math.Sqrt(vecmath.DotProduct(f.taps, f.taps))
}
