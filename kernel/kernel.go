package kernel

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/matrix"
)

// Errors returned by the kernel.
var (
	ErrOrientationMismatch = errors.New("kernel: filter orientation does not match signal")
	ErrLatticeMismatch     = errors.New("kernel: input extent does not match sampling lattice")
	ErrShapeMismatch       = errors.New("kernel: accumulator shape does not match output extent")
	ErrInvalidLattice      = errors.New("kernel: invalid sampling lattice")
	ErrUnknownEdge         = errors.New("kernel: unknown edge policy")
)

// CorrDn correlates img with the 1D filter f along the filter's axis and
// samples the result on the lattice start + k*step on both axes.
//
// A Row filter runs along the column axis, a Column filter along the row
// axis. Tap i is applied to the sample at offset i - f.Center() from the
// output position. The output extent per axis is ceil((n-start)/step).
func CorrDn(img *matrix.Matrix, f filter.Filter, edge Edge, step, start matrix.Point) (*matrix.Matrix, error) {
	if err := validate(img.Shape(), f, edge, step, start); err != nil {
		return nil, err
	}

	rowsOut := latticeCount(img.Rows(), start.Row, step.Row)
	colsOut := latticeCount(img.Cols(), start.Col, step.Col)
	out, err := matrix.New(rowsOut, colsOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLattice, err)
	}

	taps := f.Taps()
	mid := f.Center()

	if f.Orientation() == filter.Row {
		for i := range rowsOut {
			r := start.Row + i*step.Row
			correlate1D(out.Row(i), img.Row(r), taps, mid, edge, start.Col, step.Col)
		}
		return out, nil
	}

	src := make([]float64, img.Rows())
	dst := make([]float64, rowsOut)
	for j := range colsOut {
		c := start.Col + j*step.Col
		img.ColumnTo(src, c)
		correlate1D(dst, src, taps, mid, edge, start.Row, step.Row)
		for i, v := range dst {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// UpConv places the samples of img on the lattice start + k*step inside a
// stop-shaped output and convolves them with f along the filter's axis.
//
// For EdgeReflect1 the zero-stuffed lattice is mirrored about its end samples
// before convolving, matching the whole-sample reflection CorrDn applied to
// its input. For every other policy UpConv is the exact adjoint of CorrDn:
// contributions that fall outside the output are folded back according to
// edge.
//
// The extent of img must equal the lattice count ceil((stop-start)/step) on
// each axis. When acc is non-nil it must have shape stop; the result is added
// into acc, which is returned. Otherwise a new zero-initialised matrix is
// used. img is never modified.
func UpConv(img *matrix.Matrix, f filter.Filter, edge Edge, step, start matrix.Point, stop matrix.Shape, acc *matrix.Matrix) (*matrix.Matrix, error) {
	if err := validate(stop, f, edge, step, start); err != nil {
		return nil, err
	}
	wantRows := latticeCount(stop.Rows, start.Row, step.Row)
	wantCols := latticeCount(stop.Cols, start.Col, step.Col)
	if img.Rows() != wantRows || img.Cols() != wantCols {
		return nil, fmt.Errorf("%w: input %s, lattice (%d,%d) for output %s start (%d,%d) step (%d,%d)",
			ErrLatticeMismatch, img.Shape(), wantRows, wantCols, stop, start.Row, start.Col, step.Row, step.Col)
	}

	out := acc
	if out == nil {
		var err error
		if out, err = matrix.Zeros(stop); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLattice, err)
		}
	} else if out.Shape() != stop {
		return nil, fmt.Errorf("%w: accumulator %s, output %s", ErrShapeMismatch, out.Shape(), stop)
	}

	e := expander{
		taps:    f.Taps(),
		mid:     f.Center(),
		edge:    edge,
		scratch: make([]float64, f.Len()),
	}
	if edge == EdgeReflect1 {
		e.stuffed = make([]float64, max(stop.Rows, stop.Cols))
	}

	if f.Orientation() == filter.Row {
		for i := range img.Rows() {
			r := start.Row + i*step.Row
			e.expand(out.Row(r), img.Row(i), start.Col, step.Col)
		}
		return out, nil
	}

	src := make([]float64, img.Rows())
	dst := make([]float64, stop.Rows)
	for j := range img.Cols() {
		c := start.Col + j*step.Col
		img.ColumnTo(src, j)
		clear(dst)
		e.expand(dst, src, start.Row, step.Row)
		for r, v := range dst {
			if v != 0 {
				out.Set(r, c, out.At(r, c)+v)
			}
		}
	}
	return out, nil
}

func validate(s matrix.Shape, f filter.Filter, edge Edge, step, start matrix.Point) error {
	if !edge.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, int(edge))
	}
	if f.Len() == 0 {
		return fmt.Errorf("%w: empty filter", ErrOrientationMismatch)
	}
	if step.Row < 1 || step.Col < 1 || start.Row < 0 || start.Col < 0 {
		return fmt.Errorf("%w: step (%d,%d) start (%d,%d)", ErrInvalidLattice, step.Row, step.Col, start.Row, start.Col)
	}
	if s.Rows < 1 || s.Cols < 1 || start.Row >= s.Rows || start.Col >= s.Cols {
		return fmt.Errorf("%w: start (%d,%d) outside extent %s", ErrInvalidLattice, start.Row, start.Col, s)
	}
	if f.Len() > 1 {
		if f.Orientation() == filter.Row && s.Cols == 1 {
			return fmt.Errorf("%w: row filter of %d taps on %s", ErrOrientationMismatch, f.Len(), s)
		}
		if f.Orientation() == filter.Column && s.Rows == 1 {
			return fmt.Errorf("%w: column filter of %d taps on %s", ErrOrientationMismatch, f.Len(), s)
		}
	}
	return nil
}

// latticeCount returns the number of lattice points start + k*step below n.
func latticeCount(n, start, step int) int {
	if start >= n {
		return 0
	}
	return (n - start + step - 1) / step
}

// LatticeCount is the number of samples CorrDn produces along an axis of
// extent n, and the input extent UpConv expects for an output extent n.
func LatticeCount(n, start, step int) int {
	return latticeCount(n, start, step)
}

func correlate1D(dst, src, taps []float64, mid int, edge Edge, start, step int) {
	n := len(src)
	m := len(taps)
	for k := range dst {
		lo := start + k*step - mid
		if lo >= 0 && lo+m <= n {
			dst[k] = vecmath.DotProduct(taps, src[lo:lo+m])
			continue
		}
		if edge == EdgeDontCompute {
			dst[k] = 0
			continue
		}
		var sum float64
		for i, t := range taps {
			a, b, cnt := edge.resolve(lo+i, n)
			if cnt > 0 {
				sum += t * a.w * src[a.idx]
			}
			if cnt > 1 {
				sum += t * b.w * src[b.idx]
			}
		}
		dst[k] = sum
	}
}

// expander holds the per-call state of UpConv along one axis.
type expander struct {
	taps    []float64
	mid     int
	edge    Edge
	scratch []float64
	stuffed []float64
}

// expand adds the expansion of src into dst.
func (e *expander) expand(dst, src []float64, start, step int) {
	if e.edge == EdgeReflect1 {
		e.expandReflected(dst, src, start, step)
		return
	}

	n := len(dst)
	m := len(e.taps)
	for k, x := range src {
		if x == 0 {
			continue
		}
		lo := start + k*step - e.mid
		if lo >= 0 && lo+m <= n {
			vecmath.ScaleBlock(e.scratch, e.taps, x)
			vecmath.AddBlockInPlace(dst[lo:lo+m], e.scratch)
			continue
		}
		if e.edge == EdgeDontCompute {
			continue
		}
		for i, t := range e.taps {
			a, b, cnt := e.edge.resolve(lo+i, n)
			if cnt > 0 {
				dst[a.idx] += t * a.w * x
			}
			if cnt > 1 {
				dst[b.idx] += t * b.w * x
			}
		}
	}
}

// expandReflected zero-stuffs src onto the lattice and convolves the
// whole-sample mirror extension of the stuffed signal with the taps:
//
//	dst[p] += sum_i taps[i] * z[mirror(p + mid - i)]
func (e *expander) expandReflected(dst, src []float64, start, step int) {
	n := len(dst)
	m := len(e.taps)
	z := e.stuffed[:n]
	clear(z)
	for k, x := range src {
		z[start+k*step] = x
	}
	rev := e.scratch
	for i, t := range e.taps {
		rev[m-1-i] = t
	}

	for p := range n {
		lo := p + e.mid - (m - 1)
		if lo >= 0 && lo+m <= n {
			dst[p] += vecmath.DotProduct(rev, z[lo:lo+m])
			continue
		}
		var sum float64
		for j, t := range rev {
			sum += t * z[mirrorOdd(lo+j, n)]
		}
		dst[p] += sum
	}
}
