package matrix

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// ErrDimensions reports an invalid or inconsistent matrix extent.
var ErrDimensions = errors.New("matrix: invalid dimensions")

// Shape is the extent of a matrix as (rows, cols).
type Shape struct {
	Rows int
	Cols int
}

// Size returns the number of elements covered by the shape.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

// T returns the transposed shape.
func (s Shape) T() Shape {
	return Shape{Rows: s.Cols, Cols: s.Rows}
}

// Kind classifies the shape as a row signal, column signal or image.
func (s Shape) Kind() Kind {
	switch {
	case s.Rows == 1 && s.Cols > 1:
		return KindRowSignal
	case s.Cols == 1 && s.Rows > 1:
		return KindColumnSignal
	default:
		return KindImage
	}
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d)", s.Rows, s.Cols)
}

// Point addresses a (row, col) pair. It is used for lattice steps and starts.
type Point struct {
	Row int
	Col int
}

// Kind identifies how a matrix is interpreted by the pyramid engines.
type Kind int

const (
	// KindImage is a genuine 2D array (or a 1x1 scalar).
	KindImage Kind = iota
	// KindRowSignal is a 1xN signal; only the column axis is processed.
	KindRowSignal
	// KindColumnSignal is an Nx1 signal; only the row axis is processed.
	KindColumnSignal
)

func (k Kind) String() string {
	switch k {
	case KindRowSignal:
		return "row-signal"
	case KindColumnSignal:
		return "column-signal"
	default:
		return "image"
	}
}

// Matrix is a dense row-major float64 array.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New returns a zero-filled rows x cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Zeros returns a zero-filled matrix of the given shape.
func Zeros(s Shape) (*Matrix, error) {
	return New(s.Rows, s.Cols)
}

// FromData wraps data as a rows x cols matrix without copying.
// Mutations to data are visible through the matrix and vice versa.
func FromData(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d with %d elements", ErrDimensions, rows, cols, len(data))
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// FromRows copies a slice of equally long rows into a new matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrDimensions)
	}
	m := &Matrix{rows: len(rows), cols: len(rows[0])}
	m.data = make([]float64, 0, m.rows*m.cols)
	for i, r := range rows {
		if len(r) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", ErrDimensions, i, len(r), m.cols)
		}
		m.data = append(m.data, r...)
	}
	return m, nil
}

// RowVector copies v into a 1xN matrix.
func RowVector(v []float64) (*Matrix, error) {
	return FromData(1, len(v), append([]float64(nil), v...))
}

// ColumnVector copies v into an Nx1 matrix.
func ColumnVector(v []float64) (*Matrix, error) {
	return FromData(len(v), 1, append([]float64(nil), v...))
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Shape returns the matrix extent.
func (m *Matrix) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// Kind classifies the matrix by its shape.
func (m *Matrix) Kind() Kind {
	return m.Shape().Kind()
}

// Len returns the number of elements.
func (m *Matrix) Len() int {
	return len(m.data)
}

// Data returns the underlying row-major slice.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Row returns row i as a slice aliasing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// At returns the element at (r, c).
func (m *Matrix) At(r, c int) float64 {
	return m.data[r*m.cols+c]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v float64) {
	m.data[r*m.cols+c] = v
}

// ColumnTo copies column c into dst, which must have length Rows().
func (m *Matrix) ColumnTo(dst []float64, c int) {
	_ = dst[m.rows-1] // bounds check hint
	for r := range m.rows {
		dst[r] = m.data[r*m.cols+c]
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// T returns a transposed copy.
func (m *Matrix) T() *Matrix {
	out := &Matrix{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for r := range m.rows {
		for c := range m.cols {
			out.data[c*m.rows+r] = m.data[r*m.cols+c]
		}
	}
	return out
}

// Reshape returns a copy with the same elements in row-major order and a new extent.
func (m *Matrix) Reshape(rows, cols int) (*Matrix, error) {
	if rows*cols != len(m.data) {
		return nil, fmt.Errorf("%w: cannot reshape %s to (%d,%d)", ErrDimensions, m.Shape(), rows, cols)
	}
	return FromData(rows, cols, append([]float64(nil), m.data...))
}

// AddInPlace adds other element-wise into m.
func (m *Matrix) AddInPlace(other *Matrix) error {
	if m.Shape() != other.Shape() {
		return fmt.Errorf("%w: %s + %s", ErrDimensions, m.Shape(), other.Shape())
	}
	vecmath.AddBlockInPlace(m.data, other.data)
	return nil
}

// Sub returns a - b as a new matrix.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.Shape() != b.Shape() {
		return nil, fmt.Errorf("%w: %s - %s", ErrDimensions, a.Shape(), b.Shape())
	}
	out := &Matrix{rows: a.rows, cols: a.cols, data: make([]float64, len(a.data))}
	vecmath.ScaleBlock(out.data, b.data, -1)
	vecmath.AddBlockInPlace(out.data, a.data)
	return out, nil
}

// Scale multiplies every element by s in place.
func (m *Matrix) Scale(s float64) {
	vecmath.ScaleBlockInPlace(m.data, s)
}

// MaxAbsDiff returns the largest absolute element difference between a and b.
func MaxAbsDiff(a, b *Matrix) (float64, error) {
	d, err := Sub(a, b)
	if err != nil {
		return 0, err
	}
	return vecmath.MaxAbs(d.data), nil
}
