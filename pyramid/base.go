package pyramid

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/kernel"
	"github.com/cwbudde/algo-pyramid/matrix"
)

// Errors returned by pyramid construction and reconstruction.
var (
	ErrHeightExceeded  = errors.New("pyramid: requested height exceeds maximum")
	ErrIndexOutOfRange = errors.New("pyramid: band index out of range")
	ErrEmptyImage      = errors.New("pyramid: empty image")
	ErrCorruptBands    = errors.New("pyramid: band extents inconsistent with source")
	ErrFilterParity    = errors.New("pyramid: reconstruction filter length parity differs from analysis filter")
)

// base holds what every pyramid shares: the source image, its edge policy,
// and the flat band list (finest first, low-pass last) with parallel shapes.
type base struct {
	image  *matrix.Matrix
	edge   kernel.Edge
	height int
	bands  []*matrix.Matrix
	shapes []matrix.Shape
}

func newBase(img *matrix.Matrix, cfg config) (base, error) {
	if img == nil || img.Len() == 0 {
		return base{}, ErrEmptyImage
	}
	if !cfg.edge.Valid() {
		return base{}, fmt.Errorf("%w: %d", kernel.ErrUnknownEdge, int(cfg.edge))
	}
	return base{image: img.Clone(), edge: cfg.edge}, nil
}

// parseFilter resolves s and orients it for the source image: row signals
// take a 1xN filter, everything else an Nx1 filter.
func (b *base) parseFilter(s filter.Spec) (filter.Filter, error) {
	f, err := s.Resolve()
	if err != nil {
		return filter.Filter{}, err
	}
	if b.image.Rows() == 1 {
		return f.AsRow(), nil
	}
	return f.AsColumn(), nil
}

// setHeight applies a requested height against the maximum supported one.
// Zero requests the maximum.
func (b *base) setHeight(requested, maxHeight int) error {
	switch {
	case requested == 0:
		b.height = maxHeight
	case requested > maxHeight:
		return fmt.Errorf("%w: height %d, maximum %d for %s", ErrHeightExceeded, requested, maxHeight, b.image.Shape())
	default:
		b.height = requested
	}
	return nil
}

func (b *base) push(m *matrix.Matrix) {
	b.bands = append(b.bands, m)
	b.shapes = append(b.shapes, m.Shape())
}

// Band returns a copy of band i of the flat band list.
func (b *base) Band(i int) (*matrix.Matrix, error) {
	if i < 0 || i >= len(b.bands) {
		return nil, fmt.Errorf("%w: band %d not in [0, %d)", ErrIndexOutOfRange, i, len(b.bands))
	}
	return b.bands[i].Clone(), nil
}

// Len returns the number of stored bands.
func (b *base) Len() int {
	return len(b.bands)
}

// Height returns the number of levels, including the low-pass residual.
func (b *base) Height() int {
	return b.height
}

// Shapes returns the extent of every band, parallel to the band list.
func (b *base) Shapes() []matrix.Shape {
	return append([]matrix.Shape(nil), b.shapes...)
}

// Edge returns the edge policy used at construction.
func (b *base) Edge() kernel.Edge {
	return b.edge
}

// Image returns a copy of the source image.
func (b *base) Image() *matrix.Matrix {
	return b.image.Clone()
}

// PyrLow returns a copy of the low-pass residual, the last band.
func (b *base) PyrLow() *matrix.Matrix {
	return b.bands[len(b.bands)-1].Clone()
}

// reconEdge returns the edge override from rc, or the construction edge.
func (b *base) reconEdge(rc reconConfig) (kernel.Edge, error) {
	if !rc.hasEdge {
		return b.edge, nil
	}
	if !rc.edge.Valid() {
		return 0, fmt.Errorf("%w: %d", kernel.ErrUnknownEdge, int(rc.edge))
	}
	return rc.edge, nil
}
