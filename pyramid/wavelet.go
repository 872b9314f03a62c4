package pyramid

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/kernel"
	"github.com/cwbudde/algo-pyramid/matrix"
)

// Wavelet is a separable QMF or wavelet pyramid.
//
// For a 2D source every detail level stores three bands in the order
// Horizontal, Vertical, Diagonal; for a row or column signal each level
// stores a single high-pass band. The low-pass residual comes last.
//
// The high-pass filter is the modulated flip of the low-pass filter. Even
// length filters sample the low-pass branch on the odd lattice (stagger 1).
// Reconstruction is exact for orthogonal filters (haar, daub*) with circular
// edges on even extents; the qmf family is only approximately invertible.
type Wavelet struct {
	base
	lo      filter.Filter
	hi      filter.Filter
	stagger int
	kind    matrix.Kind
}

// NewWavelet builds a wavelet pyramid of img. The filter defaults to qmf9,
// the edge policy to reflect1 and the height to the maximum the source
// supports.
func NewWavelet(img *matrix.Matrix, opts ...Option) (*Wavelet, error) {
	cfg := applyOptions("qmf9", opts)
	b, err := newBase(img, cfg)
	if err != nil {
		return nil, err
	}
	w := &Wavelet{base: b, kind: b.image.Kind()}
	if w.lo, err = w.parseFilter(cfg.filter); err != nil {
		return nil, err
	}
	w.hi = filter.ModulateFlip(w.lo)
	w.stagger = w.lo.Stagger()

	maxHeight := 1 + maxHalvings(w.image.Shape(), w.lo.Len(), w.stagger)
	if err := w.setHeight(cfg.height, maxHeight); err != nil {
		return nil, err
	}

	img = w.image
	for range w.height - 1 {
		next, details, err := w.analyze(img)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			w.push(d)
		}
		img = next
	}
	w.push(img.Clone())
	return w, nil
}

// NumBands returns the number of detail bands per level: 3 for images and 1
// for row or column signals.
func (w *Wavelet) NumBands() int {
	if w.kind == matrix.KindImage {
		return 3
	}
	return 1
}

// Stagger returns the low-pass lattice offset: 1 for even-length filters.
func (w *Wavelet) Stagger() int {
	return w.stagger
}

// Filters returns the low-pass and high-pass analysis filters.
func (w *Wavelet) Filters() (low, high filter.Filter) {
	return w.lo, w.hi
}

// analyze splits img into the next low-pass image and its detail bands.
func (w *Wavelet) analyze(img *matrix.Matrix) (*matrix.Matrix, []*matrix.Matrix, error) {
	s := w.stagger
	switch w.kind {
	case matrix.KindRowSignal:
		return w.split1D(img, stepCols, matrix.Point{Col: s}, matrix.Point{Col: 1})
	case matrix.KindColumnSignal:
		return w.split1D(img, stepRows, matrix.Point{Row: s}, matrix.Point{Row: 1})
	}

	loImg, err := kernel.CorrDn(img, w.lo, w.edge, stepRows, matrix.Point{Row: s})
	if err != nil {
		return nil, nil, err
	}
	hiImg, err := kernel.CorrDn(img, w.hi, w.edge, stepRows, matrix.Point{Row: 1})
	if err != nil {
		return nil, nil, err
	}

	type pass struct {
		src   *matrix.Matrix
		f     filter.Filter
		start int
	}
	passes := []pass{
		{loImg, w.lo.T(), s}, // lolo
		{hiImg, w.lo.T(), s}, // lohi: Horizontal
		{loImg, w.hi.T(), 1}, // hilo: Vertical
		{hiImg, w.hi.T(), 1}, // hihi: Diagonal
	}
	out := make([]*matrix.Matrix, len(passes))
	for i, ps := range passes {
		if out[i], err = kernel.CorrDn(ps.src, ps.f, w.edge, stepCols, matrix.Point{Col: ps.start}); err != nil {
			return nil, nil, err
		}
	}
	return out[0], out[1:], nil
}

func (w *Wavelet) split1D(img *matrix.Matrix, step, loStart, hiStart matrix.Point) (*matrix.Matrix, []*matrix.Matrix, error) {
	low, err := kernel.CorrDn(img, w.lo, w.edge, step, loStart)
	if err != nil {
		return nil, nil, err
	}
	high, err := kernel.CorrDn(img, w.hi, w.edge, step, hiStart)
	if err != nil {
		return nil, nil, err
	}
	return low, []*matrix.Matrix{high}, nil
}

// levelExtents returns the extent of the low-pass image entering each level,
// derived from the source shape, after checking every stored band against it.
func (w *Wavelet) levelExtents(stagger int) ([]matrix.Shape, error) {
	extents := make([]matrix.Shape, w.height)
	s := w.image.Shape()
	for lev := range w.height {
		extents[lev] = s
		s = halve(s, w.kind, stagger)
	}

	bpl := w.NumBands()
	for lev := range w.height - 1 {
		for o := range bpl {
			idx, err := BandIndex(lev, o, w.height, bpl)
			if err != nil {
				return nil, err
			}
			want := w.detailShape(extents[lev], Orientation(o), stagger)
			if w.shapes[idx] != want {
				return nil, fmt.Errorf("%w: band %d has extent %s, level %d expects %s",
					ErrCorruptBands, idx, w.shapes[idx], lev, want)
			}
		}
	}
	if low := w.shapes[len(w.shapes)-1]; low != extents[w.height-1] {
		return nil, fmt.Errorf("%w: low-pass extent %s, expected %s", ErrCorruptBands, low, extents[w.height-1])
	}
	return extents, nil
}

// detailShape returns the extent of the detail band with orientation o
// produced from an input of extent in.
func (w *Wavelet) detailShape(in matrix.Shape, o Orientation, stagger int) matrix.Shape {
	switch w.kind {
	case matrix.KindRowSignal:
		in.Cols = kernel.LatticeCount(in.Cols, 1, 2)
		return in
	case matrix.KindColumnSignal:
		in.Rows = kernel.LatticeCount(in.Rows, 1, 2)
		return in
	}
	rowStart, colStart := 1, stagger
	switch o {
	case Vertical:
		rowStart, colStart = stagger, 1
	case Diagonal:
		rowStart, colStart = 1, 1
	}
	return matrix.Shape{
		Rows: kernel.LatticeCount(in.Rows, rowStart, 2),
		Cols: kernel.LatticeCount(in.Cols, colStart, 2),
	}
}

// ReconPyr inverts the pyramid. By default every level and orientation is
// used with the construction filter and edge policy. WithLevels and WithBands
// restrict which detail bands contribute; the low-pass residual contributes
// only when level Height-1 is selected.
func (w *Wavelet) ReconPyr(opts ...ReconOption) (*matrix.Matrix, error) {
	rc := applyReconOptions(opts)
	levels, err := selection(rc.levels, w.height, "level")
	if err != nil {
		return nil, err
	}
	bands, err := selection(rc.bands, w.NumBands(), "orientation")
	if err != nil {
		return nil, err
	}

	loF, hiF, stagger := w.lo, w.hi, w.stagger
	if !rc.filter.IsZero() {
		if loF, err = w.parseFilter(rc.filter); err != nil {
			return nil, err
		}
		if loF.Stagger() != w.stagger {
			return nil, fmt.Errorf("%w: %s has %d taps, pyramid was built with %d",
				ErrFilterParity, rc.filter, loF.Len(), w.lo.Len())
		}
		hiF = filter.ModulateFlip(loF)
	}
	edge, err := w.reconEdge(rc)
	if err != nil {
		return nil, err
	}

	extents, err := w.levelExtents(stagger)
	if err != nil {
		return nil, err
	}

	syn := synthesizer{kind: w.kind, lo: loF, hi: hiF, edge: edge, stagger: stagger}
	top := w.height - 1
	var res *matrix.Matrix
	if lo.Contains(levels, top) {
		res = w.PyrLow()
	} else if res, err = matrix.Zeros(extents[top]); err != nil {
		return nil, err
	}

	for lev := top - 1; lev >= 0; lev-- {
		out := extents[lev]
		if res, err = syn.low(res, out); err != nil {
			return nil, fmt.Errorf("pyramid: synthesizing level %d: %w", lev, err)
		}
		if !lo.Contains(levels, lev) {
			continue
		}
		for _, o := range bands {
			idx, err := BandIndex(lev, o, w.height, w.NumBands())
			if err != nil {
				return nil, err
			}
			if err := syn.detail(w.bands[idx], Orientation(o), out, res); err != nil {
				return nil, fmt.Errorf("pyramid: synthesizing level %d %s: %w", lev, Orientation(o), err)
			}
		}
	}
	return res, nil
}

// synthesizer runs the adjoint of Wavelet.analyze for one filter pair.
type synthesizer struct {
	kind    matrix.Kind
	lo, hi  filter.Filter
	edge    kernel.Edge
	stagger int
}

// low expands a low-pass image to extent out.
func (s synthesizer) low(img *matrix.Matrix, out matrix.Shape) (*matrix.Matrix, error) {
	switch s.kind {
	case matrix.KindRowSignal:
		return kernel.UpConv(img, s.lo, s.edge, stepCols, matrix.Point{Col: s.stagger}, out, nil)
	case matrix.KindColumnSignal:
		return kernel.UpConv(img, s.lo, s.edge, stepRows, matrix.Point{Row: s.stagger}, out, nil)
	}
	tmp, err := kernel.UpConv(img, s.lo.T(), s.edge, stepCols, matrix.Point{Col: s.stagger},
		matrix.Shape{Rows: img.Rows(), Cols: out.Cols}, nil)
	if err != nil {
		return nil, err
	}
	return kernel.UpConv(tmp, s.lo, s.edge, stepRows, matrix.Point{Row: s.stagger}, out, nil)
}

// detail expands one detail band to extent out and adds it into acc.
func (s synthesizer) detail(band *matrix.Matrix, o Orientation, out matrix.Shape, acc *matrix.Matrix) error {
	switch s.kind {
	case matrix.KindRowSignal:
		_, err := kernel.UpConv(band, s.hi, s.edge, stepCols, matrix.Point{Col: 1}, out, acc)
		return err
	case matrix.KindColumnSignal:
		_, err := kernel.UpConv(band, s.hi, s.edge, stepRows, matrix.Point{Row: 1}, out, acc)
		return err
	}

	// Horizontal: low along rows of the image, high along columns.
	colF, colStart := s.lo.T(), s.stagger
	rowF, rowStart := s.hi, 1
	switch o {
	case Vertical:
		colF, colStart = s.hi.T(), 1
		rowF, rowStart = s.lo, s.stagger
	case Diagonal:
		colF, colStart = s.hi.T(), 1
	}
	tmp, err := kernel.UpConv(band, colF, s.edge, stepCols, matrix.Point{Col: colStart},
		matrix.Shape{Rows: band.Rows(), Cols: out.Cols}, nil)
	if err != nil {
		return err
	}
	_, err = kernel.UpConv(tmp, rowF, s.edge, stepRows, matrix.Point{Row: rowStart}, out, acc)
	return err
}
