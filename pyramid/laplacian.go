package pyramid

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/matrix"
)

// Laplacian is a Laplacian pyramid: band k (k < Height-1) is the residual
// between level k of the Gaussian pyramid and the expansion of level k+1; the
// last band is the coarsest low-pass image.
//
// Reconstruction from all levels reproduces the source up to floating-point
// rounding for any filter and edge policy.
type Laplacian struct {
	base
	filter1 filter.Filter
	filter2 filter.Filter
}

// NewLaplacian builds a Laplacian pyramid of img. The analysis filter
// defaults to binom5, the expansion filter to the analysis filter, the edge
// policy to reflect1 and the height to 1+MaxPyrHt.
func NewLaplacian(img *matrix.Matrix, opts ...Option) (*Laplacian, error) {
	cfg := applyOptions("binom5", opts)
	b, err := newBase(img, cfg)
	if err != nil {
		return nil, err
	}
	p := &Laplacian{base: b}

	if p.filter1, err = p.parseFilter(cfg.filter); err != nil {
		return nil, err
	}
	p.filter2 = p.filter1
	if !cfg.expand.IsZero() {
		if p.filter2, err = p.parseFilter(cfg.expand); err != nil {
			return nil, err
		}
	}

	maxHeight := 1 + MaxPyrHt(p.image.Shape(), p.filter1.Len())
	if err := p.setHeight(cfg.height, maxHeight); err != nil {
		return nil, err
	}
	if err := p.build(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Laplacian) build() error {
	img := p.image
	for range p.height - 1 {
		next, err := downSample(img, p.filter1, p.edge)
		if err != nil {
			return err
		}
		expanded, err := upSample(next, img.Shape(), p.filter2, p.edge)
		if err != nil {
			return err
		}
		residual, err := matrix.Sub(img, expanded)
		if err != nil {
			return err
		}
		p.push(residual)
		img = next
	}
	p.push(img.Clone())
	return nil
}

// Filters returns the analysis and expansion filters.
func (p *Laplacian) Filters() (analysis, expansion filter.Filter) {
	return p.filter1, p.filter2
}

// NumBands returns the number of bands per level, always 1.
func (p *Laplacian) NumBands() int {
	return 1
}

// ReconPyr collapses the pyramid. By default all levels are used with the
// construction expansion filter and edge policy; options restrict the levels
// or override the filter and edge. Selecting no levels yields zeros of the
// source extent.
func (p *Laplacian) ReconPyr(opts ...ReconOption) (*matrix.Matrix, error) {
	rc := applyReconOptions(opts)
	levels, err := selection(rc.levels, p.height, "level")
	if err != nil {
		return nil, err
	}
	f := p.filter2
	if !rc.filter.IsZero() {
		if f, err = p.parseFilter(rc.filter); err != nil {
			return nil, err
		}
	}
	edge, err := p.reconEdge(rc)
	if err != nil {
		return nil, err
	}

	if len(levels) == 0 {
		return matrix.Zeros(p.shapes[0])
	}

	top := lo.Max(levels)
	res, err := p.level(top)
	if err != nil {
		return nil, err
	}
	for lev := top - 1; lev >= 0; lev-- {
		if res, err = upSample(res, p.shapes[lev], f, edge); err != nil {
			return nil, fmt.Errorf("pyramid: expanding to level %d: %w", lev, err)
		}
		if lo.Contains(levels, lev) {
			band, err := p.level(lev)
			if err != nil {
				return nil, err
			}
			if err := res.AddInPlace(band); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// level returns a copy of the band at level lev.
func (p *Laplacian) level(lev int) (*matrix.Matrix, error) {
	idx, err := BandIndex(lev, 0, p.height, 1)
	if err != nil {
		return nil, err
	}
	return p.Band(idx)
}
