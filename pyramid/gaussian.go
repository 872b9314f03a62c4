package pyramid

import (
	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/matrix"
)

// Gaussian is a low-pass pyramid: band 0 is the source and every further
// band is the previous one blurred and decimated by two.
type Gaussian struct {
	base
	filter filter.Filter
}

// NewGaussian builds a Gaussian pyramid of img with the same defaults as
// NewLaplacian.
func NewGaussian(img *matrix.Matrix, opts ...Option) (*Gaussian, error) {
	cfg := applyOptions("binom5", opts)
	b, err := newBase(img, cfg)
	if err != nil {
		return nil, err
	}
	p := &Gaussian{base: b}
	if p.filter, err = p.parseFilter(cfg.filter); err != nil {
		return nil, err
	}
	if err := p.setHeight(cfg.height, 1+MaxPyrHt(p.image.Shape(), p.filter.Len())); err != nil {
		return nil, err
	}

	img = p.image
	p.push(img.Clone())
	for range p.height - 1 {
		if img, err = downSample(img, p.filter, p.edge); err != nil {
			return nil, err
		}
		p.push(img)
	}
	return p, nil
}

// Filter returns the blur filter.
func (p *Gaussian) Filter() filter.Filter {
	return p.filter
}

// NumBands returns the number of bands per level, always 1.
func (p *Gaussian) NumBands() int {
	return 1
}
