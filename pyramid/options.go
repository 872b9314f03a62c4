package pyramid

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/kernel"
)

type config struct {
	edge   kernel.Edge
	height int
	filter filter.Spec
	expand filter.Spec
}

// Option configures pyramid construction.
type Option func(*config)

func defaultConfig(defaultFilter string) config {
	return config{
		edge:   kernel.EdgeReflect1,
		filter: filter.ByName(defaultFilter),
	}
}

func applyOptions(defaultFilter string, opts []Option) config {
	cfg := defaultConfig(defaultFilter)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEdge selects the edge policy used for every kernel call.
// The default is reflect1.
func WithEdge(e kernel.Edge) Option {
	return func(c *config) {
		c.edge = e
	}
}

// WithHeight requests an explicit number of levels. Zero selects the maximum
// height the image supports; negative values are ignored.
func WithHeight(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.height = n
		}
	}
}

// WithFilter selects the analysis filter (binom5 for Gaussian and Laplacian
// pyramids, qmf9 for wavelet pyramids by default).
func WithFilter(s filter.Spec) Option {
	return func(c *config) {
		if !s.IsZero() {
			c.filter = s
		}
	}
}

// WithExpandFilter selects the Laplacian expansion filter. It defaults to the
// analysis filter.
func WithExpandFilter(s filter.Spec) Option {
	return func(c *config) {
		if !s.IsZero() {
			c.expand = s
		}
	}
}

type reconConfig struct {
	levels  []int
	bands   []int
	filter  filter.Spec
	edge    kernel.Edge
	hasEdge bool
}

// ReconOption configures a reconstruction.
type ReconOption func(*reconConfig)

func applyReconOptions(opts []ReconOption) reconConfig {
	var rc reconConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&rc)
		}
	}
	return rc
}

// WithLevels restricts reconstruction to the given levels (0 is the finest,
// height-1 the low-pass residual). Without this option every level is used;
// an empty list selects none.
func WithLevels(levels ...int) ReconOption {
	return func(rc *reconConfig) {
		rc.levels = append([]int{}, levels...)
	}
}

// WithBands restricts wavelet reconstruction to the given orientations.
// Without this option every orientation is used.
func WithBands(bands ...Orientation) ReconOption {
	return func(rc *reconConfig) {
		rc.bands = lo.Map(bands, func(o Orientation, _ int) int { return int(o) })
	}
}

// WithReconFilter overrides the synthesis filter.
func WithReconFilter(s filter.Spec) ReconOption {
	return func(rc *reconConfig) {
		rc.filter = s
	}
}

// WithReconEdge overrides the edge policy used during synthesis.
func WithReconEdge(e kernel.Edge) ReconOption {
	return func(rc *reconConfig) {
		rc.edge = e
		rc.hasEdge = true
	}
}

// selection validates a level or orientation selector against [0, limit).
// A nil selector selects everything.
func selection(sel []int, limit int, what string) ([]int, error) {
	if sel == nil {
		return lo.Range(limit), nil
	}
	for _, v := range sel {
		if v < 0 || v >= limit {
			return nil, fmt.Errorf("%w: %s %d not in [0, %d)", ErrIndexOutOfRange, what, v, limit)
		}
	}
	return lo.Uniq(sel), nil
}
