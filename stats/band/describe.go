package band

import (
	"fmt"

	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
)

// Source is the read-only view of a built pyramid that Describe needs.
// *pyramid.Laplacian, *pyramid.Gaussian and *pyramid.Wavelet implement it.
type Source interface {
	Len() int
	Height() int
	NumBands() int
	Band(i int) (*matrix.Matrix, error)
}

// Info describes one band of a pyramid.
type Info struct {
	Index       int
	Level       int
	Orientation int
	Lowpass     bool
	Stats       Stats
	Spectral    Spectral
}

// Describe computes statistics and spectral descriptors for every band of
// src, in band-list order.
func Describe(src Source) ([]Info, error) {
	out := make([]Info, 0, src.Len())
	for i := range src.Len() {
		level, orientation, err := pyramid.LevelOrientationOf(i, src.Height(), src.NumBands())
		if err != nil {
			return nil, err
		}
		b, err := src.Band(i)
		if err != nil {
			return nil, err
		}
		spec, err := Analyze(b)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		out = append(out, Info{
			Index:       i,
			Level:       level,
			Orientation: orientation,
			Lowpass:     level == src.Height()-1,
			Stats:       Calculate(b),
			Spectral:    spec,
		})
	}
	return out, nil
}
