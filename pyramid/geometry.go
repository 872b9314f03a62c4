package pyramid

import (
	"github.com/cwbudde/algo-pyramid/kernel"
	"github.com/cwbudde/algo-pyramid/matrix"
)

// MaxPyrHt returns the number of halving steps a signal of the given shape
// supports with a filter of filterLen taps.
//
// The shape is classified once: a row or column signal is halved only along
// its non-degenerate axis, an image along both. Each step maps an active
// extent n to ceil(n/2) and is allowed while every active extent is at least
// max(2, filterLen/2+1), i.e. while the filter's one-sided support fits inside
// the signal. A pyramid built from this shape may have up to MaxPyrHt+1 levels.
func MaxPyrHt(s matrix.Shape, filterLen int) int {
	return maxHalvings(s, filterLen, 0)
}

// maxHalvings is MaxPyrHt for a decimation lattice starting at start: each
// step maps n to ceil((n-start)/2).
func maxHalvings(s matrix.Shape, filterLen, start int) int {
	need := max(2, filterLen/2+1)
	kind := s.Kind()
	height := 0
	for {
		switch kind {
		case matrix.KindRowSignal:
			if s.Cols < need {
				return height
			}
		case matrix.KindColumnSignal:
			if s.Rows < need {
				return height
			}
		default:
			if s.Rows < need || s.Cols < need {
				return height
			}
		}
		s = halve(s, kind, start)
		height++
	}
}

// halve returns the extent after one decimation by two on the lattice
// starting at start, along the axes active for kind.
func halve(s matrix.Shape, kind matrix.Kind, start int) matrix.Shape {
	switch kind {
	case matrix.KindRowSignal:
		s.Cols = kernel.LatticeCount(s.Cols, start, 2)
	case matrix.KindColumnSignal:
		s.Rows = kernel.LatticeCount(s.Rows, start, 2)
	default:
		s.Rows = kernel.LatticeCount(s.Rows, start, 2)
		s.Cols = kernel.LatticeCount(s.Cols, start, 2)
	}
	return s
}
