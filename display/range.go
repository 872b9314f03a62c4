package display

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
	"github.com/cwbudde/algo-pyramid/stats/band"
)

// Errors returned by display.
var (
	ErrUnknownRange = errors.New("display: unknown range mode")
	ErrRangeCount   = errors.New("display: range count does not match band count")
	ErrEmptySource  = errors.New("display: pyramid has no bands")
)

// Source is the finished band data display reads. The pyramid types
// implement it.
type Source interface {
	Len() int
	Height() int
	NumBands() int
	Band(i int) (*matrix.Matrix, error)
	Shapes() []matrix.Shape
}

// RangeMode selects how band values are mapped to gray levels.
type RangeMode int

const (
	// RangeAuto is auto1 for 1D sources and auto2 for images.
	RangeAuto RangeMode = iota
	// RangeAuto1 uses one min/max range for all detail bands, scaled per
	// level, and the low-pass band's own min/max.
	RangeAuto1
	// RangeAuto2 uses ±3 pooled standard deviations for detail bands, scaled
	// per level, and mean ±2 standard deviations for the low-pass band.
	RangeAuto2
	// RangeIndep1 uses every band's own min/max.
	RangeIndep1
	// RangeIndep2 uses ±3 standard deviations of each detail band and mean
	// ±2 standard deviations for the low-pass band.
	RangeIndep2
)

var rangeNames = map[RangeMode]string{
	RangeAuto:   "auto",
	RangeAuto1:  "auto1",
	RangeAuto2:  "auto2",
	RangeIndep1: "indep1",
	RangeIndep2: "indep2",
}

func (m RangeMode) String() string {
	if s, ok := rangeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("RangeMode(%d)", int(m))
}

// ParseRangeMode maps "auto", "auto1", "auto2", "indep1" or "indep2" to a
// RangeMode.
func ParseRangeMode(s string) (RangeMode, error) {
	for m, name := range rangeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRange, s)
}

// Range is the value interval mapped onto black..white.
type Range struct {
	Lo, Hi float64
}

// oneD reports whether src holds a row or column signal.
func oneD(src Source) bool {
	shapes := src.Shapes()
	return len(shapes) > 0 && shapes[0].Kind() != matrix.KindImage
}

// Ranges computes the display range of every band of src. A scale <= 0
// selects the default per-level scale: sqrt(2) for 1D sources and 2 for
// images. 1D min/max ranges are padded by 1/12 of their span.
func Ranges(src Source, mode RangeMode, scale float64) ([]Range, error) {
	n := src.Len()
	if n == 0 {
		return nil, ErrEmptySource
	}
	is1D := oneD(src)
	if mode == RangeAuto {
		mode = RangeAuto2
		if is1D {
			mode = RangeAuto1
		}
	}
	if scale <= 0 {
		scale = 2
		if is1D {
			scale = math.Sqrt2
		}
	}

	stats := make([]band.Stats, n)
	levels := make([]int, n)
	for i := range n {
		b, err := src.Band(i)
		if err != nil {
			return nil, err
		}
		stats[i] = band.Calculate(b)
		if levels[i], _, err = pyramid.LevelOrientationOf(i, src.Height(), src.NumBands()); err != nil {
			return nil, err
		}
	}
	low := n - 1
	pad := func(r Range) Range {
		if !is1D {
			return r
		}
		p := (r.Hi - r.Lo) / 12
		return Range{r.Lo - p, r.Hi + p}
	}
	lowMinMax := pad(Range{stats[low].Min, stats[low].Max})
	lowStd := Range{stats[low].Mean - 2*stats[low].Std, stats[low].Mean + 2*stats[low].Std}

	out := make([]Range, n)
	switch mode {
	case RangeAuto1:
		var mn, mx float64
		for i := range low {
			f := math.Pow(scale, float64(levels[i]))
			mn = math.Min(mn, stats[i].Min/f)
			mx = math.Max(mx, stats[i].Max/f)
		}
		r := pad(Range{mn, mx})
		for i := range low {
			f := math.Pow(scale, float64(levels[i]))
			out[i] = Range{f * r.Lo, f * r.Hi}
		}
		out[low] = lowMinMax
	case RangeAuto2:
		var sqsum float64
		var count int
		for i := range low {
			f := math.Pow(scale, float64(levels[i]))
			sqsum += stats[i].Energy / (f * f)
			count += stats[i].Count
		}
		var std float64
		if count > 1 {
			std = math.Sqrt(sqsum / float64(count-1))
		}
		for i := range low {
			f := math.Pow(scale, float64(levels[i]))
			out[i] = Range{-3 * std * f, 3 * std * f}
		}
		out[low] = lowStd
	case RangeIndep1:
		for i := range n {
			out[i] = pad(Range{stats[i].Min, stats[i].Max})
		}
	case RangeIndep2:
		for i := range low {
			out[i] = Range{-3 * stats[i].Std, 3 * stats[i].Std}
		}
		out[low] = lowStd
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownRange, int(mode))
	}
	return out, nil
}

// gray maps v into 0..255 for range r. Degenerate ranges map to mid gray.
func gray(v float64, r Range) uint8 {
	span := r.Hi - r.Lo
	if !(span > 0) {
		return 128
	}
	g := math.Round((v - r.Lo) * 255 / span)
	return uint8(max(0, min(255, g)))
}
