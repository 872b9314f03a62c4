package band

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pyramid/matrix"
)

// Stats holds summary statistics of one pyramid band.
//
//nolint:revive
type Stats struct {
	Shape    matrix.Shape
	Count    int
	Mean     float64
	RMS      float64
	RMS_dB   float64
	Max      float64
	MaxPos   matrix.Point
	Min      float64
	MinPos   matrix.Point
	Peak     float64 // max(|max|, |min|)
	Peak_dB  float64
	Range    float64 // max - min
	Energy   float64 // sum of squares
	Variance float64
	Std      float64
	Skewness float64
	Kurtosis float64 // excess
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// Calculate computes band statistics. Moments use Welford's online update;
// energy and peak go through vecmath.
func Calculate(m *matrix.Matrix) Stats {
	if m == nil || m.Len() == 0 {
		return Stats{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	data := m.Data()
	cols := m.Cols()

	var mean, m2, m3, m4 float64
	maxVal, minVal := data[0], data[0]
	var maxIdx, minIdx int

	for i, x := range data {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		if x > maxVal {
			maxVal, maxIdx = x, i
		}
		if x < minVal {
			minVal, minIdx = x, i
		}
	}

	n := float64(len(data))
	energy := vecmath.DotProduct(data, data)
	rms := math.Sqrt(energy / n)
	peak := vecmath.MaxAbs(data)

	variance := m2 / n
	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / n) / (variance * math.Sqrt(variance))
		kurtosis = (m4/n)/(variance*variance) - 3
	}

	return Stats{
		Shape:    m.Shape(),
		Count:    len(data),
		Mean:     mean,
		RMS:      rms,
		RMS_dB:   ampTodB(rms),
		Max:      maxVal,
		MaxPos:   matrix.Point{Row: maxIdx / cols, Col: maxIdx % cols},
		Min:      minVal,
		MinPos:   matrix.Point{Row: minIdx / cols, Col: minIdx % cols},
		Peak:     peak,
		Peak_dB:  ampTodB(peak),
		Range:    maxVal - minVal,
		Energy:   energy,
		Variance: variance,
		Std:      math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}
