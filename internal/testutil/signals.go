package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-pyramid/matrix"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// NoiseImage returns a rows x cols matrix of seeded white noise.
func NoiseImage(seed int64, rows, cols int) *matrix.Matrix {
	m, err := matrix.FromData(rows, cols, DeterministicNoise(seed, 1, rows*cols))
	if err != nil {
		panic(err)
	}
	return m
}

// Sequence returns a rows x cols matrix holding 0, 1, 2, ... in row-major order.
func Sequence(rows, cols int) *matrix.Matrix {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i)
	}
	m, err := matrix.FromData(rows, cols, data)
	if err != nil {
		panic(err)
	}
	return m
}

// VerticalStep returns an image that is 0 left of column edge and 1 from
// column edge on. Every column is constant.
func VerticalStep(rows, cols, edge int) *matrix.Matrix {
	m := mustNew(rows, cols)
	for r := range rows {
		for c := edge; c < cols; c++ {
			m.Set(r, c, 1)
		}
	}
	return m
}

// HorizontalStep returns an image that is 0 above row edge and 1 from row
// edge on. Every row is constant.
func HorizontalStep(rows, cols, edge int) *matrix.Matrix {
	return VerticalStep(cols, rows, edge).T()
}

// SmoothImage returns a low-frequency test pattern: a sum of two slow
// sinusoids.
func SmoothImage(rows, cols int) *matrix.Matrix {
	m := mustNew(rows, cols)
	for r := range rows {
		for c := range cols {
			v := math.Sin(2*math.Pi*float64(r)/float64(rows)) + 0.5*math.Cos(2*math.Pi*float64(c)/float64(cols))
			m.Set(r, c, v)
		}
	}
	return m
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

func mustNew(rows, cols int) *matrix.Matrix {
	m, err := matrix.New(rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}
