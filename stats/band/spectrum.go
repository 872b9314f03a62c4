package band

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-pyramid/matrix"
)

// Spectral holds shape descriptors of a band's one-sided magnitude spectrum.
// Frequencies are in cycles per sample, 0 (DC) to 0.5 (Nyquist).
type Spectral struct {
	Bins     int
	Centroid float64
	Rolloff  float64 // below which 85% of the energy lies
	Flatness float64 // Wiener entropy, 0..1
}

// Spectrum returns the mean one-sided magnitude spectrum of m along its
// column axis: every row of an image or row signal is zero-padded to the
// next power of two and transformed; a column signal is transformed as a
// single sequence.
func Spectrum(m *matrix.Matrix) ([]float64, error) {
	if m == nil || m.Len() == 0 {
		return nil, nil
	}
	if m.Kind() == matrix.KindColumnSignal {
		m = m.T()
	}

	fftSize := nextPowerOf2(max(m.Cols(), 2))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("band: fft plan of size %d: %w", fftSize, err)
	}

	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	mag := make([]float64, fftSize/2+1)

	for r := range m.Rows() {
		clear(in)
		for c, v := range m.Row(r) {
			in[c] = complex(v, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("band: fft of row %d: %w", r, err)
		}
		for k := range mag {
			mag[k] += cmplx.Abs(out[k])
		}
	}

	scale := 1 / float64(m.Rows())
	for k := range mag {
		mag[k] *= scale
	}
	return mag, nil
}

// Analyze computes the spectral descriptors of m.
func Analyze(m *matrix.Matrix) (Spectral, error) {
	mag, err := Spectrum(m)
	if err != nil {
		return Spectral{}, err
	}
	return Spectral{
		Bins:     len(mag),
		Centroid: Centroid(mag),
		Rolloff:  Rolloff(mag, 0.85),
		Flatness: Flatness(mag),
	}, nil
}

// binFreq returns the normalised frequency of bin i of a one-sided
// spectrum with binCount bins.
func binFreq(i, binCount int) float64 {
	return float64(i) / float64(2*(binCount-1))
}

// Centroid returns the spectral centroid:
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	var sum, weighted float64
	for i, v := range magnitude {
		sum += v
		weighted += binFreq(i, n) * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// spectral energy lies.
func Rolloff(magnitude []float64, percent float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	var total float64
	for _, v := range magnitude {
		total += v * v
	}
	if total == 0 {
		return 0
	}
	threshold := percent * total
	var cum float64
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, n)
		}
	}
	return binFreq(n-1, n)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1,
// excluding the DC bin. A spectrum with any zero bin has flatness 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	var sumLin, sumLog float64
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
