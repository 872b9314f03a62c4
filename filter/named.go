package filter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const sqrt2 = math.Sqrt2

// table holds the fixed named filters. Taps are listed in correlation order.
var table = map[string][]float64{
	"gauss3": scaled(sqrt2, 0.25, 0.5, 0.25),
	"gauss5": scaled(sqrt2, 0.0625, 0.25, 0.375, 0.25, 0.0625),
	"qmf5":   {-0.076103, 0.3535534, 0.8593118, 0.3535534, -0.076103},
	"qmf9": {
		0.02807382, -0.060944743, -0.073386624, 0.41472545, 0.7973934,
		0.41472545, -0.073386624, -0.060944743, 0.02807382,
	},
	"qmf13": {
		-0.014556438, 0.021651438, 0.039045125, -0.09800052, -0.057827797,
		0.42995453, 0.7737113, 0.42995453, -0.057827797, -0.09800052,
		0.039045125, 0.021651438, -0.014556438,
	},
	"qmf8": scaled(sqrt2,
		0.00938715, -0.07065183, 0.06942827, 0.4899808,
		0.4899808, 0.06942827, -0.07065183, 0.00938715),
	"qmf12": scaled(sqrt2,
		-0.003809699, 0.01885659, -0.002710326, -0.08469594, 0.08846992, 0.4843894,
		0.4843894, 0.08846992, -0.08469594, -0.002710326, 0.01885659, -0.003809699),
	"qmf16": scaled(sqrt2,
		0.001050167, -0.005054526, -0.002589756, 0.0276414, -0.009666376, -0.09039223,
		0.09779817, 0.4810284, 0.4810284, 0.09779817, -0.09039223, -0.009666376,
		0.0276414, -0.002589756, -0.005054526, 0.001050167),
	"haar": {1 / sqrt2, 1 / sqrt2},
	"daub2": {
		-0.12940952255092145, 0.22414386804185735,
		0.836516303737469, 0.48296291314469025,
	},
	"daub3": {
		0.035226291882100656, -0.08544127388224149, -0.13501102001039084,
		0.4598775021193313, 0.8068915093133388, 0.3326705529509569,
	},
	"daub4": {
		-0.010597401784997278, 0.032883011666982945, 0.030841381835986965,
		-0.18703481171888114, -0.02798376941698385, 0.6308807679295904,
		0.7148465705525415, 0.23037781330885523,
	},
}

func scaled(s float64, taps ...float64) []float64 {
	for i := range taps {
		taps[i] *= s
	}
	return taps
}

// MaxBinomialTaps is the longest binomial kernel Binomial and Named build.
const MaxBinomialTaps = 64

// Binomial returns the n-tap binomial kernel (0.5, 0.5)^(n-1), normalised to
// unit sum. n must be in 2..MaxBinomialTaps.
func Binomial(n int) ([]float64, error) {
	if n < 2 || n > MaxBinomialTaps {
		return nil, fmt.Errorf("%w: binomial filter needs 2..%d taps, got %d", ErrInvalidFilterShape, MaxBinomialTaps, n)
	}
	k := []float64{0.5, 0.5}
	for range n - 2 {
		next := make([]float64, len(k)+1)
		for i, v := range k {
			next[i] += 0.5 * v
			next[i+1] += 0.5 * v
		}
		k = next
	}
	return k, nil
}

// Named returns the taps of a named filter as a column filter.
//
// Supported names are binomN (sqrt(2)-scaled binomial, 2 <= N <= 64), gauss3,
// gauss5, qmf5, qmf9, qmf13, qmf8, qmf12, qmf16, haar, daub2, daub3 and daub4.
func Named(name string) (Filter, error) {
	if rest, ok := strings.CutPrefix(name, "binom"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n > MaxBinomialTaps {
			return Filter{}, fmt.Errorf("%w: %q", ErrUnknownFilterName, name)
		}
		taps, err := Binomial(n)
		if err != nil {
			return Filter{}, err
		}
		return New(scaled(sqrt2, taps...), Column)
	}

	taps, ok := table[name]
	if !ok {
		return Filter{}, fmt.Errorf("%w: %q", ErrUnknownFilterName, name)
	}
	return New(taps, Column)
}

// Names lists the fixed table entries plus the binom5 example of the
// binomial family, sorted.
func Names() []string {
	names := make([]string, 0, len(table)+1)
	for k := range table {
		names = append(names, k)
	}
	names = append(names, "binom5")
	sort.Strings(names)
	return names
}
