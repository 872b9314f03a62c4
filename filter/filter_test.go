package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pyramid/internal/testutil"
	"github.com/cwbudde/algo-pyramid/matrix"
)

func TestNamedDCGain(t *testing.T) {
	// Every lowpass in the table has a DC gain of sqrt(2) to within 1%.
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := Named(name)
			if err != nil {
				t.Fatal(err)
			}
			if f.Orientation() != Column {
				t.Fatalf("orientation = %v, want column", f.Orientation())
			}
			if math.Abs(f.Sum()-math.Sqrt2) > 1e-2 {
				t.Fatalf("sum = %v, want sqrt(2)", f.Sum())
			}
		})
	}
}

func TestNamedUnknown(t *testing.T) {
	for _, name := range []string{"", "qmf7", "binomx", "gaussian", "binom65", "binom1000000"} {
		if _, err := Named(name); !errors.Is(err, ErrUnknownFilterName) {
			t.Errorf("Named(%q): expected ErrUnknownFilterName, got %v", name, err)
		}
	}
}

func TestBinomial(t *testing.T) {
	taps, err := Binomial(5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}
	testutil.RequireSliceNearlyEqual(t, taps, want, 1e-15)

	for _, n := range []int{1, MaxBinomialTaps + 1} {
		if _, err := Binomial(n); !errors.Is(err, ErrInvalidFilterShape) {
			t.Fatalf("Binomial(%d): expected ErrInvalidFilterShape, got %v", n, err)
		}
	}

	longest, err := Named("binom64")
	if err != nil {
		t.Fatal(err)
	}
	if longest.Len() != MaxBinomialTaps {
		t.Fatalf("binom64 has %d taps", longest.Len())
	}
}

func TestFromMatrixRejects2D(t *testing.T) {
	m, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	if _, err := FromMatrix(m); !errors.Is(err, ErrInvalidFilterShape) {
		t.Fatalf("expected ErrInvalidFilterShape, got %v", err)
	}
}

func TestFromMatrixOrientation(t *testing.T) {
	row, _ := matrix.RowVector([]float64{1, 2, 3})
	col, _ := matrix.ColumnVector([]float64{1, 2, 3})

	fr, err := FromMatrix(row)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Orientation() != Row || fr.Shape() != (matrix.Shape{Rows: 1, Cols: 3}) {
		t.Fatalf("row vector parsed as %v %v", fr.Orientation(), fr.Shape())
	}

	fc, err := FromMatrix(col)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Orientation() != Column || fc.T().Orientation() != Row {
		t.Fatalf("column vector parsed as %v", fc.Orientation())
	}
}

func TestModulateFlipHaar(t *testing.T) {
	lo, _ := Named("haar")
	hi := ModulateFlip(lo)
	s := 1 / math.Sqrt2
	testutil.RequireSliceNearlyEqual(t, hi.Taps(), []float64{-s, s}, 1e-15)
}

func TestModulateFlipOrthogonality(t *testing.T) {
	// For orthonormal wavelets the high-pass has zero DC, unit norm and is
	// orthogonal to the low-pass at every even shift. The daub3 table taps
	// carry about 12 significant digits.
	const eps = 1e-10
	for _, name := range []string{"haar", "daub2", "daub3", "daub4"} {
		t.Run(name, func(t *testing.T) {
			lo, _ := Named(name)
			hi := ModulateFlip(lo)
			if math.Abs(hi.Sum()) > eps {
				t.Fatalf("high-pass DC = %v", hi.Sum())
			}
			if math.Abs(hi.Norm()-1) > eps {
				t.Fatalf("high-pass norm = %v", hi.Norm())
			}
			l, h := lo.Taps(), hi.Taps()
			for shift := 0; shift < len(l); shift += 2 {
				var dot float64
				for i := 0; i+shift < len(l); i++ {
					dot += l[i+shift] * h[i]
				}
				if math.Abs(dot) > eps {
					t.Fatalf("<lo, hi shifted %d> = %v", shift, dot)
				}
			}
		})
	}
}

func TestStagger(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"haar", 1},
		{"daub4", 1},
		{"qmf8", 1},
		{"qmf9", 0},
		{"binom5", 0},
	}
	for _, tt := range tests {
		f, _ := Named(tt.name)
		if got := f.Stagger(); got != tt.want {
			t.Errorf("%s stagger = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSpecResolve(t *testing.T) {
	f, err := FromTaps(1, 4, 6, 4, 1).Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 5 || f.Center() != 2 {
		t.Fatalf("len=%d center=%d", f.Len(), f.Center())
	}

	if _, err := (Spec{}).Resolve(); !errors.Is(err, ErrInvalidFilterShape) {
		t.Fatalf("expected ErrInvalidFilterShape, got %v", err)
	}
	if _, err := ByName("nope").Resolve(); !errors.Is(err, ErrUnknownFilterName) {
		t.Fatalf("expected ErrUnknownFilterName, got %v", err)
	}
}
