package pyramid

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/internal/testutil"
	"github.com/cwbudde/algo-pyramid/kernel"
	"github.com/cwbudde/algo-pyramid/matrix"
)

func TestWaveletHaarExactAnyEdge(t *testing.T) {
	img := testutil.NoiseImage(8, 16, 16)
	for _, edge := range kernel.Edges() {
		t.Run(edge.String(), func(t *testing.T) {
			w, err := NewWavelet(img, WithFilter(filter.ByName("haar")), WithEdge(edge))
			if err != nil {
				t.Fatal(err)
			}
			recon, err := w.ReconPyr()
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireMatrixNearlyEqual(t, recon, img, 1e-10)
		})
	}
}

func TestWaveletOrthogonalCircularExact(t *testing.T) {
	shapes := []matrix.Shape{{Rows: 32, Cols: 32}, {Rows: 1, Cols: 64}, {Rows: 64, Cols: 1}, {Rows: 16, Cols: 32}}
	for si, s := range shapes {
		for _, name := range []string{"haar", "daub2", "daub3", "daub4"} {
			t.Run(fmt.Sprintf("%s/%s", s, name), func(t *testing.T) {
				img := testutil.NoiseImage(int64(40+si), s.Rows, s.Cols)
				w, err := NewWavelet(img, WithFilter(filter.ByName(name)), WithEdge(kernel.EdgeCircular))
				if err != nil {
					t.Fatal(err)
				}
				if w.Height() <= 1 {
					t.Fatalf("Height = %d, want more than one level", w.Height())
				}
				recon, err := w.ReconPyr()
				if err != nil {
					t.Fatal(err)
				}
				testutil.RequireMatrixNearlyEqual(t, recon, img, 1e-9)
			})
		}
	}
}

// The QMFs are only approximately perfect reconstruction. With reflected
// edges the border error stays at the level of the interior error.
func TestWaveletQMFApproximatelyInvertible(t *testing.T) {
	images := map[string]*matrix.Matrix{
		"smooth": testutil.SmoothImage(32, 32),
		"noise":  testutil.NoiseImage(17, 32, 32),
	}
	tests := []struct {
		name  string
		bound float64
	}{
		{"qmf5", 3e-2},
		{"qmf9", 1e-2},
		{"qmf13", 1e-2},
	}
	for imgName, img := range images {
		for _, tt := range tests {
			t.Run(imgName+"/"+tt.name, func(t *testing.T) {
				w, err := NewWavelet(img, WithFilter(filter.ByName(tt.name)), WithEdge(kernel.EdgeReflect1))
				if err != nil {
					t.Fatal(err)
				}
				recon, err := w.ReconPyr()
				if err != nil {
					t.Fatal(err)
				}
				testutil.RequireFinite(t, recon.Data())

				diff, err := matrix.Sub(recon, img)
				if err != nil {
					t.Fatal(err)
				}
				rel := math.Sqrt(testutil.Energy(diff) / testutil.Energy(img))
				if rel >= tt.bound {
					t.Fatalf("relative error %.3g at height %d, want < %g", rel, w.Height(), tt.bound)
				}
			})
		}
	}
}

func TestWaveletShapes(t *testing.T) {
	w, err := NewWavelet(testutil.NoiseImage(1, 16, 16), WithFilter(filter.ByName("haar")), WithHeight(3))
	if err != nil {
		t.Fatal(err)
	}
	if w.NumBands() != 3 || w.Stagger() != 1 {
		t.Fatalf("NumBands = %d, Stagger = %d, want 3 and 1", w.NumBands(), w.Stagger())
	}
	if w.Len() != NumBandsTotal(3, 3) {
		t.Fatalf("Len = %d, want %d", w.Len(), NumBandsTotal(3, 3))
	}
	want := []matrix.Shape{
		{Rows: 8, Cols: 8}, {Rows: 8, Cols: 8}, {Rows: 8, Cols: 8},
		{Rows: 4, Cols: 4}, {Rows: 4, Cols: 4}, {Rows: 4, Cols: 4},
		{Rows: 4, Cols: 4},
	}
	if diff := cmp.Diff(want, w.Shapes()); diff != "" {
		t.Errorf("haar shapes mismatch (-want +got):\n%s", diff)
	}

	// Odd-length filters sample low-pass on even positions, high-pass on odd.
	odd, err := NewWavelet(testutil.NoiseImage(2, 13, 20), WithHeight(2))
	if err != nil {
		t.Fatal(err)
	}
	if odd.Stagger() != 0 {
		t.Fatalf("Stagger = %d, want 0", odd.Stagger())
	}
	want = []matrix.Shape{
		{Rows: 6, Cols: 10}, // horizontal: high-pass vertically
		{Rows: 7, Cols: 10}, // vertical: high-pass horizontally
		{Rows: 6, Cols: 10},
		{Rows: 7, Cols: 10},
	}
	if diff := cmp.Diff(want, odd.Shapes()); diff != "" {
		t.Errorf("qmf9 shapes mismatch (-want +got):\n%s", diff)
	}
}

func TestWaveletHeightBound(t *testing.T) {
	img := testutil.NoiseImage(3, 16, 16)
	haar := WithFilter(filter.ByName("haar"))

	w, err := NewWavelet(img, haar)
	if err != nil {
		t.Fatal(err)
	}
	if w.Height() != 5 {
		t.Errorf("haar default height = %d, want 5", w.Height())
	}
	if _, err := NewWavelet(img, haar, WithHeight(6)); !errors.Is(err, ErrHeightExceeded) {
		t.Errorf("haar height 6: expected ErrHeightExceeded, got %v", err)
	}

	q, err := NewWavelet(img)
	if err != nil {
		t.Fatal(err)
	}
	if q.Height() != 3 {
		t.Errorf("qmf9 default height = %d, want 3", q.Height())
	}
	if _, err := NewWavelet(img, WithHeight(4)); !errors.Is(err, ErrHeightExceeded) {
		t.Errorf("qmf9 height 4: expected ErrHeightExceeded, got %v", err)
	}

	// 3x3 with an even filter halves to 1x1 in one step.
	small, err := NewWavelet(testutil.NoiseImage(4, 3, 3), haar)
	if err != nil {
		t.Fatal(err)
	}
	if small.Height() != 2 {
		t.Errorf("3x3 height = %d, want 2", small.Height())
	}
	if got := small.Shapes()[small.Len()-1]; got != (matrix.Shape{Rows: 1, Cols: 1}) {
		t.Errorf("3x3 low-pass shape = %s, want (1,1)", got)
	}
}

func TestWaveletOrientationEnergy(t *testing.T) {
	img := testutil.VerticalStep(16, 16, 5)
	w, err := NewWavelet(img, WithFilter(filter.ByName("haar")), WithHeight(4))
	if err != nil {
		t.Fatal(err)
	}

	for lev := range w.Height() - 1 {
		energy := make(map[Orientation]float64, 3)
		for _, o := range []Orientation{Horizontal, Vertical, Diagonal} {
			idx, err := BandIndex(lev, int(o), w.Height(), w.NumBands())
			if err != nil {
				t.Fatal(err)
			}
			b, err := w.Band(idx)
			if err != nil {
				t.Fatal(err)
			}
			energy[o] = testutil.Energy(b)
		}
		if energy[Vertical] <= 1e-3 {
			t.Errorf("level %d: vertical energy %g, want > 1e-3", lev, energy[Vertical])
		}
		if energy[Horizontal] >= 1e-20 || energy[Diagonal] >= 1e-20 {
			t.Errorf("level %d: horizontal %g, diagonal %g, want both < 1e-20", lev, energy[Horizontal], energy[Diagonal])
		}
	}

	// The transposed edge lands in the horizontal band.
	wt, err := NewWavelet(img.T(), WithFilter(filter.ByName("haar")), WithHeight(2))
	if err != nil {
		t.Fatal(err)
	}
	h, err := wt.Band(int(Horizontal))
	if err != nil {
		t.Fatal(err)
	}
	v, err := wt.Band(int(Vertical))
	if err != nil {
		t.Fatal(err)
	}
	if e := testutil.Energy(h); e <= 1e-3 {
		t.Errorf("transposed horizontal energy %g, want > 1e-3", e)
	}
	if e := testutil.Energy(v); e >= 1e-20 {
		t.Errorf("transposed vertical energy %g, want < 1e-20", e)
	}
}

func TestWaveletBandSelectionIsAdditive(t *testing.T) {
	img := testutil.NoiseImage(12, 24, 24)
	w, err := NewWavelet(img, WithFilter(filter.ByName("daub2")), WithEdge(kernel.EdgeReflect2))
	if err != nil {
		t.Fatal(err)
	}
	top := w.Height() - 1

	sum, err := w.ReconPyr(WithLevels(top))
	if err != nil {
		t.Fatal(err)
	}
	for lev := range top {
		for _, o := range []Orientation{Horizontal, Vertical, Diagonal} {
			part, err := w.ReconPyr(WithLevels(lev), WithBands(o))
			if err != nil {
				t.Fatalf("level %d %s: %v", lev, o, err)
			}
			if err := sum.AddInPlace(part); err != nil {
				t.Fatal(err)
			}
		}
	}
	full, err := w.ReconPyr()
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireMatrixNearlyEqual(t, sum, full, 1e-10)

	none, err := w.ReconPyr(WithLevels())
	if err != nil {
		t.Fatal(err)
	}
	if e := testutil.Energy(none); e != 0 {
		t.Errorf("empty level selection energy = %v, want 0", e)
	}

	noBands, err := w.ReconPyr(WithBands())
	if err != nil {
		t.Fatal(err)
	}
	lowOnly, err := w.ReconPyr(WithLevels(top))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireMatrixNearlyEqual(t, noBands, lowOnly, 0)
}

func TestWaveletOneDimensionalDegeneracy(t *testing.T) {
	data := testutil.DeterministicNoise(33, 1, 40)
	row, err := matrix.RowVector(data)
	if err != nil {
		t.Fatal(err)
	}
	col, err := matrix.ColumnVector(data)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"qmf9", "daub2"} {
		t.Run(name, func(t *testing.T) {
			wr, err := NewWavelet(row, WithFilter(filter.ByName(name)))
			if err != nil {
				t.Fatal(err)
			}
			wc, err := NewWavelet(col, WithFilter(filter.ByName(name)))
			if err != nil {
				t.Fatal(err)
			}
			if wr.NumBands() != 1 {
				t.Fatalf("NumBands = %d, want 1", wr.NumBands())
			}
			if wr.Len() != wc.Len() || wr.Len() != NumBandsTotal(wr.Height(), 1) {
				t.Fatalf("row Len %d, column Len %d, want %d", wr.Len(), wc.Len(), NumBandsTotal(wr.Height(), 1))
			}

			for i := range wr.Len() {
				br, err := wr.Band(i)
				if err != nil {
					t.Fatal(err)
				}
				bc, err := wc.Band(i)
				if err != nil {
					t.Fatal(err)
				}
				testutil.RequireMatrixNearlyEqual(t, bc, br.T(), 1e-12)
			}

			rr, err := wr.ReconPyr()
			if err != nil {
				t.Fatal(err)
			}
			rc, err := wc.ReconPyr()
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireMatrixNearlyEqual(t, rc, rr.T(), 1e-12)
		})
	}
}

func TestWaveletReconErrors(t *testing.T) {
	w, err := NewWavelet(testutil.NoiseImage(5, 16, 16))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts []ReconOption
		want error
	}{
		{"parity", []ReconOption{WithReconFilter(filter.ByName("qmf8"))}, ErrFilterParity},
		{"orientation", []ReconOption{WithBands(Orientation(3))}, ErrIndexOutOfRange},
		{"level", []ReconOption{WithLevels(w.Height())}, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		if _, err := w.ReconPyr(tt.opts...); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	same, err := w.ReconPyr(WithReconFilter(filter.ByName("qmf13")))
	if err != nil {
		t.Fatal(err)
	}
	if got := same.Shape(); got != (matrix.Shape{Rows: 16, Cols: 16}) {
		t.Errorf("shape = %s, want (16,16)", got)
	}

	sig, err := matrix.RowVector(testutil.DeterministicNoise(1, 1, 32))
	if err != nil {
		t.Fatal(err)
	}
	w1, err := NewWavelet(sig)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w1.ReconPyr(WithBands(Vertical)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("1D vertical band: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestWaveletHighPassIsModulatedFlip(t *testing.T) {
	w, err := NewWavelet(testutil.NoiseImage(1, 8, 8), WithFilter(filter.ByName("haar")))
	if err != nil {
		t.Fatal(err)
	}
	low, high := w.Filters()
	if low.Orientation() != filter.Column {
		t.Fatalf("low-pass orientation = %v, want column", low.Orientation())
	}
	testutil.RequireSliceNearlyEqual(t, high.Taps(), []float64{-math.Sqrt2 / 2, math.Sqrt2 / 2}, 1e-15)
}
