package band

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/internal/testutil"
	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
)

func TestCalculateKnownValues(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, -2}, {3, 0}})
	if err != nil {
		t.Fatal(err)
	}
	s := Calculate(m)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", s.Mean, 0.5},
		{"energy", s.Energy, 14},
		{"rms", s.RMS, math.Sqrt(3.5)},
		{"peak", s.Peak, 3},
		{"range", s.Range, 5},
		{"variance", s.Variance, 3.25},
		{"std", s.Std, math.Sqrt(3.25)},
		{"max", s.Max, 3},
		{"min", s.Min, -2},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if s.Count != 4 || s.Shape != (matrix.Shape{Rows: 2, Cols: 2}) {
		t.Fatalf("count %d shape %s", s.Count, s.Shape)
	}
	if s.MaxPos != (matrix.Point{Row: 1, Col: 0}) {
		t.Fatalf("MaxPos = %+v", s.MaxPos)
	}
	if s.MinPos != (matrix.Point{Row: 0, Col: 1}) {
		t.Fatalf("MinPos = %+v", s.MinPos)
	}
}

func TestCalculateEmptyAndConstant(t *testing.T) {
	s := Calculate(nil)
	if s.Count != 0 || !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
		t.Fatalf("empty stats = %+v", s)
	}

	m, err := matrix.FromData(3, 3, testutil.DC(2, 9))
	if err != nil {
		t.Fatal(err)
	}
	s = Calculate(m)
	if s.Variance != 0 || s.Skewness != 0 || s.Kurtosis != 0 {
		t.Fatalf("constant band moments = %v %v %v", s.Variance, s.Skewness, s.Kurtosis)
	}
	if math.Abs(s.RMS_dB-20*math.Log10(2)) > 1e-12 {
		t.Fatalf("RMS_dB = %v", s.RMS_dB)
	}
}

func TestSpectrumDC(t *testing.T) {
	m, err := matrix.FromData(4, 8, testutil.DC(1, 32))
	if err != nil {
		t.Fatal(err)
	}
	mag, err := Spectrum(m)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, mag, []float64{8, 0, 0, 0, 0}, 1e-12)
	if c := Centroid(mag); c != 0 {
		t.Fatalf("centroid = %v, want 0", c)
	}
	if f := Flatness(mag); f != 0 {
		t.Fatalf("flatness = %v, want 0", f)
	}
}

func TestSpectrumPureTone(t *testing.T) {
	const n = 16
	data := make([]float64, 2*n)
	for c := range n {
		v := math.Cos(2 * math.Pi * float64(c) / 4)
		data[c] = v
		data[n+c] = v
	}
	m, err := matrix.FromData(2, n, data)
	if err != nil {
		t.Fatal(err)
	}
	spec, err := Analyze(m)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Bins != n/2+1 {
		t.Fatalf("bins = %d, want %d", spec.Bins, n/2+1)
	}
	if math.Abs(spec.Centroid-0.25) > 1e-9 {
		t.Fatalf("centroid = %v, want 0.25", spec.Centroid)
	}
	if math.Abs(spec.Rolloff-0.25) > 1e-12 {
		t.Fatalf("rolloff = %v, want 0.25", spec.Rolloff)
	}
}

func TestSpectrumColumnMatchesRow(t *testing.T) {
	data := testutil.DeterministicNoise(3, 1, 23)
	row, _ := matrix.RowVector(data)
	col, _ := matrix.ColumnVector(data)

	r, err := Spectrum(row)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Spectrum(col)
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 17 {
		t.Fatalf("len = %d, want 17 (padded to 32)", len(r))
	}
	testutil.RequireSliceNearlyEqual(t, c, r, 0)
}

func TestDescribeWavelet(t *testing.T) {
	w, err := pyramid.NewWavelet(testutil.NoiseImage(6, 16, 16), pyramid.WithFilter(filter.ByName("haar")), pyramid.WithHeight(3))
	if err != nil {
		t.Fatal(err)
	}
	infos, err := Describe(w)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != w.Len() {
		t.Fatalf("len = %d, want %d", len(infos), w.Len())
	}

	shapes := w.Shapes()
	for i, info := range infos {
		if info.Index != i || info.Stats.Shape != shapes[i] {
			t.Fatalf("info %d: index %d shape %s, want %s", i, info.Index, info.Stats.Shape, shapes[i])
		}
		idx, err := pyramid.BandIndex(info.Level, info.Orientation, w.Height(), w.NumBands())
		if err != nil || idx != i {
			t.Fatalf("info %d: (%d,%d) maps to %d, %v", i, info.Level, info.Orientation, idx, err)
		}
		if info.Lowpass != (i == len(infos)-1) {
			t.Fatalf("info %d: lowpass = %v", i, info.Lowpass)
		}
	}
}

func TestDescribeEnergyMatchesBands(t *testing.T) {
	p, err := pyramid.NewLaplacian(testutil.SmoothImage(20, 20))
	if err != nil {
		t.Fatal(err)
	}
	infos, err := Describe(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, info := range infos {
		b, err := p.Band(info.Index)
		if err != nil {
			t.Fatal(err)
		}
		if want := testutil.Energy(b); math.Abs(info.Stats.Energy-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("band %d energy %v, want %v", info.Index, info.Stats.Energy, want)
		}
	}
}
