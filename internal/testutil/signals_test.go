package testutil

import "testing"

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestSequence(t *testing.T) {
	m := Sequence(4, 4)
	if m.At(0, 0) != 0 || m.At(3, 3) != 15 || m.At(1, 0) != 4 {
		t.Fatalf("unexpected sequence %v", m.Data())
	}
}

func TestSteps(t *testing.T) {
	v := VerticalStep(4, 8, 5)
	h := HorizontalStep(8, 4, 5)
	for r := range 4 {
		for c := range 8 {
			want := 0.0
			if c >= 5 {
				want = 1
			}
			if v.At(r, c) != want {
				t.Fatalf("vertical (%d,%d) = %v", r, c, v.At(r, c))
			}
			if h.At(c, r) != want {
				t.Fatalf("horizontal (%d,%d) = %v", c, r, h.At(c, r))
			}
		}
	}
}

func TestImpulseOutOfRange(t *testing.T) {
	for _, v := range Impulse(4, 9) {
		if v != 0 {
			t.Fatal("out-of-range impulse must be all zero")
		}
	}
}
