package kernel

import "fmt"

// Edge selects how samples outside the signal are synthesised during
// correlation and convolution.
type Edge int

const (
	// EdgeReflect1 reflects about the edge sample without repeating it:
	// x[-1] = x[1].
	EdgeReflect1 Edge = iota
	// EdgeReflect2 reflects about the edge, repeating the edge sample:
	// x[-1] = x[0].
	EdgeReflect2
	// EdgeRepeat repeats the edge sample.
	EdgeRepeat
	// EdgeZero treats samples outside the signal as zero.
	EdgeZero
	// EdgeCircular wraps around (periodic extension).
	EdgeCircular
	// EdgeExtend reflects about the edge sample and inverts about its value:
	// x[-k] = 2*x[0] - x[k].
	EdgeExtend
	// EdgeDontCompute performs no extension: output samples whose filter
	// support leaves the signal are left at zero.
	EdgeDontCompute
)

var edgeNames = [...]string{
	EdgeReflect1:    "reflect1",
	EdgeReflect2:    "reflect2",
	EdgeRepeat:      "repeat",
	EdgeZero:        "zero",
	EdgeCircular:    "circular",
	EdgeExtend:      "extend",
	EdgeDontCompute: "dont-compute",
}

func (e Edge) String() string {
	if e < 0 || int(e) >= len(edgeNames) {
		return fmt.Sprintf("Edge(%d)", int(e))
	}
	return edgeNames[e]
}

// Valid reports whether e is one of the defined policies.
func (e Edge) Valid() bool {
	return e >= EdgeReflect1 && e <= EdgeDontCompute
}

// Edges lists every policy in declaration order.
func Edges() []Edge {
	out := make([]Edge, len(edgeNames))
	for i := range out {
		out[i] = Edge(i)
	}
	return out
}

// ParseEdge resolves a policy name such as "reflect1" or "circular".
func ParseEdge(name string) (Edge, error) {
	for i, n := range edgeNames {
		if n == name {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEdge, name)
}

// sample is one real sample contributing to a virtual position, with weight.
type sample struct {
	idx int
	w   float64
}

// resolve maps the virtual index v of a length-n signal onto at most two
// weighted real samples. n must be positive.
func (e Edge) resolve(v, n int) (a, b sample, cnt int) {
	if v >= 0 && v < n {
		return sample{v, 1}, sample{}, 1
	}
	switch e {
	case EdgeReflect1:
		return sample{mirrorOdd(v, n), 1}, sample{}, 1
	case EdgeReflect2:
		return sample{mirrorEven(v, n), 1}, sample{}, 1
	case EdgeRepeat:
		if v < 0 {
			return sample{0, 1}, sample{}, 1
		}
		return sample{n - 1, 1}, sample{}, 1
	case EdgeCircular:
		return sample{wrap(v, n), 1}, sample{}, 1
	case EdgeExtend:
		pivot := 0
		if v >= n {
			pivot = n - 1
		}
		return sample{pivot, 2}, sample{mirrorOdd(v, n), -1}, 2
	default:
		return sample{}, sample{}, 0
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// mirrorOdd reflects without repeating the edge; period 2(n-1).
func mirrorOdd(v, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	v = wrap(v, period)
	if v >= n {
		v = period - v
	}
	return v
}

// mirrorEven reflects repeating the edge; period 2n.
func mirrorEven(v, n int) int {
	period := 2 * n
	v = wrap(v, period)
	if v >= n {
		v = period - 1 - v
	}
	return v
}
