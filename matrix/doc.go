// Package matrix provides the dense 2D float64 array used for images, signals
// and pyramid bands.
//
// A logically 1D signal is a matrix with one extent equal to 1. Row signals
// (1xN) and column signals (Nx1) are distinct: the pyramid engines process
// only the non-degenerate axis and pick filter orientation accordingly.
//
//	img, _ := matrix.FromRows([][]float64{{0, 1}, {2, 3}})
//	img.Shape().Kind() // matrix.KindImage
//
// Element-wise arithmetic is delegated to algo-vecmath.
package matrix
