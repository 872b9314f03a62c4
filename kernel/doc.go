// Package kernel implements the separable boundary-correlation primitives the
// pyramid engines are built on.
//
//   - [CorrDn] correlates with a 1D filter along one axis and decimates on a
//     sampling lattice (start, step).
//   - [UpConv] is its exact adjoint: it upsamples onto the lattice and
//     convolves, optionally accumulating into an existing buffer.
//
// Both take an [Edge] policy controlling how samples outside the signal are
// synthesised. Filter orientation is significant: a row filter applied to a
// column signal (or vice versa) fails with [ErrOrientationMismatch] instead of
// silently producing garbage.
//
// Interior runs, where the filter support lies inside the signal, use
// algo-vecmath dot products and scaled adds; only boundary samples go
// through the edge rules.
package kernel
