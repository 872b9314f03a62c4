// Package filter provides the separable 1D filters used by the pyramid engines.
//
// A [Filter] carries its orientation explicitly: a [Row] filter (1xN) runs
// along the column axis, a [Column] filter (Nx1) along the row axis. The
// kernel rejects orientation/signal pairs that do not match, so pyramids
// orient their filters once, at construction.
//
// Filters are selected with a [Spec]:
//
//	filter.ByName("binom5")            // named table entry
//	filter.FromTaps(1, 4, 6, 4, 1)     // raw taps
//	filter.FromArray(m)                // 1xN or Nx1 matrix
//
// [ModulateFlip] derives the quadrature-mirror high-pass partner of a
// low-pass filter.
package filter
