// Package pyramid builds multi-scale image decompositions and inverts them.
//
// Three engines share one band layout:
//
//   - [Gaussian]: successive blur-and-decimate images, finest first.
//   - [Laplacian]: band-pass residuals plus a low-pass residual. Collapsing
//     all levels reproduces the source exactly for any filter.
//   - [Wavelet]: separable QMF/wavelet sub-bands, three orientations per
//     level for images and one for row or column signals.
//
// Bands are stored in a flat list, finest level first and the low-pass
// residual last. [BandIndex] and [LevelOrientationOf] convert between a flat
// index and (level, orientation). Level 0 is the finest detail level and
// level Height()-1 is the low-pass residual.
//
// Row (1xN) and column (Nx1) signals are treated as 1D: only their
// non-degenerate axis is decimated, and a column signal decomposes exactly
// as the transpose of the corresponding row signal.
//
// A constructed pyramid is immutable; Band returns copies, and concurrent
// reconstructions are safe.
package pyramid
