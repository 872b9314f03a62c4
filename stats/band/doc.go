// Package band computes per-band statistics of a pyramid: moments, extrema
// and energy (vecmath) plus the mean row spectrum and its shape descriptors
// (algo-fft).
package band
