// Package display turns a built pyramid into pictures.
//
// It only reads finished bands through [Source]: [Ranges] picks a value
// range per band ([RangeMode]), [Tile] pastes the bands into one grayscale
// canvas (Mallat quad layout for 2D wavelet pyramids, side by side for other
// images, stacked strips for 1D signals) and [Render] adds zoom, a title and
// per-band labels. [WritePNG] encodes the result.
package display
