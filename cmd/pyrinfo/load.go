package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cwbudde/algo-pyramid/matrix"
)

func loadImage(path string) (*matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return decodeImage(f)
}

// decodeImage converts any registered image format to a luminance plane in
// 0..255.
func decodeImage(r io.Reader) (*matrix.Matrix, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	m, err := matrix.New(h, w)
	if err != nil {
		return nil, err
	}
	for y := range h {
		row := m.Row(y)
		for x := range w {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
			row[x] = float64(lum) / 257
		}
	}
	return m, nil
}
