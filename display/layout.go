package display

import (
	"image"

	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
)

// stripHeight is the pixel height of one band of a 1D source.
const stripHeight = 16

// placement is where one band lands on the canvas.
type placement struct {
	index int
	rect  image.Rectangle
}

// layout positions every band of src and returns the canvas bounds.
//
// Images with three bands per level use the Mallat quad layout: the low-pass
// band at the top left, each level's Vertical band to its right, Horizontal
// below, Diagonal diagonally. Other images are placed side by side, top
// aligned. 1D sources become horizontal strips stacked top to bottom.
func layout(src Source, gap int) ([]placement, image.Rectangle, error) {
	shapes := src.Shapes()
	n := len(shapes)
	if n == 0 {
		return nil, image.Rectangle{}, ErrEmptySource
	}
	gap = max(gap, 0)

	out := make([]placement, 0, n)
	var bounds image.Rectangle
	add := func(i, x, y, w, h int) {
		r := image.Rect(x, y, x+w, y+h)
		out = append(out, placement{index: i, rect: r})
		bounds = bounds.Union(r)
	}

	switch {
	case oneD(src):
		y := 0
		for i, s := range shapes {
			add(i, 0, y, s.Size(), stripHeight)
			y += stripHeight + gap
		}
	case src.NumBands() == 3:
		height := src.Height()
		low := shapes[n-1]
		add(n-1, 0, 0, low.Cols, low.Rows)
		region := low
		for lev := height - 2; lev >= 0; lev-- {
			idx, err := levelBands(lev, height)
			if err != nil {
				return nil, image.Rectangle{}, err
			}
			h, v, d := shapes[idx[pyramid.Horizontal]], shapes[idx[pyramid.Vertical]], shapes[idx[pyramid.Diagonal]]
			left := max(region.Cols, h.Cols)
			top := max(region.Rows, v.Rows)
			add(idx[pyramid.Vertical], left+gap, 0, v.Cols, v.Rows)
			add(idx[pyramid.Horizontal], 0, top+gap, h.Cols, h.Rows)
			add(idx[pyramid.Diagonal], left+gap, top+gap, d.Cols, d.Rows)
			region = matrix.Shape{
				Rows: top + gap + max(h.Rows, d.Rows),
				Cols: left + gap + max(v.Cols, d.Cols),
			}
		}
	default:
		x := 0
		for i, s := range shapes {
			add(i, x, 0, s.Cols, s.Rows)
			x += s.Cols + gap
		}
	}
	return out, bounds, nil
}

// levelBands returns the flat indices of the three detail bands of level lev,
// indexed by orientation.
func levelBands(lev, height int) ([3]int, error) {
	var idx [3]int
	for o := range 3 {
		i, err := pyramid.BandIndex(lev, o, height, 3)
		if err != nil {
			return idx, err
		}
		idx[o] = i
	}
	return idx, nil
}
