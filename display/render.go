package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
)

// Background is the gray level of canvas pixels not covered by a band.
const Background = 255

type renderConfig struct {
	gap    int
	zoom   int
	labels bool
	title  string
}

// Option configures Tile and Render.
type Option func(*renderConfig)

func defaultConfig() renderConfig {
	return renderConfig{gap: 1, zoom: 1, labels: true}
}

// WithGap sets the number of background pixels between bands (default 1).
func WithGap(px int) Option {
	return func(c *renderConfig) {
		if px >= 0 {
			c.gap = px
		}
	}
}

// WithZoom enlarges the rendered canvas by an integer factor using
// nearest-neighbour scaling (default 1).
func WithZoom(n int) Option {
	return func(c *renderConfig) {
		if n >= 1 {
			c.zoom = n
		}
	}
}

// WithLabels enables or disables per-band level labels in Render.
func WithLabels(on bool) Option {
	return func(c *renderConfig) {
		c.labels = on
	}
}

// WithTitle adds a caption line above the bands in Render.
func WithTitle(s string) Option {
	return func(c *renderConfig) {
		c.title = s
	}
}

// Tile pastes every band of src into one grayscale canvas, mapping each band
// through its range. ranges must have one entry per band (see Ranges).
func Tile(src Source, ranges []Range, opts ...Option) (*image.Gray, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	img, _, err := tile(src, ranges, cfg.gap)
	return img, err
}

func tile(src Source, ranges []Range, gap int) (*image.Gray, []placement, error) {
	if len(ranges) != src.Len() {
		return nil, nil, fmt.Errorf("%w: %d ranges for %d bands", ErrRangeCount, len(ranges), src.Len())
	}
	places, bounds, err := layout(src, gap)
	if err != nil {
		return nil, nil, err
	}

	canvas := image.NewGray(bounds)
	for i := range canvas.Pix {
		canvas.Pix[i] = Background
	}

	strips := oneD(src)
	for _, p := range places {
		b, err := src.Band(p.index)
		if err != nil {
			return nil, nil, err
		}
		if strips {
			pasteStrip(canvas, p.rect, b, ranges[p.index])
			continue
		}
		pasteBand(canvas, p.rect.Min, b, ranges[p.index])
	}
	return canvas, places, nil
}

func pasteBand(dst *image.Gray, at image.Point, b *matrix.Matrix, r Range) {
	for row := range b.Rows() {
		for col, v := range b.Row(row) {
			dst.SetGray(at.X+col, at.Y+row, color.Gray{Y: gray(v, r)})
		}
	}
}

// pasteStrip draws a 1D band as a strip: one column per sample.
func pasteStrip(dst *image.Gray, rect image.Rectangle, b *matrix.Matrix, r Range) {
	for i, v := range b.Data() {
		g := color.Gray{Y: gray(v, r)}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.SetGray(rect.Min.X+i, y, g)
		}
	}
}

var (
	labelColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	titleColor = color.RGBA{A: 255}
)

// Render tiles src like Tile, converts the canvas to RGBA, optionally zooms
// it, and draws a label with level and orientation in every band large
// enough to hold one.
func Render(src Source, ranges []Range, opts ...Option) (*image.RGBA, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	canvas, places, err := tile(src, ranges, cfg.gap)
	if err != nil {
		return nil, err
	}

	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil()
	header := 0
	if cfg.title != "" {
		header = lineH + 2
	}

	b := canvas.Bounds()
	w, h := b.Dx()*cfg.zoom, b.Dy()*cfg.zoom
	out := image.NewRGBA(image.Rect(0, 0, w, h+header))
	xdraw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.NearestNeighbor.Scale(out, image.Rect(0, header, w, h+header), canvas, b, xdraw.Src, nil)

	if cfg.title != "" {
		drawText(out, face, cfg.title, 2, lineH-2, titleColor)
	}
	if !cfg.labels {
		return out, nil
	}

	for _, p := range places {
		label, err := bandLabel(src, p.index)
		if err != nil {
			return nil, err
		}
		r := p.rect.Sub(b.Min)
		r = image.Rectangle{Min: r.Min.Mul(cfg.zoom), Max: r.Max.Mul(cfg.zoom)}.Add(image.Pt(0, header))
		if font.MeasureString(face, label).Ceil() > r.Dx() || lineH > r.Dy() {
			continue
		}
		drawText(out, face, label, r.Min.X+1, r.Min.Y+lineH-2, labelColor)
	}
	return out, nil
}

// bandLabel names band i: "L<level>" plus the orientation initial for
// three-band levels, or "low" for the low-pass residual.
func bandLabel(src Source, i int) (string, error) {
	level, o, err := pyramid.LevelOrientationOf(i, src.Height(), src.NumBands())
	if err != nil {
		return "", err
	}
	switch {
	case level == src.Height()-1:
		return "low", nil
	case src.NumBands() == 3:
		return fmt.Sprintf("L%d%c", level, pyramid.Orientation(o).String()[0]), nil
	default:
		return fmt.Sprintf("L%d", level), nil
	}
}

func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("display: encode png: %w", err)
	}
	return nil
}
