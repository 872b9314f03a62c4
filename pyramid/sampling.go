package pyramid

import (
	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/kernel"
	"github.com/cwbudde/algo-pyramid/matrix"
)

var (
	origin   = matrix.Point{}
	stepRows = matrix.Point{Row: 2, Col: 1}
	stepCols = matrix.Point{Row: 1, Col: 2}
)

// downSample blurs img with f and decimates by two along every active axis.
// f must already be oriented for img (see base.parseFilter). A 2D image is
// filtered along columns with the transpose first, then along rows.
func downSample(img *matrix.Matrix, f filter.Filter, edge kernel.Edge) (*matrix.Matrix, error) {
	switch img.Kind() {
	case matrix.KindRowSignal:
		return kernel.CorrDn(img, f, edge, stepCols, origin)
	case matrix.KindColumnSignal:
		return kernel.CorrDn(img, f, edge, stepRows, origin)
	}
	tmp, err := kernel.CorrDn(img, f.T(), edge, stepCols, origin)
	if err != nil {
		return nil, err
	}
	return kernel.CorrDn(tmp, f, edge, stepRows, origin)
}

// upSample is the adjoint of downSample: it expands img onto a grid of
// extent out. The classification follows the target shape.
func upSample(img *matrix.Matrix, out matrix.Shape, f filter.Filter, edge kernel.Edge) (*matrix.Matrix, error) {
	switch out.Kind() {
	case matrix.KindRowSignal:
		return kernel.UpConv(img, f, edge, stepCols, origin, out, nil)
	case matrix.KindColumnSignal:
		return kernel.UpConv(img, f, edge, stepRows, origin, out, nil)
	}
	tmp, err := kernel.UpConv(img, f, edge, stepRows, origin, matrix.Shape{Rows: out.Rows, Cols: img.Cols()}, nil)
	if err != nil {
		return nil, err
	}
	return kernel.UpConv(tmp, f.T(), edge, stepCols, origin, out, nil)
}
