//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
)

var funcs []js.Func

type roundTripper interface {
	Shapes() []matrix.Shape
	Image() *matrix.Matrix
	ReconPyr(opts ...pyramid.ReconOption) (*matrix.Matrix, error)
}

func main() {
	api := js.Global().Get("Object").New()

	// laplacian(data, rows, cols, height[, filter])
	api.Set("laplacian", export(func(args []js.Value) any {
		img, opts, errVal := parseArgs(args)
		if errVal != nil {
			return errVal
		}
		p, err := pyramid.NewLaplacian(img, opts...)
		if err != nil {
			return errorResult(err)
		}
		return roundTrip(p)
	}))

	// wavelet(data, rows, cols, height[, filter])
	api.Set("wavelet", export(func(args []js.Value) any {
		img, opts, errVal := parseArgs(args)
		if errVal != nil {
			return errVal
		}
		w, err := pyramid.NewWavelet(img, opts...)
		if err != nil {
			return errorResult(err)
		}
		return roundTrip(w)
	}))

	api.Set("filters", export(func([]js.Value) any {
		names := filter.Names()
		arr := js.Global().Get("Array").New(len(names))
		for i, n := range names {
			arr.SetIndex(i, n)
		}
		return arr
	}))

	js.Global().Set("AlgoPyramid", api)
	select {}
}

func parseArgs(args []js.Value) (*matrix.Matrix, []pyramid.Option, any) {
	if len(args) < 3 {
		return nil, nil, errorMessage("expected (data, rows, cols[, height[, filter]])")
	}
	data := args[0]
	rows, cols := args[1].Int(), args[2].Int()
	values := make([]float64, data.Length())
	for i := range values {
		values[i] = data.Index(i).Float()
	}
	img, err := matrix.FromData(rows, cols, values)
	if err != nil {
		return nil, nil, errorResult(err)
	}

	var opts []pyramid.Option
	if len(args) > 3 {
		opts = append(opts, pyramid.WithHeight(args[3].Int()))
	}
	if len(args) > 4 && args[4].Type() == js.TypeString {
		opts = append(opts, pyramid.WithFilter(filter.ByName(args[4].String())))
	}
	return img, opts, nil
}

func roundTrip(p roundTripper) any {
	rec, err := p.ReconPyr()
	if err != nil {
		return errorResult(err)
	}
	diff, err := matrix.MaxAbsDiff(rec, p.Image())
	if err != nil {
		return errorResult(err)
	}

	shapes := p.Shapes()
	arr := js.Global().Get("Array").New(len(shapes))
	for i, s := range shapes {
		arr.SetIndex(i, js.ValueOf([]any{s.Rows, s.Cols}))
	}
	out := js.Global().Get("Object").New()
	out.Set("shapes", arr)
	out.Set("error", diff)
	return out
}

func errorMessage(msg string) any {
	out := js.Global().Get("Object").New()
	out.Set("message", msg)
	return out
}

func errorResult(err error) any {
	return errorMessage(err.Error())
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
