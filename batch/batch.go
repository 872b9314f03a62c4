package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
)

// Func produces one output from one input.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Map runs fn over inputs with at most limit calls in flight and returns the
// outputs in input order. A limit <= 0 uses GOMAXPROCS.
//
// The first failure cancels the context passed to the remaining calls, stops
// scheduling new ones, and is returned annotated with the input index.
// No partial output is returned on error.
func Map[In, Out any](ctx context.Context, inputs []In, limit int, fn Func[In, Out]) ([]Out, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	out := make([]Out, len(inputs))
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, in)
			if err != nil {
				return fmt.Errorf("batch: item %d: %w", i, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Laplacians builds one Laplacian pyramid per image.
func Laplacians(ctx context.Context, images []*matrix.Matrix, limit int, opts ...pyramid.Option) ([]*pyramid.Laplacian, error) {
	return Map(ctx, images, limit, func(_ context.Context, img *matrix.Matrix) (*pyramid.Laplacian, error) {
		return pyramid.NewLaplacian(img, opts...)
	})
}

// Gaussians builds one Gaussian pyramid per image.
func Gaussians(ctx context.Context, images []*matrix.Matrix, limit int, opts ...pyramid.Option) ([]*pyramid.Gaussian, error) {
	return Map(ctx, images, limit, func(_ context.Context, img *matrix.Matrix) (*pyramid.Gaussian, error) {
		return pyramid.NewGaussian(img, opts...)
	})
}

// Wavelets builds one wavelet pyramid per image.
func Wavelets(ctx context.Context, images []*matrix.Matrix, limit int, opts ...pyramid.Option) ([]*pyramid.Wavelet, error) {
	return Map(ctx, images, limit, func(_ context.Context, img *matrix.Matrix) (*pyramid.Wavelet, error) {
		return pyramid.NewWavelet(img, opts...)
	})
}

// Reconstructor is a built pyramid that can be collapsed.
type Reconstructor interface {
	ReconPyr(opts ...pyramid.ReconOption) (*matrix.Matrix, error)
}

// Reconstruct collapses every pyramid with the same options.
func Reconstruct[P Reconstructor](ctx context.Context, pyrs []P, limit int, opts ...pyramid.ReconOption) ([]*matrix.Matrix, error) {
	return Map(ctx, pyrs, limit, func(_ context.Context, p P) (*matrix.Matrix, error) {
		return p.ReconPyr(opts...)
	})
}
