package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-pyramid/display"
	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/kernel"
	"github.com/cwbudde/algo-pyramid/matrix"
	"github.com/cwbudde/algo-pyramid/pyramid"
	"github.com/cwbudde/algo-pyramid/stats/band"
)

var (
	errUnknownType        = errors.New("unknown pyramid type")
	errUnknownOrientation = errors.New("unknown orientation")
	errNoReconstruction   = errors.New("gaussian pyramids have no reconstruction")
	errBandsNeedWavelet   = errors.New("--bands selects wavelet orientations")
)

// decomposition is what pyrinfo reads from any pyramid type.
type decomposition interface {
	display.Source
	Image() *matrix.Matrix
}

type reconstructor interface {
	ReconPyr(opts ...pyramid.ReconOption) (*matrix.Matrix, error)
}

func run(w io.Writer, logger *slog.Logger, path string, o *options, fs *pflag.FlagSet) error {
	kind, err := pyramidKind(o.kind)
	if err != nil {
		return err
	}
	if err := checkReconFlags(kind, fs); err != nil {
		return err
	}

	start := time.Now()
	img, err := loadImage(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded image", "path", path, "shape", img.Shape(), "elapsed", time.Since(start))

	buildOpts, err := buildOptions(o)
	if err != nil {
		return err
	}
	start = time.Now()
	pyr, err := build(kind, img, buildOpts)
	if err != nil {
		return err
	}
	logger.Debug("built pyramid", "type", kind, "height", pyr.Height(), "bands", pyr.Len(), "elapsed", time.Since(start))

	infos, err := band.Describe(pyr)
	if err != nil {
		return err
	}
	if err := printBands(w, pyr, infos); err != nil {
		return err
	}

	if r, ok := pyr.(reconstructor); ok {
		reconOpts, err := reconOptions(o, fs)
		if err != nil {
			return err
		}
		start = time.Now()
		rec, err := r.ReconPyr(reconOpts...)
		if err != nil {
			return err
		}
		diff, err := matrix.MaxAbsDiff(rec, pyr.Image())
		if err != nil {
			return err
		}
		logger.Debug("reconstructed", "elapsed", time.Since(start))
		if _, err := fmt.Fprintf(w, "\nmax reconstruction error: %.3g\n", diff); err != nil {
			return err
		}
	}

	if o.out == "" {
		return nil
	}
	start = time.Now()
	if err := writeTiles(o, pyr); err != nil {
		return err
	}
	logger.Debug("wrote tiles", "path", o.out, "elapsed", time.Since(start))
	return nil
}

func buildOptions(o *options) ([]pyramid.Option, error) {
	edge, err := kernel.ParseEdge(o.edge)
	if err != nil {
		return nil, err
	}
	opts := []pyramid.Option{pyramid.WithEdge(edge), pyramid.WithHeight(o.height)}
	if o.filter != "" {
		opts = append(opts, pyramid.WithFilter(filter.ByName(o.filter)))
	}
	return opts, nil
}

// pyramidKind maps a --type value, including the short lpyr, gpyr and wpyr
// aliases, to laplacian, gaussian or wavelet.
func pyramidKind(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "laplacian", "lpyr":
		return "laplacian", nil
	case "gaussian", "gpyr":
		return "gaussian", nil
	case "wavelet", "wpyr":
		return "wavelet", nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownType, s)
	}
}

// checkReconFlags rejects reconstruction flags the pyramid kind cannot honour.
func checkReconFlags(kind string, fs *pflag.FlagSet) error {
	switch {
	case kind == "gaussian" && (changed(fs, "levels") || changed(fs, "bands")):
		return errNoReconstruction
	case kind != "wavelet" && changed(fs, "bands"):
		return fmt.Errorf("%w, not %s bands", errBandsNeedWavelet, kind)
	}
	return nil
}

func build(kind string, img *matrix.Matrix, opts []pyramid.Option) (decomposition, error) {
	var (
		pyr decomposition
		err error
	)
	switch kind {
	case "laplacian":
		pyr, err = pyramid.NewLaplacian(img, opts...)
	case "gaussian":
		pyr, err = pyramid.NewGaussian(img, opts...)
	case "wavelet":
		pyr, err = pyramid.NewWavelet(img, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownType, kind)
	}
	if err != nil {
		return nil, err
	}
	return pyr, nil
}

func reconOptions(o *options, fs *pflag.FlagSet) ([]pyramid.ReconOption, error) {
	var opts []pyramid.ReconOption
	if changed(fs, "levels") {
		opts = append(opts, pyramid.WithLevels(o.levels...))
	}
	if changed(fs, "bands") {
		bands := make([]pyramid.Orientation, 0, len(o.bands))
		for _, s := range o.bands {
			b, err := parseOrientation(s)
			if err != nil {
				return nil, err
			}
			bands = append(bands, b)
		}
		opts = append(opts, pyramid.WithBands(bands...))
	}
	return opts, nil
}

func parseOrientation(s string) (pyramid.Orientation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range []pyramid.Orientation{pyramid.Horizontal, pyramid.Vertical, pyramid.Diagonal} {
		if o.String() == s || o.String()[:1] == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownOrientation, s)
}

func printBands(w io.Writer, pyr decomposition, infos []band.Info) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Band\tLevel\tOrient\tShape\tMean\tStd\tRMS [dB]\tPeak\tCentroid\tFlatness\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t-----\t------\t-----\t----\t---\t--------\t----\t--------\t--------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, in := range infos {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\t%.4f\n",
			in.Index,
			in.Level,
			orientationLabel(pyr, in),
			in.Stats.Shape,
			in.Stats.Mean,
			in.Stats.Std,
			in.Stats.RMS_dB,
			in.Stats.Peak,
			in.Spectral.Centroid,
			in.Spectral.Flatness,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

func orientationLabel(pyr decomposition, in band.Info) string {
	switch {
	case in.Lowpass:
		return "low"
	case pyr.NumBands() == 3:
		return pyramid.Orientation(in.Orientation).String()
	default:
		return "-"
	}
}

func writeTiles(o *options, pyr decomposition) error {
	mode, err := display.ParseRangeMode(o.rangeMode)
	if err != nil {
		return err
	}
	ranges, err := display.Ranges(pyr, mode, 0)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s %s", strings.ToLower(o.kind), pyr.Shapes()[0])
	img, err := display.Render(pyr, ranges, display.WithZoom(o.zoom), display.WithTitle(title))
	if err != nil {
		return err
	}

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := display.WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
