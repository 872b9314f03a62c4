// Command pyrinfo decomposes a grayscale image into a pyramid and prints
// per-band statistics.
//
// Usage:
//
//	pyrinfo [flags] <image>
//
// Examples:
//
//	pyrinfo photo.png
//	pyrinfo --type wavelet --filter qmf9 --height 3 photo.png
//	pyrinfo --type wavelet --filter haar --edge circular --out bands.png photo.png
//	pyrinfo --type laplacian --levels 0,1 photo.jpg
//	pyrinfo --list-filters
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-pyramid/display"
	"github.com/cwbudde/algo-pyramid/filter"
	"github.com/cwbudde/algo-pyramid/kernel"
)

type options struct {
	kind        string
	filter      string
	edge        string
	height      int
	levels      []int
	bands       []string
	out         string
	rangeMode   string
	zoom        int
	listFilters bool
	verbose     bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "pyrinfo [flags] <image>",
		Short: "Decompose an image into a pyramid and print per-band statistics",
		Long: "pyrinfo reads a PNG, JPEG or GIF image as luminance, builds a Laplacian,\n" +
			"Gaussian or wavelet pyramid and prints one table row per band. With --out\n" +
			"it also writes the tiled bands as a PNG.",
		Args: func(cmd *cobra.Command, args []string) error {
			if o.listFilters {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.listFilters {
				printFilters(stdout)
				return nil
			}
			logger := newLogger(stderr, o.verbose)
			return run(stdout, logger, args[0], o, cmd.Flags())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&o.kind, "type", "t", "laplacian", "pyramid type: laplacian, gaussian or wavelet")
	f.StringVarP(&o.filter, "filter", "f", "", "named filter (default binom5, or qmf9 for wavelet)")
	f.StringVarP(&o.edge, "edge", "e", kernel.EdgeReflect1.String(), "edge handling: "+strings.Join(edgeNames(), ", "))
	f.IntVarP(&o.height, "height", "H", 0, "pyramid height, 0 for the maximum")
	f.IntSliceVar(&o.levels, "levels", nil, "levels used for the round trip (default all)")
	f.StringSliceVar(&o.bands, "bands", nil, "wavelet orientations used for the round trip: horizontal, vertical, diagonal")
	f.StringVarP(&o.out, "out", "o", "", "write the tiled bands to this PNG file")
	f.StringVar(&o.rangeMode, "range", display.RangeAuto.String(), "display range: auto, auto1, auto2, indep1, indep2")
	f.IntVar(&o.zoom, "zoom", 1, "integer zoom factor for --out")
	f.BoolVar(&o.listFilters, "list-filters", false, "list available filter names")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log timing to stderr")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func edgeNames() []string {
	var names []string
	for _, e := range kernel.Edges() {
		names = append(names, e.String())
	}
	return names
}

func printFilters(w io.Writer) {
	for _, n := range filter.Names() {
		_, _ = fmt.Fprintln(w, n)
	}
}

// changed reports whether the user set the named flag.
func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
