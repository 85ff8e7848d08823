package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gogpu/meshtopo"
	"github.com/gogpu/meshtopo/curve"
	"github.com/gogpu/meshtopo/meshio"
	"github.com/spf13/cobra"
)

var curveKinds = map[string]func(a, b float64) curve.Func{
	"circle":      func(a, _ float64) curve.Func { return curve.Circle(a) },
	"ellipse":     curve.Ellipse,
	"archimedean": curve.ArchimedeanSpiral,
	"logarithmic": curve.LogarithmicSpiral,
	"helix":       curve.Helix,
}

func (a *app) newCurveCmd() *cobra.Command {
	var (
		output   string
		ca, cb   float64
		t0, t1   float64
		segments int
		spacing  float64
	)
	cmd := &cobra.Command{
		Use:   "curve circle|ellipse|archimedean|logarithmic|helix",
		Short: "Write an analytical curve as a GeoJSON polyline",
		Long: `Sample an analytical curve between --t0 and --t1.

With --spacing the curve is divided into floor(length/spacing)+1 segments
of equal length; otherwise it is sampled at --segments equal parameter
steps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := curveKinds[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("%w: unknown curve %q", meshtopo.ErrInvalidInput, args[0])
			}
			f := kind(ca, cb)

			var (
				pl  meshtopo.Polyline
				err error
			)
			if spacing > 0 {
				pl, err = curve.DivideFunc(f, t0, t1, max(segments, 1024), spacing)
			} else {
				pl, err = curve.Sample(f, t0, t1, segments)
			}
			if err != nil {
				return err
			}

			if err := writeFile(output, func(w io.Writer) error {
				return meshio.WritePolylines(w, []meshtopo.Polyline{pl})
			}); err != nil {
				return err
			}
			a.p.Fprintf(cmd.OutOrStdout(), "wrote %d points, length %.3f\n", len(pl), curve.Length(pl))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&output, "output", "o", "curve.geojson", "output file")
	fl.Float64Var(&ca, "a", 1, "first curve constant (radius for circle and helix)")
	fl.Float64Var(&cb, "b", 1, "second curve constant")
	fl.Float64Var(&t0, "t0", 0, "start parameter")
	fl.Float64Var(&t1, "t1", 2*math.Pi, "end parameter")
	fl.IntVar(&segments, "segments", 64, "parameter steps when --spacing is not set")
	fl.Float64Var(&spacing, "spacing", 0, "target segment length")
	return cmd
}
