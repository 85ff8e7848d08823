package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/meshtopo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) newTraceCmd() *cobra.Command {
	var (
		outDir string
		format string
		reduce bool
	)
	cmd := &cobra.Command{
		Use:   "trace FILE.geojson...",
		Short: "Build a mesh from the line work of each GeoJSON file",
		Long: `Trace faces from the LineString, MultiLineString and Polygon geometries
of every input file. Each line is one edge between its end points.

With --reduce every line is split at its samples and vertices of valency
two are removed from the faces afterwards, so lines only need to meet at
their ends.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			outputs, err := outputPaths(args, outDir, format)
			if err != nil {
				return err
			}

			sets := make([][]meshtopo.Polyline, len(args))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(a.limit())
			for i, path := range args {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					lines, err := readPolylines(path)
					sets[i] = lines
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var meshes []*meshtopo.Mesh
			if reduce {
				jobs := make([]meshtopo.Job, len(sets))
				for i, lines := range sets {
					jobs[i] = func() (*meshtopo.Mesh, error) {
						m, _, err := meshtopo.PolylinesToMesh(lines, a.opts...)
						return m, err
					}
				}
				meshes, err = meshtopo.Batch(jobs, a.opts...)
			} else {
				meshes, err = meshtopo.TraceAll(sets, a.opts...)
			}
			if err != nil {
				return err
			}

			g, gctx = errgroup.WithContext(ctx)
			g.SetLimit(a.limit())
			var faces int
			for i, out := range outputs {
				faces += meshes[i].NumFaces()
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					return writeMesh(out, meshes[i], a.cfg.Preview)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			a.p.Fprintf(cmd.OutOrStdout(), "traced %d files: %d faces\n", len(args), faces)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml, geojson or png")
	cmd.Flags().BoolVar(&reduce, "reduce", false, "split lines at samples and drop valency-2 vertices")
	return cmd
}

// outputPaths maps every input to its output file in dir. Inputs sharing a
// base name would overwrite each other and are rejected.
func outputPaths(inputs []string, dir, format string) ([]string, error) {
	out := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out[i] = filepath.Join(dir, strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+"."+format)
		if prev, ok := owner[out[i]]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", meshtopo.ErrInvalidInput, prev, in, out[i])
		}
		owner[out[i]] = in
	}
	return out, nil
}

// limit returns the errgroup limit for file jobs.
func (a *app) limit() int {
	if a.cfg.Workers > 0 {
		return a.cfg.Workers
	}
	return -1
}
