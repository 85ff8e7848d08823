package main

import (
	"github.com/gogpu/meshtopo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) newWeldCmd() *cobra.Command {
	var (
		output string
		noWeld bool
	)
	cmd := &cobra.Command{
		Use:   "weld MESH.yaml...",
		Short: "Join meshes and weld coincident vertices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.merge(cmd, args, output, !noWeld)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "welded.yaml", "output file")
	cmd.Flags().BoolVar(&noWeld, "no-weld", false, "concatenate without welding")
	return cmd
}

func (a *app) newJoinCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "join MESH.yaml...",
		Short: "Concatenate meshes without welding",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.merge(cmd, args, output, false)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "joined.yaml", "output file")
	return cmd
}

// merge reads every mesh concurrently and writes their join, welded or not.
func (a *app) merge(cmd *cobra.Command, args []string, output string, weld bool) error {
	meshes := make([]*meshtopo.Mesh, len(args))
	var g errgroup.Group
	g.SetLimit(a.limit())
	for i, path := range args {
		g.Go(func() error {
			m, err := readMesh(path)
			meshes[i] = m
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if !weld {
		m := meshtopo.Join(meshes...)
		if err := writeMesh(output, m, a.cfg.Preview); err != nil {
			return err
		}
		a.p.Fprintf(cmd.OutOrStdout(), "joined %d meshes: %d vertices, %d faces\n",
			len(meshes), m.NumVertices(), m.NumFaces())
		return nil
	}

	m, report, err := meshtopo.JoinAndWeld(meshes, a.opts...)
	if err != nil {
		return err
	}
	if err := writeMesh(output, m, a.cfg.Preview); err != nil {
		return err
	}
	a.p.Fprintf(cmd.OutOrStdout(), "welded %d meshes: %d vertices, %d faces, %d dropped\n",
		len(meshes), m.NumVertices(), m.NumFaces(), len(report.DroppedFaces))
	return nil
}
