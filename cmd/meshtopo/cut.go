package main

import (
	"os"

	"github.com/gogpu/meshtopo"
	"github.com/gogpu/meshtopo/meshio"
	"github.com/spf13/cobra"
)

func (a *app) newCutCmd() *cobra.Command {
	var (
		output   string
		pathFile string
	)
	cmd := &cobra.Command{
		Use:   "cut MESH.yaml --path SEAM.yaml",
		Short: "Cut a mesh open along an edge path",
		Long: `Duplicate the vertices along an edge path so that the faces on either
side no longer share them. The path file lists edges by vertex handle
(edges: [[u, v], ...]) or by coordinates (points: [[[x, y], [x, y]], ...]).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(pathFile)
			if err != nil {
				return err
			}
			in, err := meshio.ReadEdgePath(f)
			f.Close()
			if err != nil {
				return err
			}
			path, err := in.Resolve(m, a.cfg.Precision)
			if err != nil {
				return err
			}

			dups, err := meshtopo.Unweld(m, path)
			if err != nil {
				return err
			}
			if err := writeMesh(output, m, a.cfg.Preview); err != nil {
				return err
			}
			a.p.Fprintf(cmd.OutOrStdout(), "cut %d edges: %d vertices duplicated\n", len(path), len(dups))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "cut.yaml", "output file")
	cmd.Flags().StringVar(&pathFile, "path", "", "YAML edge path file")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
