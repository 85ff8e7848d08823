package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/meshtopo"
	"github.com/gogpu/meshtopo/meshio"
)

func readMesh(path string) (*meshtopo.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := meshio.ReadMesh(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func readPolylines(path string) ([]meshtopo.Polyline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := meshio.ReadPolylines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// writeFile creates path and hands it to write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// writeMesh writes m in the format chosen by the extension of path: GeoJSON
// faces for .geojson and .json, a preview for .png, a YAML document
// otherwise. With preview set, a PNG is written next to non-PNG outputs.
func writeMesh(path string, m *meshtopo.Mesh, preview bool) error {
	ext := strings.ToLower(filepath.Ext(path))
	err := writeFile(path, func(w io.Writer) error {
		switch ext {
		case ".geojson", ".json":
			return meshio.WriteGeoJSON(w, m)
		case ".png":
			return meshio.RenderPNG(w, m, meshio.DefaultRenderOptions())
		default:
			return meshio.WriteMesh(w, m)
		}
	})
	if err != nil || !preview || ext == ".png" {
		return err
	}
	pngPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	return writeFile(pngPath, func(w io.Writer) error {
		return meshio.RenderPNG(w, m, meshio.DefaultRenderOptions())
	})
}
