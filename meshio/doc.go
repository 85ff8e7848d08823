// Package meshio reads and writes the file formats used by the meshtopo
// command: YAML mesh documents and edge paths, GeoJSON polylines and
// faces, and PNG previews of the XY projection of a mesh.
package meshio
