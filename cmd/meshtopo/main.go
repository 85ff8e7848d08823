// Command meshtopo rebuilds, welds and cuts polygon meshes from the command
// line.
//
// Usage:
//
//	meshtopo trace lines.geojson -o out/          # faces from line work
//	meshtopo weld a.yaml b.yaml -o merged.yaml    # join and weld meshes
//	meshtopo join a.yaml b.yaml -o joined.yaml    # concatenate only
//	meshtopo cut mesh.yaml --path seam.yaml -o cut.yaml
//	meshtopo curve circle --a 1 --spacing 0.1 -o circle.geojson
//
// Defaults can be stored in a YAML file passed with --config.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "meshtopo:", err)
		os.Exit(1)
	}
}
