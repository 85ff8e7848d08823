package meshio

import (
	"fmt"
	"io"

	"github.com/gogpu/meshtopo"
	geojson "github.com/paulmach/go.geojson"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadPolylines reads the line work of a GeoJSON FeatureCollection.
//
// Every LineString becomes one polyline, every MultiLineString one polyline
// per member, and every Polygon one closed polyline per ring. A third
// coordinate, when present, is kept as Z. Other geometry types are skipped.
func ReadPolylines(r io.Reader) ([]meshtopo.Polyline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", meshtopo.ErrInvalidInput, err)
	}

	var out []meshtopo.Polyline
	skipped := 0
	for i, f := range fc.Features {
		g := f.Geometry
		if g == nil {
			skipped++
			continue
		}
		var lines [][][]float64
		switch g.Type {
		case geojson.GeometryLineString:
			lines = [][][]float64{g.LineString}
		case geojson.GeometryMultiLineString:
			lines = g.MultiLineString
		case geojson.GeometryPolygon:
			lines = g.Polygon
		default:
			skipped++
			continue
		}
		for _, line := range lines {
			pl, err := polyline(line)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			out = append(out, pl)
		}
	}
	if skipped > 0 {
		meshtopo.Logger().Warn("meshio: skipped features without line geometry", "count", skipped)
	}
	return out, nil
}

func polyline(coords [][]float64) (meshtopo.Polyline, error) {
	pl := make(meshtopo.Polyline, len(coords))
	for i, c := range coords {
		p, err := vec(c)
		if err != nil {
			return nil, err
		}
		pl[i] = p
	}
	return pl, nil
}

// FeatureCollection converts every face of m into a Polygon feature whose
// ID is the face handle and whose properties are the face attributes. The
// ring is closed by repeating the first vertex. Z coordinates are kept.
func FeatureCollection(m *meshtopo.Mesh) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for f := range m.NumFaces() {
		pts := m.FacePoints(f)
		ring := make([][]float64, 0, len(pts)+1)
		for _, p := range append(pts, pts[0]) {
			ring = append(ring, coords(p))
		}
		feat := geojson.NewPolygonFeature([][][]float64{ring})
		feat.ID = f
		for k, v := range m.FaceAttrs(f) {
			feat.SetProperty(k, v)
		}
		fc.AddFeature(feat)
	}
	return fc
}

// WriteGeoJSON writes the faces of m as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, m *meshtopo.Mesh) error {
	data, err := FeatureCollection(m).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func coords(p r3.Vec) []float64 {
	if p.Z == 0 {
		return []float64{p.X, p.Y}
	}
	return []float64{p.X, p.Y, p.Z}
}

// WritePolylines writes polylines as a GeoJSON FeatureCollection of
// LineString features, numbered in input order.
func WritePolylines(w io.Writer, lines []meshtopo.Polyline) error {
	fc := geojson.NewFeatureCollection()
	for i, pl := range lines {
		cs := make([][]float64, len(pl))
		for j, p := range pl {
			cs[j] = coords(p)
		}
		feat := geojson.NewLineStringFeature(cs)
		feat.ID = i
		fc.AddFeature(feat)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}
