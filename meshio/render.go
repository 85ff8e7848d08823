package meshio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/meshtopo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RenderOptions controls a PNG preview.
type RenderOptions struct {
	Width, Height int
	// Margin is the blank border around the mesh, in pixels.
	Margin int
	// LineWidth is the edge stroke width in pixels.
	LineWidth float64

	Background color.Color
	Fill       color.Color
	Stroke     color.Color

	// Labels draws vertex handles next to the vertices.
	Labels bool
}

// DefaultRenderOptions returns a 512x512 preview with light faces and dark
// edges.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:      512,
		Height:     512,
		Margin:     16,
		LineWidth:  1.5,
		Background: color.White,
		Fill:       color.RGBA{R: 0x9e, G: 0xc5, B: 0xe8, A: 0xff},
		Stroke:     color.RGBA{R: 0x20, G: 0x30, B: 0x40, A: 0xff},
	}
}

// Render draws the XY projection of m, scaled to fit the image with the
// Y axis pointing up.
func Render(m *meshtopo.Mesh, opts RenderOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", meshtopo.ErrInvalidInput, opts.Width, opts.Height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if opts.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	if m.NumVertices() == 0 {
		return dst, nil
	}

	tr := fit(m, opts)
	z := vector.NewRasterizer(opts.Width, opts.Height)

	if opts.Fill != nil {
		fill := image.NewUniform(opts.Fill)
		// One pass per face: opposite windings would cancel in a shared
		// accumulator.
		for f := range m.NumFaces() {
			z.Reset(opts.Width, opts.Height)
			for i, p := range m.FacePoints(f) {
				x, y := tr.apply(p.X, p.Y)
				if i == 0 {
					z.MoveTo(x, y)
				} else {
					z.LineTo(x, y)
				}
			}
			z.ClosePath()
			z.Draw(dst, dst.Bounds(), fill, image.Point{})
		}
	}

	if opts.Stroke != nil && opts.LineWidth > 0 {
		z.Reset(opts.Width, opts.Height)
		for _, e := range m.Edges() {
			a, b := m.Position(e[0]), m.Position(e[1])
			ax, ay := tr.apply(a.X, a.Y)
			bx, by := tr.apply(b.X, b.Y)
			strokeSegment(z, ax, ay, bx, by, float32(opts.LineWidth))
		}
		z.Draw(dst, dst.Bounds(), image.NewUniform(opts.Stroke), image.Point{})
	}

	if opts.Labels {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(labelColor(opts)), Face: basicfont.Face7x13}
		for v, p := range m.Points() {
			x, y := tr.apply(p.X, p.Y)
			d.Dot = fixed.P(int(x)+3, int(y)-3)
			d.DrawString(strconv.Itoa(v))
		}
	}
	return dst, nil
}

// RenderPNG renders m and encodes the result as PNG.
func RenderPNG(w io.Writer, m *meshtopo.Mesh, opts RenderOptions) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// transform maps mesh XY coordinates to pixels.
type transform struct {
	scale  float64
	minX   float64
	minY   float64
	offX   float64
	offY   float64
	height float64
}

func (t transform) apply(x, y float64) (float32, float32) {
	px := t.offX + (x-t.minX)*t.scale
	py := t.height - (t.offY + (y-t.minY)*t.scale)
	return float32(px), float32(py)
}

// fit returns the uniform scale that fits the mesh bounds inside the image
// margins, centred.
func fit(m *meshtopo.Mesh, opts RenderOptions) transform {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range m.Points() {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	w := float64(max(opts.Width-2*opts.Margin, 1))
	h := float64(max(opts.Height-2*opts.Margin, 1))
	dx, dy := maxX-minX, maxY-minY

	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = math.Min(w/dx, h/dy)
	case dx > 0:
		scale = w / dx
	case dy > 0:
		scale = h / dy
	}
	return transform{
		scale:  scale,
		minX:   minX,
		minY:   minY,
		offX:   float64(opts.Margin) + (w-dx*scale)/2,
		offY:   float64(opts.Margin) + (h-dy*scale)/2,
		height: float64(opts.Height),
	}
}

// strokeSegment adds the rectangle covering the segment a-b with the given
// width to z. The rectangle is wound to match the face fills.
func strokeSegment(z *vector.Rasterizer, ax, ay, bx, by, width float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func labelColor(opts RenderOptions) color.Color {
	if opts.Stroke != nil {
		return opts.Stroke
	}
	return color.Black
}
