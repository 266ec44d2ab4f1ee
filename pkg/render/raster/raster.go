package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// Formatter renders grids into *image.RGBA. It is immutable and safe for
// concurrent use on distinct (or unchanging) grids.
type Formatter struct {
	opts Options
}

var _ render.Formatter[*image.RGBA] = (*Formatter)(nil)

// New creates a formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Options returns the formatter's parameters.
func (f *Formatter) Options() Options { return f.opts }

// Geometry returns the pixel layout f uses for g.
func (f *Formatter) Geometry(g *grid.Grid) Geometry {
	return f.opts.Geometry(g.Width(), g.Height())
}

// Format renders g. The image is Geometry(g).Width × Geometry(g).Height
// pixels, filled with the background color and overpainted with the
// foreground wherever a cell's wall or closed corner lies.
func (f *Formatter) Format(g *grid.Grid) *image.RGBA {
	geo := f.Geometry(g)
	img := image.NewRGBA(image.Rect(0, 0, geo.Width, geo.Height))

	draw.Draw(img, img.Bounds(), image.NewUniform(f.opts.Background.ToRGBA()), image.Point{}, draw.Src)

	fg := f.opts.Foreground.ToRGBA()
	for c := range g.Cells() {
		drawCell(img, geo, c, fg)
	}
	return img
}

// drawCell paints one cell over the closed square [start, start+Span]².
// Writes that fall outside the image (possible only with a zero margin)
// are dropped by SetRGBA.
func drawCell(img *image.RGBA, geo Geometry, c grid.Cell, fg color.RGBA) {
	startX, startY := geo.Origin(c.Coords.X, c.Coords.Y)
	open := openRegions(c.Walls)

	for y := startY; y <= startY+geo.Span; y++ {
		for x := startX; x <= startX+geo.Span; x++ {
			if geo.paints(&open, x-startX, y-startY) {
				img.SetRGBA(x, y, fg)
			}
		}
	}
}

// PixelsRGB returns the pixels of img as packed RGB triples in row-major
// order, dropping alpha.
func PixelsRGB(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}
