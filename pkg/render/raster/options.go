package raster

import (
	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// Default render parameters.
const (
	DefaultWall    = 40
	DefaultPassage = 40
	DefaultMargin  = 50
)

var (
	// DefaultBackground fills margins, passages and open corners.
	DefaultBackground = render.RGB(250, 250, 250)

	// DefaultForeground fills walls and closed corners.
	DefaultForeground = render.RGB(0, 0, 0)
)

// Options holds the geometric and color parameters of a render.
// Negative sizes are treated as zero; zero sizes are allowed and collapse
// the corresponding band.
type Options struct {
	Wall       int          `json:"wall" toml:"wall"`             // wall thickness in pixels
	Passage    int          `json:"passage" toml:"passage"`       // passage width in pixels
	Margin     int          `json:"margin" toml:"margin"`         // padding around the maze
	Background render.Color `json:"background" toml:"background"` // margins, passages, open corners
	Foreground render.Color `json:"foreground" toml:"foreground"` // walls, closed corners
}

// DefaultOptions returns wall = 40, passage = 40, margin = 50 with a
// near-white background and a black foreground.
func DefaultOptions() Options {
	return Options{
		Wall:       DefaultWall,
		Passage:    DefaultPassage,
		Margin:     DefaultMargin,
		Background: DefaultBackground,
		Foreground: DefaultForeground,
	}
}

// Validate rejects negative or oversized parameters. Formatters do not call
// it; it exists for inputs that come from users.
func (o Options) Validate() error {
	for _, p := range []struct {
		name  string
		value int
	}{
		{"wall", o.Wall},
		{"passage", o.Passage},
		{"margin", o.Margin},
	} {
		if err := errors.ValidatePixelParam(p.name, p.value); err != nil {
			return err
		}
	}
	return nil
}

// Geometry holds the pixel measurements derived from [Options] for a grid
// of a given size.
type Geometry struct {
	Wall   int // wall thickness
	Span   int // full cell extent: 2*Wall + Passage
	Stride int // distance between adjacent cell origins: Span - Wall
	Margin int

	MazeWidth  int
	MazeHeight int

	// Width and Height are the image dimensions.
	Width  int
	Height int
}

// Geometry computes the layout of a cols×rows grid.
func (o Options) Geometry(cols, rows int) Geometry {
	wall, passage, margin := max(o.Wall, 0), max(o.Passage, 0), max(o.Margin, 0)

	span := 2*wall + passage
	geo := Geometry{
		Wall:   wall,
		Span:   span,
		Stride: span - wall,
		Margin: margin,
	}
	// Adjacent cells share one wall, so n cells contribute n-1 fewer walls.
	geo.MazeWidth = span*cols - (cols-1)*wall
	geo.MazeHeight = span*rows - (rows-1)*wall
	geo.Width = geo.MazeWidth + 2*margin
	geo.Height = geo.MazeHeight + 2*margin
	return geo
}

// Origin returns the image coordinates of the top-left pixel of cell
// (cx, cy).
func (geo Geometry) Origin(cx, cy int) (x, y int) {
	return cx*geo.Stride + geo.Margin, cy*geo.Stride + geo.Margin
}
