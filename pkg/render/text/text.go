// Package text renders a maze grid as ASCII art.
//
// Each cell is drawn as a box of corner, horizontal and vertical runes; a
// carved wall is drawn as blanks:
//
//	+---+---+
//	|       |
//	+---+   +
//	|       |
//	+---+---+
package text

import (
	"strings"

	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// DefaultCellWidth is the number of columns between two corner runes.
const DefaultCellWidth = 3

// Options configures the ASCII output. Zero values select the defaults.
type Options struct {
	CellWidth  int  `json:"cell_width,omitempty" toml:"cell_width,omitempty"`
	Corner     rune `json:"-" toml:"-"`
	Horizontal rune `json:"-" toml:"-"`
	Vertical   rune `json:"-" toml:"-"`
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.Corner == 0 {
		o.Corner = '+'
	}
	if o.Horizontal == 0 {
		o.Horizontal = '-'
	}
	if o.Vertical == 0 {
		o.Vertical = '|'
	}
	return o
}

// Formatter draws grids as ASCII art.
type Formatter struct {
	opts Options
}

var _ render.Formatter[string] = (*Formatter)(nil)

// New creates a text formatter.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts.withDefaults()}
}

// Format returns the drawing of g. Every line, including the last, ends
// with a newline.
func (f *Formatter) Format(g *grid.Grid) string {
	o := f.opts
	w, h := g.Width(), g.Height()

	closedRun := strings.Repeat(string(o.Horizontal), o.CellWidth)
	blankRun := strings.Repeat(" ", o.CellWidth)

	var b strings.Builder
	b.Grow((h*2 + 1) * (w*(o.CellWidth+1) + 2))

	// boundary draws the horizontal wall line above row y, using the
	// south walls of the last row when y == h.
	boundary := func(y int) {
		for x := range w {
			b.WriteRune(o.Corner)
			var open bool
			if y < h {
				open = cellWalls(g, x, y).Carved(grid.North)
			} else {
				open = cellWalls(g, x, h-1).Carved(grid.South)
			}
			if open {
				b.WriteString(blankRun)
			} else {
				b.WriteString(closedRun)
			}
		}
		b.WriteRune(o.Corner)
		b.WriteByte('\n')
	}

	for y := range h {
		boundary(y)
		for x := range w {
			if cellWalls(g, x, y).Carved(grid.West) {
				b.WriteByte(' ')
			} else {
				b.WriteRune(o.Vertical)
			}
			b.WriteString(blankRun)
		}
		if cellWalls(g, w-1, y).Carved(grid.East) {
			b.WriteByte(' ')
		} else {
			b.WriteRune(o.Vertical)
		}
		b.WriteByte('\n')
	}
	boundary(h)
	return b.String()
}

func cellWalls(g *grid.Grid, x, y int) grid.Walls {
	w, _ := g.Walls(grid.Coords{X: x, Y: y})
	return w
}

// Render is shorthand for New(opts).Format(g).
func Render(g *grid.Grid, opts Options) string {
	return New(opts).Format(g)
}
