package grid

import (
	stderrors "errors"
	"fmt"
	"iter"

	"github.com/matzehuels/labyrinth/pkg/errors"
)

// ErrOutOfBounds is matched (via errors.Is) by every error the grid returns
// for coordinates outside the grid or for carving off its edge.
var ErrOutOfBounds = stderrors.New("out of bounds")

// Grid is a width×height maze topology stored as a flat row-major slice of
// wall sets. The zero value is not usable; create grids with [New].
type Grid struct {
	width  int
	height int
	walls  []Walls
}

// New creates a grid with every wall closed. Both dimensions must be at
// least 1.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid dimensions must be at least 1x1, got %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		walls:  make([]Walls, width*height),
	}, nil
}

// MustNew is like [New] but panics on invalid dimensions.
func MustNew(width, height int) *Grid {
	g, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of cell columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of cell rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.walls) }

// Contains reports whether c addresses a cell of g.
func (g *Grid) Contains(c Coords) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Neighbor returns the cell adjacent to c in direction p. The boolean is
// false when c is outside the grid or p points off its edge.
func (g *Grid) Neighbor(c Coords, p Pole) (Coords, bool) {
	if !g.Contains(c) || !p.Valid() {
		return Coords{}, false
	}
	n := c.Step(p)
	return n, g.Contains(n)
}

// CarvePassage opens the wall on p at c together with the wall on
// p.Opposite() at the neighboring cell. Both cells are validated before
// either is written, so a failed carve leaves the grid unchanged. Carving
// an already open wall succeeds without effect.
func (g *Grid) CarvePassage(c Coords, p Pole) error {
	if !p.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid pole %d", uint8(p))
	}
	if !g.Contains(c) {
		return g.outOfBounds("cell (%d, %d) is outside the %dx%d grid", c.X, c.Y, g.width, g.height)
	}
	n := c.Step(p)
	if !g.Contains(n) {
		return g.outOfBounds("cell (%d, %d) has no neighbor to the %s", c.X, c.Y, p)
	}

	g.walls[g.index(c)] = g.walls[g.index(c)].with(p)
	g.walls[g.index(n)] = g.walls[g.index(n)].with(p.Opposite())
	return nil
}

// Walls returns the wall state of the cell at c.
func (g *Grid) Walls(c Coords) (Walls, error) {
	if !g.Contains(c) {
		return 0, g.outOfBounds("cell (%d, %d) is outside the %dx%d grid", c.X, c.Y, g.width, g.height)
	}
	return g.walls[g.index(c)], nil
}

// Cells yields every cell in row-major order: all of row 0 west to east,
// then row 1, and so on.
func (g *Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, w := range g.walls {
			c := Cell{Coords: Coords{X: i % g.width, Y: i / g.width}, Walls: w}
			if !yield(c) {
				return
			}
		}
	}
}

// Passages returns every carved wall exactly once, in row-major order of the
// west/north cell, east before south.
func (g *Grid) Passages() []Passage {
	var out []Passage
	for c := range g.Cells() {
		for _, p := range [...]Pole{East, South} {
			if c.Walls.Carved(p) {
				out = append(out, Passage{From: c.Coords, Pole: p})
			}
		}
	}
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	walls := make([]Walls, len(g.walls))
	copy(walls, g.walls)
	return &Grid{width: g.width, height: g.height, walls: walls}
}

// Equal reports whether g and other have the same size and wall states.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.walls {
		if g.walls[i] != other.walls[i] {
			return false
		}
	}
	return true
}

// String returns a short description such as "Grid(4x4, 15 passages)".
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, %d passages)", g.width, g.height, len(g.Passages()))
}

func (g *Grid) index(c Coords) int { return c.Y*g.width + c.X }

func (g *Grid) outOfBounds(format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeOutOfBounds, ErrOutOfBounds, format, args...)
}
