package grid

import "strings"

// Walls records which of a cell's four walls are carved. Bit p is set when
// the wall on pole p has been removed. The zero value has every wall closed.
type Walls uint8

// Carved reports whether the wall on p is open.
func (w Walls) Carved(p Pole) bool { return w&(1<<p) != 0 }

// Closed reports whether the wall on p is still standing.
func (w Walls) Closed(p Pole) bool { return !w.Carved(p) }

// Count returns how many walls are carved.
func (w Walls) Count() int {
	n := 0
	for _, p := range Poles {
		if w.Carved(p) {
			n++
		}
	}
	return n
}

func (w Walls) with(p Pole) Walls { return w | 1<<p }

// String lists the carved poles, e.g. "ES", or "-" when every wall is closed.
func (w Walls) String() string {
	var b strings.Builder
	for _, p := range Poles {
		if w.Carved(p) {
			b.WriteString(p.String())
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// Coords addresses a cell. X grows eastward and Y grows southward; (0, 0)
// is the north-west corner.
type Coords struct {
	X, Y int
}

// Step returns the coordinates one cell away in direction p. The result may
// lie outside any particular grid.
func (c Coords) Step(p Pole) Coords {
	dx, dy := p.Delta()
	return Coords{X: c.X + dx, Y: c.Y + dy}
}

// Cell is a read-only snapshot of one grid cell.
type Cell struct {
	Coords Coords
	Walls  Walls
}

// Passage is a carved wall between two adjacent cells, reported once from
// the cell on its west or north side.
type Passage struct {
	From Coords
	Pole Pole // East or South
}

// To returns the cell on the other side of the passage.
func (p Passage) To() Coords { return p.From.Step(p.Pole) }
