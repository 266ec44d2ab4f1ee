package raster

import "github.com/matzehuels/labyrinth/pkg/grid"

// Region identifies one of the nine areas of a cell.
type Region uint8

const (
	CornerNW Region = iota
	EdgeN
	CornerNE
	EdgeW
	Interior
	EdgeE
	CornerSW
	EdgeS
	CornerSE
)

var regionNames = [...]string{"NW", "N", "NE", "W", "interior", "E", "SW", "S", "SE"}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "invalid"
}

// band is a closed range of offsets along one axis of a cell.
type band uint8

const (
	low  band = iota // [0, Wall]
	mid              // [Wall, Stride]
	high             // [Stride, Span]
)

func (geo Geometry) inBand(b band, d int) bool {
	switch b {
	case low:
		return d >= 0 && d <= geo.Wall
	case mid:
		return d >= geo.Wall && d <= geo.Stride
	default:
		return d >= geo.Stride && d <= geo.Span
	}
}

type regionRule struct {
	region Region
	x, y   band
	open   func(grid.Walls) bool
}

func carved(p grid.Pole) func(grid.Walls) bool {
	return func(w grid.Walls) bool { return w.Carved(p) }
}

func carvedBoth(a, b grid.Pole) func(grid.Walls) bool {
	return func(w grid.Walls) bool { return w.Carved(a) && w.Carved(b) }
}

// regions is ordered; the order decides which region Classify reports for
// pixels on shared boundaries.
var regions = [...]regionRule{
	{CornerNW, low, low, carvedBoth(grid.North, grid.West)},
	{EdgeN, mid, low, carved(grid.North)},
	{CornerNE, high, low, carvedBoth(grid.North, grid.East)},
	{EdgeW, low, mid, carved(grid.West)},
	{Interior, mid, mid, func(grid.Walls) bool { return true }},
	{EdgeE, high, mid, carved(grid.East)},
	{CornerSW, low, high, carvedBoth(grid.South, grid.West)},
	{EdgeS, mid, high, carved(grid.South)},
	{CornerSE, high, high, carvedBoth(grid.South, grid.East)},
}

// Classify returns the first region, in table order, that contains the
// offset (dx, dy) from a cell origin. ok is false outside [0, Span]².
func (geo Geometry) Classify(dx, dy int) (r Region, ok bool) {
	for _, rs := range regions {
		if geo.inBand(rs.x, dx) && geo.inBand(rs.y, dy) {
			return rs.region, true
		}
	}
	return 0, false
}

// openRegions evaluates every region's open predicate for one cell.
func openRegions(w grid.Walls) [len(regions)]bool {
	var open [len(regions)]bool
	for i, rs := range regions {
		open[i] = rs.open(w)
	}
	return open
}

// paints reports whether the pixel at offset (dx, dy) gets the foreground
// color. Regions are walked in order and the first open region containing
// the pixel leaves it as background.
func (geo Geometry) paints(open *[len(regions)]bool, dx, dy int) bool {
	inside := false
	for i, rs := range regions {
		if !geo.inBand(rs.x, dx) || !geo.inBand(rs.y, dy) {
			continue
		}
		if open[i] {
			return false
		}
		inside = true
	}
	return inside
}

// Paints reports whether a cell with walls w paints the pixel at offset
// (dx, dy) from its origin.
func (geo Geometry) Paints(w grid.Walls, dx, dy int) bool {
	open := openRegions(w)
	return geo.paints(&open, dx, dy)
}
