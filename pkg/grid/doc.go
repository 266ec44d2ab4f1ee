// Package grid stores the topology of a rectangular maze.
//
// # Overview
//
// A [Grid] is a fixed-size, row-major collection of cells. Every cell has four
// walls, one per [Pole]. A wall is either closed (the default) or carved,
// meaning a passage leads to the neighboring cell in that direction.
//
// The package does not decide which passages exist. A maze generator (or a
// definition file, see package io) drives it by calling [Grid.CarvePassage]:
//
//	g, err := grid.New(4, 4)
//	if err != nil {
//	    return err
//	}
//	if err := g.CarvePassage(grid.Coords{X: 0, Y: 0}, grid.South); err != nil {
//	    return err
//	}
//
// # Wall Symmetry
//
// Carving is the only way to open a wall, and it always opens both sides of
// the shared wall: after CarvePassage(c, p) succeeds, the cell at c reports p
// carved and its neighbor in direction p reports p.Opposite() carved.
// Renderers rely on this; they inspect only a cell's own walls and expect the
// neighbor to agree about the shared wall.
//
// Carving toward a neighbor that does not exist (off the grid edge) fails
// with an OUT_OF_BOUNDS error and leaves the grid untouched.
//
// # Concurrency
//
// A Grid is not safe for concurrent mutation. Readers may share a Grid freely
// once carving has finished; formatters treat it as immutable for the
// duration of a render. Use [Grid.Clone] to keep carving on a copy.
package grid
