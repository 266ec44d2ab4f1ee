// Package render defines the formatter abstraction shared by every maze
// output format, plus the [Color] type used by the raster renderer.
//
// # Overview
//
// A formatter turns a finished [grid.Grid] into some output value. Each
// output format lives in its own subpackage:
//
//   - [raster]: pixel image (*image.RGBA), encodable as PNG
//   - [text]: ASCII art
//   - [nodelink]: passage graph as Graphviz DOT / SVG
//
// All formatters implement [Formatter] for their output type:
//
//	var f render.Formatter[*image.RGBA] = raster.New(raster.DefaultOptions())
//	img := f.Format(g)
//
// Formatters only read the grid. Callers must not carve passages while a
// Format call is in progress.
//
// [grid.Grid]: github.com/matzehuels/labyrinth/pkg/grid.Grid
// [raster]: github.com/matzehuels/labyrinth/pkg/render/raster
// [text]: github.com/matzehuels/labyrinth/pkg/render/text
// [nodelink]: github.com/matzehuels/labyrinth/pkg/render/nodelink
package render
