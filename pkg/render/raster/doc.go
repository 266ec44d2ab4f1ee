// Package raster renders a maze grid into a pixel image.
//
// # Geometry
//
// Every cell occupies a square of span = 2*Wall + Passage pixels: a wall band
// on each side and the passage between them. Adjacent cells overlap by one
// wall thickness, so cell origins are stride = span - Wall pixels apart and
// the maze measures span*n - (n-1)*Wall pixels along an axis of n cells. The
// image adds Margin pixels on every side. For the defaults (40, 40, 50) and a
// 4x4 grid that is 120*4 - 3*40 = 360 pixels of maze in a 460x460 image.
//
// # Regions
//
// Within its closed square [0, span]² a cell classifies each pixel offset
// (dx, dy) against nine regions, tested in this fixed order:
//
//	CornerNW  EdgeN     CornerNE
//	EdgeW     Interior  EdgeE
//	CornerSW  EdgeS     CornerSE
//
// Along each axis an offset is "low" when 0 ≤ d ≤ Wall, "mid" when
// Wall ≤ d ≤ stride and "high" when stride ≤ d ≤ span. Ranges share their
// boundary offsets, so a boundary pixel can sit in several regions. A pixel
// stays background when any region containing it is open:
//
//   - Interior is always open
//   - an edge is open when that pole is carved
//   - a corner is open only when both poles meeting there are carved
//
// Every other pixel is painted with the foreground color. A cell inspects
// only its own walls; shared walls render consistently because the grid
// keeps both sides of a wall in agreement.
//
// # Usage
//
//	f := raster.New(raster.DefaultOptions())
//	img := f.Format(g)             // *image.RGBA
//	data, err := f.PNG(g)          // encoded PNG
//
// Rendering uses integer arithmetic only and is deterministic: the same grid
// and options always produce identical pixels.
package raster
