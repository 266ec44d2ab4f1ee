package raster

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/matzehuels/labyrinth/pkg/grid"
)

// EncodePNG writes img to w as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// PNG renders g and returns the encoded image.
func (f *Formatter) PNG(g *grid.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, f.Format(g)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPNG is shorthand for New(opts).PNG(g).
func RenderPNG(g *grid.Grid, opts Options) ([]byte, error) {
	return New(opts).PNG(g)
}
