package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
	pkgio "github.com/matzehuels/labyrinth/pkg/io"
	"github.com/matzehuels/labyrinth/pkg/render/nodelink"
	"github.com/matzehuels/labyrinth/pkg/render/raster"
	"github.com/matzehuels/labyrinth/pkg/render/text"
)

// RenderFormat produces a single artifact without touching any cache.
// ro must already be resolved (see [Options.RasterOptions]).
func RenderFormat(ctx context.Context, g *grid.Grid, format string, opts Options, ro raster.Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		geo := ro.Geometry(g.Width(), g.Height())
		if err := errors.ValidateImageSize(geo.Width, geo.Height); err != nil {
			return nil, err
		}
		return raster.RenderPNG(g, ro)
	case FormatTXT:
		return []byte(text.Render(g, text.Options{CellWidth: opts.CellWidth})), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelinkOptions(opts))), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelinkOptions(opts)))
	case FormatJSON:
		return marshalDefinition(g, ro)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed}
}

// marshalDefinition writes g with every render parameter spelled out, so the
// file reproduces the same PNG regardless of future default changes.
func marshalDefinition(g *grid.Grid, ro raster.Options) ([]byte, error) {
	def := pkgio.FromGrid(g)
	def.Render = &pkgio.RenderOverrides{
		Wall:       &ro.Wall,
		Passage:    &ro.Passage,
		Margin:     &ro.Margin,
		Background: &ro.Background,
		Foreground: &ro.Foreground,
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(def, &buf); err != nil {
		return nil, fmt.Errorf("serialize definition: %w", err)
	}
	return buf.Bytes(), nil
}
