package io

import (
	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
	"github.com/matzehuels/labyrinth/pkg/render/raster"
)

// Definition is the serialized form of a maze.
type Definition struct {
	Width    int              `json:"width" toml:"width"`
	Height   int              `json:"height" toml:"height"`
	Passages []Carve          `json:"passages" toml:"passages"`
	Render   *RenderOverrides `json:"render,omitempty" toml:"render,omitempty"`
}

// Carve opens the wall on Pole at cell (X, Y).
type Carve struct {
	X    int       `json:"x" toml:"x"`
	Y    int       `json:"y" toml:"y"`
	Pole grid.Pole `json:"pole" toml:"pole"`
}

// RenderOverrides holds the render parameters set by a definition. Nil
// fields were not given.
type RenderOverrides struct {
	Wall       *int          `json:"wall,omitempty" toml:"wall,omitempty"`
	Passage    *int          `json:"passage,omitempty" toml:"passage,omitempty"`
	Margin     *int          `json:"margin,omitempty" toml:"margin,omitempty"`
	Background *render.Color `json:"background,omitempty" toml:"background,omitempty"`
	Foreground *render.Color `json:"foreground,omitempty" toml:"foreground,omitempty"`
}

// Apply returns opts with every non-nil override applied. A nil receiver
// returns opts unchanged.
func (r *RenderOverrides) Apply(opts raster.Options) raster.Options {
	if r == nil {
		return opts
	}
	if r.Wall != nil {
		opts.Wall = *r.Wall
	}
	if r.Passage != nil {
		opts.Passage = *r.Passage
	}
	if r.Margin != nil {
		opts.Margin = *r.Margin
	}
	if r.Background != nil {
		opts.Background = *r.Background
	}
	if r.Foreground != nil {
		opts.Foreground = *r.Foreground
	}
	return opts
}

// Validate checks dimensions, render parameters and every carve without
// building a grid.
func (d *Definition) Validate() error {
	_, err := d.Grid()
	return err
}

// Grid builds the grid described by d. Carves are applied in order; the
// first carve that falls off the grid fails the whole definition.
func (d *Definition) Grid() (*grid.Grid, error) {
	if err := errors.ValidateDimensions(d.Width, d.Height); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "invalid dimensions")
	}
	if err := d.Render.Apply(raster.Options{}).Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "invalid render table")
	}

	g, err := grid.New(d.Width, d.Height)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "invalid dimensions")
	}
	for i, c := range d.Passages {
		if err := g.CarvePassage(grid.Coords{X: c.X, Y: c.Y}, c.Pole); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "passage %d", i)
		}
	}
	return g, nil
}

// FromGrid returns the definition of g. Each passage is listed once, from
// its west or north cell, in row-major order.
func FromGrid(g *grid.Grid) *Definition {
	passages := g.Passages()
	d := &Definition{
		Width:    g.Width(),
		Height:   g.Height(),
		Passages: make([]Carve, len(passages)),
	}
	for i, p := range passages {
		d.Passages[i] = Carve{X: p.From.X, Y: p.From.Y, Pole: p.Pole}
	}
	return d
}
