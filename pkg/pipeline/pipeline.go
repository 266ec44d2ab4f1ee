// Package pipeline turns a maze grid into rendered artifacts.
//
// This package implements the load → render → cache flow shared by the CLI
// render command and the HTTP server, so both entry points produce the same
// bytes for the same input and share one cache layout.
//
// # Formats
//
//   - png: raster image (see [raster.Formatter])
//   - txt: ASCII art (see [text.Formatter])
//   - dot: passage graph in Graphviz DOT
//   - svg: passage graph rendered by Graphviz
//   - json: the maze definition, including the effective render parameters
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "maze.toml",
//	    Formats: []string{"png", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Render parameters are resolved in three layers: the raster defaults, then
// the definition file's [render] table, then [Options.Render].
//
// [raster.Formatter]: github.com/matzehuels/labyrinth/pkg/render/raster.Formatter
// [text.Formatter]: github.com/matzehuels/labyrinth/pkg/render/text.Formatter
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labyrinth/pkg/cache"
	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
	pkgio "github.com/matzehuels/labyrinth/pkg/io"
	"github.com/matzehuels/labyrinth/pkg/render/raster"
	"github.com/matzehuels/labyrinth/pkg/render/text"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP
// =============================================================================

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatTXT  = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatPNG

// DefaultCellWidth is the text formatter's default cell width.
const DefaultCellWidth = text.DefaultCellWidth

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatTXT:  true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatTXT:  "text/plain; charset=utf-8",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a render.
// This struct supports JSON serialization for HTTP requests.
type Options struct {
	// Input is the definition file read by [Runner.Execute].
	Input string `json:"-"`

	// Formats lists the artifacts to produce. Defaults to [DefaultFormat].
	Formats []string `json:"formats,omitempty"`

	// Render overrides the definition's render parameters.
	Render pkgio.RenderOverrides `json:"render"`

	// Detailed labels passage-graph nodes with their carved poles.
	Detailed bool `json:"detailed,omitempty"`

	// CellWidth is the column width of one cell in txt output.
	CellWidth int `json:"cell_width,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives progress output. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID uniquely identifies this run in logs and HTTP responses.
	ID string

	// Grid is the rendered grid.
	Grid *grid.Grid

	// GridHash is the content hash of the grid's JSON definition.
	GridHash string

	// Raster holds the resolved render parameters.
	Raster raster.Options

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells       int
	Passages    int
	ImageWidth  int
	ImageHeight int
	LoadTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits per artifact.
type CacheInfo struct {
	Hits      map[string]bool // format -> served from cache
	RenderHit bool            // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, txt, dot, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "png,txt", trimming
// blanks and dropping duplicates while keeping order.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.Render.Apply(raster.Options{}).Validate()
}

// RasterOptions resolves the render parameters: raster defaults, then file,
// then o.Render. file may be nil.
func (o *Options) RasterOptions(file *pkgio.RenderOverrides) raster.Options {
	return o.Render.Apply(file.Apply(raster.DefaultOptions()))
}

// ArtifactKeyOpts returns cache key options for one artifact. Parameters
// that do not affect the format are zeroed so that, for example, changing
// the wall thickness does not invalidate cached DOT output.
func (o *Options) ArtifactKeyOpts(format string, ro raster.Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG, FormatJSON:
		k.Wall, k.Passage, k.Margin = ro.Wall, ro.Passage, ro.Margin
		k.Background, k.Foreground = ro.Background.Hex(), ro.Foreground.Hex()
	case FormatTXT:
		k.CellWidth = o.CellWidth
	case FormatDOT, FormatSVG:
		k.Detailed = o.Detailed
	}
	return k
}
