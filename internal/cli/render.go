package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
	"github.com/matzehuels/labyrinth/pkg/render"
	"github.com/matzehuels/labyrinth/pkg/render/raster"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file (single format), base path (several), or "-" for stdout
	formats    string // comma-separated formats
	wall       int
	passage    int
	margin     int
	background string
	foreground string
	detailed   bool // label passage-graph nodes with carved poles
	cellWidth  int  // txt column width per cell
	noCache    bool
	refresh    bool
}

// newRenderOpts returns render flags preset to the raster defaults.
func newRenderOpts() *renderOpts {
	return &renderOpts{
		wall:       raster.DefaultWall,
		passage:    raster.DefaultPassage,
		margin:     raster.DefaultMargin,
		background: raster.DefaultBackground.Hex(),
		foreground: raster.DefaultForeground.Hex(),
		cellWidth:  pipeline.DefaultCellWidth,
	}
}

// bind registers the render flags on fs.
func (o *renderOpts) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.output, "output", "o", "", `output file (one format), base path (several formats), or "-" for stdout`)
	fs.StringVarP(&o.formats, "format", "f", pipeline.DefaultFormat, "output format(s): png, txt, dot, svg, json (comma-separated)")
	fs.IntVar(&o.wall, "wall", o.wall, "wall thickness in pixels")
	fs.IntVar(&o.passage, "passage", o.passage, "passage width in pixels")
	fs.IntVar(&o.margin, "margin", o.margin, "margin around the maze in pixels")
	fs.StringVar(&o.background, "background", o.background, "background color (#rrggbb, #rgb or r,g,b)")
	fs.StringVar(&o.foreground, "foreground", o.foreground, "wall color (#rrggbb, #rgb or r,g,b)")
	fs.BoolVar(&o.detailed, "detailed", false, "label passage-graph nodes with their open walls (dot, svg)")
	fs.IntVar(&o.cellWidth, "cell-width", o.cellWidth, "characters per cell (txt)")
	fs.BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	fs.BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts and re-render")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := newRenderOpts()

	cmd := &cobra.Command{
		Use:   "render <maze.toml|maze.json>",
		Short: "Render a maze definition to PNG, ASCII, DOT, SVG or JSON",
		Long: `Render a maze definition file.

Render parameters come from the built-in defaults, then the file's [render]
table, then any flags given on the command line.`,
		Example: `  labyrinth render maze.toml
  labyrinth render maze.json -f png,txt -o out/maze
  labyrinth render maze.toml -f txt -o -
  labyrinth render maze.toml --wall 4 --passage 12 --margin 8 --foreground "#334455"`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDefinitionFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := opts.pipelineOptions(cmd.Flags())
			if err != nil {
				return err
			}
			po.Input = args[0]
			return c.runRender(cmd.Context(), po, opts)
		},
	}
	opts.bind(cmd.Flags())
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// completeDefinitionFiles limits positional completion to definition files.
func completeDefinitionFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last element of a comma-separated format list.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	all := []string{pipeline.FormatPNG, pipeline.FormatTXT, pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatJSON}
	out := make([]string, 0, len(all))
	for _, f := range all {
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// pipelineOptions converts flags to pipeline options. Only flags the user
// actually set become overrides, so the definition's [render] table still
// applies to the rest.
func (o *renderOpts) pipelineOptions(fs *pflag.FlagSet) (pipeline.Options, error) {
	po := pipeline.Options{
		Formats:   pipeline.ParseFormats(o.formats),
		Detailed:  o.detailed,
		CellWidth: o.cellWidth,
		Refresh:   o.refresh,
	}
	if err := pipeline.ValidateFormats(po.Formats); err != nil {
		return po, err
	}

	changed := fs.Changed
	if changed("wall") {
		po.Render.Wall = &o.wall
	}
	if changed("passage") {
		po.Render.Passage = &o.passage
	}
	if changed("margin") {
		po.Render.Margin = &o.margin
	}
	for _, cf := range []struct {
		flag  string
		value string
		dst   **render.Color
	}{
		{"background", o.background, &po.Render.Background},
		{"foreground", o.foreground, &po.Render.Foreground},
	} {
		if !changed(cf.flag) {
			continue
		}
		col, err := render.ParseColor(cf.value)
		if err != nil {
			return po, fmt.Errorf("--%s: %w", cf.flag, err)
		}
		*cf.dst = &col
	}

	if o.output == "-" && len(po.Formats) != 1 {
		return po, errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(po.Formats))
	}
	if o.output != "" && o.output != "-" {
		if err := errors.ValidatePath(o.output); err != nil {
			return po, err
		}
	}
	return po, nil
}

// runRender renders opts.Input and writes every artifact.
func (c *CLI) runRender(ctx context.Context, po pipeline.Options, ro *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debug("rendering", "file", po.Input, "formats", po.Formats)

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(po.Input))
	spin.Start()
	result, err := runner.Execute(ctx, po)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("Rendered", "file", po.Input, "formats", po.Formats)

	if ro.output == "-" {
		_, err := stdout.Write(result.Artifacts[po.Formats[0]])
		return err
	}

	paths := outputPaths(po.Input, ro.output, po.Formats)
	for _, path := range paths {
		if filepath.Clean(path) == filepath.Clean(po.Input) {
			return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite input %s; pass -o", po.Input)
		}
	}
	for _, format := range po.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %s", po.Input)
	showPNGSize := slices.Contains(po.Formats, pipeline.FormatPNG)
	w, h := 0, 0
	if showPNGSize {
		w, h = result.Stats.ImageWidth, result.Stats.ImageHeight
	}
	printStats(result.Stats.Cells, result.Stats.Passages, w, h, result.CacheInfo.RenderHit)
	for _, format := range po.Formats {
		printFile(paths[format])
	}
	if !slices.Contains(po.Formats, pipeline.FormatTXT) {
		printNextStep("Preview in the terminal", appName+" view "+po.Input)
	}
	return nil
}

// outputPaths maps each format to a file path. With one format, output is
// used as given; otherwise it is a base path and each format adds its
// extension. An empty output derives the base from the input file.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or the definition
// extension from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
