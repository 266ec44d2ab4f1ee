package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/labyrinth/pkg/cache"
	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
	pkgio "github.com/matzehuels/labyrinth/pkg/io"
	"github.com/matzehuels/labyrinth/pkg/render"
	"github.com/matzehuels/labyrinth/pkg/render/raster"
)

func intPtr(v int) *int { return &v }

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.MustNew(4, 4)
	for _, c := range []struct {
		x, y int
		p    grid.Pole
	}{
		{0, 0, grid.South}, {0, 1, grid.East}, {1, 1, grid.South}, {1, 2, grid.East},
	} {
		if err := g.CarvePassage(grid.Coords{X: c.x, Y: c.y}, c.p); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"txt", false},
		{"dot", false},
		{"svg", false},
		{"json", false},
		{"pdf", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "txt"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"png", "gif"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"png", []string{"png"}},
		{"png, TXT ,png", []string{"png", "txt"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var o Options
	o.SetRenderDefaults()
	if !reflect.DeepEqual(o.Formats, []string{DefaultFormat}) {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.CellWidth != DefaultCellWidth {
		t.Errorf("CellWidth = %d", o.CellWidth)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateForRender(t *testing.T) {
	o := Options{Render: pkgio.RenderOverrides{Wall: intPtr(-1)}}
	if err := o.ValidateForRender(); err == nil {
		t.Error("negative wall should fail validation")
	}
	o = Options{Formats: []string{"bmp"}}
	if err := o.ValidateForRender(); err == nil {
		t.Error("unknown format should fail validation")
	}
}

func TestRasterOptionsPrecedence(t *testing.T) {
	red := render.RGB(255, 0, 0)
	file := &pkgio.RenderOverrides{Wall: intPtr(10), Margin: intPtr(5), Foreground: &red}
	o := Options{Render: pkgio.RenderOverrides{Wall: intPtr(20)}}

	got := o.RasterOptions(file)
	want := raster.DefaultOptions()
	want.Wall = 20 // flag beats file
	want.Margin = 5
	want.Foreground = red

	if got != want {
		t.Errorf("RasterOptions() = %+v, want %+v", got, want)
	}
	if o.RasterOptions(nil) != (raster.Options{
		Wall: 20, Passage: raster.DefaultPassage, Margin: raster.DefaultMargin,
		Background: raster.DefaultBackground, Foreground: raster.DefaultForeground,
	}) {
		t.Error("nil file overrides should leave defaults")
	}
}

func TestArtifactKeyOptsScope(t *testing.T) {
	o := Options{CellWidth: 3}
	a := raster.DefaultOptions()
	b := a
	b.Wall = 1

	if o.ArtifactKeyOpts(FormatDOT, a) != o.ArtifactKeyOpts(FormatDOT, b) {
		t.Error("wall thickness should not affect dot keys")
	}
	if o.ArtifactKeyOpts(FormatPNG, a) == o.ArtifactKeyOpts(FormatPNG, b) {
		t.Error("wall thickness should affect png keys")
	}
}

func TestRunnerRenderFormats(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	g := testGrid(t)

	res, err := r.Render(ctx, g, Options{Formats: []string{"png", "txt", "dot", "json"}})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.ID == "" {
		t.Error("result ID should be set")
	}
	if res.Stats.ImageWidth != 460 || res.Stats.ImageHeight != 460 {
		t.Errorf("image size = %dx%d, want 460x460", res.Stats.ImageWidth, res.Stats.ImageHeight)
	}
	if res.Stats.Cells != 16 || res.Stats.Passages != 4 {
		t.Errorf("stats = %+v", res.Stats)
	}

	img, err := png.Decode(bytes.NewReader(res.Artifacts["png"]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 460 || b.Dy() != 460 {
		t.Errorf("png bounds = %v", b)
	}

	if !strings.HasPrefix(string(res.Artifacts["txt"]), "+---+---+---+---+\n") {
		t.Errorf("txt artifact:\n%s", res.Artifacts["txt"])
	}
	if !strings.Contains(string(res.Artifacts["dot"]), `"0,0" -- "0,1";`) {
		t.Errorf("dot artifact missing passage:\n%s", res.Artifacts["dot"])
	}

	def, err := pkgio.ReadJSON(bytes.NewReader(res.Artifacts["json"]))
	if err != nil {
		t.Fatalf("json artifact does not decode: %v", err)
	}
	back, err := def.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(g) {
		t.Error("json artifact does not reproduce the grid")
	}
	if def.Render == nil || def.Render.Wall == nil || *def.Render.Wall != raster.DefaultWall {
		t.Errorf("json artifact should spell out render parameters: %+v", def.Render)
	}
}

func TestRunnerRenderSVG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Render(context.Background(), testGrid(t), Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact should contain an <svg> element")
	}
}

func TestRunnerCacheHit(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Formats: []string{"png", "txt"}}
	first, err := r.Render(ctx, testGrid(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first render should miss")
	}

	second, err := r.Render(ctx, testGrid(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Errorf("second render should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["png"], second.Artifacts["png"]) {
		t.Error("cached png differs from rendered png")
	}
	if first.ID == second.ID {
		t.Error("each run should get its own ID")
	}

	refreshed, err := r.Render(ctx, testGrid(t), Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh should bypass cache reads")
	}

	other, err := r.Render(ctx, testGrid(t), Options{Formats: []string{"png"}, Render: pkgio.RenderOverrides{Margin: intPtr(0)}})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.Hits["png"] {
		t.Error("changed margin should miss")
	}
}

func TestRunnerRejectsHugeImage(t *testing.T) {
	g := grid.MustNew(errors.MaxGridSide, errors.MaxGridSide)
	_, err := NewRunner(nil, nil, nil).Render(context.Background(), g, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maze.toml")
	src := "width = 2\nheight = 1\n\n[[passages]]\nx = 0\ny = 0\npole = \"E\"\n\n[render]\nwall = 2\npassage = 4\nmargin = 1\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Input: path, Render: pkgio.RenderOverrides{Margin: intPtr(3)}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	// span 8, mazeW = 8*2 - 2 = 14, mazeH = 8; margin 3 from the override
	if res.Stats.ImageWidth != 20 || res.Stats.ImageHeight != 14 {
		t.Errorf("image = %dx%d, want 20x14", res.Stats.ImageWidth, res.Stats.ImageHeight)
	}
	if res.Raster.Wall != 2 || res.Raster.Margin != 3 {
		t.Errorf("raster options = %+v", res.Raster)
	}

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("missing input should fail")
	}
	if _, err := r.Execute(context.Background(), Options{Input: filepath.Join(dir, "nope.json")}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}
