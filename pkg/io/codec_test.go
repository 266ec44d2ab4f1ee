package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
	"github.com/matzehuels/labyrinth/pkg/render/raster"
)

func sampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.MustNew(3, 2)
	for _, c := range []struct {
		x, y int
		p    grid.Pole
	}{
		{0, 0, grid.East},
		{1, 0, grid.South},
		{2, 1, grid.North},
		{1, 1, grid.West},
	} {
		if err := g.CarvePassage(grid.Coords{X: c.x, Y: c.y}, c.p); err != nil {
			t.Fatalf("CarvePassage: %v", err)
		}
	}
	return g
}

func TestReadJSON(t *testing.T) {
	input := `{
		"width": 2,
		"height": 2,
		"passages": [
			{"x": 0, "y": 0, "pole": "S"},
			{"x": 1, "y": 1, "pole": "north"}
		],
		"render": {"wall": 10, "background": "#fff"}
	}`

	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if d.Width != 2 || d.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", d.Width, d.Height)
	}
	if len(d.Passages) != 2 || d.Passages[1].Pole != grid.North {
		t.Errorf("passages = %+v", d.Passages)
	}

	g, err := d.Grid()
	if err != nil {
		t.Fatalf("Grid error: %v", err)
	}
	if got := len(g.Passages()); got != 2 {
		t.Errorf("passage count = %d, want 2", got)
	}

	opts := d.Render.Apply(raster.DefaultOptions())
	if opts.Wall != 10 {
		t.Errorf("wall = %d, want 10", opts.Wall)
	}
	if opts.Passage != raster.DefaultPassage {
		t.Errorf("passage = %d, want default %d", opts.Passage, raster.DefaultPassage)
	}
	if opts.Background != render.RGB(255, 255, 255) {
		t.Errorf("background = %v", opts.Background)
	}
}

func TestReadTOML(t *testing.T) {
	input := `
width = 2
height = 1

[[passages]]
x = 0
y = 0
pole = "E"

[render]
margin = 0
foreground = "10,20,30"
`
	d, err := ReadTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTOML error: %v", err)
	}
	g, err := d.Grid()
	if err != nil {
		t.Fatalf("Grid error: %v", err)
	}
	w, _ := g.Walls(grid.Coords{X: 1, Y: 0})
	if !w.Carved(grid.West) {
		t.Error("(1,0) west wall should be carved")
	}

	opts := d.Render.Apply(raster.DefaultOptions())
	if opts.Margin != 0 {
		t.Errorf("margin = %d, want explicit 0", opts.Margin)
	}
	if opts.Foreground != render.RGB(10, 20, 30) {
		t.Errorf("foreground = %v", opts.Foreground)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"malformed json", FormatJSON, `{"width": 2,`},
		{"unknown json field", FormatJSON, `{"width": 2, "height": 2, "pasages": []}`},
		{"bad pole", FormatJSON, `{"width": 2, "height": 2, "passages": [{"x": 0, "y": 0, "pole": "up"}]}`},
		{"bad color", FormatJSON, `{"width": 2, "height": 2, "render": {"background": "#12"}}`},
		{"malformed toml", FormatTOML, `width = `},
		{"unknown toml key", FormatTOML, "width = 2\nheight = 2\ndepth = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDefinition) {
				t.Errorf("code = %q, want INVALID_DEFINITION (err: %v)", errors.GetCode(err), err)
			}
		})
	}
}

func TestDefinitionGridErrors(t *testing.T) {
	neg := -1
	tests := []struct {
		name string
		def  Definition
	}{
		{"zero width", Definition{Width: 0, Height: 3}},
		{"too tall", Definition{Width: 3, Height: errors.MaxGridSide + 1}},
		{"carve off edge", Definition{Width: 2, Height: 2, Passages: []Carve{{X: 1, Y: 0, Pole: grid.East}}}},
		{"carve outside", Definition{Width: 2, Height: 2, Passages: []Carve{{X: 5, Y: 5, Pole: grid.North}}}},
		{"negative wall", Definition{Width: 2, Height: 2, Render: &RenderOverrides{Wall: &neg}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.def.Grid(); !errors.Is(err, errors.ErrCodeInvalidDefinition) {
				t.Errorf("Grid() error = %v, want INVALID_DEFINITION", err)
			}
			if err := tt.def.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			g := sampleGrid(t)

			var buf bytes.Buffer
			if err := Write(FromGrid(g), &buf, format); err != nil {
				t.Fatalf("Write error: %v", err)
			}
			d, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read error: %v\n%s", err, buf.String())
			}
			got, err := d.Grid()
			if err != nil {
				t.Fatalf("Grid error: %v", err)
			}
			if !got.Equal(g) {
				t.Errorf("round trip changed grid: got %v, want %v", got, g)
			}
		})
	}
}

func TestRoundTripClosedGrid(t *testing.T) {
	g := grid.MustNew(2, 2)
	var buf bytes.Buffer
	if err := WriteTOML(FromGrid(g), &buf); err != nil {
		t.Fatalf("WriteTOML error: %v", err)
	}
	d, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML error: %v", err)
	}
	if len(d.Passages) != 0 || d.Width != 2 {
		t.Errorf("decoded %+v", d)
	}
}

func TestFromGridOrder(t *testing.T) {
	d := FromGrid(sampleGrid(t))
	want := []Carve{
		{X: 0, Y: 0, Pole: grid.East},
		{X: 1, Y: 0, Pole: grid.South},
		{X: 2, Y: 0, Pole: grid.South},
		{X: 0, Y: 1, Pole: grid.East},
	}
	if len(d.Passages) != len(want) {
		t.Fatalf("got %d passages, want %d: %+v", len(d.Passages), len(want), d.Passages)
	}
	for i := range want {
		if d.Passages[i] != want[i] {
			t.Errorf("passage %d = %+v, want %+v", i, d.Passages[i], want[i])
		}
	}
	if d.Render != nil {
		t.Error("FromGrid should not set render overrides")
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	g := sampleGrid(t)

	for _, name := range []string{"maze.json", "maze.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(FromGrid(g), path); err != nil {
				t.Fatalf("Export error: %v", err)
			}
			got, _, err := Import(path)
			if err != nil {
				t.Fatalf("Import error: %v", err)
			}
			if !got.Equal(g) {
				t.Error("imported grid differs")
			}
		})
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}

	yaml := filepath.Join(dir, "maze.yaml")
	if err := os.WriteFile(yaml, []byte("width: 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Import(yaml); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml: got %v, want INVALID_FORMAT", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": 1, "height": 1, "passages": [{"x": 0, "y": 0, "pole": "E"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := Import(bad)
	if !errors.Is(err, errors.ErrCodeInvalidDefinition) {
		t.Errorf("bad carve: got %v, want INVALID_DEFINITION", err)
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error %q should mention the file", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"maze.json", FormatJSON, true},
		{"dir/MAZE.TOML", FormatTOML, true},
		{"maze", "", false},
		{"maze.png", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}
