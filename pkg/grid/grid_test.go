package grid

import (
	stderrors "errors"
	"testing"

	"github.com/matzehuels/labyrinth/pkg/errors"
)

func TestNew(t *testing.T) {
	g, err := New(4, 3)
	if err != nil {
		t.Fatalf("New(4, 3) error: %v", err)
	}
	if g.Width() != 4 || g.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}
	if g.Len() != 12 {
		t.Errorf("Len() = %d, want 12", g.Len())
	}
	for c := range g.Cells() {
		if c.Walls != 0 {
			t.Errorf("cell %v walls = %v, want all closed", c.Coords, c.Walls)
		}
	}
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 1},
		{"zero height", 1, 0},
		{"negative", -2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.width, tt.height)
			if err == nil {
				t.Fatalf("New(%d, %d) = %v, want error", tt.width, tt.height, g)
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(0, 0) should panic")
		}
	}()
	MustNew(0, 0)
}

func TestCarvePassageSymmetry(t *testing.T) {
	for _, p := range Poles {
		t.Run(p.String(), func(t *testing.T) {
			g := MustNew(3, 3)
			center := Coords{X: 1, Y: 1}

			if err := g.CarvePassage(center, p); err != nil {
				t.Fatalf("CarvePassage(%v, %v) error: %v", center, p, err)
			}

			w, _ := g.Walls(center)
			if !w.Carved(p) {
				t.Errorf("center wall %v not carved", p)
			}
			if w.Count() != 1 {
				t.Errorf("center carved count = %d, want 1", w.Count())
			}

			n, ok := g.Neighbor(center, p)
			if !ok {
				t.Fatalf("Neighbor(%v, %v) missing", center, p)
			}
			nw, _ := g.Walls(n)
			if !nw.Carved(p.Opposite()) {
				t.Errorf("neighbor %v wall %v not carved", n, p.Opposite())
			}
			if nw.Count() != 1 {
				t.Errorf("neighbor carved count = %d, want 1", nw.Count())
			}
		})
	}
}

// Every successful carve on every cell keeps the whole grid symmetric.
func TestCarvePassageSymmetryExhaustive(t *testing.T) {
	g := MustNew(5, 4)
	for c := range g.Clone().Cells() {
		for _, p := range Poles {
			_ = g.CarvePassage(c.Coords, p)
		}
	}
	assertSymmetric(t, g)

	for c := range g.Cells() {
		for _, p := range Poles {
			_, hasNeighbor := g.Neighbor(c.Coords, p)
			if c.Walls.Carved(p) != hasNeighbor {
				t.Errorf("cell %v pole %v carved=%v, neighbor exists=%v", c.Coords, p, c.Walls.Carved(p), hasNeighbor)
			}
		}
	}
}

func TestCarvePassageOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		at   Coords
		pole Pole
	}{
		{"north edge", Coords{X: 1, Y: 0}, North},
		{"west edge", Coords{X: 0, Y: 1}, West},
		{"east edge", Coords{X: 3, Y: 2}, East},
		{"south edge", Coords{X: 2, Y: 3}, South},
		{"corner north", Coords{X: 0, Y: 0}, North},
		{"outside x", Coords{X: 4, Y: 0}, West},
		{"outside y", Coords{X: 0, Y: 4}, North},
		{"negative", Coords{X: -1, Y: 0}, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustNew(4, 4)
			_ = g.CarvePassage(Coords{X: 1, Y: 1}, East)
			before := g.Clone()

			err := g.CarvePassage(tt.at, tt.pole)
			if err == nil {
				t.Fatalf("CarvePassage(%v, %v) succeeded, want error", tt.at, tt.pole)
			}
			if !stderrors.Is(err, ErrOutOfBounds) {
				t.Errorf("errors.Is(err, ErrOutOfBounds) = false for %v", err)
			}
			if !errors.Is(err, errors.ErrCodeOutOfBounds) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeOutOfBounds)
			}
			if !g.Equal(before) {
				t.Error("failed carve mutated the grid")
			}
		})
	}
}

func TestCarvePassageInvalidPole(t *testing.T) {
	g := MustNew(2, 2)
	err := g.CarvePassage(Coords{}, Pole(7))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("CarvePassage(invalid pole) error = %v, want INVALID_INPUT", err)
	}
}

func TestCarvePassageIdempotent(t *testing.T) {
	g := MustNew(2, 1)
	if err := g.CarvePassage(Coords{X: 0, Y: 0}, East); err != nil {
		t.Fatal(err)
	}
	once := g.Clone()
	if err := g.CarvePassage(Coords{X: 1, Y: 0}, West); err != nil {
		t.Fatalf("carving the same wall from the other side: %v", err)
	}
	if !g.Equal(once) {
		t.Error("re-carving an open wall changed the grid")
	}
}

func TestWallsOutOfBounds(t *testing.T) {
	g := MustNew(2, 2)
	for _, c := range []Coords{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := g.Walls(c); !stderrors.Is(err, ErrOutOfBounds) {
			t.Errorf("Walls(%v) error = %v, want out of bounds", c, err)
		}
	}
}

func TestCellsRowMajor(t *testing.T) {
	g := MustNew(3, 2)
	var got []Coords
	for c := range g.Cells() {
		got = append(got, c.Coords)
	}
	want := []Coords{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	if len(got) != len(want) {
		t.Fatalf("Cells() yielded %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cells()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCellsEarlyStop(t *testing.T) {
	g := MustNew(10, 10)
	n := 0
	for range g.Cells() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("visited %d cells, want 3", n)
	}
}

func TestPassages(t *testing.T) {
	g := MustNew(2, 2)
	_ = g.CarvePassage(Coords{X: 1, Y: 0}, West)
	_ = g.CarvePassage(Coords{X: 1, Y: 1}, North)

	got := g.Passages()
	want := []Passage{
		{From: Coords{X: 0, Y: 0}, Pole: East},
		{From: Coords{X: 1, Y: 0}, Pole: South},
	}
	if len(got) != len(want) {
		t.Fatalf("Passages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Passages()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if to := got[1].To(); to != (Coords{X: 1, Y: 1}) {
		t.Errorf("Passage.To() = %v, want (1,1)", to)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustNew(2, 2)
	c := g.Clone()
	_ = c.CarvePassage(Coords{}, East)
	if g.Equal(c) {
		t.Error("carving the clone changed the source grid")
	}
	if w, _ := g.Walls(Coords{}); w != 0 {
		t.Errorf("source walls = %v, want closed", w)
	}
}

func TestString(t *testing.T) {
	g := MustNew(4, 4)
	_ = g.CarvePassage(Coords{}, South)
	if got := g.String(); got != "Grid(4x4, 1 passages)" {
		t.Errorf("String() = %q", got)
	}
}

func assertSymmetric(t *testing.T, g *Grid) {
	t.Helper()
	for c := range g.Cells() {
		for _, p := range Poles {
			if !c.Walls.Carved(p) {
				continue
			}
			n, ok := g.Neighbor(c.Coords, p)
			if !ok {
				t.Errorf("cell %v carved %v toward nothing", c.Coords, p)
				continue
			}
			nw, _ := g.Walls(n)
			if !nw.Carved(p.Opposite()) {
				t.Errorf("cell %v carved %v but neighbor %v has %v closed", c.Coords, p, n, p.Opposite())
			}
		}
	}
}
