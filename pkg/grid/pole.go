package grid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/labyrinth/pkg/errors"
)

// Pole is one of the four compass directions. It names both a cell wall and
// the direction of travel through that wall.
type Pole uint8

const (
	North Pole = iota
	East
	South
	West
)

// Poles lists every pole in N, E, S, W order.
var Poles = [...]Pole{North, East, South, West}

var poleNames = [...]string{"N", "E", "S", "W"}

// opposites and deltas are indexed by Pole.
var (
	opposites = [...]Pole{South, West, North, East}
	deltas    = [...][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)

// Valid reports whether p is one of the four defined poles.
func (p Pole) Valid() bool { return p <= West }

// Opposite returns the pole facing p: N↔S and E↔W.
func (p Pole) Opposite() Pole { return opposites[p&3] }

// Delta returns the coordinate step taken when moving one cell toward p.
// Y grows southward.
func (p Pole) Delta() (dx, dy int) {
	d := deltas[p&3]
	return d[0], d[1]
}

// String returns the single-letter name of p ("N", "E", "S" or "W").
func (p Pole) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pole(%d)", uint8(p))
	}
	return poleNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Pole) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid pole %d", uint8(p))
	}
	return []byte(poleNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [ParsePole].
func (p *Pole) UnmarshalText(text []byte) error {
	parsed, err := ParsePole(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePole parses a pole name. Single letters and full compass words are
// accepted in any case ("s", "South", "SOUTH").
func ParsePole(s string) (Pole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown pole %q (want N, E, S or W)", s)
}
