package render

import "github.com/matzehuels/labyrinth/pkg/grid"

// Formatter converts a grid into an output of type T.
// Implementations must be deterministic and must not modify g.
type Formatter[T any] interface {
	Format(g *grid.Grid) T
}

// FormatterFunc adapts a plain function to [Formatter].
type FormatterFunc[T any] func(g *grid.Grid) T

// Format calls f(g).
func (f FormatterFunc[T]) Format(g *grid.Grid) T { return f(g) }
