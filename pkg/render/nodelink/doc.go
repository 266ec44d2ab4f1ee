// Package nodelink renders a maze's passage graph as a node-link diagram.
//
// # Overview
//
// Every cell becomes a node and every carved passage an undirected edge.
// Nodes carry pinned positions so that Graphviz's neato engine keeps the grid
// shape, which makes dead ends, loops and disconnected regions easy to spot.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Formatter] wraps [ToDOT] for use wherever a [render.Formatter] is expected.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering (Graphviz compiled to WebAssembly); no system Graphviz install
// is needed.
//
// [render.Formatter]: github.com/matzehuels/labyrinth/pkg/render.Formatter
package nodelink
