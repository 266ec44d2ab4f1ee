// Package io reads and writes maze definitions in JSON and TOML.
//
// # Overview
//
// A definition describes a grid by its dimensions and the list of passages
// carved into it, plus optional render parameters. It is the input format of
// the CLI and the HTTP server, and the "json" output format of the pipeline.
// Writing a grid and reading it back yields an equal grid.
//
// # JSON Format
//
//	{
//	  "width": 4,
//	  "height": 4,
//	  "passages": [
//	    {"x": 0, "y": 0, "pole": "S"},
//	    {"x": 1, "y": 0, "pole": "E"}
//	  ],
//	  "render": {"wall": 20, "background": "#ffffff"}
//	}
//
// # TOML Format
//
//	width = 4
//	height = 4
//
//	[[passages]]
//	x = 0
//	y = 0
//	pole = "S"
//
//	[render]
//	wall = 20
//	background = "#ffffff"
//
// # Fields
//
// Required:
//   - width, height: grid dimensions, 1 to [errors.MaxGridSide]
//
// Optional:
//   - passages: carves applied in order; pole is N, E, S or W (or the full
//     word). Carving the same wall from either side is allowed.
//   - render: any of wall, passage, margin, background, foreground. Absent
//     keys keep the caller's values (see [RenderOverrides.Apply]).
//
// Every decoding or validation failure carries the INVALID_DEFINITION code.
//
// [errors.MaxGridSide]: github.com/matzehuels/labyrinth/pkg/errors.MaxGridSide
package io
