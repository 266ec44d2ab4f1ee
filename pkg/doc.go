// Package pkg provides the core libraries for Labyrinth maze rendering.
//
// # Overview
//
// Labyrinth turns a rectangular grid of cells, with passages carved between
// neighbors, into pictures. The pkg directory is organized into three areas:
//
//  1. Model: [grid] (cells, poles, carving) and [io] (JSON and TOML definitions)
//  2. Rendering: [render/raster] (PNG), [render/text] (ASCII), [render/nodelink]
//     (Graphviz passage graphs)
//  3. Infrastructure: [pipeline], [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	maze.toml / maze.json
//	         ↓
//	    [io] package (decode + validate definition)
//	         ↓
//	    [grid] package (carved grid)
//	         ↓
//	    [pipeline] package (layer render options, cache lookup)
//	         ↓
//	    PNG / TXT / DOT / SVG / JSON
//
// # Quick Start
//
// Carve a maze and rasterize it:
//
//	g := grid.MustNew(4, 4)
//	_ = g.CarvePassage(grid.Coords{X: 0, Y: 0}, grid.South)
//	_ = g.CarvePassage(grid.Coords{X: 0, Y: 1}, grid.East)
//
//	data, err := raster.RenderPNG(g, raster.DefaultOptions())
//
// Or go through the pipeline to get caching and several formats at once:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "maze.toml",
//	    Formats: []string{"png", "txt"},
//	})
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test -run Example ./...  # Examples only
//
// Set LABYRINTH_TEST_REDIS_URL to run the Redis cache tests against a live
// server.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/grid
// [io]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/io
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/render/raster
// [render/text]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/render/text
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/buildinfo
package pkg
