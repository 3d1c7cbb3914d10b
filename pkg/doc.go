// Package pkg provides the libraries behind kallax, which packs a
// BoardGameGeek collection into IKEA Kallax cubes.
//
// # Overview
//
// The pkg directory is organized into four main areas:
//
//  1. [core] - Domain logic (items, dimensions, grouping, sorting, packing)
//  2. [integrations] - The BoardGameGeek XML API client
//  3. [pipeline] - Orchestration (fetch → pack → render) with caching
//  4. [render] - Output formats (JSON, SVG, PDF, XLSX, labels)
//
// Supporting packages: [cache] (file, Redis, null), [storage] (latest
// results in memory or MongoDB), [config] (profiles and server settings),
// [io] (items and result files), [errors] (coded errors) and
// [observability] (hooks).
//
// # Architecture
//
// The typical data flow:
//
//	BGG collection or items file
//	         ↓
//	    [integrations/bgg] package (fetch + normalize)
//	         ↓
//	    [pipeline] package (status and expansion filter)
//	         ↓
//	    [core/pack] package (size, orient, group, sort, place)
//	         ↓
//	    [render] package
//	         ↓
//	    JSON/SVG/PDF/XLSX/labels output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, bgg.NewClient(nil, cache.TTLHTTP, token), nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Username: "alice",
//	    Config:   pack.DefaultConfig(),
//	    Formats:  []string{render.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	if result.Packing.Halted() {
//	    // ask the user, then rerun with Config.BypassVersionWarning
//	}
//
// [core]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/core
// [integrations]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/integrations
// [integrations/bgg]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/integrations/bgg
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/storage
// [config]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/observability
// [core/pack]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/core/pack
package pkg
