// Package io reads and writes the JSON files the CLI works with.
//
// # Items
//
// An items file holds normalized collection entries, either as a bare array
// or wrapped in an object:
//
//	[{"gameId": 13, "versionId": 346745, "name": "CATAN",
//	  "dimensions": [{"type": "version", "length": 11.6, "width": 11.6, "depth": 2.9}]}]
//
//	{"username": "matze", "items": [...]}
//
// [ReadItems] accepts both; [WriteItems] writes the wrapped form, which is
// what `kallax fetch` produces.
//
// # Results
//
// A result file is a packing result in its wire shape, either
// {"status": "ok", "cubes": [...], ...} or
// {"status": "missing_versions", "games": [...]}. Use [ReadResult] and
// [WriteResult], or the path-based [ImportResult] and [ExportResult].
package io
