// Package pack arranges board game boxes into Kallax cubes.
//
// [Pack] is the engine entry point. It takes normalized items and a [Config]
// and returns a [Result]: either the filled cubes with oversized items and
// [Stats], or, when some items have no selected BGG version and the caller
// has not bypassed the check, the list of those items.
//
// # Placement
//
// Items are placed greedily, one at a time, in sort order. With
// Config.OptimizeSpace set the sort rules and grouping hints are ignored:
// items go largest cross-section first into the best-fitting cube of all
// open cubes. Otherwise each item may only go into the most recently opened
// cubes (the backfill window); among those that fit, a cube already holding
// the item's cluster wins, then the tightest fit, then the lowest id.
//
// How a cube fills depends on the stacking mode. Upright boxes stand side by
// side across the opening. Flat boxes lie in piles: a box joins the lowest
// row with room left, and the rows stack up the opening.
//
// The engine is pure: no I/O, no logging and no shared state. Callers that
// want feedback on long runs pass Options.Progress.
package pack
