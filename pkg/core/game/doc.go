// Package game defines the records the packing engine consumes.
//
// An [Item] is one physical version of a board game as it sits in a user's
// collection. Items carry the descriptive fields the sorter reads, the
// grouping links (base game, series families) the grouper reads, and an
// ordered list of [DimensionRecord] candidates from which the dimension
// resolver picks the box size.
//
// # Identity
//
// Items are identified by [Key], a comparable value type holding the BGG game
// id and version id. Use it directly as a map key. The "gameId:versionId"
// string form exists only at serialization boundaries:
//
//	k := game.Key{GameID: 174430, VersionID: 346745}
//	k.String()                        // "174430:346745"
//	k2, err := game.ParseKey("174430:346745")
//
// # Overrides
//
// [Overrides] is the wire form of per-item user overrides (excluded versions,
// forced orientations, replacement dimensions). [ParseOverrides] turns it into
// an [OverrideSet], silently dropping malformed entries.
package game
