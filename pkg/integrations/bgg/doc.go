// Package bgg fetches board game collections from the BoardGameGeek XML API
// and normalizes them into [game.Item] values.
//
// Two endpoints are used. The collection endpoint lists what a user owns,
// wants or played, with the version they picked where they picked one. The
// thing endpoint adds the game metadata the sorter and grouper read, plus
// every published version with its box size, from which a guessed size is
// taken when the user picked no version.
//
//	client := bgg.NewClient(backend, cache.TTLHTTP, token)
//	items, err := client.FetchItems(ctx, "matze", false)
//
// BGG answers 202 while it prepares a large collection; the client retries
// those replies with backoff. Thing requests are batched and fetched
// concurrently.
//
// [game.Item]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/core/game#Item
package bgg
