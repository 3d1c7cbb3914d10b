// Package config loads packing profiles and server settings.
//
// A profile is a saved packing configuration in TOML, YAML or JSON, chosen by
// file extension. Fields absent from the file keep their defaults from
// [pack.DefaultConfig]:
//
//	# kallax.toml
//	stacking = "horizontal"
//	groupExpansions = true
//	backfillPercentage = 40
//
//	[statuses]
//	own = "include"
//	fortrade = "exclude"
//
//	[[sort]]
//	field = "weight"
//	order = "desc"
//
// Server settings come from the environment (KALLAX_*), optionally seeded
// from .env files; see [Server].
package config
