// Package file persists palette settings as a TOML document on disk.
//
// Keys use dot notation ("freshness.interval") and map onto nested tables,
// so config.toml stays hand-editable:
//
//	[caps]
//	history = 2
//
//	[freshness]
//	interval = "5m"
package file
