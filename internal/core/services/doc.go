// Package services holds the palette engine: the index builder, the query
// planner and ranker, search with deduplication and suggestions, debounced
// query sessions, and the freshness controller that keeps the index current.
//
// Services talk to the browser and the filesystem only through driven ports,
// and expose themselves to the CLI, TUI and MCP adapters through driving ports.
package services
