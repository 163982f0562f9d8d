// Package driving defines what the palette offers its front ends: one-shot
// search, debounced query sessions, settings, and background freshness.
//
// The CLI, TUI, MCP and HTTP adapters depend on these interfaces only;
// internal/core/services implements them.
package driving
