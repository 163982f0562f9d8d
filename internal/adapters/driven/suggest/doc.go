// Package suggest fetches query completions from a Google-compatible
// suggestion endpoint (client=firefox), which answers with
// [query, [suggestion, ...]].
package suggest
