// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - IndexCompiler: Compiles documents into a searchable CompiledIndex
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TabSource, BookmarkSource, HistorySource: browser data. A nil source
//     contributes zero documents.
//   - SignalSource: change notifications. Without it only the interval
//     rebuild keeps the index fresh.
//   - SuggestionSource: remote query suggestions. Without it results are local only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
