// Package domain holds the palette's vocabulary: the records browser sources
// deliver, the IndexedDocument every record is normalised into, the query
// plan and ScoredResult produced by search, session state, change signals
// and EngineSettings.
//
// It imports only the standard library. Every other package may import it.
package domain
