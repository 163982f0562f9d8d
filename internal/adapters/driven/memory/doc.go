// Package memory provides in-memory implementations of the driven ports.
// They back tests and the demo data set, and let the engine run without a
// browser.
package memory
