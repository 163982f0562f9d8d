// Package fuzzy compiles indexed documents into an in-memory searchable
// structure over three weighted fields: title, searchText and url.
//
// Patterns use a small extended syntax:
//
//	="phrase"   the whole phrase appears in a field
//	^term       a word in a field starts with term
//	'term       term appears anywhere in a field
//	text        approximate match of text (github.com/sahilm/fuzzy)
//
// Scores are distances: 0 is a perfect match and 1 is no match.
package fuzzy
