// Package logtail provides small building blocks for reading and displaying
// log lines.
//
// # Ring
//
// Ring is a fixed-size circular buffer of lines. The tailer uses it to keep
// the last N lines of existing content when starting from the end of a file,
// and the state store uses it to bound the lines kept for the viewer:
//
//	ring := logtail.NewRing(400)
//	ring.Push("first")
//	ring.Push("second")
//	lines := ring.Lines() // oldest first
//
// # Highlighting
//
// Highlighter applies lipgloss styles to the timestamp and level of lines in
// the common "2024-10-10 14:32:15 INFO message" shape. Lines in any other
// shape are rendered with the Text style rather than rejected. Level returns
// the first level token of a line; the state store uses it to count warning
// and error lines.
package logtail
