// Package ui is the interactive viewer for a running tail, built on Bubble Tea.
//
// The Model never talks to the tailer directly. It re-reads a state.Store
// snapshot on every tick and renders:
//
//   - a one-line header with the path, run status, line count and last error
//   - a viewport over the recent lines kept by the store, highlighted by level
//   - a footer with key help, or the filter prompt while searching
//
// Follow mode keeps the viewport pinned to the newest line; scrolling up
// pauses it and G resumes. Theme and wrap changes are written to the prefs
// file immediately so the next session starts the same way.
//
// Run blocks until the user quits or the context is cancelled. The caller is
// responsible for stopping the tailer afterwards.
package ui
