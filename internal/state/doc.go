// Package state holds the view state shared by the TUI and its request
// commands.
//
// # Overview
//
// The Store keeps the current category, the listed items, the highlighted
// row, the last list error and the item shown in the detail view. Requests
// run as Bubble Tea commands outside the Update loop, so their results can
// arrive out of order.
//
// # Sequence Tokens
//
// Every request begins by taking a sequence number for its view:
//
//	seq := store.BeginList("movie")
//	// ... request runs in a tea.Cmd ...
//	if !store.ApplyList(seq, items, err) {
//		// a newer list request was started; this result is dropped
//	}
//
// The list view and the detail view count independently, so a slow detail
// fetch never discards a fresh list and vice versa. Closing the detail view
// also advances the detail sequence.
//
// # Error Semantics
//
// A failed list request clears the items and records the error, so the UI
// never shows a list that belongs to a previous category or query. The number
// of consecutive failures is kept for the header's offline hint.
//
// # Defensive Copying
//
// Snapshot returns a copy of the item slice and a wrapped copy of the error.
// Items themselves are plain values.
//
// The zero value is ready to use.
package state
