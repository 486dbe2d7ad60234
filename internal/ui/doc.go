// Package ui provides the terminal user interface for cinemaflow.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns all view state and is the only
// code that touches presentation; catalogue requests, player resolution and
// settings persistence live in their own packages and are reached through
// small interfaces (catalog.Catalog, SettingsStore).
//
// # Package Structure
//
//   - app.go: Model, Update/View, global key handling, messages and commands
//   - header.go: status header and command bar
//   - results.go: results table and column layout
//   - detail.go: detail viewport, translation selector and player overlay
//   - logs.go: tail of the application log
//   - modal.go: search and settings dialogs
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go, style_helpers.go, strings.go: palettes and rendering helpers
//
// # Views
//
//   - Results: the current category or search, one row per title
//   - Detail: the full record of one title, fetched best-effort
//   - Logs: the last lines of the rotating log file
//
// # Event Flow
//
//  1. Init starts the first list request as a tea.Cmd.
//  2. Each request is tagged with a sequence number from state.Store.
//  3. Result messages are applied only if no newer request for the same view
//     was started; stale responses are dropped.
//  4. Context cancellation stops the program.
package ui
