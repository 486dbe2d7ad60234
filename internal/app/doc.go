// Package app is the composition root for cinemaflow.
//
// # Overview
//
// Bootstrap turns a config path into the dependencies every entry point
// needs; Run adds the view state and preferences and starts the TUI. The CLI
// subcommands call Bootstrap directly and skip the UI.
//
// # Wiring
//
//	┌──────────────┐
//	│ Bootstrap()  │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/cinemaflow/config.toml
//	       ├─────> logging.Setup()      Rotating log file
//	       ├─────> kvstore.FileStore    Settings storage (MemoryStore if ephemeral)
//	       ├─────> settings.New()       Defaults taken from the config
//	       └─────> catalog.NewClient()  HTTP client with the configured timeout
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> prefs.Load()         Theme and last category
//	       ├─────> state.Store{}        View state with per-view sequences
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Error Handling
//
// Only startup problems are fatal: an unparsable config, an unusable log
// path or an invalid api_base. Request failures are handled inside the UI.
package app
