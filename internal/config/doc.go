// Package config loads cinemaflow's TOML configuration file.
//
// # Overview
//
// The config file names the catalogue endpoint and supplies the built-in
// defaults that the settings store falls back to when the user's stored
// token or player domain is blank or invalid. Everything is optional; a
// missing file yields a fully working configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cinemaflow/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	api_base = "https://api.apbugall.org/"
//	api_token = "..."
//	player_domain = "https://player.example/"
//	default_category = "movie"
//	categories = ["movie", "serial", "cartoon", "anime"]
//	storage_path = "~/.config/cinemaflow/storage.toml"
//	log_path = "~/.local/state/cinemaflow/cinemaflow.log"
//	request_timeout = 0
//
// request_timeout is in seconds. Zero leaves the HTTP transport defaults in
// place, which is what the catalogue client expects.
//
// The default category is always part of Categories; it is prepended when the
// configured list does not contain it.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
package config
