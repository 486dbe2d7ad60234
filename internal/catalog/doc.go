// Package catalog provides an HTTP client for the media catalogue API.
//
// # Overview
//
// The catalogue API answers every request with the same JSON envelope:
//
//	{"status": "success", "data": ..., "error_info": ...}
//
// The shape of data depends on the lookup: a list for category showcases, a
// bare object for a single match, and an id-keyed object for some searches.
// This package hides those differences behind a single ordered []Item.
//
// # Architecture
//
//   - url.go: query string construction (BuildURL) and http(s) URL checks
//   - client.go: the HTTP client, envelope decoding and error typing
//   - normalize.go: data payload to []Item, with mapping order preserved
//   - details.go: best-effort detail lookup by identifier priority
//   - types.go: Item and its lenient scalar and list field types
//
// # Client Usage
//
//	client, err := catalog.NewClient("https://api.example.org/")
//	if err != nil {
//		return fmt.Errorf("create catalogue client: %w", err)
//	}
//	items, err := client.List(ctx, token, "movie")
//
// The token is passed on every call rather than stored on the client, so a
// settings change takes effect on the next request.
//
// # Error Handling
//
// Fetch distinguishes three typed failures, all usable with errors.As:
//
//   - *TransportError: a non-2xx HTTP status
//   - *DecodeError: a body that is not JSON
//   - *ApplicationError: status other than "success"; carries error_info
//
// Lower level failures are wrapped, e.g. "execute request: dial tcp: ...".
// The token never appears in error messages or logs.
//
// # Ordering
//
// When data is an object, items follow the iteration order of the upstream
// web client: integer-like keys ascending, then other keys in document order.
// The same rule orders translation tracks.
//
// There are no retries and no caching.
package catalog
