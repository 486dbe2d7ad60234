// Package logtail reads the tail of the application log for the TUI log view.
//
// Read returns the last N lines of a file using a ring buffer, so memory use
// is bounded by N rather than by the file size. A missing file is not an
// error: the log is created lazily on first write.
//
// Parse splits a line written by log/slog's text handler into time, level,
// message and trailing attributes. Quoted values are unquoted. Lines that
// carry no level (panics, output from other tools) come back as a plain
// message so the view can still show them.
package logtail
