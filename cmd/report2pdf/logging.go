package main

import (
	"io"
	"log/slog"
)

// newLogger returns the diagnostics logger for a command. Diagnostics go to
// w (stderr) as text; user-facing results are printed separately.
//   - quiet:   errors only
//   - verbose: debug and above
//   - default: warnings and above for batch renders, info for the server
func newLogger(w io.Writer, quiet, verbose bool, base slog.Level) *slog.Logger {
	lvl := base
	switch {
	case quiet:
		lvl = slog.LevelError
	case verbose:
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
