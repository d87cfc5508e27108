package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init installs the process-wide slog logger writing to stderr.
// Verbose enables debug output; otherwise only warnings and errors are shown.
func Init(verbose bool) {
	slog.SetDefault(New(os.Stderr, verbose))
}

// New returns a text logger writing to w at the level implied by verbose.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
