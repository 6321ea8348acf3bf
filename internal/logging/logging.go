package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init installs the default slog logger on stderr. Only warnings and errors
// are shown unless verbose is set, which enables debug output.
func Init(verbose bool) {
	slog.SetDefault(newLogger(os.Stderr, verbose))
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
