package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(original)
	})

	cases := []struct {
		name    string
		verbose bool
		enabled []slog.Level
		muted   []slog.Level
	}{
		{
			name:    "quiet",
			enabled: []slog.Level{slog.LevelWarn, slog.LevelError},
			muted:   []slog.Level{slog.LevelDebug, slog.LevelInfo},
		},
		{
			name:    "verbose",
			verbose: true,
			enabled: []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			Init(tc.verbose)
			logger := slog.Default()
			for _, level := range tc.enabled {
				if !logger.Enabled(context.Background(), level) {
					t.Fatalf("expected %s to be enabled", level)
				}
			}
			for _, level := range tc.muted {
				if logger.Enabled(context.Background(), level) {
					t.Fatalf("expected %s to be disabled", level)
				}
			}
		})
	}
}

func TestVerboseLoggerWritesDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, true).Debug("parsed duration", slog.String("input", "2h 30m"), slog.Int64("seconds", 9000))

	out := buf.String()
	for _, want := range []string{"level=DEBUG", `msg="parsed duration"`, `input="2h 30m"`, "seconds=9000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output, got %q", want, out)
		}
	}

	buf.Reset()
	newLogger(&buf, false).Debug("parsed duration", slog.String("input", "2h 30m"))
	if buf.Len() != 0 {
		t.Fatalf("expected debug record to be dropped when not verbose, got %q", buf.String())
	}
}
