package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/durparse/internal/logging"
	"github.com/ppiankov/durparse/pkg/duration"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
	verbose bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNotFound   = 3
	ExitFindings   = 6
)

// FindingsError indicates the check completed but invalid entries were found.
type FindingsError struct {
	Count int
}

func (e *FindingsError) Error() string {
	return fmt.Sprintf("%d invalid durations detected", e.Count)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "durparse",
		Short: "Duration expression parser",
		Long: `durparse converts duration expressions such as "2d 4h 30m 20s"
into a total number of seconds.

Each term is a number followed by one of the suffixes d (days), h (hours),
m (minutes) or s (seconds). Decimals are allowed and every term is rounded
to the nearest second.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewParseCmd())
	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewServeCmd())
	root.AddCommand(NewVersionCmd())

	return root
}

func main() {
	logging.Init(false)

	if err := newRootCmd().Execute(); err != nil {
		exitCode := classifyError(err)
		var fe *FindingsError
		if errors.As(err, &fe) {
			slog.Info("findings detected", slog.Int("count", fe.Count))
			fmt.Fprintln(os.Stderr, fe.Error())
		} else {
			slog.Error("command failed", slog.String("error", err.Error()))
		}
		os.Exit(exitCode)
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var fe *FindingsError
	if errors.As(err, &fe) {
		return ExitFindings
	}

	if _, ok := duration.AsParseError(err); ok {
		return ExitInvalidArg
	}

	if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
		return ExitNotFound
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "not a directory") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") {
		return ExitNotFound
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "expected") ||
		strings.Contains(msg, "accepts") {
		return ExitInvalidArg
	}

	return ExitInternal
}
