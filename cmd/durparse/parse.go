package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ppiankov/durparse/internal/evaluator"
	"github.com/ppiankov/durparse/pkg/duration"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	canonical bool
	human     bool
	sum       bool
}

// NewParseCmd creates the parse command
func NewParseCmd() *cobra.Command {
	opts := parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <duration>...",
		Short: "Convert duration expressions to seconds",
		Long: `Convert each duration expression to a total number of seconds and
print one result per line. Parsing stops at the first invalid expression.`,
		Example: `  durparse parse "2d 4h 30m 20s"
  durparse parse --canonical 1.5h 90m
  durparse parse --sum 2h 45m -- -15m`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.canonical, "canonical", false, "Also print the canonical d/h/m/s form")
	cmd.Flags().BoolVar(&opts.human, "human", false, "Also print a human-readable rendering")
	cmd.Flags().BoolVar(&opts.sum, "sum", false, "Print only the sum of all expressions")

	return cmd
}

// runParse converts every expression, failing on the first invalid one
func runParse(out io.Writer, errOut io.Writer, exprs []string, opts parseOptions) error {
	var total int64
	lines := make([]string, 0, len(exprs))

	for _, expr := range exprs {
		seconds, err := duration.ParseToSeconds(expr)
		if err != nil {
			if pe, ok := duration.AsParseError(err); ok {
				fmt.Fprintf(errOut, "%s\n%s\n", expr, duration.Caret(expr, pe.Offset))
			}
			return fmt.Errorf("invalid duration %q: %w", expr, err)
		}
		slog.Debug("parsed duration", slog.String("input", expr), slog.Int64("seconds", seconds))

		total = duration.AddSaturating(total, seconds)
		lines = append(lines, formatParseLine(seconds, opts))
	}

	if opts.sum {
		lines = []string{formatParseLine(total, opts)}
	}

	_, err := io.WriteString(out, strings.Join(lines, "\n")+"\n")
	return err
}

func formatParseLine(seconds int64, opts parseOptions) string {
	fields := []string{fmt.Sprintf("%d", seconds)}
	if opts.canonical {
		fields = append(fields, duration.Format(seconds))
	}
	if opts.human {
		fields = append(fields, evaluator.Humanize(seconds))
	}
	return strings.Join(fields, "\t")
}
