package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ppiankov/durparse/internal/baseline"
	"github.com/ppiankov/durparse/internal/evaluator"
	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/internal/reporter"
	"github.com/ppiankov/durparse/pkg/config"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	var configPath string
	var timeoutStr string

	cmd := &cobra.Command{
		Use:     "check [file...]",
		Aliases: []string{"lint"},
		Short:   "Validate duration expressions, one per line",
		Long: `Read duration expressions from files (or stdin when no file or "-" is
given), one per line, and report every line that cannot be converted to
seconds. Blank lines and lines starting with '#' are ignored.

Settings are read from .durparse.yaml in the current or home directory
unless --config is given. Flags override file values.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var fileCfg *config.FileConfig
			var loadedPath string
			var err error

			if configPath != "" {
				fileCfg, err = config.LoadFile(configPath)
				loadedPath = configPath
			} else {
				fileCfg, loadedPath, err = config.AutoLoadFile()
			}
			if err != nil {
				return err
			}
			if fileCfg != nil {
				slog.Debug("loaded config file", slog.String("path", loadedPath))
				if err := cfg.ApplyFile(fileCfg, cmd.Flags().Changed); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("timeout") {
				cfg.Timeout, err = config.ParseDuration(timeoutStr)
				if err != nil {
					return fmt.Errorf("invalid --timeout duration: %w", err)
				}
			}

			if cfg.UpdateBaseline && cfg.BaselinePath == "" {
				cfg.BaselinePath = baseline.DefaultPath
			}
			cfg.Verbose = verbose

			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cfg, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: .durparse.yaml)")

	// Evaluation flags
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Worker pool size")
	cmd.Flags().StringVar(&timeoutStr, "timeout", "30s", "Time budget for the whole check (e.g., 30s, 2m)")

	// Output flags
	cmd.Flags().StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "Output format (text, json, sarif)")
	cmd.Flags().BoolVar(&cfg.ShowHuman, "human", cfg.ShowHuman, "Include human-readable durations")

	// Baseline flags
	cmd.Flags().StringVar(&cfg.BaselinePath, "baseline", "", "Baseline file of known invalid entries to suppress")
	cmd.Flags().BoolVar(&cfg.UpdateBaseline, "update-baseline", false, "Write current invalid entries to the baseline file")

	// Operational flags
	cmd.Flags().BoolVar(&cfg.FailOnInvalid, "fail-on-invalid", cfg.FailOnInvalid, "Exit with code 6 when invalid entries remain")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Dry run mode (don't write output)")

	return cmd
}

// runCheck executes the check workflow
func runCheck(ctx context.Context, cfg *config.Config, paths []string, stdin io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	// 1. Read entries
	entries, err := evaluator.ReadSources(paths, stdin)
	if err != nil {
		return err
	}
	slog.Debug("entries read", slog.Int("count", len(entries)))

	// 2. Evaluate
	results, err := evaluator.New(cfg).Evaluate(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to evaluate entries: %w", err)
	}

	// 3. Build report
	report := buildReport(entries, results, startTime)

	// 4. Apply or update baseline
	if cfg.BaselinePath != "" {
		if cfg.UpdateBaseline && cfg.DryRun {
			slog.Info("dry run, baseline not updated", slog.String("path", cfg.BaselinePath))
		} else if cfg.UpdateBaseline {
			set := baseline.Set{}
			baseline.AddAll(set, baseline.CollectFingerprints(report))
			if err := baseline.Save(cfg.BaselinePath, set); err != nil {
				return fmt.Errorf("failed to update baseline: %w", err)
			}
			fmt.Fprintf(out, "✓ Baseline updated with %d entries: %s\n", len(set), cfg.BaselinePath)
		} else {
			known, err := baseline.Load(cfg.BaselinePath)
			if err != nil {
				return fmt.Errorf("failed to load baseline: %w", err)
			}
			suppressed, remaining := baseline.SuppressKnown(report, known)
			report.Metadata.BaselineSuppressed = suppressed
			slog.Debug("baseline applied",
				slog.Int("suppressed", suppressed),
				slog.Int("remaining", remaining),
			)
		}
	}

	// 5. Write output
	if !cfg.DryRun {
		if err := reporter.NewWithWriter(cfg, out).Generate(report); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		if cfg.Format != config.FormatText {
			fmt.Fprintf(out, "✓ Evaluated %d entries (%d invalid), report written to: %s\n",
				report.Summary.Total, report.Summary.Invalid, cfg.OutputDir)
		}
	} else {
		fmt.Fprintf(out, "Dry run: evaluated %d entries (%d invalid), skipping output\n",
			report.Summary.Total, report.Summary.Invalid)
	}

	if cfg.FailOnInvalid && !cfg.UpdateBaseline && report.Summary.Invalid > 0 {
		return &FindingsError{Count: report.Summary.Invalid}
	}
	return nil
}

// buildReport constructs the final report
func buildReport(entries []models.Entry, results []models.Result, startTime time.Time) *models.Report {
	generatedAt := time.Now().UTC()

	seen := make(map[string]struct{})
	sources := make([]string, 0)
	for _, entry := range entries {
		if _, ok := seen[entry.Source]; ok {
			continue
		}
		seen[entry.Source] = struct{}{}
		sources = append(sources, entry.Source)
	}

	report := &models.Report{
		Tool:      "durparse",
		Version:   version,
		Timestamp: generatedAt.Format(time.RFC3339),
		Metadata: models.Metadata{
			GeneratedAt:        generatedAt,
			Sources:            sources,
			EvaluationDuration: time.Since(startTime).Round(time.Millisecond).String(),
			Version:            version,
		},
		Results: results,
	}
	report.Summarize()
	return report
}
