package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/durparse/internal/evaluator"
	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/pkg/config"
	"github.com/ppiankov/durparse/pkg/duration"
)

const (
	textANSIReset = "\x1b[0m"
	textANSIBold  = "\x1b[1m"
	textANSIRed   = "\x1b[31m"
)

// WriteText writes a human-readable text report to report.txt and stdout.
func WriteText(report *models.Report, cfg *config.Config) error {
	return writeText(report, cfg, os.Stdout)
}

func writeText(report *models.Report, cfg *config.Config, out io.Writer) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if out == nil {
		return fmt.Errorf("writer is nil")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rendered := renderTextReport(report, cfg.ShowHuman, supportsANSI(out))
	outputPath := filepath.Join(cfg.OutputDir, "report.txt")

	if err := os.WriteFile(outputPath, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write report.txt: %w", err)
	}

	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("failed to write text report to output: %w", err)
	}

	return nil
}

func renderTextReport(report *models.Report, showHuman bool, useANSI bool) string {
	var b strings.Builder

	generatedAt := strings.TrimSpace(report.Timestamp)
	if generatedAt == "" {
		if !report.Metadata.GeneratedAt.IsZero() {
			generatedAt = report.Metadata.GeneratedAt.UTC().Format(time.RFC3339)
		} else {
			generatedAt = "unknown"
		}
	}

	sources := "none"
	if len(report.Metadata.Sources) > 0 {
		sources = strings.Join(report.Metadata.Sources, ", ")
	}

	writeTextSectionHeader(&b, "Duration Check Report", useANSI)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt)
	fmt.Fprintf(&b, "Sources: %s\n", sources)
	b.WriteString("\n")

	summary := report.Summary
	writeTextSectionHeader(&b, "Summary", useANSI)
	fmt.Fprintf(&b, "Entries: %d\n", summary.Total)
	fmt.Fprintf(&b, "Valid: %d\n", summary.Valid)
	fmt.Fprintf(&b, "Invalid: %d\n", summary.Invalid)
	if report.Metadata.BaselineSuppressed > 0 {
		fmt.Fprintf(&b, "Suppressed by baseline: %d\n", report.Metadata.BaselineSuppressed)
	}
	total := fmt.Sprintf("Total: %d seconds (%s)", summary.TotalSeconds, duration.Format(summary.TotalSeconds))
	if showHuman {
		total += fmt.Sprintf(" = %s", evaluator.Humanize(summary.TotalSeconds))
	}
	b.WriteString(total + "\n")
	b.WriteString("\n")

	writeTextSectionHeader(&b, "Results", useANSI)
	if len(report.Results) == 0 {
		b.WriteString("No entries evaluated.\n")
	} else {
		b.WriteString("LOCATION                       SECONDS          CANONICAL\n")
		b.WriteString("--------------------------------------------------------------------------------\n")
		for _, result := range report.Results {
			location := truncateTextValue(fmt.Sprintf("%s:%d", result.Source, result.Line), 30)
			if !result.Valid() {
				status := "invalid"
				if useANSI {
					status = textANSIRed + status + textANSIReset
				}
				fmt.Fprintf(&b, "%-30s %-16s %s\n", location, "-", status)
				continue
			}
			fmt.Fprintf(&b, "%-30s %-16d %s\n", location, result.Seconds, result.Canonical)
		}
	}

	invalid := report.Invalid()
	if len(invalid) > 0 {
		b.WriteString("\n")
		writeTextSectionHeader(&b, "Invalid Entries", useANSI)
		for _, result := range invalid {
			fmt.Fprintf(&b, "%s:%d:%d: %s\n", result.Source, result.Line, result.Error.Column, result.Error.Message)
			fmt.Fprintf(&b, "  %s\n", result.Input)
			fmt.Fprintf(&b, "  %s\n", duration.Caret(result.Input, result.Error.Offset))
		}
	}

	return b.String()
}

func writeTextSectionHeader(b *strings.Builder, title string, useANSI bool) {
	header := title
	if useANSI {
		header = textANSIBold + title + textANSIReset
	}
	fmt.Fprintf(b, "%s\n", header)
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", len(title)))
}

func supportsANSI(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

func truncateTextValue(value string, width int) string {
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
