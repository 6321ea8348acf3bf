package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/pkg/config"
)

// Reporter interface for generating reports
type Reporter interface {
	Generate(report *models.Report) error
}

// reporter implements the Reporter interface
type reporter struct {
	config *config.Config
	out    io.Writer
}

// New creates a new reporter instance that echoes text reports to stdout
func New(cfg *config.Config) Reporter {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a reporter that echoes text reports to out
func NewWithWriter(cfg *config.Config, out io.Writer) Reporter {
	return &reporter{
		config: cfg,
		out:    out,
	}
}

// Generate writes the report in the configured format
func (r *reporter) Generate(report *models.Report) error {
	if r.config == nil {
		return fmt.Errorf("config is nil")
	}

	switch r.config.Format {
	case config.FormatJSON:
		return WriteJSON(report, r.config)
	case config.FormatSARIF:
		return WriteSARIF(report, r.config)
	case config.FormatText, "":
		return writeText(report, r.config, r.out)
	default:
		return fmt.Errorf("invalid --format value %q", r.config.Format)
	}
}
