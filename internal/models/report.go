package models

import (
	"time"

	"github.com/ppiankov/durparse/pkg/duration"
)

// Report is the complete output structure
type Report struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Metadata  Metadata `json:"metadata"`
	Results   []Result `json:"results"`
	Summary   Summary  `json:"summary"`
}

// Metadata contains report generation info
type Metadata struct {
	GeneratedAt        time.Time `json:"generated_at"`
	Sources            []string  `json:"sources"`
	EvaluationDuration string    `json:"evaluation_duration"`
	Version            string    `json:"version"`
	BaselineSuppressed int       `json:"baseline_suppressed"`
}

// Summary aggregates evaluation results
type Summary struct {
	Total        int   `json:"total"`
	Valid        int   `json:"valid"`
	Invalid      int   `json:"invalid"`
	TotalSeconds int64 `json:"total_seconds"`
}

// Invalid returns the results that failed to parse
func (r *Report) Invalid() []Result {
	if r == nil {
		return nil
	}
	invalid := make([]Result, 0)
	for _, result := range r.Results {
		if !result.Valid() {
			invalid = append(invalid, result)
		}
	}
	return invalid
}

// Summarize recomputes Summary from Results
func (r *Report) Summarize() {
	if r == nil {
		return
	}
	summary := Summary{Total: len(r.Results)}
	for _, result := range r.Results {
		if result.Valid() {
			summary.Valid++
			summary.TotalSeconds = duration.AddSaturating(summary.TotalSeconds, result.Seconds)
			continue
		}
		summary.Invalid++
	}
	r.Summary = summary
}
