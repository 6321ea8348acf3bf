package reporter

import (
	"time"

	"github.com/ppiankov/durparse/internal/models"
)

func sampleReport() *models.Report {
	report := &models.Report{
		Tool:      "durparse",
		Version:   "1.2.3",
		Timestamp: "2026-02-15T00:00:00Z",
		Metadata: models.Metadata{
			GeneratedAt:        time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			Sources:            []string{"durations.txt"},
			EvaluationDuration: "0s",
			Version:            "1.2.3",
		},
		Results: []models.Result{
			{Source: "durations.txt", Line: 1, Input: "2d 4h 30m 20s", Seconds: 189020, Canonical: "2d 4h 30m 20s"},
			{
				Source: "durations.txt",
				Line:   2,
				Input:  "2m 4z 6h",
				Error:  &models.Issue{Kind: "invalid_suffix", Message: "Invalid suffix 'z'.", Offset: 4, Column: 5},
			},
			{
				Source: "durations.txt",
				Line:   4,
				Input:  "5",
				Error:  &models.Issue{Kind: "suffix_missing", Message: "Number '5' must be followed by a suffix.", Offset: 1, Column: 2},
			},
		},
	}
	report.Summarize()
	return report
}
