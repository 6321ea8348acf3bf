package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestResultJSONTags(t *testing.T) {
	cases := []struct {
		name        string
		result      Result
		mustContain []string
		mustAbsent  []string
	}{
		{
			name: "valid_result_omits_error",
			result: Result{
				Source:    "durations.txt",
				Line:      3,
				Input:     "2d 4h",
				Seconds:   187200,
				Canonical: "2d 4h",
			},
			mustContain: []string{"\"source\"", "\"line\"", "\"seconds\"", "\"canonical\""},
			mustAbsent:  []string{"\"error\"", "\"human\""},
		},
		{
			name: "invalid_result_includes_error",
			result: Result{
				Source: "durations.txt",
				Line:   4,
				Input:  "2m 4z",
				Error:  &Issue{Kind: "invalid_suffix", Message: "Invalid suffix 'z'.", Offset: 4, Column: 5},
			},
			mustContain: []string{"\"error\"", "\"kind\"", "\"offset\"", "\"column\""},
			mustAbsent:  []string{"\"canonical\""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := json.Marshal(tc.result)
			if err != nil {
				t.Fatalf("failed to marshal result: %v", err)
			}
			encoded := string(payload)
			for _, key := range tc.mustContain {
				if !strings.Contains(encoded, key) {
					t.Fatalf("expected %s in %s", key, encoded)
				}
			}
			for _, key := range tc.mustAbsent {
				if strings.Contains(encoded, key) {
					t.Fatalf("did not expect %s in %s", key, encoded)
				}
			}
		})
	}
}

func TestReportSummarize(t *testing.T) {
	report := &Report{
		Results: []Result{
			{Input: "2d", Seconds: 172800},
			{Input: "30m", Seconds: 1800},
			{Input: "5", Error: &Issue{Kind: "suffix_missing", Offset: 1, Column: 2}},
		},
	}

	report.Summarize()

	if report.Summary.Total != 3 {
		t.Fatalf("expected total 3, got %d", report.Summary.Total)
	}
	if report.Summary.Valid != 2 {
		t.Fatalf("expected 2 valid, got %d", report.Summary.Valid)
	}
	if report.Summary.Invalid != 1 {
		t.Fatalf("expected 1 invalid, got %d", report.Summary.Invalid)
	}
	if report.Summary.TotalSeconds != 174600 {
		t.Fatalf("expected total seconds 174600, got %d", report.Summary.TotalSeconds)
	}

	invalid := report.Invalid()
	if len(invalid) != 1 || invalid[0].Input != "5" {
		t.Fatalf("unexpected invalid results: %+v", invalid)
	}
}

func TestReportSummarizeSaturates(t *testing.T) {
	report := &Report{
		Results: []Result{
			{Input: "99999999999999999999d", Seconds: math.MaxInt64},
			{Input: "1s", Seconds: 1},
		},
	}

	report.Summarize()

	if report.Summary.TotalSeconds != math.MaxInt64 {
		t.Fatalf("expected total seconds to saturate at %d, got %d", int64(math.MaxInt64), report.Summary.TotalSeconds)
	}
}

func TestReportNilSafe(t *testing.T) {
	var report *Report
	report.Summarize()
	if got := report.Invalid(); got != nil {
		t.Fatalf("expected nil invalid list, got %v", got)
	}
}
