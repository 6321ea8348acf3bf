package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/pkg/config"
)

func TestEvaluateEntry(t *testing.T) {
	cases := []struct {
		name          string
		input         string
		wantSeconds   int64
		wantCanonical string
		wantKind      string
		wantOffset    int
	}{
		{name: "valid", input: "2d 4h 30m 20s", wantSeconds: 189020, wantCanonical: "2d 4h 30m 20s"},
		{name: "decimal", input: "1.5h", wantSeconds: 5400, wantCanonical: "1h 30m"},
		{name: "missing_suffix", input: "5", wantKind: "suffix_missing", wantOffset: 1},
		{name: "invalid_suffix", input: "2m 4z 6h", wantKind: "invalid_suffix", wantOffset: 4},
		{name: "empty", input: "", wantKind: "number_expected", wantOffset: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := EvaluateEntry(models.Entry{Source: "test", Line: 7, Input: tc.input}, false)
			if result.Source != "test" || result.Line != 7 || result.Input != tc.input {
				t.Fatalf("expected entry fields to be copied, got %+v", result)
			}

			if tc.wantKind == "" {
				if !result.Valid() {
					t.Fatalf("expected valid result, got %+v", result.Error)
				}
				if result.Seconds != tc.wantSeconds {
					t.Fatalf("expected %d seconds, got %d", tc.wantSeconds, result.Seconds)
				}
				if result.Canonical != tc.wantCanonical {
					t.Fatalf("expected canonical %q, got %q", tc.wantCanonical, result.Canonical)
				}
				if result.Human != "" {
					t.Fatalf("expected no human rendering, got %q", result.Human)
				}
				return
			}

			if result.Valid() {
				t.Fatalf("expected invalid result for %q", tc.input)
			}
			if result.Error.Kind != tc.wantKind {
				t.Fatalf("expected kind %q, got %q", tc.wantKind, result.Error.Kind)
			}
			if result.Error.Offset != tc.wantOffset || result.Error.Column != tc.wantOffset+1 {
				t.Fatalf("expected offset %d/column %d, got %d/%d", tc.wantOffset, tc.wantOffset+1, result.Error.Offset, result.Error.Column)
			}
			if result.Seconds != 0 || result.Canonical != "" {
				t.Fatalf("expected no partial total, got %+v", result)
			}
		})
	}
}

func TestEvaluateEntryHuman(t *testing.T) {
	result := EvaluateEntry(models.Entry{Input: "2d 4h"}, true)
	if !strings.Contains(result.Human, "2 days") || !strings.Contains(result.Human, "4 hours") {
		t.Fatalf("unexpected human rendering %q", result.Human)
	}
}

func TestHumanizeOutOfRangeFallsBack(t *testing.T) {
	seconds := int64(1 << 40)
	if got := Humanize(seconds); !strings.HasSuffix(got, "s") || !strings.Contains(got, "d") {
		t.Fatalf("expected canonical fallback, got %q", got)
	}
}

func TestIssueFromErrorUnknown(t *testing.T) {
	issue := IssueFromError(errors.New("boom"))
	if issue.Kind != "unknown" || issue.Message != "boom" {
		t.Fatalf("unexpected issue %+v", issue)
	}
	if IssueFromError(nil) != nil {
		t.Fatal("expected nil issue for nil error")
	}
}

func TestEvaluatePreservesOrder(t *testing.T) {
	entries := make([]models.Entry, 0, 200)
	for i := 0; i < 200; i++ {
		input := fmt.Sprintf("%dm", i)
		if i%10 == 0 {
			input = fmt.Sprintf("%dz", i)
		}
		entries = append(entries, models.Entry{Source: "bulk", Line: i + 1, Input: input})
	}

	cfg := config.DefaultConfig()
	cfg.Concurrency = 8
	cfg.ShowHuman = false

	results, err := New(cfg).Evaluate(context.Background(), entries)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(results) != len(entries) {
		t.Fatalf("expected %d results, got %d", len(entries), len(results))
	}

	for i, result := range results {
		if result.Line != i+1 {
			t.Fatalf("expected line %d at index %d, got %d", i+1, i, result.Line)
		}
		if i%10 == 0 {
			if result.Valid() {
				t.Fatalf("expected entry %d to be invalid", i)
			}
			continue
		}
		if result.Seconds != int64(i*60) {
			t.Fatalf("expected %d seconds at index %d, got %d", i*60, i, result.Seconds)
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	results, err := New(nil).Evaluate(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestEvaluateCanceledContext(t *testing.T) {
	entries := make([]models.Entry, 1000)
	for i := range entries {
		entries[i] = models.Entry{Line: i + 1, Input: "1s"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DefaultConfig()
	cfg.Concurrency = 1
	cfg.Timeout = 0

	_, err := New(cfg).Evaluate(ctx, entries)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWorkerPoolLifecycle(t *testing.T) {
	pool := NewWorkerPool(2, func(entry models.Entry) models.Result {
		return models.Result{Line: entry.Line}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)
	pool.Start(ctx) // Idempotent.

	if !pool.Submit(0, models.Entry{Line: 1}) || !pool.Submit(1, models.Entry{Line: 2}) {
		t.Fatal("expected submits to be accepted")
	}
	pool.Stop()

	var got []int
	for r := range pool.Results() {
		got = append(got, r.result.Line)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d (%v)", len(got), got)
	}
	if pool.started {
		t.Fatal("expected pool started=false after Stop")
	}
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	pool := NewWorkerPool(1, func(entry models.Entry) models.Result {
		if entry.Line == 1 {
			panic("bad entry")
		}
		return models.Result{Line: entry.Line}
	})

	pool.Start(context.Background())
	pool.Submit(0, models.Entry{Source: "test", Line: 1})
	pool.Submit(1, models.Entry{Source: "test", Line: 2})

	done := make(chan []int)
	go func() {
		var lines []int
		for r := range pool.Results() {
			lines = append(lines, r.result.Line)
		}
		done <- lines
	}()
	pool.Stop()

	select {
	case lines := <-done:
		if len(lines) != 1 || lines[0] != 2 {
			t.Fatalf("expected only line 2 to complete, got %v", lines)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for results")
	}

	var errs []error
	for err := range pool.Errors() {
		errs = append(errs, err)
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "test:1") {
		t.Fatalf("expected one panic error for test:1, got %v", errs)
	}
}

func TestWorkerPoolStopBeforeStartAndSubmitAfterCancel(t *testing.T) {
	pool := NewWorkerPool(0, func(entry models.Entry) models.Result { return models.Result{} })
	pool.Stop() // No-op path.
	if pool.workers != 1 {
		t.Fatalf("expected worker count to be clamped to 1, got %d", pool.workers)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	cancel()
	for i := 0; i < 10; i++ {
		pool.Submit(i, models.Entry{Line: i})
	}
	pool.Stop()

	for range pool.Results() {
	}
}
