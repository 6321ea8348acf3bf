package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hako/durafmt"
	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/pkg/config"
	"github.com/ppiankov/durparse/pkg/duration"
)

// Evaluator interface for evaluating duration expressions in bulk
type Evaluator interface {
	Evaluate(ctx context.Context, entries []models.Entry) ([]models.Result, error)
}

// evaluator implements the Evaluator interface
type evaluator struct {
	config *config.Config
}

// New creates a new evaluator instance
func New(cfg *config.Config) Evaluator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &evaluator{config: cfg}
}

// Evaluate parses every entry concurrently and returns results in input order.
func (e *evaluator) Evaluate(ctx context.Context, entries []models.Entry) ([]models.Result, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	showHuman := e.config.ShowHuman
	pool := NewWorkerPool(e.config.Concurrency, func(entry models.Entry) models.Result {
		return EvaluateEntry(entry, showHuman)
	})
	pool.Start(ctx)

	results := make([]models.Result, len(entries))
	filled := make([]bool, len(entries))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range pool.Results() {
			results[r.index] = r.result
			filled[r.index] = true
		}
	}()

	for i, entry := range entries {
		if !pool.Submit(i, entry) {
			break
		}
	}
	pool.Stop()
	<-done

	var poolErrs []error
	for err := range pool.Errors() {
		poolErrs = append(poolErrs, err)
	}

	missing := 0
	for _, ok := range filled {
		if !ok {
			missing++
		}
	}
	if missing == 0 {
		return results, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted with %d of %d entries pending: %w", missing, len(entries), err)
	}
	if len(poolErrs) > 0 {
		return nil, fmt.Errorf("failed to evaluate %d entries: %w", missing, errors.Join(poolErrs...))
	}
	return nil, fmt.Errorf("failed to evaluate %d entries", missing)
}

// EvaluateEntry parses a single entry into a result.
func EvaluateEntry(entry models.Entry, showHuman bool) models.Result {
	result := models.Result{
		Source: entry.Source,
		Line:   entry.Line,
		Input:  entry.Input,
	}

	seconds, err := duration.ParseToSeconds(entry.Input)
	if err != nil {
		result.Error = IssueFromError(err)
		slog.Debug("entry rejected",
			slog.String("source", entry.Source),
			slog.Int("line", entry.Line),
			slog.String("error", err.Error()),
		)
		return result
	}

	result.Seconds = seconds
	result.Canonical = duration.Format(seconds)
	if showHuman {
		result.Human = Humanize(seconds)
	}
	return result
}

// IssueFromError converts a parse failure into a report issue.
func IssueFromError(err error) *models.Issue {
	if err == nil {
		return nil
	}
	pe, ok := duration.AsParseError(err)
	if !ok {
		return &models.Issue{Kind: "unknown", Message: err.Error()}
	}
	return &models.Issue{
		Kind:    pe.Kind.String(),
		Message: pe.Message,
		Offset:  pe.Offset,
		Column:  pe.Offset + 1,
	}
}

// Humanize renders seconds as words, e.g. "2 days 4 hours". Values outside
// the time.Duration range fall back to the canonical form.
func Humanize(seconds int64) string {
	limit := int64(math.MaxInt64 / int64(time.Second))
	if seconds > limit || seconds < -limit {
		return duration.Format(seconds)
	}
	return durafmt.Parse(time.Duration(seconds) * time.Second).String()
}
