package baseline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/durparse/internal/models"
)

const (
	// DefaultPath is used when --update-baseline is enabled without an explicit --baseline path.
	DefaultPath = ".durparse-baseline.json"
	fileVersion = 1
)

// Set stores baseline fingerprints.
type Set map[string]struct{}

// File is the persisted baseline JSON payload.
type File struct {
	Version      int      `json:"version"`
	Fingerprints []string `json:"fingerprints"`
}

// Load reads a baseline file. Missing files return an empty set.
func Load(path string) (Set, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("baseline path is empty")
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("read baseline file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse baseline file: %w", err)
	}
	if file.Version != 0 && file.Version != fileVersion {
		return nil, fmt.Errorf("unsupported baseline version: %d", file.Version)
	}

	set := Set{}
	AddAll(set, file.Fingerprints)
	return set, nil
}

// Save writes a baseline file with sorted, unique fingerprints.
func Save(path string, set Set) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return errors.New("baseline path is empty")
	}

	dir := filepath.Dir(trimmed)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create baseline directory: %w", err)
		}
	}

	payload := File{
		Version:      fileVersion,
		Fingerprints: Sorted(set),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline file: %w", err)
	}

	if err := os.WriteFile(trimmed, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write baseline file: %w", err)
	}

	return nil
}

// AddAll inserts fingerprints into the target set.
func AddAll(target Set, fingerprints []string) {
	for _, fingerprint := range fingerprints {
		if fingerprint == "" {
			continue
		}
		target[fingerprint] = struct{}{}
	}
}

// Sorted returns sorted fingerprints from a set.
func Sorted(set Set) []string {
	fingerprints := make([]string, 0, len(set))
	for fingerprint := range set {
		fingerprints = append(fingerprints, fingerprint)
	}
	sort.Strings(fingerprints)
	return fingerprints
}

// CountFindings returns the number of invalid entries in the report.
func CountFindings(report *models.Report) int {
	if report == nil {
		return 0
	}
	return len(report.Invalid())
}

// CollectFingerprints extracts fingerprints for all invalid entries in the report.
func CollectFingerprints(report *models.Report) []string {
	set := Set{}
	if report == nil {
		return []string{}
	}

	for _, result := range report.Invalid() {
		set[Fingerprint(result)] = struct{}{}
	}

	return Sorted(set)
}

// SuppressKnown drops invalid entries already present in the baseline set and
// refreshes the report summary.
func SuppressKnown(report *models.Report, known Set) (suppressed int, remaining int) {
	if report == nil || len(known) == 0 {
		return 0, CountFindings(report)
	}

	filtered := make([]models.Result, 0, len(report.Results))
	for _, result := range report.Results {
		if !result.Valid() {
			if _, exists := known[Fingerprint(result)]; exists {
				suppressed++
				continue
			}
		}
		filtered = append(filtered, result)
	}
	report.Results = filtered
	report.Summarize()

	return suppressed, CountFindings(report)
}

// Fingerprint returns a stable fingerprint for an invalid entry. Line numbers
// are left out so that inserting lines above a known entry keeps it suppressed.
func Fingerprint(result models.Result) string {
	if result.Error == nil {
		return hash("valid", result.Source, strings.TrimSpace(result.Input))
	}
	return hash(
		"invalid",
		result.Source,
		strings.TrimSpace(result.Input),
		result.Error.Kind,
		strconv.Itoa(result.Error.Offset),
	)
}

func hash(parts ...string) string {
	canonical := strings.Join(parts, "\x1f")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
