package reporter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/pkg/config"
	"github.com/ppiankov/durparse/pkg/duration"
)

const (
	ruleNumberExpected = "durparse/NUMBER_EXPECTED"
	ruleSuffixMissing  = "durparse/SUFFIX_MISSING"
	ruleInvalidSuffix  = "durparse/INVALID_SUFFIX"

	ruleIndexNumberExpected = 0
	ruleIndexSuffixMissing  = 1
	ruleIndexInvalidSuffix  = 2

	sarifSchemaURI = "https://docs.oasis-open.org/sarif/sarif/v2.1.0/cs01/schemas/sarif-schema-2.1.0.json"
)

var semanticVersionPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool               `json:"tool"`
	Results           []sarifResult           `json:"results"`
	AutomationDetails *sarifAutomationDetails `json:"automationDetails,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifAutomationDetails struct {
	ID string `json:"id"`
}

type sarifDriver struct {
	Name            string       `json:"name"`
	Version         string       `json:"version,omitempty"`
	InformationURI  string       `json:"informationUri,omitempty"`
	ShortDesc       sarifMessage `json:"shortDescription"`
	FullDesc        sarifMessage `json:"fullDescription"`
	Rules           []sarifRule  `json:"rules"`
	SemanticVersion string       `json:"semanticVersion,omitempty"`
}

type sarifRule struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ShortDesc     sarifMessage `json:"shortDescription"`
	FullDesc      sarifMessage `json:"fullDescription"`
	DefaultConfig sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           *int              `json:"ruleIndex,omitempty"`
	Level               string            `json:"level,omitempty"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLocation   `json:"locations,omitempty"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
	Properties          map[string]any    `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// WriteSARIF writes SARIF 2.1.0 output to report.sarif.
func WriteSARIF(report *models.Report, cfg *config.Config) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reportVersion := report.Version
	if reportVersion == "" {
		reportVersion = report.Metadata.Version
	}

	output := sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchemaURI,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:            "durparse",
						Version:         reportVersion,
						SemanticVersion: normalizeSemanticVersion(reportVersion),
						InformationURI:  "https://github.com/ppiankov/durparse",
						ShortDesc: sarifMessage{
							Text: "Duration expression checker",
						},
						FullDesc: sarifMessage{
							Text: "Reports duration expressions such as \"2d 4h 30m\" that cannot be converted to seconds.",
						},
						Rules: []sarifRule{
							{
								ID:            ruleNumberExpected,
								Name:          "NUMBER_EXPECTED",
								ShortDesc:     sarifMessage{Text: "Number expected"},
								FullDesc:      sarifMessage{Text: "No numeric magnitude was found where a term must start."},
								DefaultConfig: sarifConfig{Level: "error"},
							},
							{
								ID:            ruleSuffixMissing,
								Name:          "SUFFIX_MISSING",
								ShortDesc:     sarifMessage{Text: "Unit suffix missing"},
								FullDesc:      sarifMessage{Text: "The expression ends with a number that has no d, h, m or s suffix."},
								DefaultConfig: sarifConfig{Level: "error"},
							},
							{
								ID:            ruleInvalidSuffix,
								Name:          "INVALID_SUFFIX",
								ShortDesc:     sarifMessage{Text: "Invalid unit suffix"},
								FullDesc:      sarifMessage{Text: "A number is followed by a character other than d, h, m or s."},
								DefaultConfig: sarifConfig{Level: "error"},
							},
						},
					},
				},
				Results: buildSARIFResults(report),
				AutomationDetails: &sarifAutomationDetails{
					ID: "durparse/check",
				},
			},
		},
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal SARIF: %w", err)
	}

	outputPath := filepath.Join(cfg.OutputDir, "report.sarif")
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report.sarif: %w", err)
	}

	return nil
}

func buildSARIFResults(report *models.Report) []sarifResult {
	results := make([]sarifResult, 0)
	if report == nil {
		return results
	}

	for _, result := range report.Invalid() {
		ruleID, ruleIndex := sarifRuleFor(result.Error.Kind)
		results = append(results, sarifResult{
			RuleID:    ruleID,
			RuleIndex: ruleIndexPtr(ruleIndex),
			Level:     "error",
			Message:   sarifMessage{Text: result.Error.Message},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: sarifURI(result.Source)},
						Region: &sarifRegion{
							StartLine:   result.Line,
							StartColumn: result.Error.Column,
						},
					},
				},
			},
			PartialFingerprints: map[string]string{
				"durparse/findingHash": hashFinding(result.Source, strings.TrimSpace(result.Input), result.Error.Kind),
			},
			Properties: map[string]any{
				"kind":   result.Error.Kind,
				"input":  result.Input,
				"offset": result.Error.Offset,
			},
		})
	}

	return results
}

func sarifRuleFor(kind string) (string, int) {
	switch kind {
	case duration.NumberExpected.String():
		return ruleNumberExpected, ruleIndexNumberExpected
	case duration.SuffixMissing.String():
		return ruleSuffixMissing, ruleIndexSuffixMissing
	default:
		return ruleInvalidSuffix, ruleIndexInvalidSuffix
	}
}

func sarifURI(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" || strings.HasPrefix(trimmed, "<") {
		return "stdin"
	}
	return filepath.ToSlash(trimmed)
}

func normalizeSemanticVersion(version string) string {
	normalized := strings.TrimSpace(strings.TrimPrefix(version, "v"))
	if semanticVersionPattern.MatchString(normalized) {
		return normalized
	}
	return ""
}

func hashFinding(parts ...string) string {
	canonical := strings.Join(parts, "\x1f")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func ruleIndexPtr(index int) *int {
	value := index
	return &value
}
