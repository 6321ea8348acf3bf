package config

import (
	"time"

	"github.com/ppiankov/durparse/pkg/duration"
)

// ParseDuration parses a duration flag or config value.
// Supports: d, h, m, s terms such as "1d 12h" or "2.5m", falling back to
// standard Go duration syntax for sub-second values like "500ms".
func ParseDuration(s string) (time.Duration, error) {
	d, err := duration.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	// Fall back to standard Go duration parsing
	if goDuration, goErr := time.ParseDuration(s); goErr == nil {
		return goDuration, nil
	}

	return 0, err
}
