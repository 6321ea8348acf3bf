package duration

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a duration expression was rejected.
type ErrorKind int

const (
	// NumberExpected means no numeric literal was found at the cursor.
	NumberExpected ErrorKind = iota + 1
	// SuffixMissing means the input ended right after a number.
	SuffixMissing
	// InvalidSuffix means the character after a number is not d, h, m or s.
	InvalidSuffix
)

// Sentinel errors matched by errors.Is against a *ParseError.
var (
	ErrNumberExpected = errors.New("number expected")
	ErrSuffixMissing  = errors.New("suffix missing")
	ErrInvalidSuffix  = errors.New("invalid suffix")
)

// String returns the snake_case name used in reports.
func (k ErrorKind) String() string {
	switch k {
	case NumberExpected:
		return "number_expected"
	case SuffixMissing:
		return "suffix_missing"
	case InvalidSuffix:
		return "invalid_suffix"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case NumberExpected:
		return ErrNumberExpected
	case SuffixMissing:
		return ErrSuffixMissing
	case InvalidSuffix:
		return ErrInvalidSuffix
	default:
		return nil
	}
}

// ParseError reports where and why a duration expression failed to parse.
type ParseError struct {
	Kind    ErrorKind
	Message string
	// Offset is the character (not byte) offset of the failure.
	Offset int
}

func newParseError(kind ErrorKind, offset int, message string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: message,
		Offset:  offset,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("position %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

// AsParseError extracts a *ParseError from an error chain.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
