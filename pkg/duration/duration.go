// Package duration converts duration expressions such as "2d 4h 30m 20s" into
// a total number of seconds.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode"
)

// Seconds per supported unit.
const (
	Second int64 = 1
	Minute       = 60 * Second
	Hour         = 60 * Minute
	Day          = 24 * Hour
)

// Unit returns the number of seconds represented by a suffix character.
// Only d, h, m and s are recognized.
func Unit(suffix rune) (int64, bool) {
	switch suffix {
	case 'd':
		return Day, true
	case 'h':
		return Hour, true
	case 'm':
		return Minute, true
	case 's':
		return Second, true
	default:
		return 0, false
	}
}

// ParseToSeconds parses a duration expression into a total number of seconds.
//
// The expression is a sequence of numbers, each immediately followed by one of
// the suffixes d, h, m or s, separated by zero or more whitespace characters,
// e.g. "2h 30m" or "4.3h8m". Decimals are accepted; every term is rounded to
// the nearest second on its own before it is added to the total.
//
// On failure the returned error is a *ParseError carrying the character offset
// at which parsing stopped. No partial total is returned.
func ParseToSeconds(text string) (int64, error) {
	input := []rune(text)

	var total int64
	pos := skipSpace(input, 0)

	for {
		number, next, ok := scanNumber(input, pos)
		if !ok {
			return 0, newParseError(NumberExpected, pos, "Unable to parse number.")
		}
		pos = next

		if pos >= len(input) {
			return 0, newParseError(SuffixMissing, pos,
				fmt.Sprintf("Number '%s' must be followed by a suffix.", formatNumber(number)))
		}

		suffix := input[pos]
		unit, ok := Unit(suffix)
		if !ok {
			return 0, newParseError(InvalidSuffix, pos, fmt.Sprintf("Invalid suffix '%c'.", suffix))
		}
		total = AddSaturating(total, round(number*float64(unit)))

		pos = skipSpace(input, pos+1)
		if pos >= len(input) {
			return total, nil
		}
	}
}

// ParseDuration parses a duration expression into a time.Duration with
// whole-second precision.
func ParseDuration(text string) (time.Duration, error) {
	seconds, err := ParseToSeconds(text)
	if err != nil {
		return 0, err
	}
	if seconds > math.MaxInt64/int64(time.Second) || seconds < math.MinInt64/int64(time.Second) {
		return 0, fmt.Errorf("duration %q overflows time.Duration", text)
	}
	return time.Duration(seconds) * time.Second, nil
}

func skipSpace(input []rune, pos int) int {
	for pos < len(input) && isWhitespace(input[pos]) {
		pos++
	}
	return pos
}

// isWhitespace reports Unicode space, line and paragraph separators except the
// no-break spaces, plus the ASCII controls \t \n \v \f \r and U+001C..U+001F.
// NEL (U+0085) is not whitespace.
func isWhitespace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\t', '\n', '\v', '\f', '\r':
		return true
	}
	if r >= '\u001c' && r <= '\u001f' {
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// scanNumber reads the longest numeric literal starting at pos:
// an optional sign, digits with optional ',' grouping, and an optional '.'
// followed by more digits. It returns the value and the offset just past the
// literal.
func scanNumber(input []rune, pos int) (float64, int, bool) {
	i := pos
	literal := make([]byte, 0, 16)

	if i < len(input) && (input[i] == '-' || input[i] == '+') {
		literal = append(literal, byte(input[i]))
		i++
	}

	digits := 0
	for i < len(input) {
		switch {
		case isDigit(input[i]):
			literal = append(literal, byte(input[i]))
			digits++
			i++
			continue
		case input[i] == ',' && digits > 0 && i+1 < len(input) && isDigit(input[i+1]):
			// grouping separator
			i++
			continue
		}
		break
	}

	if i < len(input) && input[i] == '.' && (digits > 0 || (i+1 < len(input) && isDigit(input[i+1]))) {
		literal = append(literal, '.')
		i++
		for i < len(input) && isDigit(input[i]) {
			literal = append(literal, byte(input[i]))
			digits++
			i++
		}
	}

	if digits == 0 {
		return 0, pos, false
	}

	// Out-of-range literals come back as ±Inf and saturate when rounded.
	value, err := strconv.ParseFloat(string(literal), 64)
	if err != nil && !isRangeError(err) {
		return 0, pos, false
	}
	return value, i, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// round rounds half up, saturating at the int64 bounds.
// value+0.5 is not used since it rounds 0.49999999999999994 up.
func round(value float64) int64 {
	if math.IsNaN(value) {
		return 0
	}
	rounded := math.Floor(value)
	if value-rounded >= 0.5 {
		rounded++
	}
	if rounded >= math.MaxInt64 {
		return math.MaxInt64
	}
	if rounded <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(rounded)
}

// AddSaturating adds two second counts, clamping at the int64 bounds instead
// of wrapping.
func AddSaturating(a, b int64) int64 {
	sum := a + b
	if a > 0 && b > 0 && sum < 0 {
		return math.MaxInt64
	}
	if a < 0 && b < 0 && sum >= 0 {
		return math.MinInt64
	}
	return sum
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
