package duration

import (
	"strconv"
	"strings"
)

var formatUnits = []struct {
	suffix  byte
	seconds uint64
}{
	{'d', uint64(Day)},
	{'h', uint64(Hour)},
	{'m', uint64(Minute)},
	{'s', uint64(Second)},
}

// Format renders seconds in the canonical form accepted by ParseToSeconds,
// e.g. 187820 becomes "2d 4h 10m 20s". Zero renders as "0s". Negative values
// sign every term so the result parses back to the same total.
func Format(seconds int64) string {
	if seconds == 0 {
		return "0s"
	}

	sign := ""
	magnitude := uint64(seconds)
	if seconds < 0 {
		sign = "-"
		magnitude = uint64(-(seconds + 1)) + 1
	}

	terms := make([]string, 0, len(formatUnits))
	for _, unit := range formatUnits {
		count := magnitude / unit.seconds
		if count == 0 {
			continue
		}
		magnitude -= count * unit.seconds
		terms = append(terms, sign+strconv.FormatUint(count, 10)+string(unit.suffix))
	}
	return strings.Join(terms, " ")
}

// Caret returns a marker line that points at the character offset of input
// when printed underneath it. Tabs before the offset are kept so the marker
// lines up in a terminal.
func Caret(input string, offset int) string {
	var b strings.Builder
	i := 0
	for _, r := range input {
		if i >= offset {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < offset; i++ {
		b.WriteRune(' ')
	}
	b.WriteRune('^')
	return b.String()
}
