package textcodec

import (
	"math"
	"strconv"
	"strings"
)

// parsePrefix reads the longest leading real number of text, the way strtod
// does. Leading white space is skipped; anything else yields 0.
func parsePrefix(text string) float64 {
	s := strings.TrimLeft(text, " \t\n\v\f\r")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if v, ok := parseSpecial(s[i:]); ok {
		if i > 0 && s[0] == '-' {
			return -v
		}
		return v
	}
	mantissa := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - mantissa
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// Out of range values still carry the saturated result.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return 0
	}
	return v
}

func parseSpecial(s string) (float64, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "inf"):
		return math.Inf(1), true
	case strings.HasPrefix(lower, "nan"):
		return math.NaN(), true
	}
	return 0, false
}

// scanTime reads a time of day out of text, locating each field at the offset
// its token has in pattern. The most specific token group wins.
func scanTime(pattern, text string) float64 {
	var hour, minute, sec uint64
	switch {
	case scanAt(pattern, text, []string{"%X", "%H:%M:%S"}, &hour, &minute, &sec):
	case scanAt(pattern, text, []string{"%R", "%H:%M"}, &hour, &minute):
	case scanAt(pattern, text, []string{"%M:%S"}, &minute, &sec):
	default:
		scanAt(pattern, text, []string{"%S"}, &sec)
		scanAt(pattern, text, []string{"%M"}, &minute)
		scanAt(pattern, text, []string{"%H"}, &hour)
	}
	return float64(hour*3600 + minute*60 + sec)
}

// scanAt finds the first of tokens in pattern and scans colon separated
// unsigned fields from the matching offset of text. It reports whether a
// token was found, even when the offset lies beyond the text.
func scanAt(pattern, text string, tokens []string, fields ...*uint64) bool {
	pos := -1
	for _, tok := range tokens {
		if pos = strings.Index(pattern, tok); pos >= 0 {
			break
		}
	}
	if pos < 0 {
		return false
	}
	if pos < len(text) {
		scanFields(text[pos:], fields)
	}
	return true
}

// scanFields parses "a:b:c" into fields, stopping at the first field that
// does not parse. Fields already read keep their values.
func scanFields(s string, fields []*uint64) {
	for n, f := range fields {
		if n > 0 {
			if !strings.HasPrefix(s, ":") {
				return
			}
			s = s[1:]
		}
		s = strings.TrimLeft(s, " \t\n\v\f\r")
		i := 0
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == 0 {
			return
		}
		v, err := strconv.ParseUint(s[:i], 10, 32)
		if err != nil {
			return
		}
		*f = v
		s = s[i:]
	}
}
