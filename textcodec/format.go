// Package textcodec converts between free-form text and real numbers.
//
// Parsing and rendering never fail: malformed patterns and unparsable text
// degrade to 0 and "" respectively.
package textcodec

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/lestrrat-go/strftime"
)

// BufferSize bounds every rendered string, terminator included.
const BufferSize = 256

// Type selects how a Format parses and renders.
type Type int

const (
	TypeDecimals Type = iota
	TypePrintf
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeDecimals:
		return "decimals"
	case TypePrintf:
		return "printf"
	case TypeTime:
		return "time"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, bool) {
	for _, t := range []Type{TypeDecimals, TypePrintf, TypeTime} {
		if t.String() == s {
			return t, true
		}
	}
	return TypeDecimals, false
}

// MarshalYAML writes the type by name.
func (t Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML reads a type name. An empty name means decimals.
func (t *Type) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*t = TypeDecimals
		return nil
	}
	parsed, ok := ParseType(s)
	if !ok {
		return fmt.Errorf("unknown format type %q", s)
	}
	*t = parsed
	return nil
}

// Format is a rule set for text to number conversion.
type Format struct {
	Type     Type   `yaml:"type"`
	Pattern  string `yaml:"pattern,omitempty"`
	Decimals int    `yaml:"decimals,omitempty"`
}

// Decimals renders with n fractional digits. A negative n floors to a
// multiple of 10^-n instead.
func Decimals(n int) Format {
	return Format{Type: TypeDecimals, Decimals: n}
}

// Printf uses pattern as a single real conversion format.
func Printf(pattern string) Format {
	if pattern == "" {
		pattern = "%f"
	}
	return Format{Type: TypePrintf, Pattern: pattern}
}

// Time treats values as seconds and uses a strftime pattern.
func Time(pattern string) Format {
	if pattern == "" {
		pattern = "%X"
	}
	return Format{Type: TypeTime, Pattern: pattern}
}

// Normalize fills in the default pattern for the format type.
func (f Format) Normalize() Format {
	switch f.Type {
	case TypePrintf:
		return Printf(f.Pattern)
	case TypeTime:
		return Time(f.Pattern)
	}
	return f
}

// Parse extracts a real number from text.
func (f Format) Parse(text string) float64 {
	f = f.Normalize()
	switch f.Type {
	case TypePrintf:
		return scanPrintf(f.Pattern, text)
	case TypeTime:
		return scanTime(f.Pattern, text)
	}
	return parsePrefix(text)
}

// Render formats value as text.
func (f Format) Render(value float64) string {
	f = f.Normalize()
	var s string
	switch f.Type {
	case TypePrintf:
		s = renderPrintf(f.Pattern, value)
	case TypeTime:
		s = renderTime(f.Pattern, value)
	default:
		s = renderDecimals(f.Decimals, value)
	}
	return truncate(s, BufferSize-1)
}

func renderDecimals(decimals int, value float64) string {
	if decimals >= 0 {
		return strconv.FormatFloat(value, 'f', decimals, 64)
	}
	factor := math.Pow(10, float64(-decimals))
	value = math.Floor(value/factor) * factor
	return strconv.FormatFloat(value, 'f', 0, 64)
}

func renderTime(pattern string, value float64) string {
	t := time.Unix(int64(value), 0).UTC()
	s, err := strftime.Format(pattern, t)
	if err != nil {
		return ""
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
