package textcodec

import (
	"fmt"
	"strings"
)

// directive is one conversion in a printf style pattern.
type directive struct {
	start, end int
	flags      string
	width      string
	precision  string
	verb       byte
}

func (d directive) real() bool {
	return strings.IndexByte("fFeEgGaA", d.verb) >= 0
}

// directives lists the conversions of pattern. Escaped percent signs are
// skipped. ok is false when the pattern ends inside a directive or uses a
// starred width or precision.
func directives(pattern string) (ds []directive, ok bool) {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '%' {
			i++
			continue
		}
		d := directive{start: i}
		j := i + 1
		k := j
		for k < len(pattern) && strings.IndexByte("-+ #0'", pattern[k]) >= 0 {
			k++
		}
		d.flags, j = pattern[j:k], k
		for k < len(pattern) && isDigit(pattern[k]) {
			k++
		}
		d.width, j = pattern[j:k], k
		if k < len(pattern) && pattern[k] == '.' {
			k++
			for k < len(pattern) && isDigit(pattern[k]) {
				k++
			}
			d.precision, j = pattern[j:k], k
		}
		for k < len(pattern) && strings.IndexByte("hlLqjzt", pattern[k]) >= 0 {
			k++
		}
		if k >= len(pattern) || pattern[k] == '*' {
			return nil, false
		}
		d.verb = pattern[k]
		d.end = k + 1
		ds = append(ds, d)
		i = k
	}
	return ds, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// goVerb maps a C real conversion onto the fmt equivalent. Hex floats are
// not byte-identical to C: fmt pads the exponent to two digits (p+01, not p+1).
func goVerb(c byte) byte {
	switch c {
	case 'a':
		return 'x'
	case 'A':
		return 'X'
	}
	return c
}

// single returns the only conversion of pattern, which must be real.
func single(pattern string) (directive, bool) {
	ds, ok := directives(pattern)
	if !ok || len(ds) != 1 || !ds[0].real() {
		return directive{}, false
	}
	return ds[0], true
}

func renderPrintf(pattern string, value float64) string {
	ds, ok := directives(pattern)
	if !ok {
		return ""
	}
	if len(ds) == 0 {
		return strings.ReplaceAll(pattern, "%%", "%")
	}
	d, ok := single(pattern)
	if !ok {
		return ""
	}
	flags := strings.ReplaceAll(d.flags, "'", "")
	layout := pattern[:d.start] + "%" + flags + d.width + d.precision + string(goVerb(d.verb)) + pattern[d.end:]
	return fmt.Sprintf(layout, value)
}

func scanPrintf(pattern, text string) float64 {
	d, ok := single(pattern)
	if !ok {
		return 0
	}
	// Go's scanner has no precision syntax and treats every float verb alike.
	layout := pattern[:d.start] + "%" + d.width + "g" + pattern[d.end:]
	var v float64
	if n, _ := fmt.Sscanf(text, layout, &v); n < 1 {
		return 0
	}
	return v
}
