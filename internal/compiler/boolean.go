package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Boolean interprets text as a boolean. "true" and "false" match in any
// letter case; anything else, including the empty string, yields def.
// A Caser is stateful, so each call folds with its own.
func Boolean(text string, def bool) bool {
	switch cases.Fold().String(text) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

var (
	intPrefix   = regexp.MustCompile(`^[+-]?[0-9]+`)
	floatPrefix = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?`)
)

// leadingInt converts the integer prefix of text, after leading whitespace,
// and yields 0 when there is none. Out-of-range prefixes saturate.
func leadingInt(text string) int64 {
	m := intPrefix.FindString(strings.TrimLeft(text, " \t\n\r\v\f"))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		if strings.HasPrefix(m, "-") {
			return -1 << 63
		}
		return 1<<63 - 1
	}
	return n
}

// leadingFloat is leadingInt for decimal and exponent notation.
func leadingFloat(text string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(text, " \t\n\r\v\f"))
	if m == "" {
		return 0
	}
	// Out-of-range input still yields ±Inf.
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
