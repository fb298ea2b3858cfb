package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseFloat parses the leading decimal number in s, ignoring leading
// whitespace and any trailing garbage ("1.5px" is 1.5). It reports false
// when no number is found or the result is not finite.
func ParseFloat(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// MaxCount is the largest engagement count ParseCount accepts.
const MaxCount = math.MaxInt32

// ParseCount parses the leading integer in s as an engagement count.
// Absent, non-numeric, negative, and values above MaxCount count as zero.
func ParseCount(s string) int {
	m := intPrefix.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}
