package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// Anything at or above this is a tariff code or OCR garbage, not an
// invoice amount or weight.
const maxPlausibleValue = 1e7

var rePair = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*/\s*(\d+(?:[.,]\d+)?)\s*(?:[A-Za-z])?\s*$`)

// ParseDecimal parses a numeric string that may use German notation:
// thousands dots and a decimal comma ("1.234,56" -> 1234.56). A bare
// trailing comma ("82,") is read as a whole number, 82.0.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.TrimSuffix(s, ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f >= maxPlausibleValue || f < 0 {
		return 0, false
	}
	return f, true
}

// SplitPair splits a slash-joined value pair like "6,0/5,5" or
// "12,5/12,0 D" into its two raw components, dropping the optional
// trailing unit letter. Both components stay in their raw notation.
func SplitPair(s string) (first, second string, ok bool) {
	m := rePair.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
