package textnorm

import (
	"sort"
	"strings"
	"time"
)

// monthNames maps German and English month spellings (including common
// invoice abbreviations) to their numeric month.
var monthNames = map[string]time.Month{
	"jan": time.January, "januar": time.January, "january": time.January,
	"feb": time.February, "februar": time.February, "february": time.February,
	"mär": time.March, "märz": time.March, "maerz": time.March,
	"mrz": time.March, "mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"mai": time.May, "may": time.May,
	"jun": time.June, "juni": time.June, "june": time.June,
	"jul": time.July, "juli": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"okt": time.October, "oktober": time.October, "oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dez": time.December, "dezember": time.December, "dec": time.December, "december": time.December,
}

// Month resolves a (possibly OCR-mangled) month name to its numeric month.
// Tolerates trailing dots and the common 0-for-o substitution, and falls
// back to 3- then 2-letter prefix matching so "dezemeber" or "jaui" still
// resolve.
func Month(raw string) (time.Month, bool) {
	r := strings.ToLower(strings.TrimSpace(raw))
	r = strings.ReplaceAll(r, ".", "")
	r = strings.ReplaceAll(r, "0", "o")
	if r == "" {
		return 0, false
	}
	if m, ok := monthNames[r]; ok {
		return m, true
	}
	// Prefix fallbacks walk a sorted key list so ambiguous prefixes
	// ("ju", "ma") resolve the same way on every run.
	for _, n := range []int{3, 2} {
		if len(r) < n {
			continue
		}
		for _, key := range monthKeys {
			if len(key) >= n && r[:n] == key[:n] {
				return monthNames[key], true
			}
		}
	}
	return 0, false
}

var monthKeys = func() []string {
	keys := make([]string, 0, len(monthNames))
	for k := range monthNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()
