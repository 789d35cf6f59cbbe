package textnorm

import (
	"sort"
	"strings"
)

// countryNames maps German and English country spellings seen on UPS
// invoices to ISO 3166-1 alpha-2 codes. Long official forms come before
// their short forms at lookup time so "VOLKSREPUBLIK CHINA" never half
// matches.
var countryNames = map[string]string{
	"deutschland": "DE", "germany": "DE",
	"schweiz": "CH", "switzerland": "CH",
	"volksrepublik china": "CN", "volksrepublik": "CN", "china": "CN",
	"hongkong": "HK", "hong kong": "HK",
	"österreich": "AT", "oesterreich": "AT", "austria": "AT",
	"italien": "IT", "italy": "IT",
	"polen": "PL", "poland": "PL",
	"frankreich": "FR", "france": "FR",
	"spanien": "ES", "spain": "ES",
	"niederlande": "NL", "netherlands": "NL",
	"belgien": "BE", "belgium": "BE",
	"grossbritannien": "GB", "großbritannien": "GB", "united kingdom": "GB",
	"usa": "US", "vereinigte staaten": "US", "united states": "US",
	"tschechien": "CZ", "czech republic": "CZ",
	"dänemark": "DK", "denmark": "DK",
	"schweden": "SE", "sweden": "SE",
}

// countryKeys is sorted longest-first so substring scans prefer the most
// specific name.
var countryKeys = func() []string {
	keys := make([]string, 0, len(countryNames))
	for k := range countryNames {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// CountryCode resolves a raw country string to ISO-2. Exact (trimmed,
// case-folded) lookup first, then a two-letter code passthrough.
func CountryCode(raw string) (string, bool) {
	low := strings.ToLower(strings.TrimSpace(raw))
	if low == "" {
		return "", false
	}
	if iso, ok := countryNames[low]; ok {
		return iso, true
	}
	if len(low) == 2 && isAlpha(low) {
		up := strings.ToUpper(low)
		for _, iso := range countryNames {
			if iso == up {
				return up, true
			}
		}
	}
	return "", false
}

// FindCountry scans free text for any known country name and returns the
// matched raw substring plus its ISO-2 code.
func FindCountry(text string) (raw, iso string, ok bool) {
	low := strings.ToLower(text)
	for _, key := range countryKeys {
		if idx := strings.Index(low, key); idx >= 0 {
			return text[idx : idx+len(key)], countryNames[key], true
		}
	}
	return "", "", false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
