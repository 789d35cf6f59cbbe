package extract

import (
	"regexp"
	"strings"

	"github.com/shipstream/invoice-extractor/internal/segment"
	"github.com/shipstream/invoice-extractor/internal/textnorm"
)

var (
	// Canonical UPS is 1Z + 16 chars, but OCR distorts length, so the
	// in-block passes accept a range and canonicalize afterwards.
	reUPSStrict = regexp.MustCompile(`\b1Z[0-9A-Z]{8,20}\b`)
	reUPSLoose  = regexp.MustCompile(`\b[1Il][Zz][0-9A-Z]{8,20}\b`)
	reGeneric   = regexp.MustCompile(`\b[A-Z0-9]{8,25}\b`)

	reLeadingZeros = regexp.MustCompile(`^0{3,}`)
	reAllDigits    = regexp.MustCompile(`^\d+$`)
)

// idKeywords mark lines whose alphanumeric runs are worth considering as
// fallback identifiers.
var idKeywords = []string{
	"paketnummer", "frachtbrief", "tracking", "waybill", "awb",
	"referenz", "sendung", "shipment", "consignment",
}

// IdentifierExtractor locates the shipment identifier. The first match in
// block order is authoritative even when the number echoes later in the
// same block.
type IdentifierExtractor struct{}

func (IdentifierExtractor) Extract(block segment.Block) Fields {
	// 1) strict UPS match on the raw text
	if m := reUPSStrict.FindString(block.Text); m != "" {
		return Fields{Identifier: segment.CanonicalID(m)}
	}

	// 2) loose UPS match line by line, after OCR digit repair
	for _, line := range textnorm.Lines(block.Text) {
		if m := reUPSLoose.FindString(fixOCRDigits(line)); m != "" {
			return Fields{Identifier: segment.CanonicalID(m)}
		}
	}

	// 3) generic run near an identifier keyword
	for _, line := range textnorm.Lines(block.Text) {
		low := strings.ToLower(line)
		if !containsAny(low, idKeywords) {
			continue
		}
		for _, cand := range reGeneric.FindAllString(fixOCRDigits(line), -1) {
			if plausibleID(cand) {
				return Fields{Identifier: segment.CanonicalID(cand)}
			}
		}
	}

	// 4) full-block generic fallback, lowest priority
	for _, cand := range reGeneric.FindAllString(fixOCRDigits(block.Text), -1) {
		if plausibleID(cand) {
			return Fields{Identifier: segment.CanonicalID(cand)}
		}
	}

	return Fields{}
}

// fixOCRDigits repairs the usual letter/digit confusions before pattern
// matching: O->0, I/l->1.
func fixOCRDigits(s string) string {
	return strings.NewReplacer("O", "0", "o", "0", "I", "1", "l", "1").Replace(s)
}

// plausibleID filters generic candidates that are really ZIPs, amounts,
// invoice numbers or package-summary tokens.
func plausibleID(s string) bool {
	if len(s) < 8 {
		return false
	}
	if reAllDigits.MatchString(s) && len(s) < 10 {
		return false
	}
	if reLeadingZeros.MatchString(s) {
		return false
	}
	if strings.Contains(s, "PKG") || strings.Contains(s, "PACKAGE") {
		return false
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
