package extract

import (
	"regexp"
	"strings"

	"github.com/shipstream/invoice-extractor/internal/segment"
	"github.com/shipstream/invoice-extractor/internal/textnorm"
)

var (
	// Inline form: "Versender: OBERSCHLEISSHEIM 85764 DEUTSCHLAND".
	reAddrInline = regexp.MustCompile(`(?i)(versender|empf[aä]nger):\s*(.+)`)
	// Multi-line form starts with a bare label line.
	reAddrLabelOnly = regexp.MustCompile(`(?i)^(versender|empf[aä]nger):\s*$`)

	reAddrZip = regexp.MustCompile(`\b(\d{3,7})\b`)

	// Lines that terminate an address block: the charge table begins.
	reAddrEnd = regexp.MustCompile(`(?i)(Transport|Zuschlag|Package|Anzahl|Gebühr|Rabatt|Tarife|Gesamt|Service|Beschreibung|MWST|Basic)`)

	// Two adjacent money columns mean a cost row, not an address line.
	reMoneyPair = regexp.MustCompile(`\d+[,.]\d{2}\s+\d+[,.]\d{2}`)

	reCityNoise  = regexp.MustCompile(`[^A-Za-zÄÖÜäöüß0-9\s\-]`)
	reCitySpaces = regexp.MustCompile(`\s{2,}`)
)

// LocationExtractor pulls sender and receiver addresses, supporting both
// the inline comma-joined form and the multi-line name/street/city form.
type LocationExtractor struct{}

func (LocationExtractor) Extract(block segment.Block) Fields {
	lines := textnorm.Lines(block.Text)
	return Fields{
		Sender:   parseAddress(collectAddress(lines, "versender")),
		Receiver: parseAddress(collectAddress(lines, "empf")),
	}
}

// collectAddress gathers the address lines following (or inline with) the
// given label until the charge table starts.
func collectAddress(lines []string, label string) []string {
	var out []string
	collecting := false

	for _, line := range lines {
		if m := reAddrInline.FindStringSubmatch(line); m != nil {
			if strings.Contains(strings.ToLower(m[1]), label) {
				collecting = true
				out = append(out, strings.TrimSpace(m[2]))
			}
			continue
		}
		if m := reAddrLabelOnly.FindStringSubmatch(line); m != nil {
			if strings.Contains(strings.ToLower(m[1]), label) {
				collecting = true
			}
			continue
		}
		if collecting && (reAddrEnd.MatchString(line) || reMoneyPair.MatchString(line)) {
			break
		}
		if collecting {
			out = append(out, line)
		}
	}
	return out
}

// parseAddress extracts city, zip and raw country text from the gathered
// lines. The country stays raw; ISO resolution is the validator's job.
func parseAddress(lines []string) RawAddress {
	if len(lines) == 0 {
		return RawAddress{}
	}
	text := strings.Join(lines, " ")

	zip := ""
	if m := reAddrZip.FindStringSubmatch(text); m != nil {
		zip = m[1]
	}

	countryRaw, _, _ := textnorm.FindCountry(text)

	city := text
	if zip != "" {
		city = strings.Replace(city, zip, "", 1)
	}
	if countryRaw != "" {
		city = strings.Replace(city, countryRaw, "", 1)
	}
	city = reCityNoise.ReplaceAllString(city, "")
	city = strings.TrimSpace(reCitySpaces.ReplaceAllString(city, " "))

	return RawAddress{
		Lines:   lines,
		City:    city,
		Zip:     zip,
		Country: countryRaw,
	}
}
