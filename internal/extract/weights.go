package extract

import (
	"regexp"

	"github.com/shipstream/invoice-extractor/internal/segment"
	"github.com/shipstream/invoice-extractor/internal/textnorm"
)

var (
	reNumToken = regexp.MustCompile(`\d+[.,]?\d*`)

	rePackagesKW  = regexp.MustCompile(`(?i)(pakete|pieces|stück|stk|packages|pkgs?|colis)[:,]?\s*(\d+)`)
	rePKGSuffix   = regexp.MustCompile(`(?i)(\d+)\s*(?:PKG|PKGS|Packages)\b`)
	reCountWeight = regexp.MustCompile(`\b(\d+)\s+(\d+[.,]\d+)\b`)

	reServiceLine  = regexp.MustCompile(`(?i)\b(WW|TB|Express|Worldwide|Package|PKG)\b`)
	reTrackingLine = regexp.MustCompile(`(?i)\b1Z[0-9A-Z]{8,20}\b`)

	reWeightKW     = regexp.MustCompile(`(?i)(gross|brutto|actual weight|gewicht|weight|chargeable|rechnungsgewicht)`)
	reChargeableKW = regexp.MustCompile(`(?i)(chargeable|berechnet|frachtpflichtig|rechnungsgewicht)`)

	reWeightPairLabel = regexp.MustCompile(`(?i)gewicht\s*/\s*container[:\s]*(\d+[.,]?\d*(?:\s*/\s*\d+[.,]?\d*)?)`)
)

// WeightExtractor pulls gross weight, chargeable weight and package count.
// Lines with two money columns are cost rows and are never read as
// weights, so tariff values like 748,40 cannot contaminate the result.
type WeightExtractor struct{}

func (WeightExtractor) Extract(block segment.Block) Fields {
	var out Fields

	var lines []string
	for _, ln := range textnorm.Lines(block.Text) {
		if reMoneyPair.MatchString(ln) {
			continue
		}
		lines = append(lines, ln)
	}

	// 1) tracking/service lines often carry "count weight", e.g. "2 9,5"
	for _, line := range lines {
		if !reTrackingLine.MatchString(line) && !reServiceLine.MatchString(line) {
			continue
		}
		if m := reCountWeight.FindStringSubmatch(line); m != nil {
			if out.PackageCount == "" {
				out.PackageCount = m[1]
			}
			if out.GrossWeight == "" {
				out.GrossWeight = m[2]
			}
		}
		if m := rePKGSuffix.FindStringSubmatch(line); m != nil && out.PackageCount == "" {
			out.PackageCount = m[1]
		}
	}

	// 2) explicit package keywords win over the quick parse
	for _, line := range lines {
		if m := rePackagesKW.FindStringSubmatch(line); m != nil {
			out.PackageCount = m[2]
		}
	}

	// 3) weight-labelled lines; the last number on the line is the value
	for _, line := range lines {
		if !reWeightKW.MatchString(line) {
			continue
		}
		nums := reNumToken.FindAllString(line, -1)
		if len(nums) == 0 {
			continue
		}
		val := nums[len(nums)-1]
		if _, ok := textnorm.ParseDecimal(val); !ok {
			continue
		}
		if reChargeableKW.MatchString(line) {
			out.ChargeableWeight = val
		} else if out.GrossWeight == "" {
			out.GrossWeight = val
		}
	}

	// 4) UPS "Gewicht/Container 6,0/5,5": gross first, chargeable second;
	// a single scalar is gross only.
	for _, line := range lines {
		m := reWeightPairLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if a, b, ok := textnorm.SplitPair(m[1]); ok {
			_, aok := textnorm.ParseDecimal(a)
			_, bok := textnorm.ParseDecimal(b)
			if aok && bok {
				out.GrossWeight, out.ChargeableWeight = a, b
				continue
			}
		}
		if nums := reNumToken.FindAllString(m[1], -1); len(nums) == 1 && out.GrossWeight == "" {
			out.GrossWeight = nums[0]
		}
	}

	return out
}
