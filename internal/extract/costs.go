package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shipstream/invoice-extractor/internal/segment"
	"github.com/shipstream/invoice-extractor/internal/textnorm"
)

var (
	// A cost row is a description followed by two or more German-notation
	// money columns; the right-most column is the net amount for the row.
	reCostRow = regexp.MustCompile(`^([A-Za-zÄÖÜäöüß0-9\-.()/ ,]+?)\s+((?:\d{1,3}(?:\.\d{3})*,\d{1,2}\s+)+\d{1,3}(?:\.\d{3})*,\d{1,2})$`)

	// "Gesamtkosten CHF 317,40" names the invoice currency.
	reInvoiceCurrency = regexp.MustCompile(`(?i)Gesamtkosten\s+([A-Za-z]{3})`)
	reInlineCurrency  = regexp.MustCompile(`(?i)\b(CHF|EUR|USD|GBP)\b`)
)

// costSkipKeywords mark invoice-level totals and package-summary rows that
// must not become cost items.
var costSkipKeywords = []string{
	"gesamtkosten",
	"gesamtbetrag",
	"anzahl",
	"package",
	"packages",
	"rabatt (gesamt)",
	"rabattzusammenfassung",
}

// costCategories maps invoice wording to canonical charge categories.
var costCategories = map[string]string{
	"transport":               "Freight",
	"dritte partei transport": "Freight",
	"benzinzuschlag":          "Fuel",
	"diesel":                  "Fuel",
	"maut":                    "Toll",
	"toll":                    "Toll",
	"zoll":                    "Customs",
	"customs":                 "Customs",
	"verzollung":              "Customs",
	"handling":                "Handling",
	"lager":                   "Storage",
	"storage":                 "Storage",
	"versicherung":            "Insurance",
	"insurance":               "Insurance",
	"rabatt":                  "Discount",
	"discount":                "Discount",
	"surcharge":               "Surcharge",
	"gebühr":                  "Surcharge",
}

var costCategoryKeys = sortedKeys(costCategories)

// CostExtractor scans the block for repeating cost-row patterns. Rows with
// a zero amount are kept — a zero charge is data. Rows missing the Basic
// or Net sub-columns simply never match and are omitted.
type CostExtractor struct{}

func (CostExtractor) Extract(block segment.Block) Fields {
	invoiceCurrency := ""
	if m := reInvoiceCurrency.FindStringSubmatch(block.Text); m != nil {
		invoiceCurrency = strings.ToUpper(m[1])
	}

	var costs []RawCost
	seen := make(map[string]struct{})

	for _, line := range textnorm.Lines(block.Text) {
		low := strings.ToLower(line)
		if containsAny(low, costSkipKeywords) {
			continue
		}
		m := reCostRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(m[1])
		cols := strings.Fields(m[2])
		amount := cols[len(cols)-1]

		currency := invoiceCurrency
		if cm := reInlineCurrency.FindStringSubmatch(line); cm != nil {
			currency = strings.ToUpper(cm[1])
		}

		category := normalizeCategory(desc)
		sig := category + "|" + amount + "|" + currency
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}

		costs = append(costs, RawCost{
			Amount:   amount,
			Category: category,
			Currency: currency,
			Mention:  line,
		})
	}
	return Fields{Costs: costs}
}

// normalizeCategory snaps a row description onto the canonical category
// set; descriptions that match nothing stay as-is.
func normalizeCategory(desc string) string {
	d := strings.ToLower(strings.TrimSpace(desc))
	best, bestScore := "", 0.0
	for _, key := range costCategoryKeys {
		if score := partialSimilarity(key, d); score > bestScore {
			best, bestScore = costCategories[key], score
		}
	}
	if bestScore >= 0.70 {
		return best
	}
	return desc
}

// sortedKeys fixes the fuzzy scan order so category resolution is
// deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
