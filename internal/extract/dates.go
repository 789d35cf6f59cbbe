package extract

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shipstream/invoice-extractor/internal/segment"
	"github.com/shipstream/invoice-extractor/internal/textnorm"
)

var (
	// Textual German/English dates: "27.Nov", "02.Dezember 2025", "1 Mär 25".
	reDateTextual = regexp.MustCompile(`\b(\d{1,2})[.\-/]?\s*([A-Za-zÄÖÜäöü]{3,12})\.?,?\s*(\d{2,4})?\b`)
	// Numeric dates: 27.11.2025, 27/11/25, 2025-11-27.
	reDateDMY = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\b`)
	reDateYMD = regexp.MustCompile(`\b(\d{4})[./-](\d{1,2})[./-](\d{1,2})\b`)

	reYear = regexp.MustCompile(`\b(20\d{2})\b`)
)

// DateExtractor locates the shipment date. InvoiceYear fills in truncated
// forms ("27.Nov") and expands two-digit years; zero means unknown.
type DateExtractor struct {
	InvoiceYear int
}

// Extract collects every date candidate in the block and keeps the
// earliest one — on UPS invoices the shipment date precedes billing and
// due dates. The result is a raw day.month.year string; the validator
// finalizes it to ISO-8601.
func (e DateExtractor) Extract(block segment.Block) Fields {
	var candidates []time.Time

	for _, m := range reDateTextual.FindAllStringSubmatch(block.Text, -1) {
		day, ok := atoiInRange(m[1], 1, 31)
		if !ok {
			continue
		}
		month, ok := textnorm.Month(m[2])
		if !ok {
			continue
		}
		year := e.InvoiceYear
		if m[3] != "" {
			year = e.fixYear(m[3])
		}
		if t, ok := makeDate(year, month, day); ok {
			candidates = append(candidates, t)
		}
	}

	for _, m := range reDateDMY.FindAllStringSubmatch(block.Text, -1) {
		day, dok := atoiInRange(m[1], 1, 31)
		month, mok := atoiInRange(m[2], 1, 12)
		if !dok || !mok {
			continue
		}
		if t, ok := makeDate(e.fixYear(m[3]), time.Month(month), day); ok {
			candidates = append(candidates, t)
		}
	}

	for _, m := range reDateYMD.FindAllStringSubmatch(block.Text, -1) {
		year, yok := atoiInRange(m[1], 1900, 2200)
		month, mok := atoiInRange(m[2], 1, 12)
		day, dok := atoiInRange(m[3], 1, 31)
		if !yok || !mok || !dok {
			continue
		}
		if t, ok := makeDate(year, time.Month(month), day); ok {
			candidates = append(candidates, t)
		}
	}

	if len(candidates) == 0 {
		return Fields{}
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Before(best) {
			best = c
		}
	}
	return Fields{Date: fmt.Sprintf("%02d.%02d.%04d", best.Day(), int(best.Month()), best.Year())}
}

// fixYear expands two-digit years using the invoice year's century.
func (e DateExtractor) fixYear(raw string) int {
	y, ok := atoiInRange(raw, 0, 9999)
	if !ok {
		return 0
	}
	if y >= 1900 {
		return y
	}
	if y < 100 {
		if e.InvoiceYear >= 1900 {
			return (e.InvoiceYear / 100 * 100) + y
		}
		return 2000 + y
	}
	return 0
}

// makeDate builds a date and rejects overflow like Feb 30, which
// time.Date would silently normalize into March.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < 1900 || year > 2200 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func atoiInRange(s string, lo, hi int) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < lo || n > hi {
		return 0, false
	}
	return n, true
}

// InferInvoiceYear finds the first plausible year anywhere in the page
// texts, for filling in truncated dates.
func InferInvoiceYear(pages []string) int {
	for _, p := range pages {
		if m := reYear.FindString(p); m != "" {
			y, _ := atoiInRange(m, 2000, 2099)
			return y
		}
	}
	return 0
}
