// Package validate turns merged raw field sets into final typed shipment
// records. Validation is total: malformed values degrade to nulls with a
// recorded warning, never to an error.
package validate

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shipstream/invoice-extractor/internal/entity"
	"github.com/shipstream/invoice-extractor/internal/extract"
	"github.com/shipstream/invoice-extractor/internal/textnorm"
)

// dateLayouts are the raw date shapes the extractors emit, plus the
// already-ISO form.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

type Validator struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	return &Validator{log: log}
}

// Record builds the typed Shipment for one block. Every leaf of the
// result is a well-typed scalar or an explicit null — never "".
func (v *Validator) Record(f extract.Fields, page int) (entity.Shipment, []string) {
	var warns []string
	warnf := func(format string, args ...any) {
		warns = append(warns, fmt.Sprintf(format, args...))
	}

	rec := entity.Shipment{
		Identifier:  strings.ToUpper(strings.TrimSpace(f.Identifier)),
		InvoicePage: page,
		ServiceType: strPtr(f.Service),
		Costs:       []entity.CostItem{},
	}

	rec.ShipmentDate = v.cleanDate(f.Date, warnf)
	rec.Sender = v.cleanAddress("sender", f.Sender, warnf)
	rec.Receiver = v.cleanAddress("receiver", f.Receiver, warnf)
	rec.GrossWeight = cleanFloat("gross_weight", f.GrossWeight, warnf)
	rec.ChargeableWeight = cleanFloat("chargeable_weight", f.ChargeableWeight, warnf)
	rec.PackageCount = cleanInt("package_count", f.PackageCount, warnf)

	for _, raw := range f.Costs {
		item := entity.CostItem{
			Amount:   cleanFloat("cost", raw.Amount, warnf),
			Category: strings.TrimSpace(raw.Category),
			Currency: strPtr(raw.Currency),
			Mention:  strings.TrimSpace(raw.Mention),
		}
		rec.Costs = append(rec.Costs, item)
	}
	rec.Currency = electCurrency(rec.Costs, warnf)

	if len(warns) > 0 {
		v.log.Warn("validate.degraded", "identifier", rec.Identifier, "warnings", len(warns))
	}
	return rec, warns
}

// cleanDate parses the recognized raw shapes into strict ISO-8601.
func (v *Validator) cleanDate(raw string, warnf func(string, ...any)) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	warnf("shipment_date: unrecognized %q", raw)
	return nil
}

// cleanAddress types one party. Unresolved country text is preserved in
// CountryRaw with a null ISO field; a Hong Kong address without a city
// line gets the literal city "HONG KONG".
func (v *Validator) cleanAddress(side string, raw extract.RawAddress, warnf func(string, ...any)) *entity.Address {
	if len(raw.Lines) == 0 && raw.City == "" && raw.Zip == "" && raw.Country == "" {
		return nil
	}
	addr := &entity.Address{
		Lines: raw.Lines,
		City:  strPtr(raw.City),
		Zip:   strPtr(raw.Zip),
	}
	if c := strings.TrimSpace(raw.Country); c != "" {
		if iso, ok := textnorm.CountryCode(c); ok {
			addr.Country = &iso
		} else {
			addr.CountryRaw = &c
			warnf("%s country: unresolved %q", side, c)
		}
	}
	if addr.Country != nil && *addr.Country == "HK" && addr.City == nil {
		hk := "HONG KONG"
		addr.City = &hk
	}
	return addr
}

// electCurrency picks a single shipment currency from the cost rows:
// most frequent wins, ties go to the first seen. Disagreement between
// rows is surfaced as a warning, never silently resolved.
func electCurrency(costs []entity.CostItem, warnf func(string, ...any)) *string {
	counts := make(map[string]int)
	var order []string
	for _, c := range costs {
		if c.Currency == nil {
			continue
		}
		if _, seen := counts[*c.Currency]; !seen {
			order = append(order, *c.Currency)
		}
		counts[*c.Currency]++
	}
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, cur := range order[1:] {
		if counts[cur] > counts[best] {
			best = cur
		}
	}
	if len(order) > 1 {
		warnf("currency: cost rows disagree %v, using %s", order, best)
	}
	return &best
}

func cleanFloat(field, raw string, warnf func(string, ...any)) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, ok := textnorm.ParseDecimal(raw)
	if !ok {
		warnf("%s: not numeric %q", field, raw)
		return nil
	}
	return &f
}

func cleanInt(field, raw string, warnf func(string, ...any)) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		warnf("%s: not an integer %q", field, raw)
		return nil
	}
	return &n
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
