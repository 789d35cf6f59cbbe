// Package extract holds the per-field extractors that turn a shipment
// block into a raw field set. Each extractor owns a disjoint slice of the
// field set, so they can run in any order and merge without conflict.
package extract

import (
	"github.com/shipstream/invoice-extractor/internal/segment"
)

// Fields is the raw, pre-validation field set for one shipment block.
// Empty string means absent; typing and nulling happen in the validator.
type Fields struct {
	Identifier       string
	Date             string // day.month.year numeric form, pre-ISO
	Service          string
	Sender           RawAddress
	Receiver         RawAddress
	GrossWeight      string
	ChargeableWeight string
	PackageCount     string
	Costs            []RawCost
}

// RawAddress is one party as found in the block, untyped.
type RawAddress struct {
	Lines   []string
	City    string
	Zip     string
	Country string // raw text, resolved to ISO-2 by the validator
}

// RawCost is one charge line as found in the block.
type RawCost struct {
	Amount   string // raw numeric string, may use decimal comma
	Category string
	Currency string
	Mention  string
}

// Extractor pulls one field family out of a shipment block.
// Implementations are pure functions over the block text: absence comes
// back as zero values, never as an error.
type Extractor interface {
	Extract(block segment.Block) Fields
}

// Merge unions partial field sets. Extractors write disjoint fields, so a
// first-non-empty union is all that is needed; cost rows concatenate in
// encounter order.
func Merge(parts ...Fields) Fields {
	var out Fields
	for _, p := range parts {
		out.Identifier = firstNonEmpty(out.Identifier, p.Identifier)
		out.Date = firstNonEmpty(out.Date, p.Date)
		out.Service = firstNonEmpty(out.Service, p.Service)
		out.Sender = mergeAddress(out.Sender, p.Sender)
		out.Receiver = mergeAddress(out.Receiver, p.Receiver)
		out.GrossWeight = firstNonEmpty(out.GrossWeight, p.GrossWeight)
		out.ChargeableWeight = firstNonEmpty(out.ChargeableWeight, p.ChargeableWeight)
		out.PackageCount = firstNonEmpty(out.PackageCount, p.PackageCount)
		out.Costs = append(out.Costs, p.Costs...)
	}
	return out
}

func mergeAddress(a, b RawAddress) RawAddress {
	if len(a.Lines) == 0 {
		a.Lines = b.Lines
	}
	a.City = firstNonEmpty(a.City, b.City)
	a.Zip = firstNonEmpty(a.Zip, b.Zip)
	a.Country = firstNonEmpty(a.Country, b.Country)
	return a
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
