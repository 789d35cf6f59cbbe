// Package pipeline coordinates segmentation, field extraction and
// validation for one invoice document.
package pipeline

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/shipstream/invoice-extractor/internal/entity"
	"github.com/shipstream/invoice-extractor/internal/extract"
	"github.com/shipstream/invoice-extractor/internal/segment"
	"github.com/shipstream/invoice-extractor/internal/validate"
)

// Result is the document-level output: shipments in document order plus
// the extraction warning side-channel. It is always produced — missing
// data shows up as nulls, not as a failed run.
type Result struct {
	RunID     uuid.UUID
	Shipments []entity.Shipment
	Warnings  []string
}

type Pipeline struct {
	seg *segment.Segmenter
	val *validate.Validator
	log *slog.Logger
}

func New(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		seg: segment.New(log),
		val: validate.New(log),
		log: log,
	}
}

// Run processes already-materialized page texts. A document with no
// tracking identifiers contributes zero shipments and a warning; that is
// a reported condition, not an error.
func (p *Pipeline) Run(pages []string) Result {
	res := Result{
		RunID:     uuid.New(),
		Shipments: []entity.Shipment{},
	}

	blocks := p.seg.Segment(pages)
	if len(blocks) == 0 {
		res.Warnings = append(res.Warnings, "no shipments extracted: no tracking identifiers found")
		p.log.Warn("pipeline.empty", "run_id", res.RunID)
		return res
	}

	invoiceYear := extract.InferInvoiceYear(pages)
	extractors := []extract.Extractor{
		extract.IdentifierExtractor{},
		extract.DateExtractor{InvoiceYear: invoiceYear},
		extract.ServiceExtractor{},
		extract.LocationExtractor{},
		extract.WeightExtractor{},
		extract.CostExtractor{},
	}

	for _, block := range blocks {
		parts := make([]extract.Fields, 0, len(extractors))
		for _, ex := range extractors {
			parts = append(parts, ex.Extract(block))
		}
		fields := extract.Merge(parts...)
		if fields.Identifier == "" {
			// The segmenter anchored this block on a match, so the
			// canonical anchor is authoritative when the in-block pass
			// finds nothing better.
			fields.Identifier = block.Identifier
		}

		rec, warns := p.val.Record(fields, block.Page)
		for _, w := range warns {
			res.Warnings = append(res.Warnings, rec.Identifier+": "+w)
		}
		res.Shipments = append(res.Shipments, rec)
	}

	p.log.Info("pipeline.ok",
		"run_id", res.RunID,
		"pages", len(pages),
		"shipments", len(res.Shipments),
		"warnings", len(res.Warnings),
	)
	return res
}
