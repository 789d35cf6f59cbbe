// Package segment splits concatenated invoice page text into per-shipment
// blocks anchored on tracking-number occurrences.
package segment

import (
	"log/slog"
	"regexp"
	"strings"
)

// Block is the contiguous text span attributed to one shipment. It is
// created once by the Segmenter and never mutated afterwards.
type Block struct {
	Identifier string // canonicalized anchoring tracking number
	Text       string
	Page       int // 1-based page of the first anchor occurrence
}

var (
	// UPS primary: "1Z" + 16 alphanumerics.
	reTracking = regexp.MustCompile(`\b1Z[0-9A-Z]{16}\b`)
	// Secondary: same shape with the OCR-typical 1/I/l slips and a looser
	// length, used only when the primary pattern is absent from the
	// whole document.
	reTrackingLoose = regexp.MustCompile(`\b[1Il][Zz][0-9A-Z]{8,20}\b`)

	reNonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Segmenter turns page texts into ordered shipment blocks.
type Segmenter struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Segmenter {
	if log == nil {
		log = slog.Default()
	}
	return &Segmenter{log: log}
}

// Segment concatenates the pages in order (page boundaries are not block
// boundaries) and anchors a block at the first occurrence of each distinct
// tracking number. Later occurrences of an already-seen number are cost-page
// echoes: they never open a new block, and the text they introduce is folded
// back into the block that owns the number. Text before the first anchor is
// discarded. A document with no anchors at all yields no blocks.
func (s *Segmenter) Segment(pages []string) []Block {
	doc, offsets := concat(pages)

	matches := reTracking.FindAllStringIndex(doc, -1)
	if len(matches) == 0 {
		matches = reTrackingLoose.FindAllStringIndex(doc, -1)
		if len(matches) == 0 {
			s.log.Info("segment.no_anchors")
			return nil
		}
		s.log.Info("segment.fallback_pattern", "anchors", len(matches))
	}

	type rawBlock struct {
		id   string
		page int
		text strings.Builder
	}
	var blocks []*rawBlock
	owner := make(map[string]*rawBlock)

	for i, m := range matches {
		id := CanonicalID(doc[m[0]:m[1]])
		end := len(doc)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		span := doc[m[0]:end]

		if b, seen := owner[id]; seen {
			// Echo: fold the span into the owning block.
			b.text.WriteString("\n")
			b.text.WriteString(span)
			continue
		}
		b := &rawBlock{id: id, page: pageAt(offsets, m[0])}
		b.text.WriteString(span)
		owner[id] = b
		blocks = append(blocks, b)
	}

	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Block{Identifier: b.id, Text: b.text.String(), Page: b.page})
	}
	s.log.Info("segment.ok", "anchors", len(matches), "blocks", len(out))
	return out
}

// CanonicalID strips non-alphanumeric noise, repairs the OCR "IZ"/"lZ"
// prefix slip and uppercases the identifier.
func CanonicalID(raw string) string {
	cleaned := reNonAlnum.ReplaceAllString(raw, "")
	if len(cleaned) >= 2 && (cleaned[0] == 'I' || cleaned[0] == 'l' || cleaned[0] == 'i') {
		cleaned = "1" + cleaned[1:]
	}
	return strings.ToUpper(cleaned)
}

// concat joins page texts and records the start offset of each page so
// match positions can be mapped back to a 1-based page number.
func concat(pages []string) (string, []int) {
	var sb strings.Builder
	offsets := make([]int, 0, len(pages))
	for i, p := range pages {
		offsets = append(offsets, sb.Len())
		sb.WriteString(p)
		if i+1 < len(pages) {
			sb.WriteString("\n")
		}
	}
	return sb.String(), offsets
}

func pageAt(offsets []int, pos int) int {
	page := 1
	for i, off := range offsets {
		if pos >= off {
			page = i + 1
		}
	}
	return page
}
