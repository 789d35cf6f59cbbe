// Package pdfload reads the native text layer of a PDF invoice, one
// string per page. It performs no cleaning; normalization belongs to the
// extraction core.
package pdfload

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is one PDF page's raw text.
type Page struct {
	Num  int // 1-based
	Text string
}

type Loader struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{log: log}
}

// Load extracts per-page text in page order. Pages whose text layer is
// empty (scanned pages with no OCR available) are kept as empty strings
// so page numbering stays intact; the caller decides how to report them.
func (l *Loader) Load(path string) ([]Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]Page, 0, total)
	empty := 0

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Num: i})
			empty++
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			l.log.Warn("pdfload.page_failed", "path", path, "page", i, "err", err)
			pages = append(pages, Page{Num: i})
			empty++
			continue
		}
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		if strings.TrimSpace(text) == "" {
			empty++
		}
		pages = append(pages, Page{Num: i, Text: text})
	}

	l.log.Info("pdfload.ok", "path", path, "pages", total, "empty_pages", empty)
	return pages, nil
}

// Texts flattens pages into the ordered string sequence the extraction
// core consumes.
func Texts(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Text
	}
	return out
}
