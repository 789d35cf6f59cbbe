// Package export writes extraction results out as JSON documents and
// XLSX workbooks.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shipstream/invoice-extractor/internal/entity"
)

// WriteJSON serializes one invoice's shipments as a single JSON document.
// German city and service names must survive verbatim, so HTML escaping
// is off.
func WriteJSON(path string, shipments []entity.Shipment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(shipments); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// JSONPath derives the output document path for an input invoice:
// <output>/<base>_extracted.json.
func JSONPath(outputDir, inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outputDir, base+"_extracted.json")
}
