package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipstream/invoice-extractor/internal/entity"
)

func TestJSONPath(t *testing.T) {
	got := JSONPath("/tmp/out", "/invoices/november/Rechnung_84110.pdf")
	assert.Equal(t, filepath.Join("/tmp/out", "Rechnung_84110_extracted.json"), got)
}

func TestWriteJSONExplicitNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	shipments := []entity.Shipment{{
		Identifier: "1Z999AA10123456784",
		Costs:      []entity.CostItem{},
	}}
	require.NoError(t, WriteJSON(path, shipments))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// absent fields are explicit nulls, never empty strings
	assert.Contains(t, string(raw), `"shipment_date": null`)
	assert.Contains(t, string(raw), `"gross_weight": null`)
	assert.Contains(t, string(raw), `"costs": []`)

	var back []entity.Shipment
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, shipments, back)
}

func TestWriteJSONKeepsUmlautsVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	city := "MÜNCHEN"
	shipments := []entity.Shipment{{
		Identifier: "1Z999AA10123456784",
		Sender:     &entity.Address{City: &city},
		Costs:      []entity.CostItem{},
	}}
	require.NoError(t, WriteJSON(path, shipments))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "MÜNCHEN")
}
