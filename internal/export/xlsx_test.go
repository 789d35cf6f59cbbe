package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shipstream/invoice-extractor/internal/entity"
)

func TestXLSXWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipments.xlsx")

	date := "2025-11-24"
	service := "Express Saver"
	currency := "CHF"
	gross := 6.0
	amount1 := 374.5
	amount2 := 25.25

	shipments := []entity.Shipment{{
		Identifier:   "1Z999AA10123456784",
		ShipmentDate: &date,
		ServiceType:  &service,
		Currency:     &currency,
		GrossWeight:  &gross,
		Costs: []entity.CostItem{
			{Amount: &amount1, Category: "Freight", Currency: &currency},
			{Amount: &amount2, Category: "Fuel", Currency: &currency},
		},
	}}

	require.NoError(t, NewXLSXWriter(nil).Write(path, shipments))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Shipments", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tracking Number", header)

	id, err := f.GetCellValue("Shipments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1Z999AA10123456784", id)

	total, err := f.GetCellValue("Shipments", "K2")
	require.NoError(t, err)
	assert.Equal(t, "399.75", total)

	cur, err := f.GetCellValue("Shipments", "L2")
	require.NoError(t, err)
	assert.Equal(t, "CHF", cur)
}
