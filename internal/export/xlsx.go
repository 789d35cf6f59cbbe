package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/shipstream/invoice-extractor/internal/entity"
)

// XLSXWriter produces a shipment workbook for billing review.
type XLSXWriter struct {
	log *slog.Logger
}

func NewXLSXWriter(log *slog.Logger) *XLSXWriter {
	if log == nil {
		log = slog.Default()
	}
	return &XLSXWriter{log: log}
}

// Write builds one "Shipments" sheet, one row per shipment, with the cost
// total summed over the shipment's rows. Null fields come out as empty
// cells.
func (w *XLSXWriter) Write(path string, shipments []entity.Shipment) error {
	f := excelize.NewFile()
	const sheet = "Shipments"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Tracking Number",
		"Shipment Date",
		"Service",
		"Sender City",
		"Sender Country",
		"Receiver City",
		"Receiver Country",
		"Gross Weight",
		"Chargeable Weight",
		"Packages",
		"Total Cost",
		"Currency",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, s := range shipments {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, s.Identifier)
		write(2, deref(s.ShipmentDate))
		write(3, deref(s.ServiceType))
		if s.Sender != nil {
			write(4, deref(s.Sender.City))
			write(5, deref(s.Sender.Country))
		}
		if s.Receiver != nil {
			write(6, deref(s.Receiver.City))
			write(7, deref(s.Receiver.Country))
		}
		if s.GrossWeight != nil {
			write(8, *s.GrossWeight)
		}
		if s.ChargeableWeight != nil {
			write(9, *s.ChargeableWeight)
		}
		if s.PackageCount != nil {
			write(10, *s.PackageCount)
		}
		total := 0.0
		for _, c := range s.Costs {
			if c.Amount != nil {
				total += *c.Amount
			}
		}
		write(11, total)
		write(12, deref(s.Currency))
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	w.log.Info("export.xlsx.ok", "path", path, "rows", len(shipments))
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
