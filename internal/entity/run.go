package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionRun records one pass over one invoice document.
type ExtractionRun struct {
	ID            uuid.UUID  `json:"id"`
	SourcePath    string     `json:"source_path"`
	Pages         int        `json:"pages"`
	ShipmentCount int        `json:"shipment_count"`
	Status        string     `json:"status"`
	Warnings      []string   `json:"warnings,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}
