package constants

// RunStatus is the canonical status for rows in extraction_runs.
type RunStatus string

// Stable values (store these exact strings in the DB).
const (
	RunStatusRunning RunStatus = "RUNNING" // in progress
	RunStatusOK      RunStatus = "OK"      // completed with at least one shipment
	RunStatusEmpty   RunStatus = "EMPTY"   // completed, no tracking identifiers found
	RunStatusFailed  RunStatus = "FAILED"  // terminal failure (unreadable input)
)
