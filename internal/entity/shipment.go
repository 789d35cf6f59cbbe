package entity

// Address is one party of a shipment (sender or receiver).
// Every field is either a well-typed value or null — never an empty string.
type Address struct {
	Lines      []string `json:"lines,omitempty"`
	City       *string  `json:"city"`
	Zip        *string  `json:"zip"`
	Country    *string  `json:"country"`
	CountryRaw *string  `json:"country_raw,omitempty"`
}

// CostItem is a single charge line attributed to a shipment.
// Zero amounts are meaningful and are kept.
type CostItem struct {
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Currency *string  `json:"currency"`
	Mention  string   `json:"mention,omitempty"`
}

// Shipment is the validated, typed record for one shipment block.
type Shipment struct {
	Identifier       string     `json:"identifier"`
	InvoicePage      int        `json:"invoice_page,omitempty"`
	ShipmentDate     *string    `json:"shipment_date"`
	ServiceType      *string    `json:"service_type"`
	Currency         *string    `json:"currency"`
	Sender           *Address   `json:"sender"`
	Receiver         *Address   `json:"receiver"`
	GrossWeight      *float64   `json:"gross_weight"`
	ChargeableWeight *float64   `json:"chargeable_weight"`
	PackageCount     *int       `json:"package_count"`
	Costs            []CostItem `json:"costs"`
}
