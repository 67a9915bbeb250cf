package models

// Analysis is the outcome of resolving, fetching and aggregating a city.
type Analysis struct {
	Location Location       `json:"location"`
	Window   Window         `json:"window"`
	Days     []DailySummary `json:"days"`
}

type DeliveryStatus string

const (
	DeliverySkipped   DeliveryStatus = "skipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Artifacts describes what a report run left on disk.
type Artifacts struct {
	Analysis  *Analysis      `json:"analysis"`
	CSVPath   string         `json:"csv_path"`
	ChartPath string         `json:"chart_path"`
	Delivery  DeliveryStatus `json:"delivery"`
}
