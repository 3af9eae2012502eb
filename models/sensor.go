package models

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Sensor status labels reported by the city's bay sensors.
const (
	StatusUnoccupied = "Unoccupied"
	StatusPresent    = "Present"
	StatusUnknown    = "unknown"
)

// SensorRecord is one on-street parking bay sensor after cleaning.
// Lon and Lat are nil when the source omitted them.
type SensorRecord struct {
	ID          string     `json:"id,omitempty"`
	Lon         *float64   `json:"lon,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Status      string     `json:"status"`
	ZoneNumber  *int       `json:"zone_number,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// StatusCount is one row of a sensor status summary.
type StatusCount struct {
	Count      int     `json:"count"`
	Percentage Percent `json:"percentage"`
}

// SensorStatusSummary counts sensors per status label, in first-seen order.
type SensorStatusSummary struct {
	Total    int                                        `json:"total"`
	Statuses *orderedmap.OrderedMap[string, StatusCount] `json:"statuses"`
}
