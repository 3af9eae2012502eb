package models

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AreaBucket tallies sensor statuses inside one named region.
type AreaBucket struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

// AvailableRatio is Available/Total, or 0 for an empty bucket.
func (b AreaBucket) AvailableRatio() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Available) / float64(b.Total)
}

// AreaBreakdown maps area names to buckets, remembering insertion order.
type AreaBreakdown struct {
	m *orderedmap.OrderedMap[string, *AreaBucket]
}

func NewAreaBreakdown() *AreaBreakdown {
	return &AreaBreakdown{m: orderedmap.New[string, *AreaBucket]()}
}

// Bucket returns the bucket for name, creating it on first use.
func (a *AreaBreakdown) Bucket(name string) *AreaBucket {
	if b, ok := a.m.Get(name); ok {
		return b
	}
	b := &AreaBucket{}
	a.m.Set(name, b)
	return b
}

func (a *AreaBreakdown) Get(name string) (AreaBucket, bool) {
	b, ok := a.m.Get(name)
	if !ok {
		return AreaBucket{}, false
	}
	return *b, true
}

// Names lists areas in insertion order.
func (a *AreaBreakdown) Names() []string {
	names := make([]string, 0, a.m.Len())
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func (a *AreaBreakdown) Len() int {
	return a.m.Len()
}

func (a *AreaBreakdown) MarshalJSON() ([]byte, error) {
	return a.m.MarshalJSON()
}

// TimeSeriesPoint is one hour of generated availability. Synthetic is always
// true: these values are placeholders, not measured history.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Hour      string    `json:"hour"`
	Available int       `json:"available"`
	Occupied  int       `json:"occupied"`
	Synthetic bool      `json:"synthetic"`
}

// HistoryPoint is one day of generated availability.
type HistoryPoint struct {
	Date             string  `json:"date"`
	AvailabilityRate Percent `json:"availabilityRate"`
	Synthetic        bool    `json:"synthetic"`
}

// ForecastPoint is one generated hourly prediction.
type ForecastPoint struct {
	Timestamp        time.Time `json:"timestamp"`
	AvailabilityRate Percent   `json:"availabilityRate"`
	Confidence       Percent   `json:"confidence"`
	Synthetic        bool      `json:"synthetic"`
}

// ParkingAnalytics is the availability snapshot computed for one request.
type ParkingAnalytics struct {
	TotalSensors     int               `json:"totalSensors"`
	AvailableSensors int               `json:"availableSensors"`
	AvailabilityRate Percent           `json:"availabilityRate"`
	AreaBreakdown    *AreaBreakdown    `json:"areaBreakdown"`
	TimeSeries       []TimeSeriesPoint `json:"timeSeries"`
	Recommendations  []string          `json:"recommendations"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}
