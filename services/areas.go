package services

import (
	"parking-insights/models"
)

const (
	AreaGreaterMelbourne = "Greater Melbourne"
	AreaUnknown          = "Unknown"
)

// DefaultAreas is the ordered bounding-box table for inner Melbourne.
// Boxes may overlap; the earliest match wins.
var DefaultAreas = []models.AreaBox{
	{Name: "Melbourne CBD", MinLon: 144.950, MaxLon: 144.975, MinLat: -37.822, MaxLat: -37.807},
	{Name: "Docklands", MinLon: 144.930, MaxLon: 144.950, MinLat: -37.825, MaxLat: -37.810},
	{Name: "Southbank", MinLon: 144.950, MaxLon: 144.975, MinLat: -37.835, MaxLat: -37.822},
	{Name: "Carlton", MinLon: 144.960, MaxLon: 144.980, MinLat: -37.807, MaxLat: -37.790},
	{Name: "North Melbourne", MinLon: 144.935, MaxLon: 144.960, MinLat: -37.810, MaxLat: -37.790},
	{Name: "East Melbourne", MinLon: 144.975, MaxLon: 144.995, MinLat: -37.822, MaxLat: -37.807},
	{Name: "South Melbourne", MinLon: 144.945, MaxLon: 144.975, MinLat: -37.845, MaxLat: -37.835},
	{Name: "Fitzroy", MinLon: 144.975, MaxLon: 144.990, MinLat: -37.807, MaxLat: -37.795},
}

var defaultClassifier = NewAreaClassifier(nil)

// AreaClassifier assigns a sensor position to a named area using an ordered
// list of rectangles. It is immutable after construction.
type AreaClassifier struct {
	boxes []models.AreaBox
}

// NewAreaClassifier copies boxes; an empty table falls back to DefaultAreas.
func NewAreaClassifier(boxes []models.AreaBox) *AreaClassifier {
	if len(boxes) == 0 {
		boxes = DefaultAreas
	}
	return &AreaClassifier{boxes: append([]models.AreaBox(nil), boxes...)}
}

// Classify returns the first box containing (lon, lat), AreaGreaterMelbourne
// when none does, and AreaUnknown when either coordinate is missing.
func (c *AreaClassifier) Classify(lon, lat *float64) string {
	if lon == nil || lat == nil {
		return AreaUnknown
	}
	for _, b := range c.boxes {
		if b.Contains(*lon, *lat) {
			return b.Name
		}
	}
	return AreaGreaterMelbourne
}

// ClassifyArea classifies against DefaultAreas.
func ClassifyArea(lon, lat *float64) string {
	return defaultClassifier.Classify(lon, lat)
}
