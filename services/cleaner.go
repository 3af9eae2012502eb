package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cast"

	"parking-insights/models"
	"parking-insights/storage"
	"parking-insights/utils"
)

// Cleaner turns loader output into typed sensor and vehicle records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Sensors converts a decoded sensor document into SensorRecords.
// The document must be a JSON array; elements that are not objects are dropped.
func (c *Cleaner) Sensors(raw any) ([]models.SensorRecord, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: sensor document is %T, want array", storage.ErrMalformedInput, raw)
	}

	result := make([]models.SensorRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			c.logger.Warn("[cleaner] Dropping sensor #%d: not an object (%T)", i, item)
			continue
		}
		result = append(result, c.sensor(obj))
	}

	if dropped := len(items) - len(result); dropped > 0 {
		c.logger.Info("[cleaner] Cleaned %d → %d sensors (dropped %d)", len(items), len(result), dropped)
	}
	return result, nil
}

func (c *Cleaner) sensor(obj map[string]any) models.SensorRecord {
	s := models.SensorRecord{
		ID:     firstText(obj, "kerbsideid", "bay_id", "id"),
		Status: firstText(obj, "status_description", "status"),
	}
	if s.Status == "" {
		s.Status = models.StatusUnknown
	}

	if loc, ok := obj["location"].(map[string]any); ok {
		s.Lon = coordinate(loc, "lon", "longitude")
		s.Lat = coordinate(loc, "lat", "latitude")
	}
	if s.Lon == nil {
		s.Lon = coordinate(obj, "lon", "longitude")
	}
	if s.Lat == nil {
		s.Lat = coordinate(obj, "lat", "latitude")
	}

	if v, ok := obj["zone_number"]; ok && v != nil {
		if zone, err := cast.ToIntE(v); err == nil {
			s.ZoneNumber = &zone
		} else {
			c.logger.Debug("[cleaner] Ignoring zone_number %v: %v", v, err)
		}
	}

	if v, ok := obj["lastupdated"]; ok && v != nil {
		if ts, err := cast.ToTimeE(v); err == nil {
			s.LastUpdated = &ts
		} else {
			c.logger.Debug("[cleaner] Ignoring lastupdated %v: %v", v, err)
		}
	}

	return s
}

// Vehicles maps delimited rows onto VehicleRecords. The count column is
// "vehicles" when present, otherwise "value"; non-numeric counts become 0.
func (c *Cleaner) Vehicles(rows []*storage.Record) []models.VehicleRecord {
	result := make([]models.VehicleRecord, 0, len(rows))
	for _, r := range rows {
		countKey := "value"
		if _, ok := r.Get("vehicles"); ok {
			countKey = "vehicles"
		}

		year, _ := r.Number("year")
		vehicles, ok := r.Number(countKey)
		if !ok {
			c.logger.Debug("[cleaner] Non-numeric %s %q for year %s", countKey, r.Text(countKey), r.Text("year"))
		}
		per1000, _ := r.Number("vehiclesPer1000")

		result = append(result, models.VehicleRecord{
			Year:            int(year),
			VehicleGroup:    normaliseText(r.Text("vehicle_group")),
			Vehicles:        vehicles,
			VehiclesPer1000: per1000,
		})
	}
	return result
}

func firstText(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || v == nil {
			continue
		}
		if s := normaliseText(cast.ToString(v)); s != "" {
			return s
		}
	}
	return ""
}

func coordinate(obj map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || v == nil {
			continue
		}
		if _, isBool := v.(bool); isBool {
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			continue
		}
		return &f
	}
	return nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
