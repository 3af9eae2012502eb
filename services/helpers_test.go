package services

import (
	"errors"
	"time"

	"parking-insights/models"
	"parking-insights/storage"
	"parking-insights/utils"
)

func newTestLogger() *utils.Logger { return utils.NewDiscardLogger() }

var fixedNow = time.Date(2024, 5, 14, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// constRand always returns n, so jitter(spread) is n - spread.
type constRand struct{ n int }

func (r constRand) Intn(int) int { return r.n }

// fakeReader serves canned loader output.
type fakeReader struct {
	sensors    any
	sensorsErr error
	rows       []*storage.Record
	rowsErr    error
	datasets   map[string][]models.DatasetEntry
	listErr    error
}

func (f *fakeReader) ParseDelimited(string) ([]*storage.Record, error) {
	return f.rows, f.rowsErr
}

func (f *fakeReader) ParseStructured(string) (any, error) {
	return f.sensors, f.sensorsErr
}

func (f *fakeReader) StatFile(string) models.FileMetadata {
	return models.FileMetadata{}
}

func (f *fakeReader) ListDatasets() (map[string][]models.DatasetEntry, error) {
	return f.datasets, f.listErr
}

func sensor(status string, lon, lat float64) map[string]any {
	return map[string]any{
		"status_description": status,
		"location":           map[string]any{"lon": lon, "lat": lat},
	}
}

func sensorDoc(items ...map[string]any) any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func vehicleRows(counts ...float64) []*storage.Record {
	rows := make([]*storage.Record, len(counts))
	for i, c := range counts {
		rows[i] = storage.NewRecord("year", float64(2018+i), "vehicle_group", "All types", "vehicles", c)
	}
	return rows
}

func newTestService(r storage.DatasetReader) *AnalyticsService {
	return NewAnalyticsService(r, Options{
		SensorsPath:  "raw/parking_sensors.json",
		VehiclesPath: "processed/vehicle_ownership.csv",
		Synthetic:    NewSyntheticGenerator(constRand{n: seriesJitter}, fixedClock),
	}, newTestLogger())
}

var errBoom = errors.New("boom")
