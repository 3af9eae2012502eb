package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"parking-insights/models"
	"parking-insights/storage"
)

func TestParkingAnalyticsExample(t *testing.T) {
	svc := newTestService(&fakeReader{sensors: sensorDoc(
		sensor("Unoccupied", 144.96, -37.815),
		sensor("Present", 144.96, -37.815),
	)})

	r, err := svc.ParkingAnalytics()
	if err != nil {
		t.Fatalf("ParkingAnalytics: %v", err)
	}
	if r.TotalSensors != 2 {
		t.Errorf("TotalSensors: got %d, want 2", r.TotalSensors)
	}
	if r.AvailabilityRate != 50 {
		t.Errorf("AvailabilityRate: got %v, want 50", r.AvailabilityRate)
	}
	cbd, ok := r.AreaBreakdown.Get("Melbourne CBD")
	if !ok {
		t.Fatal("Melbourne CBD bucket missing")
	}
	want := models.AreaBucket{Total: 2, Available: 1, Occupied: 1, Maintenance: 0}
	if cbd != want {
		t.Errorf("CBD bucket: got %+v, want %+v", cbd, want)
	}
	if len(r.TimeSeries) != 24 {
		t.Errorf("TimeSeries len: got %d, want 24", len(r.TimeSeries))
	}
	if len(r.Recommendations) != len(generalRecommendations) {
		t.Errorf("50%% availability in one area should only give general recommendations, got %v", r.Recommendations)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"availabilityRate":50.00`) {
		t.Errorf("availabilityRate should carry two decimals: %s", data)
	}
}

func TestParkingAnalyticsBreakdown(t *testing.T) {
	svc := newTestService(&fakeReader{sensors: sensorDoc(
		sensor("Present", 144.94, -37.816),
		sensor("Present", 144.94, -37.816),
		sensor("Unoccupied", 144.96, -37.815),
		sensor("Unknown", 145.20, -37.90),
		map[string]any{"status_description": "Present"},
	)})

	r, err := svc.ParkingAnalytics()
	if err != nil {
		t.Fatal(err)
	}

	names := r.AreaBreakdown.Names()
	wantNames := []string{"Docklands", "Melbourne CBD", AreaGreaterMelbourne, AreaUnknown}
	if strings.Join(names, "|") != strings.Join(wantNames, "|") {
		t.Errorf("area order: got %v, want %v", names, wantNames)
	}

	greater, _ := r.AreaBreakdown.Get(AreaGreaterMelbourne)
	if greater.Maintenance != 1 {
		t.Errorf("non Present/Unoccupied status should count as maintenance: %+v", greater)
	}
	if r.AvailabilityRate != 20 {
		t.Errorf("AvailabilityRate: got %v, want 20", r.AvailabilityRate)
	}
	if !strings.Contains(r.Recommendations[0], "Docklands, Greater Melbourne, Unknown") {
		t.Errorf("area rule: got %q", r.Recommendations[0])
	}
	if !strings.Contains(r.Recommendations[1], "dynamic pricing") {
		t.Errorf("low-rate rule: got %q", r.Recommendations[1])
	}
}

func TestParkingAnalyticsRateBounds(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		items := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			status := "Present"
			if i%3 == 0 {
				status = "Unoccupied"
			}
			items = append(items, sensor(status, 144.96, -37.815))
		}
		r, err := newTestService(&fakeReader{sensors: sensorDoc(items...)}).ParkingAnalytics()
		if err != nil {
			t.Fatal(err)
		}
		if r.AvailabilityRate < 0 || r.AvailabilityRate > 100 {
			t.Errorf("%d sensors: rate %v out of range", n, r.AvailabilityRate)
		}
		if models.RoundPercent(float64(r.AvailabilityRate)) != r.AvailabilityRate {
			t.Errorf("%d sensors: rate %v not rounded to 2 decimals", n, r.AvailabilityRate)
		}
	}
}

func TestParkingAnalyticsZeroSensors(t *testing.T) {
	svc := newTestService(&fakeReader{sensors: []any{}})

	_, err := svc.ParkingAnalytics()
	if !errors.Is(err, ErrDivisionUndefined) {
		t.Errorf("expected ErrDivisionUndefined, got %v", err)
	}
	if !errors.Is(err, ErrAnalyticsGenerationFailed) {
		t.Errorf("expected ErrAnalyticsGenerationFailed, got %v", err)
	}
}

func TestParkingAnalyticsPropagatesLoaderErrors(t *testing.T) {
	svc := newTestService(&fakeReader{sensorsErr: storage.ErrNotFound})

	_, err := svc.ParkingAnalytics()
	if !errors.Is(err, ErrAnalyticsGenerationFailed) || !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}
	var ae *AnalyticsError
	if !errors.As(err, &ae) || ae.Op != "parking analytics" {
		t.Errorf("expected AnalyticsError for parking analytics, got %#v", err)
	}
}

func TestSensorStatusSummary(t *testing.T) {
	svc := newTestService(&fakeReader{sensors: sensorDoc(
		sensor("Present", 144.96, -37.815),
		sensor("Unoccupied", 144.96, -37.815),
		sensor("Present", 144.96, -37.815),
		map[string]any{},
	)})

	s, err := svc.SensorStatusSummary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total != 4 {
		t.Errorf("Total: got %d, want 4", s.Total)
	}

	present, _ := s.Statuses.Get("Present")
	if present.Count != 2 || present.Percentage != 50 {
		t.Errorf("Present: got %+v", present)
	}
	unknown, ok := s.Statuses.Get("unknown")
	if !ok || unknown.Count != 1 || unknown.Percentage != 25 {
		t.Errorf("unknown: got %+v", unknown)
	}

	var order []string
	for pair := s.Statuses.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	if strings.Join(order, ",") != "Present,Unoccupied,unknown" {
		t.Errorf("status order: got %v", order)
	}
}

func TestSensorStatusSummaryThirds(t *testing.T) {
	svc := newTestService(&fakeReader{sensors: sensorDoc(
		sensor("Present", 0, 0),
		sensor("Unoccupied", 0, 0),
		sensor("Out of service", 0, 0),
	)})

	s, err := svc.SensorStatusSummary()
	if err != nil {
		t.Fatal(err)
	}
	for pair := s.Statuses.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Percentage != 33.33 {
			t.Errorf("%s: got %v, want 33.33", pair.Key, pair.Value.Percentage)
		}
	}
}

func TestSensorStatusSummaryMalformed(t *testing.T) {
	svc := newTestService(&fakeReader{sensors: map[string]any{"not": "an array"}})

	_, err := svc.SensorStatusSummary()
	if !errors.Is(err, storage.ErrMalformedInput) || !errors.Is(err, ErrAnalyticsGenerationFailed) {
		t.Errorf("expected wrapped ErrMalformedInput, got %v", err)
	}
}

func TestVehicleAnalyticsExample(t *testing.T) {
	svc := newTestService(&fakeReader{rows: vehicleRows(100, 110, 121)})

	v, err := svc.VehicleAnalytics()
	if err != nil {
		t.Fatal(err)
	}
	if v.GrowthTrend != 10 {
		t.Errorf("GrowthTrend: got %v, want 10.00", v.GrowthTrend)
	}
	if v.YearOverYearChange != 21 {
		t.Errorf("YearOverYearChange: got %v, want 21.00", v.YearOverYearChange)
	}
	if v.TotalVehicles != 121 || v.LatestYear != 2020 || v.VehicleGroup != "All types" {
		t.Errorf("latest row fields: %+v", v)
	}
	if len(v.History) != 3 {
		t.Errorf("History len: got %d", len(v.History))
	}
}

func TestVehicleAnalyticsSingleRow(t *testing.T) {
	v, err := newTestService(&fakeReader{rows: vehicleRows(500)}).VehicleAnalytics()
	if err != nil {
		t.Fatal(err)
	}
	if v.GrowthTrend != 0 || v.YearOverYearChange != 0 {
		t.Errorf("single row should give zero change, got %v / %v", v.GrowthTrend, v.YearOverYearChange)
	}
}

func TestVehicleAnalyticsZeroBaselineDividesByOne(t *testing.T) {
	v, err := newTestService(&fakeReader{rows: vehicleRows(0, 0, 5)}).VehicleAnalytics()
	if err != nil {
		t.Fatal(err)
	}
	if v.YearOverYearChange != 500 {
		t.Errorf("YearOverYearChange: got %v, want 500", v.YearOverYearChange)
	}
	if v.GrowthTrend != 500 {
		t.Errorf("GrowthTrend: got %v, want 500", v.GrowthTrend)
	}
}

func TestVehicleAnalyticsNegativeGrowth(t *testing.T) {
	v, err := newTestService(&fakeReader{rows: vehicleRows(200, 180, 171)}).VehicleAnalytics()
	if err != nil {
		t.Fatal(err)
	}
	if v.GrowthTrend != -5 {
		t.Errorf("GrowthTrend: got %v, want -5", v.GrowthTrend)
	}
	if v.YearOverYearChange != -14.5 {
		t.Errorf("YearOverYearChange: got %v, want -14.5", v.YearOverYearChange)
	}
}

func TestVehicleAnalyticsLoaderError(t *testing.T) {
	_, err := newTestService(&fakeReader{rowsErr: storage.ErrMalformedInput}).VehicleAnalytics()
	if !errors.Is(err, storage.ErrMalformedInput) || !errors.Is(err, ErrAnalyticsGenerationFailed) {
		t.Errorf("expected wrapped ErrMalformedInput, got %v", err)
	}
}

func TestOverview(t *testing.T) {
	datasets := map[string][]models.DatasetEntry{
		"raw": {{Name: "parking_sensors.json", Path: "raw/parking_sensors.json"}},
	}
	svc := newTestService(&fakeReader{
		sensors:  sensorDoc(sensor("Unoccupied", 144.96, -37.815)),
		rows:     vehicleRows(1, 2),
		datasets: datasets,
	})

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ov.Parking == nil || ov.Vehicles == nil || ov.Sensors == nil {
		t.Fatalf("overview missing sections: %+v", ov)
	}
	if len(ov.Datasets["raw"]) != 1 {
		t.Errorf("datasets: got %v", ov.Datasets)
	}
	if !ov.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt: got %v", ov.GeneratedAt)
	}
}

func TestOverviewFailsOnAnyError(t *testing.T) {
	svc := newTestService(&fakeReader{
		sensors: sensorDoc(sensor("Unoccupied", 144.96, -37.815)),
		rowsErr: storage.ErrNotFound,
	})

	_, err := svc.Overview(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	svc = newTestService(&fakeReader{
		sensors: sensorDoc(sensor("Unoccupied", 144.96, -37.815)),
		rows:    vehicleRows(1),
		listErr: errBoom,
	})
	_, err = svc.Overview(context.Background())
	if !errors.Is(err, errBoom) || !errors.Is(err, ErrAnalyticsGenerationFailed) {
		t.Errorf("expected wrapped list error, got %v", err)
	}
}

func TestAnalyticsAgainstFiles(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("raw/parking_sensors.json", `[
		{"kerbsideid": 1, "status_description": "Unoccupied", "zone_number": 7, "lastupdated": "2024-05-14T05:31:12+00:00", "location": {"lon": 144.96, "lat": -37.815}},
		{"kerbsideid": 2, "status_description": "Present", "location": {"lon": 144.96, "lat": -37.815}}
	]`)
	mustWrite("processed/vehicle_ownership.csv", "year,vehicle_group,value,vehiclesPer1000\n2019,All types,100,500\n2020,All types,110,520\n2021,All types,121,540\n")

	svc := newTestService(storage.NewLoader(root, newTestLogger()))

	p, err := svc.ParkingAnalytics()
	if err != nil {
		t.Fatal(err)
	}
	if p.AvailabilityRate != 50 {
		t.Errorf("AvailabilityRate: got %v", p.AvailabilityRate)
	}

	v, err := svc.VehicleAnalytics()
	if err != nil {
		t.Fatal(err)
	}
	if v.GrowthTrend != 10 || v.YearOverYearChange != 21 || v.VehiclesPer1000 != 540 {
		t.Errorf("vehicle analytics: %+v", v)
	}

	if err := os.Remove(filepath.Join(root, "raw", "parking_sensors.json")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ParkingAnalytics(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("files are re-read per call; expected ErrNotFound, got %v", err)
	}
}

func TestAnalyticsConcurrentCalls(t *testing.T) {
	svc := newTestService(&fakeReader{
		sensors: sensorDoc(sensor("Unoccupied", 144.96, -37.815), sensor("Present", 144.94, -37.816)),
		rows:    vehicleRows(1, 2, 3),
	})

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); _, err := svc.ParkingAnalytics(); errs <- err }()
		go func() { defer wg.Done(); _, err := svc.VehicleAnalytics(); errs <- err }()
		go func() { defer wg.Done(); _, err := svc.SensorStatusSummary(); errs <- err }()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent call failed: %v", err)
		}
	}
}
