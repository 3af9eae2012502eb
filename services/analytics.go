package services

import (
	"context"

	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/sync/errgroup"

	"parking-insights/models"
	"parking-insights/storage"
	"parking-insights/utils"
)

// Options configures an AnalyticsService.
type Options struct {
	// SensorsPath and VehiclesPath are dataset paths relative to the loader root.
	SensorsPath  string
	VehiclesPath string
	// Areas replaces DefaultAreas when non-empty.
	Areas     []models.AreaBox
	Synthetic *SyntheticGenerator
}

// AnalyticsService computes dashboard metrics from the dataset files.
// Every call re-reads its inputs; nothing is cached between calls.
type AnalyticsService struct {
	reader       storage.DatasetReader
	cleaner      *Cleaner
	classifier   *AreaClassifier
	synthetic    *SyntheticGenerator
	logger       *utils.Logger
	sensorsPath  string
	vehiclesPath string
}

func NewAnalyticsService(reader storage.DatasetReader, opts Options, logger *utils.Logger) *AnalyticsService {
	synthetic := opts.Synthetic
	if synthetic == nil {
		synthetic = NewSyntheticGenerator(nil, nil)
	}
	return &AnalyticsService{
		reader:       reader,
		cleaner:      NewCleaner(logger),
		classifier:   NewAreaClassifier(opts.Areas),
		synthetic:    synthetic,
		logger:       logger,
		sensorsPath:  opts.SensorsPath,
		vehiclesPath: opts.VehiclesPath,
	}
}

// Synthetic exposes the placeholder-data generator used for time series.
func (s *AnalyticsService) Synthetic() *SyntheticGenerator {
	return s.synthetic
}

func (s *AnalyticsService) loadSensors(op string) ([]models.SensorRecord, error) {
	raw, err := s.reader.ParseStructured(s.sensorsPath)
	if err != nil {
		s.logger.Error("[analytics] %s: load sensors: %v", op, err)
		return nil, &AnalyticsError{Op: op, Err: err}
	}
	sensors, err := s.cleaner.Sensors(raw)
	if err != nil {
		s.logger.Error("[analytics] %s: clean sensors: %v", op, err)
		return nil, &AnalyticsError{Op: op, Err: err}
	}
	return sensors, nil
}

// SensorStatusSummary counts sensors per status label with each label's
// share of the total.
func (s *AnalyticsService) SensorStatusSummary() (*models.SensorStatusSummary, error) {
	sensors, err := s.loadSensors("sensor status summary")
	if err != nil {
		return nil, err
	}

	counts := orderedmap.New[string, int]()
	for _, sensor := range sensors {
		n, _ := counts.Get(sensor.Status)
		counts.Set(sensor.Status, n+1)
	}

	total := len(sensors)
	statuses := orderedmap.New[string, models.StatusCount](counts.Len())
	for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
		statuses.Set(pair.Key, models.StatusCount{
			Count:      pair.Value,
			Percentage: models.RoundPercent(float64(pair.Value) / float64(total) * 100),
		})
	}

	return &models.SensorStatusSummary{Total: total, Statuses: statuses}, nil
}

// ParkingAnalytics computes availability, the per-area breakdown, a synthetic
// hourly series and recommendations.
func (s *AnalyticsService) ParkingAnalytics() (*models.ParkingAnalytics, error) {
	const op = "parking analytics"

	sensors, err := s.loadSensors(op)
	if err != nil {
		return nil, err
	}

	total := len(sensors)
	if total == 0 {
		s.logger.Warn("[analytics] %s: sensor dataset is empty", op)
		return nil, &AnalyticsError{Op: op, Err: ErrDivisionUndefined}
	}

	available := lo.CountBy(sensors, func(x models.SensorRecord) bool {
		return x.Status == models.StatusUnoccupied
	})
	occupied := lo.CountBy(sensors, func(x models.SensorRecord) bool {
		return x.Status == models.StatusPresent
	})
	rate := models.RoundPercent(float64(available) / float64(total) * 100)
	breakdown := s.breakdown(sensors)

	report := &models.ParkingAnalytics{
		TotalSensors:     total,
		AvailableSensors: available,
		AvailabilityRate: rate,
		AreaBreakdown:    breakdown,
		TimeSeries:       s.synthetic.HourlySeries(available, occupied, total),
		Recommendations:  Recommend(breakdown, rate),
		GeneratedAt:      s.synthetic.Now(),
	}

	s.logger.Debug("[analytics] %s: %d sensors, %s available across %d areas",
		op, total, rate, breakdown.Len())
	return report, nil
}

func (s *AnalyticsService) breakdown(sensors []models.SensorRecord) *models.AreaBreakdown {
	breakdown := models.NewAreaBreakdown()
	for _, sensor := range sensors {
		b := breakdown.Bucket(s.classifier.Classify(sensor.Lon, sensor.Lat))
		b.Total++
		switch sensor.Status {
		case models.StatusUnoccupied:
			b.Available++
		case models.StatusPresent:
			b.Occupied++
		default:
			b.Maintenance++
		}
	}
	return breakdown
}

// VehicleAnalytics derives growth figures from the ownership dataset.
func (s *AnalyticsService) VehicleAnalytics() (*models.VehicleAnalytics, error) {
	const op = "vehicle analytics"

	rows, err := s.reader.ParseDelimited(s.vehiclesPath)
	if err != nil {
		s.logger.Error("[analytics] %s: load vehicles: %v", op, err)
		return nil, &AnalyticsError{Op: op, Err: err}
	}

	records := s.cleaner.Vehicles(rows)
	if len(records) == 0 {
		return nil, &AnalyticsError{Op: op, Err: storage.ErrMalformedInput}
	}

	first := records[0]
	latest := records[len(records)-1]

	var growth models.Percent
	if len(records) > 1 {
		previous := records[len(records)-2]
		growth = percentChange(latest.Vehicles, previous.Vehicles)
	}

	return &models.VehicleAnalytics{
		TotalVehicles:   latest.Vehicles,
		VehiclesPer1000: latest.VehiclesPer1000,
		GrowthTrend:     growth,
		// Compares against the first row, not the same period a year earlier.
		// Kept for output compatibility with the existing dashboard.
		YearOverYearChange: percentChange(latest.Vehicles, first.Vehicles),
		LatestYear:         latest.Year,
		VehicleGroup:       latest.VehicleGroup,
		History:            records,
	}, nil
}

// percentChange is (current-base)/base*100, dividing by 1 instead of 0 when
// base is zero.
func percentChange(current, base float64) models.Percent {
	denominator := base
	if denominator == 0 {
		denominator = 1
	}
	return models.RoundPercent((current - base) / denominator * 100)
}

// Overview computes parking, vehicle and sensor figures concurrently together
// with the dataset listing. The first failure cancels the rest.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.Overview, error) {
	var ov models.Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p, err := s.ParkingAnalytics()
		ov.Parking = p
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		v, err := s.VehicleAnalytics()
		ov.Vehicles = v
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		summary, err := s.SensorStatusSummary()
		ov.Sensors = summary
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		sets, err := s.reader.ListDatasets()
		if err != nil {
			return &AnalyticsError{Op: "list datasets", Err: err}
		}
		ov.Datasets = sets
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	ov.GeneratedAt = s.synthetic.Now()
	return &ov, nil
}
