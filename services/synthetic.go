package services

import (
	"math/rand"
	"sync"
	"time"

	"parking-insights/models"
)

// RandSource is the subset of *rand.Rand the synthetic generator needs.
type RandSource interface {
	Intn(n int) int
}

const (
	seriesHours       = 24
	seriesJitter      = 10
	historyJitter     = 15
	forecastJitter    = 10
	maxHistoryDays    = 90
	maxForecastHours  = 48
	forecastBaseConf  = 95.0
	forecastConfDecay = 2.0
	forecastMinConf   = 50.0
)

// SyntheticGenerator fabricates placeholder availability figures for charts.
// Nothing it returns is measured telemetry; every point is flagged Synthetic.
type SyntheticGenerator struct {
	mu  sync.Mutex
	rnd RandSource
	now func() time.Time
}

// NewSyntheticGenerator uses rnd and now; nil values fall back to a
// time-seeded source and time.Now.
func NewSyntheticGenerator(rnd RandSource, now func() time.Time) *SyntheticGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &SyntheticGenerator{rnd: rnd, now: now}
}

// NewSeededGenerator returns a generator seeded with seed, or time-seeded when seed is 0.
func NewSeededGenerator(seed int64) *SyntheticGenerator {
	if seed == 0 {
		return NewSyntheticGenerator(nil, nil)
	}
	return NewSyntheticGenerator(rand.New(rand.NewSource(seed)), nil)
}

// Now returns the generator's clock reading.
func (g *SyntheticGenerator) Now() time.Time {
	return g.now()
}

// HourlySeries returns 24 hourly points ending at now, each perturbing the
// current available/occupied counts by up to ±10 within [0, total].
func (g *SyntheticGenerator) HourlySeries(available, occupied, total int) []models.TimeSeriesPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	points := make([]models.TimeSeriesPoint, 0, seriesHours)
	for i := seriesHours - 1; i >= 0; i-- {
		ts := now.Add(-time.Duration(i) * time.Hour)
		points = append(points, models.TimeSeriesPoint{
			Timestamp: ts,
			Hour:      ts.Format("15:04"),
			Available: clampInt(available+g.jitter(seriesJitter), 0, total),
			Occupied:  clampInt(occupied+g.jitter(seriesJitter), 0, total),
			Synthetic: true,
		})
	}
	return points
}

// History returns one point per day for the last days days, oldest first.
func (g *SyntheticGenerator) History(days int, baseRate float64) []models.HistoryPoint {
	days = clampInt(days, 1, maxHistoryDays)

	g.mu.Lock()
	defer g.mu.Unlock()

	today := g.now()
	points := make([]models.HistoryPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		rate := clampFloat(baseRate+float64(g.jitter(historyJitter)), 0, 100)
		points = append(points, models.HistoryPoint{
			Date:             day.Format("2006-01-02"),
			AvailabilityRate: models.RoundPercent(rate),
			Synthetic:        true,
		})
	}
	return points
}

// Forecast returns hourly predictions starting one hour after now. Confidence
// decays linearly with the horizon.
func (g *SyntheticGenerator) Forecast(hours int, baseRate float64) []models.ForecastPoint {
	hours = clampInt(hours, 1, maxForecastHours)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	points := make([]models.ForecastPoint, 0, hours)
	for i := 0; i < hours; i++ {
		rate := clampFloat(baseRate+float64(g.jitter(forecastJitter)), 0, 100)
		conf := clampFloat(forecastBaseConf-forecastConfDecay*float64(i), forecastMinConf, 100)
		points = append(points, models.ForecastPoint{
			Timestamp:        now.Add(time.Duration(i+1) * time.Hour),
			AvailabilityRate: models.RoundPercent(rate),
			Confidence:       models.RoundPercent(conf),
			Synthetic:        true,
		})
	}
	return points
}

// jitter returns a value in [-spread, spread]. Callers hold g.mu.
func (g *SyntheticGenerator) jitter(spread int) int {
	return g.rnd.Intn(2*spread+1) - spread
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func clampFloat(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
