package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking-insights/services"
	"parking-insights/storage"
)

func (s *Server) handleOverview(c *gin.Context) {
	ov, err := s.analytics.Overview(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (s *Server) handleDatasets(c *gin.Context) {
	sets, err := s.datasets.ListDatasets()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sets})
}

func (s *Server) handleParkingAnalytics(c *gin.Context) {
	report, err := s.analytics.ParkingAnalytics()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleParkingHistory(c *gin.Context) {
	days, ok := queryInt(c, "days", 7)
	if !ok {
		return
	}
	report, err := s.analytics.ParkingAnalytics()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"synthetic": true,
		"data":      s.analytics.Synthetic().History(days, float64(report.AvailabilityRate)),
	})
}

func (s *Server) handleParkingPredictions(c *gin.Context) {
	hours, ok := queryInt(c, "hours", 24)
	if !ok {
		return
	}
	report, err := s.analytics.ParkingAnalytics()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"synthetic": true,
		"data":      s.analytics.Synthetic().Forecast(hours, float64(report.AvailabilityRate)),
	})
}

func (s *Server) handleVehicleAnalytics(c *gin.Context) {
	report, err := s.analytics.VehicleAnalytics()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleSensorStatus(c *gin.Context) {
	summary, err := s.analytics.SensorStatusSummary()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// queryInt reads a positive integer query parameter, writing a 400 and
// returning false when it is malformed.
func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return n, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrMalformedInput), errors.Is(err, services.ErrDivisionUndefined):
		status = http.StatusUnprocessableEntity
	}
	s.logger.Warn("[http] %s %s failed (%d): %v", c.Request.Method, c.Request.URL.Path, status, err)
	c.JSON(status, gin.H{"error": err.Error()})
}
