package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"parking-insights/config"
	"parking-insights/services"
	"parking-insights/storage"
	"parking-insights/utils"
)

const requestIDHeader = "X-Request-ID"

// Server exposes the analytics service over HTTP.
type Server struct {
	cfg       *config.Config
	analytics *services.AnalyticsService
	datasets  storage.DatasetReader
	logger    *utils.Logger
	metrics   *metrics
	engine    *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg *config.Config, analytics *services.AnalyticsService, datasets storage.DatasetReader, logger *utils.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	m := newMetrics()

	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(accessLogMiddleware(logger))
	engine.Use(m.middleware())
	engine.Use(corsMiddleware())

	server := &Server{
		cfg:       cfg,
		analytics: analytics,
		datasets:  datasets,
		logger:    logger,
		metrics:   m,
		engine:    engine,
	}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(s.metrics.handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/overview", s.handleOverview)
		api.GET("/datasets", s.handleDatasets)

		api.GET("/parking/analytics", s.handleParkingAnalytics)
		api.GET("/parking/history", s.handleParkingHistory)
		api.GET("/parking/predictions", s.handleParkingPredictions)

		api.GET("/vehicles/analytics", s.handleVehicleAnalytics)
		api.GET("/sensors/status", s.handleSensorStatus)
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLogMiddleware(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("[http] %s %s %d %v id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Microsecond), c.GetString("request_id"))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
