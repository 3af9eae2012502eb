package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"parking-insights/api"
	"parking-insights/config"
	"parking-insights/models"
	"parking-insights/services"
	"parking-insights/storage"
	"parking-insights/utils"
)

func main() {
	serve := flag.Bool("serve", false, "serve the analytics over HTTP instead of printing a report")
	exportPath := flag.String("export", "", "write the area breakdown to this CSV file")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLogger().WithLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Parking Insights starting ===")
	logger.Info("Config — data root: %s | sensors: %s | vehicles: %s",
		cfg.DataRoot, cfg.SensorsFile, cfg.VehiclesFile)

	var areas []models.AreaBox
	if cfg.AreasFile != "" {
		loaded, err := config.LoadAreas(cfg.AreasFile)
		if err != nil {
			logger.Error("Failed to load area table: %v", err)
			os.Exit(1)
		}
		areas = loaded
		logger.Info("Loaded %d areas from %s", len(areas), cfg.AreasFile)
	}

	loader := storage.NewLoader(cfg.DataRoot, logger)
	analytics := services.NewAnalyticsService(loader, services.Options{
		SensorsPath:  cfg.SensorsFile,
		VehiclesPath: cfg.VehiclesFile,
		Areas:        areas,
		Synthetic:    services.NewSeededGenerator(cfg.SyntheticSeed),
	}, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *serve {
		srv := api.New(cfg, analytics, loader, logger)
		logger.Info("HTTP API listening on %s", cfg.ListenAddr())
		if err := srv.Run(ctx); err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
		return
	}

	overview, err := analytics.Overview(ctx)
	if err != nil {
		logger.Error("Failed to build overview: %v", err)
		os.Exit(1)
	}

	services.PrintOverview(os.Stdout, overview)

	if *exportPath != "" {
		w, err := storage.NewAreaCSVWriter(*exportPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
			os.Exit(1)
		}
		if err := exportBreakdown(w, overview.Parking.AreaBreakdown); err != nil {
			logger.Error("CSV export failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Area breakdown saved to %s", *exportPath)
	}
}

func exportBreakdown(w storage.BreakdownWriter, breakdown *models.AreaBreakdown) error {
	if err := w.WriteBreakdown(breakdown); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
