package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"parking-insights/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataRoot     string
	SensorsFile  string
	VehiclesFile string
	AreasFile    string

	HTTPPort      int
	LogLevel      string
	SyntheticSeed int64
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataRoot:     getEnv("DATA_ROOT", "./data"),
		SensorsFile:  getEnv("SENSORS_FILE", "raw/parking_sensors.json"),
		VehiclesFile: getEnv("VEHICLES_FILE", "processed/vehicle_ownership.csv"),
		AreasFile:    getEnv("AREAS_FILE", ""),

		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SyntheticSeed: int64(getEnvInt("SYNTHETIC_SEED", 0)),
	}
}

// ListenAddr returns the host:port string for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

type areasFile struct {
	Areas []models.AreaBox `yaml:"areas"`
}

// LoadAreas reads an ordered bounding-box table from a YAML file:
//
//	areas:
//	  - name: Melbourne CBD
//	    min_lon: 144.95
//	    max_lon: 144.98
//	    min_lat: -37.825
//	    max_lat: -37.805
func LoadAreas(path string) ([]models.AreaBox, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read areas file: %w", err)
	}
	var f areasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse areas file: %w", err)
	}
	for i, a := range f.Areas {
		if a.Name == "" {
			return nil, fmt.Errorf("parse areas file: entry %d has no name", i)
		}
		if a.MinLon > a.MaxLon || a.MinLat > a.MaxLat {
			return nil, fmt.Errorf("parse areas file: %q has inverted bounds", a.Name)
		}
	}
	return f.Areas, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
