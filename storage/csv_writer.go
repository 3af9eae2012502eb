package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"parking-insights/models"
)

// AreaCSVWriter exports an area breakdown as a CSV report.
// It is safe for concurrent use.
type AreaCSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewAreaCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewAreaCSVWriter(path string) (*AreaCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"area", "total", "available", "occupied", "maintenance", "available_pct",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &AreaCSVWriter{file: f, writer: w}, nil
}

// WriteBreakdown appends one row per area, in breakdown order.
func (c *AreaCSVWriter) WriteBreakdown(breakdown *models.AreaBreakdown) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range breakdown.Names() {
		b, _ := breakdown.Get(name)
		row := []string{
			name,
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Available),
			strconv.Itoa(b.Occupied),
			strconv.Itoa(b.Maintenance),
			strconv.FormatFloat(float64(models.RoundPercent(b.AvailableRatio()*100)), 'f', 2, 64),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *AreaCSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
