package storage

import "parking-insights/models"

// DatasetReader is what the aggregator needs from the loader.
type DatasetReader interface {
	ParseDelimited(path string) ([]*Record, error)
	ParseStructured(path string) (any, error)
	StatFile(path string) models.FileMetadata
	ListDatasets() (map[string][]models.DatasetEntry, error)
}

// BreakdownWriter is the interface for exporting an area breakdown.
type BreakdownWriter interface {
	WriteBreakdown(breakdown *models.AreaBreakdown) error
	Close() error
}

var _ DatasetReader = (*Loader)(nil)
var _ BreakdownWriter = (*AreaCSVWriter)(nil)
