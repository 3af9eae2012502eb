package models

import "time"

// FileMetadata describes a dataset file on disk. Size and ModifiedAt are
// only meaningful when Exists is true.
type FileMetadata struct {
	Exists     bool       `json:"exists"`
	Size       int64      `json:"size,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

// DatasetEntry is one file inside a dataset collection.
type DatasetEntry struct {
	Name     string       `json:"name"`
	Path     string       `json:"path"`
	Metadata FileMetadata `json:"metadata"`
}

// Overview bundles every dashboard figure computed in one request.
type Overview struct {
	Parking     *ParkingAnalytics         `json:"parking"`
	Vehicles    *VehicleAnalytics         `json:"vehicles"`
	Sensors     *SensorStatusSummary      `json:"sensors"`
	Datasets    map[string][]DatasetEntry `json:"datasets"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}
