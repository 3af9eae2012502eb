package models

// AreaBox is a closed longitude/latitude rectangle that names a region.
type AreaBox struct {
	Name   string  `json:"name" yaml:"name"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
}

// Contains reports whether (lon, lat) lies inside the box, edges included.
func (b AreaBox) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}
