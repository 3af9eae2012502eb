package models

// VehicleRecord is one row of the vehicle ownership dataset.
type VehicleRecord struct {
	Year            int     `json:"year"`
	VehicleGroup    string  `json:"vehicle_group"`
	Vehicles        float64 `json:"vehicles"`
	VehiclesPer1000 float64 `json:"vehiclesPer1000"`
}

// VehicleAnalytics holds growth figures derived from the ownership dataset.
type VehicleAnalytics struct {
	TotalVehicles      float64         `json:"totalVehicles"`
	VehiclesPer1000    float64         `json:"vehiclesPer1000"`
	GrowthTrend        Percent         `json:"growthTrend"`
	YearOverYearChange Percent         `json:"yearOverYearChange"`
	LatestYear         int             `json:"latestYear"`
	VehicleGroup       string          `json:"vehicleGroup"`
	History            []VehicleRecord `json:"history"`
}
