package services

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"parking-insights/models"
)

const (
	lowAreaAvailability = 0.20
	lowRateThreshold    = 30
	highRateThreshold   = 70
)

// generalRecommendations are appended to every recommendation list, in order.
var generalRecommendations = []string{
	"Publish real-time bay availability to driver navigation apps",
	"Schedule maintenance for sensors not reporting Present or Unoccupied",
	"Review time-limit restrictions against bay turnover each quarter",
}

// Recommend derives recommendations from an area breakdown and the overall
// availability rate. Conditional rules come first, in fixed order, followed
// by the general recommendations.
func Recommend(breakdown *models.AreaBreakdown, rate models.Percent) []string {
	recs := make([]string, 0, len(generalRecommendations)+3)

	if breakdown != nil {
		congested := lo.Filter(breakdown.Names(), func(name string, _ int) bool {
			b, _ := breakdown.Get(name)
			return b.Total > 0 && b.AvailableRatio() < lowAreaAvailability
		})
		if len(congested) > 0 {
			recs = append(recs, fmt.Sprintf(
				"Expand parking infrastructure in %s, where fewer than 20%% of bays are available",
				strings.Join(congested, ", ")))
		}
	}

	if rate < lowRateThreshold {
		recs = append(recs, "Introduce dynamic pricing to spread demand while overall availability is below 30%")
	}
	if rate > highRateThreshold {
		recs = append(recs, "Reduce parking fees to attract visitors while overall availability is above 70%")
	}

	return append(recs, generalRecommendations...)
}
