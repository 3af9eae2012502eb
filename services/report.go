package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"parking-insights/models"
)

// PrintOverview renders an overview for the terminal.
func PrintOverview(w io.Writer, ov *models.Overview) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🅿  MELBOURNE PARKING INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	if p := ov.Parking; p != nil {
		fmt.Fprintf(w, "\033[1;33m  Availability\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Sensors           : \033[1m%d\033[0m\n", p.TotalSensors)
		fmt.Fprintf(w, "  Available bays    : \033[1m%d\033[0m\n", p.AvailableSensors)
		fmt.Fprintf(w, "  Availability rate : \033[1;32m%s\033[0m\n", p.AvailabilityRate)
		fmt.Fprintln(w)

		fmt.Fprintf(w, "\033[1;33m  Areas\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, name := range p.AreaBreakdown.Names() {
			b, _ := p.AreaBreakdown.Get(name)
			fmt.Fprintf(w, "  %-20s %4d total  %4d free  %4d taken  %4d maint.\n",
				truncate(name, 20), b.Total, b.Available, b.Occupied, b.Maintenance)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "\033[1;33m  Recommendations\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for i, r := range p.Recommendations {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %s\n", i+1, r)
		}
		fmt.Fprintln(w)
	}

	if s := ov.Sensors; s != nil {
		fmt.Fprintf(w, "\033[1;33m  Sensor Status\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for pair := s.Statuses.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(w, "  %-20s %5d  (%s)\n", truncate(pair.Key, 20), pair.Value.Count, pair.Value.Percentage)
		}
		fmt.Fprintln(w)
	}

	if v := ov.Vehicles; v != nil {
		fmt.Fprintf(w, "\033[1;33m  Vehicle Ownership\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Latest year        : %d (%s)\n", v.LatestYear, v.VehicleGroup)
		fmt.Fprintf(w, "  Registered vehicles: \033[1m%s\033[0m\n", humanize.Commaf(v.TotalVehicles))
		fmt.Fprintf(w, "  Per 1000 residents : %.1f\n", v.VehiclesPer1000)
		fmt.Fprintf(w, "  Growth trend       : %s\n", v.GrowthTrend)
		fmt.Fprintf(w, "  Change since first : %s\n", v.YearOverYearChange)
		fmt.Fprintln(w)
	}

	if len(ov.Datasets) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Datasets\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		collections := make([]string, 0, len(ov.Datasets))
		for c := range ov.Datasets {
			collections = append(collections, c)
		}
		sort.Strings(collections)
		for _, c := range collections {
			for _, e := range ov.Datasets[c] {
				fmt.Fprintf(w, "  %-36s %10s\n", truncate(e.Path, 36), humanize.Bytes(uint64(e.Metadata.Size)))
			}
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
