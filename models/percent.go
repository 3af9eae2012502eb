package models

import (
	"fmt"
	"math"
	"strconv"
)

// Percent is a percentage that serialises with exactly two decimal places.
type Percent float64

// RoundPercent rounds f half away from zero to two decimals.
func RoundPercent(f float64) Percent {
	return Percent(math.Round(f*100) / 100)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("models: percent %v is not representable", f)
	}
	return []byte(strconv.FormatFloat(f, 'f', 2, 64)), nil
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64) + "%"
}
