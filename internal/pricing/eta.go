package pricing

import (
	"fmt"
	"math"
)

const (
	// AvgSpeedKmH is the assumed average courier speed in the city.
	AvgSpeedKmH = 25.0
	// EtaWindowMin is the symmetric fudge window around the point estimate.
	EtaWindowMin = 5
)

// ETA is a closed travel-time interval in minutes. The range acknowledges
// uncertainty; a single point estimate is never shown to users.
type ETA struct {
	LowMin  int
	HighMin int
}

// String formats the interval for display.
func (e ETA) String() string {
	return fmt.Sprintf("%d-%d min", e.LowMin, e.HighMin)
}

// EtaWindow maps a distance to an estimated delivery window. The second
// return value is false when the distance is unknown and no estimate can be
// given; presentation shows a placeholder in that case.
func EtaWindow(distanceKm float64) (ETA, bool) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return ETA{}, false
	}
	minutes := int(math.Ceil(distanceKm / AvgSpeedKmH * 60))
	low := minutes - EtaWindowMin
	if low < 1 {
		low = 1
	}
	return ETA{LowMin: low, HighMin: minutes + EtaWindowMin}, true
}
