// Package pricing holds the single canonical delivery fee and ETA policy
// shared by every actor role. All amounts are integer minor currency units.
package pricing

import "math"

const (
	// FallbackFee is charged when the delivery distance is unknown.
	FallbackFee int64 = 1300
	// MinFee is the floor fee charged regardless of proximity.
	MinFee int64 = 1300

	// The rate is calibrated so that 8.2 km costs 2000.
	feeCalibrationKm     = 8.2
	feeCalibrationAmount = 2000.0
	ratePerKm            = feeCalibrationAmount / feeCalibrationKm

	// Fees are rounded up to this increment to avoid spurious precision.
	feeRoundStep int64 = 50
)

// DeliveryFee maps a distance to the fee for the delivery. Non-finite or
// negative distances are treated as unknown and fall back to FallbackFee.
// Never recompute a fee for a persisted order; the stored value is
// authoritative.
func DeliveryFee(distanceKm float64) int64 {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return FallbackFee
	}
	raw := distanceKm * ratePerKm
	rounded := int64(math.Ceil(raw/float64(feeRoundStep))) * feeRoundStep
	if rounded < MinFee {
		return MinFee
	}
	return rounded
}
