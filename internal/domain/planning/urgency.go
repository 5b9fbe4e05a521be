package planning

import "time"

// UrgencyExpired is the sentinel urgency for lots already past their
// expiration. Expired lots earn no scoring credit and are never consumed.
const UrgencyExpired = -1

// ComputeUrgency maps an expiration date to an integer urgency relative
// to the household-local midnight. The mapping is a fixed step function:
//
//	no expiration      -> 0
//	already expired    -> -1
//	expires in <= 1 d  -> 5
//	expires in <= 3 d  -> 3
//	expires in <= 7 d  -> 1
//	otherwise          -> 0
//
// Boundaries are inclusive: exactly 1, 3 and 7 days map to 5, 3 and 1.
func ComputeUrgency(expiresAt *time.Time, localMidnight time.Time) int {
	if expiresAt == nil {
		return 0
	}
	daysToExp := int(floorDiv(expiresAt.Sub(localMidnight), 24*time.Hour))
	switch {
	case daysToExp < 0:
		return UrgencyExpired
	case daysToExp <= 1:
		return 5
	case daysToExp <= 3:
		return 3
	case daysToExp <= 7:
		return 1
	default:
		return 0
	}
}

// floorDiv divides durations rounding toward negative infinity, so an
// expiration a few hours before midnight still counts as a negative day.
func floorDiv(d, unit time.Duration) int64 {
	q := int64(d / unit)
	if d%unit != 0 && (d < 0) != (unit < 0) {
		q--
	}
	return q
}
