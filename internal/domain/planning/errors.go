package planning

import "fmt"

// RejectionReason is the closed taxonomy of reasons a candidate recipe
// can be excluded. Values are stable wire identifiers, not prose.
type RejectionReason string

const (
	// ReasonNoTimeWindow - the calendar left no free interval at all.
	ReasonNoTimeWindow RejectionReason = "NO_TIME_WINDOW"
	// ReasonTimeInsufficient - a window exists but the recipe does not fit it.
	ReasonTimeInsufficient RejectionReason = "TIME_INSUFFICIENT"
	// ReasonEquipmentMissing - the household lacks required equipment.
	ReasonEquipmentMissing RejectionReason = "EQUIPMENT_MISSING"
)

// NoEligibleRecipeError is returned when every candidate was rejected.
// It is an expected planning outcome, not an internal failure, and still
// carries the full trace so callers can explain each rejection.
type NoEligibleRecipeError struct {
	Trace *Trace
}

// Error implements the error interface
func (e *NoEligibleRecipeError) Error() string {
	return fmt.Sprintf("no eligible recipe: %d candidates rejected", len(e.Trace.RejectedRecipes))
}
