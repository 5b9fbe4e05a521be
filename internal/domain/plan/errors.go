package plan

import "errors"

// Domain errors for plan lifecycle operations

var (
	ErrInvalidStatusTransition = errors.New("invalid plan status transition")
	ErrUnknownOutcome          = errors.New("commit outcome must be cooked or skipped")
	ErrPlanNotFound            = errors.New("plan not found")
)
