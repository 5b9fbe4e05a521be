package plan

import (
	"time"

	"github.com/google/uuid"
)

// Domain events for the plan lifecycle

// ProposedEvent is raised when the engine proposes a new plan
type ProposedEvent struct {
	PlanID      uuid.UUID
	HouseholdID uuid.UUID
	RecipeSlug  string
	ProposedAt  time.Time
}

// EventName returns the event name
func (e ProposedEvent) EventName() string {
	return "plan.proposed"
}

// OccurredAt returns when the event occurred
func (e ProposedEvent) OccurredAt() time.Time {
	return e.ProposedAt
}

// CommittedEvent is raised when a proposed plan is committed
type CommittedEvent struct {
	PlanID      uuid.UUID
	HouseholdID uuid.UUID
	Outcome     Outcome
	CommittedAt time.Time
}

// EventName returns the event name
func (e CommittedEvent) EventName() string {
	return "plan.committed"
}

// OccurredAt returns when the event occurred
func (e CommittedEvent) OccurredAt() time.Time {
	return e.CommittedAt
}

// InvalidatedEvent is raised when an inventory change discards a proposal
type InvalidatedEvent struct {
	PlanID        uuid.UUID
	HouseholdID   uuid.UUID
	InvalidatedAt time.Time
}

// EventName returns the event name
func (e InvalidatedEvent) EventName() string {
	return "plan.invalidated"
}

// OccurredAt returns when the event occurred
func (e InvalidatedEvent) OccurredAt() time.Time {
	return e.InvalidatedAt
}
