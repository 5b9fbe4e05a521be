// Package plan contains the plan aggregate: a proposed dinner decision
// and its lifecycle from proposal to commitment or invalidation.
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/domain/shared"
)

// Status is the plan lifecycle state
type Status string

const (
	StatusProposed         Status = "proposed"
	StatusCommittedCooked  Status = "committed-cooked"
	StatusCommittedSkipped Status = "committed-skipped"
	StatusInvalidated      Status = "invalidated"
)

// Outcome is the caller's verdict when committing a proposed plan
type Outcome string

const (
	OutcomeCooked  Outcome = "cooked"
	OutcomeSkipped Outcome = "skipped"
)

// Plan represents one proposed dinner decision for a household. A
// household holds at most one proposed plan at a time; the planning
// service enforces that invariant.
type Plan struct {
	id          uuid.UUID
	householdID uuid.UUID
	recipeSlug  string
	status      Status

	inventoryToConsume []planning.Consumption
	groceryAddons      []planning.GroceryAddon
	groceryList        *planning.GroceryList
	trace              *planning.Trace

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewProposal creates a proposed plan from an engine result
func NewProposal(householdID uuid.UUID, result *planning.Result) *Plan {
	now := time.Now()
	p := &Plan{
		id:                 uuid.New(),
		householdID:        householdID,
		recipeSlug:         result.Winner.Slug(),
		status:             StatusProposed,
		inventoryToConsume: result.InventoryToConsume,
		groceryAddons:      result.GroceryAddons,
		groceryList:        result.GroceryList,
		trace:              result.Trace,
		createdAt:          now,
		updatedAt:          now,
	}
	p.addEvent(ProposedEvent{
		PlanID:      p.id,
		HouseholdID: householdID,
		RecipeSlug:  p.recipeSlug,
		ProposedAt:  now,
	})
	return p
}

// Rehydrate reconstructs a Plan from persisted state.
func Rehydrate(
	id, householdID uuid.UUID,
	recipeSlug string,
	status Status,
	inventoryToConsume []planning.Consumption,
	groceryAddons []planning.GroceryAddon,
	groceryList *planning.GroceryList,
	trace *planning.Trace,
	createdAt, updatedAt time.Time,
) *Plan {
	return &Plan{
		id:                 id,
		householdID:        householdID,
		recipeSlug:         recipeSlug,
		status:             status,
		inventoryToConsume: inventoryToConsume,
		groceryAddons:      groceryAddons,
		groceryList:        groceryList,
		trace:              trace,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ID returns the plan's unique identifier
func (p *Plan) ID() uuid.UUID {
	return p.id
}

// HouseholdID returns the household the plan belongs to
func (p *Plan) HouseholdID() uuid.UUID {
	return p.householdID
}

// RecipeSlug returns the winning recipe's slug
func (p *Plan) RecipeSlug() string {
	return p.recipeSlug
}

// Status returns the plan's lifecycle state
func (p *Plan) Status() Status {
	return p.status
}

// InventoryToConsume returns the lot-level consumption instructions
func (p *Plan) InventoryToConsume() []planning.Consumption {
	return p.inventoryToConsume
}

// GroceryAddons returns the missing-quantity deltas
func (p *Plan) GroceryAddons() []planning.GroceryAddon {
	return p.groceryAddons
}

// GroceryList returns the normalized shopping list, nil when nothing is needed
func (p *Plan) GroceryList() *planning.GroceryList {
	return p.groceryList
}

// Trace returns the reasoning trace behind the decision
func (p *Plan) Trace() *planning.Trace {
	return p.trace
}

// CreatedAt returns when the plan was proposed
func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the plan last changed state
func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// Commit transitions a proposed plan to its committed state
func (p *Plan) Commit(outcome Outcome) error {
	if p.status != StatusProposed {
		return ErrInvalidStatusTransition
	}
	switch outcome {
	case OutcomeCooked:
		p.status = StatusCommittedCooked
	case OutcomeSkipped:
		p.status = StatusCommittedSkipped
	default:
		return ErrUnknownOutcome
	}
	p.updatedAt = time.Now()

	p.addEvent(CommittedEvent{
		PlanID:      p.id,
		HouseholdID: p.householdID,
		Outcome:     outcome,
		CommittedAt: p.updatedAt,
	})
	return nil
}

// Invalidate discards a proposed plan because the inventory it was
// computed against has changed.
func (p *Plan) Invalidate() error {
	if p.status != StatusProposed {
		return ErrInvalidStatusTransition
	}
	p.status = StatusInvalidated
	p.updatedAt = time.Now()

	p.addEvent(InvalidatedEvent{
		PlanID:        p.id,
		HouseholdID:   p.householdID,
		InvalidatedAt: p.updatedAt,
	})
	return nil
}

// addEvent adds a domain event to be dispatched
func (p *Plan) addEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}

// Events returns and clears pending domain events
func (p *Plan) Events() []shared.DomainEvent {
	events := p.events
	p.events = []shared.DomainEvent{}
	return events
}
