// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/domain/recipe"
)

// HouseholdRepository defines the interface for household persistence
type HouseholdRepository interface {
	Create(ctx context.Context, h *household.Household) error
	FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error)
	Update(ctx context.Context, h *household.Household) error
}

// InventoryRepository defines the interface for inventory lot persistence.
// Mutating operations must notify the registered observers before they
// return, so stale proposed plans are discarded first.
type InventoryRepository interface {
	Snapshot(ctx context.Context, householdID uuid.UUID) ([]household.InventoryItem, error)
	AddItem(ctx context.Context, householdID uuid.UUID, item household.InventoryItem) error
	RemoveItem(ctx context.Context, householdID, itemID uuid.UUID) error

	// ApplyConsumptions decrements lot quantities per the plan's
	// instructions, dropping lots drained to zero. Called on commit.
	ApplyConsumptions(ctx context.Context, householdID uuid.UUID, consumptions []planning.Consumption) error

	// Subscribe registers an observer for inventory mutations.
	Subscribe(observer InventoryObserver)
}

// InventoryObserver receives inventory-changed notifications. The hook is
// invoked synchronously inside the mutation, before the mutation returns.
type InventoryObserver interface {
	InventoryChanged(ctx context.Context, householdID uuid.UUID)
}

// RecipeRepository defines the interface for the recipe catalog
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error)
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
}

// CalendarRepository defines the interface for reading calendar blocks
type CalendarRepository interface {
	BlocksForEvening(ctx context.Context, householdID uuid.UUID, window planning.TimeInterval) ([]household.CalendarBlock, error)
	AddBlock(ctx context.Context, householdID uuid.UUID, block household.CalendarBlock) error
}

// PlanRepository defines the interface for plan persistence
type PlanRepository interface {
	Save(ctx context.Context, p *plan.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
	FindProposedByHousehold(ctx context.Context, householdID uuid.UUID) (*plan.Plan, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
