// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
)

// PlanningService defines the use cases for tonight's-dinner planning.
// This is the primary port that HTTP handlers and other driving adapters use.
type PlanningService interface {
	// PlanTonight proposes a plan for the household, or returns the
	// household's current proposed plan unchanged when inventory has not
	// moved since it was computed (idempotency contract).
	PlanTonight(ctx context.Context, cmd PlanTonightCommand) (*PlanDTO, error)

	// CommitPlan settles a proposed plan as cooked or skipped. Cooked
	// applies the plan's consumption instructions to inventory.
	CommitPlan(ctx context.Context, cmd CommitPlanCommand) (*PlanDTO, error)

	// GetPlan retrieves a plan by ID regardless of status.
	GetPlan(ctx context.Context, planID uuid.UUID) (*PlanDTO, error)

	// NotifyInventoryChanged discards the household's proposed plan, if
	// any, and reports how many plans were invalidated. The persistence
	// layer calls this before returning from any inventory mutation.
	NotifyInventoryChanged(ctx context.Context, householdID uuid.UUID) (int, error)
}

// PlanTonightCommand contains data for a planning request
type PlanTonightCommand struct {
	HouseholdID uuid.UUID
	// WindowStart/WindowEnd override the configured nominal cooking
	// window when both are set.
	WindowStart *time.Time
	WindowEnd   *time.Time
}

// CommitPlanCommand contains data for committing a proposed plan
type CommitPlanCommand struct {
	PlanID  uuid.UUID
	Outcome plan.Outcome
}

// PlanDTO is the plan representation returned to driving adapters
type PlanDTO struct {
	ID                 uuid.UUID               `json:"plan_id"`
	HouseholdID        uuid.UUID               `json:"household_id"`
	RecipeSlug         string                  `json:"recipe_slug"`
	RecipeName         string                  `json:"recipe_name"`
	Status             plan.Status             `json:"status"`
	InventoryToConsume []planning.Consumption  `json:"inventory_to_consume"`
	GroceryAddons      []planning.GroceryAddon `json:"grocery_addons"`
	GroceryList        *GroceryListDTO         `json:"grocery_list_normalized"`
	Trace              *TraceDTO               `json:"reasoning_trace"`
	CreatedAt          time.Time               `json:"created_at"`
}

// GroceryListDTO is the normalized shopping list representation
type GroceryListDTO struct {
	Items   []GroceryItemDTO `json:"items"`
	Summary string           `json:"summary"`
}

// GroceryItemDTO is a single display-ready shopping entry
type GroceryItemDTO struct {
	CanonicalName string  `json:"canonical_name"`
	DisplayName   string  `json:"display_name"`
	Quantity      float64 `json:"total_quantity"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
}

// TraceDTO is the reasoning trace representation
type TraceDTO struct {
	InventorySnapshot []InventorySnapshotDTO `json:"inventory_snapshot"`
	EligibleRecipes   []ScoredRecipeDTO      `json:"eligible_recipes"`
	RejectedRecipes   []RejectedRecipeDTO    `json:"rejected_recipes"`
	Winner            string                 `json:"winner,omitempty"`
	TieBreaker        string                 `json:"tie_breaker,omitempty"`
}

// InventorySnapshotDTO records one lot and its computed urgency
type InventorySnapshotDTO struct {
	ItemID        uuid.UUID `json:"item_id"`
	CanonicalName string    `json:"canonical_name"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	Urgency       int       `json:"urgency"`
}

// ScoredRecipeDTO records one eligible candidate and its scores
type ScoredRecipeDTO struct {
	Slug               string  `json:"slug"`
	Name               string  `json:"name"`
	Final              float64 `json:"final_score"`
	Coverage           float64 `json:"coverage"`
	UrgencyBonus       float64 `json:"urgency_bonus"`
	MatchedIngredients int     `json:"matched_ingredients"`
	TotalIngredients   int     `json:"total_ingredients"`
}

// RejectedRecipeDTO records one rejected candidate and the taxonomy reason
type RejectedRecipeDTO struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}
