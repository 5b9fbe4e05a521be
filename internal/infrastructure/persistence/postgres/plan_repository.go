package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/outbound"
)

// PlanRepository implements plan persistence over pgx. The consumption
// instructions, grocery data, and reasoning trace are JSONB columns; a
// partial unique index on (household_id) WHERE status = 'proposed' backs
// the at-most-one-proposed invariant at the storage layer too.
type PlanRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.PlanRepository {
	return &PlanRepository{db: db, logger: logger}
}

// Save stores or replaces a plan
func (r *PlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	consumptionsJSON, err := json.Marshal(p.InventoryToConsume())
	if err != nil {
		return err
	}
	addonsJSON, err := json.Marshal(p.GroceryAddons())
	if err != nil {
		return err
	}
	groceryListJSON, err := json.Marshal(p.GroceryList())
	if err != nil {
		return err
	}
	traceJSON, err := json.Marshal(p.Trace())
	if err != nil {
		return err
	}

	query := `INSERT INTO plans (id, household_id, recipe_slug, status, inventory_to_consume, grocery_addons, grocery_list, trace, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO UPDATE
	          SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query,
		p.ID(), p.HouseholdID(), p.RecipeSlug(), string(p.Status()),
		consumptionsJSON, addonsJSON, groceryListJSON, traceJSON,
		p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		r.logger.Error("Failed to save plan",
			zap.String("plan_id", p.ID().String()),
			zap.Error(err),
		)
	}
	return err
}

// FindByID retrieves a plan by ID
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	query := `SELECT id, household_id, recipe_slug, status, inventory_to_consume, grocery_addons, grocery_list, trace, created_at, updated_at
	          FROM plans WHERE id = $1`
	return r.scanPlan(r.db.QueryRow(ctx, query, id))
}

// FindProposedByHousehold returns the household's proposed plan
func (r *PlanRepository) FindProposedByHousehold(ctx context.Context, householdID uuid.UUID) (*plan.Plan, error) {
	query := `SELECT id, household_id, recipe_slug, status, inventory_to_consume, grocery_addons, grocery_list, trace, created_at, updated_at
	          FROM plans WHERE household_id = $1 AND status = 'proposed'`
	return r.scanPlan(r.db.QueryRow(ctx, query, householdID))
}

func (r *PlanRepository) scanPlan(row pgx.Row) (*plan.Plan, error) {
	var (
		id, householdID      uuid.UUID
		recipeSlug, status   string
		consumptionsJSON     []byte
		addonsJSON           []byte
		groceryListJSON      []byte
		traceJSON            []byte
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &householdID, &recipeSlug, &status,
		&consumptionsJSON, &addonsJSON, &groceryListJSON, &traceJSON,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, err
	}

	var consumptions []planning.Consumption
	if err := json.Unmarshal(consumptionsJSON, &consumptions); err != nil {
		return nil, err
	}
	var addons []planning.GroceryAddon
	if err := json.Unmarshal(addonsJSON, &addons); err != nil {
		return nil, err
	}
	var groceryList *planning.GroceryList
	if err := json.Unmarshal(groceryListJSON, &groceryList); err != nil {
		return nil, err
	}
	var trace *planning.Trace
	if err := json.Unmarshal(traceJSON, &trace); err != nil {
		return nil, err
	}

	return plan.Rehydrate(id, householdID, recipeSlug, plan.Status(status),
		consumptions, addons, groceryList, trace, createdAt, updatedAt), nil
}
