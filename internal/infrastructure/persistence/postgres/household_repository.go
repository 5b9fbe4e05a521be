package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/ports/outbound"
)

// HouseholdRepository implements the household repository interface
type HouseholdRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewHouseholdRepository creates a new household repository
func NewHouseholdRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.HouseholdRepository {
	return &HouseholdRepository{db: db, logger: logger}
}

// Create stores a new household
func (r *HouseholdRepository) Create(ctx context.Context, h *household.Household) error {
	query := `INSERT INTO households (id, name, timezone, has_oven, has_stovetop, has_blender, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	equipment := h.Equipment()
	_, err := r.db.Exec(ctx, query,
		h.ID(), h.Name(), h.Timezone(),
		equipment.HasOven, equipment.HasStovetop, equipment.HasBlender,
		h.CreatedAt(), h.UpdatedAt(),
	)
	if err != nil {
		r.logger.Error("Failed to create household",
			zap.String("household_id", h.ID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// FindByID retrieves a household by ID
func (r *HouseholdRepository) FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	query := `SELECT id, name, timezone, has_oven, has_stovetop, has_blender, created_at, updated_at
	          FROM households WHERE id = $1`

	var (
		householdID          uuid.UUID
		name, timezone       string
		oven, stove, blender bool
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&householdID, &name, &timezone, &oven, &stove, &blender, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, household.ErrHouseholdNotFound
		}
		r.logger.Error("Failed to find household",
			zap.String("household_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	equipment := household.Equipment{HasOven: oven, HasStovetop: stove, HasBlender: blender}
	return household.Rehydrate(householdID, name, timezone, equipment, createdAt, updatedAt), nil
}

// Update replaces a stored household
func (r *HouseholdRepository) Update(ctx context.Context, h *household.Household) error {
	query := `UPDATE households
	          SET name = $2, timezone = $3, has_oven = $4, has_stovetop = $5, has_blender = $6, updated_at = $7
	          WHERE id = $1`

	equipment := h.Equipment()
	tag, err := r.db.Exec(ctx, query,
		h.ID(), h.Name(), h.Timezone(),
		equipment.HasOven, equipment.HasStovetop, equipment.HasBlender,
		h.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return household.ErrHouseholdNotFound
	}
	return nil
}
