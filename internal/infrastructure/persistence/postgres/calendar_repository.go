package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/outbound"
)

// CalendarRepository implements calendar block storage over pgx
type CalendarRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.CalendarRepository {
	return &CalendarRepository{db: db, logger: logger}
}

// AddBlock stores a calendar block
func (r *CalendarRepository) AddBlock(ctx context.Context, householdID uuid.UUID, block household.CalendarBlock) error {
	if err := block.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO calendar_blocks (household_id, starts_at, ends_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, householdID, block.StartsAt, block.EndsAt)
	if err != nil {
		r.logger.Error("Failed to add calendar block",
			zap.String("household_id", householdID.String()),
			zap.Error(err),
		)
	}
	return err
}

// BlocksForEvening returns the blocks overlapping the nominal window.
// No ordering is guaranteed; the engine sorts before subtracting.
func (r *CalendarRepository) BlocksForEvening(ctx context.Context, householdID uuid.UUID, window planning.TimeInterval) ([]household.CalendarBlock, error) {
	query := `SELECT starts_at, ends_at FROM calendar_blocks
	          WHERE household_id = $1 AND starts_at < $3 AND ends_at > $2`

	rows, err := r.db.Query(ctx, query, householdID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []household.CalendarBlock
	for rows.Next() {
		var block household.CalendarBlock
		if err := rows.Scan(&block.StartsAt, &block.EndsAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}
