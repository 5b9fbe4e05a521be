package postgres

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/outbound"
)

// InventoryRepository implements inventory lot persistence over pgx.
// Observers are notified synchronously after every committed mutation,
// before the mutating call returns to its caller.
type InventoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger

	mu        sync.RWMutex
	observers []outbound.InventoryObserver
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *pgxpool.Pool, logger *zap.Logger) *InventoryRepository {
	return &InventoryRepository{db: db, logger: logger}
}

// Subscribe registers an observer for inventory mutations
func (r *InventoryRepository) Subscribe(observer outbound.InventoryObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, observer)
}

// Snapshot returns the household's inventory lots
func (r *InventoryRepository) Snapshot(ctx context.Context, householdID uuid.UUID) ([]household.InventoryItem, error) {
	query := `SELECT id, canonical_name, quantity, unit, expires_at, created_at
	          FROM inventory_items WHERE household_id = $1
	          ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, householdID)
	if err != nil {
		r.logger.Error("Failed to load inventory snapshot",
			zap.String("household_id", householdID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var items []household.InventoryItem
	for rows.Next() {
		var item household.InventoryItem
		if err := rows.Scan(&item.ID, &item.CanonicalName, &item.Quantity, &item.Unit, &item.ExpiresAt, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem stores a new inventory lot and notifies observers
func (r *InventoryRepository) AddItem(ctx context.Context, householdID uuid.UUID, item household.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO inventory_items (id, household_id, canonical_name, quantity, unit, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		item.ID, householdID, item.CanonicalName, item.Quantity, item.Unit, item.ExpiresAt, item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to add inventory item",
			zap.String("household_id", householdID.String()),
			zap.Error(err),
		)
		return err
	}

	r.notify(ctx, householdID)
	return nil
}

// RemoveItem deletes an inventory lot and notifies observers
func (r *InventoryRepository) RemoveItem(ctx context.Context, householdID, itemID uuid.UUID) error {
	query := `DELETE FROM inventory_items WHERE household_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, householdID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return household.ErrItemNotFound
	}

	r.notify(ctx, householdID)
	return nil
}

// ApplyConsumptions decrements lot quantities inside one transaction,
// dropping lots drained to zero, then notifies observers.
func (r *InventoryRepository) ApplyConsumptions(ctx context.Context, householdID uuid.UUID, consumptions []planning.Consumption) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, consumption := range consumptions {
			_, err := tx.Exec(ctx,
				`UPDATE inventory_items SET quantity = GREATEST(quantity - $3, 0)
				 WHERE household_id = $1 AND id = $2`,
				householdID, consumption.ItemID, consumption.Quantity,
			)
			if err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx,
			`DELETE FROM inventory_items WHERE household_id = $1 AND quantity <= 0`,
			householdID,
		)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to apply consumptions",
			zap.String("household_id", householdID.String()),
			zap.Error(err),
		)
		return err
	}

	r.notify(ctx, householdID)
	return nil
}

func (r *InventoryRepository) notify(ctx context.Context, householdID uuid.UUID) {
	r.mu.RLock()
	observers := make([]outbound.InventoryObserver, len(r.observers))
	copy(observers, r.observers)
	r.mu.RUnlock()

	for _, observer := range observers {
		observer.InventoryChanged(ctx, householdID)
	}
}
