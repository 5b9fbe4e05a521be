package household

import (
	"time"

	"github.com/google/uuid"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Equipment is the household's fixed kitchen capability set
type Equipment struct {
	HasOven     bool
	HasStovetop bool
	HasBlender  bool
}

// InventoryItem represents a single inventory lot. Two lots may share a
// canonical name; they are distinct purchases with distinct expirations.
type InventoryItem struct {
	ID            uuid.UUID
	CanonicalName string
	Quantity      float64
	Unit          string
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

// Validate validates the inventory lot
func (i InventoryItem) Validate() error {
	if i.CanonicalName == "" {
		return ErrItemNameRequired
	}
	if i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// IsExpired reports whether the lot is past its expiration relative to
// the given local midnight. Lots without an expiration never expire.
func (i InventoryItem) IsExpired(localMidnight time.Time) bool {
	if i.ExpiresAt == nil {
		return false
	}
	return i.ExpiresAt.Before(localMidnight)
}

// CalendarBlock is an interval during which the household cannot cook.
// Callers guarantee neither ordering nor uniqueness.
type CalendarBlock struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Validate validates the calendar block
func (b CalendarBlock) Validate() error {
	if !b.EndsAt.After(b.StartsAt) {
		return ErrInvertedBlock
	}
	return nil
}
