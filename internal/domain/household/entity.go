// Package household contains the core domain logic for households,
// their kitchen equipment, inventory lots, and calendar availability.
package household

import (
	"time"

	"github.com/google/uuid"
)

// Household represents a planning household: the people, the kitchen,
// and the timezone that fixes what "tonight" means.
type Household struct {
	id        uuid.UUID
	name      string
	equipment Equipment
	timezone  string

	createdAt time.Time
	updatedAt time.Time
}

// NewHousehold creates a new Household with validation
func NewHousehold(name, timezone string, equipment Equipment) (*Household, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, ErrInvalidTimezone
	}

	now := time.Now()
	return &Household{
		id:        uuid.New(),
		name:      name,
		equipment: equipment,
		timezone:  timezone,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rehydrate reconstructs a Household from persisted state.
func Rehydrate(id uuid.UUID, name, timezone string, equipment Equipment, createdAt, updatedAt time.Time) *Household {
	return &Household{
		id:        id,
		name:      name,
		equipment: equipment,
		timezone:  timezone,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the household's unique identifier
func (h *Household) ID() uuid.UUID {
	return h.id
}

// Name returns the household's display name
func (h *Household) Name() string {
	return h.name
}

// Equipment returns the household's kitchen capability set
func (h *Household) Equipment() Equipment {
	return h.equipment
}

// Timezone returns the IANA timezone name the household plans in
func (h *Household) Timezone() string {
	return h.timezone
}

// CreatedAt returns when the household was created
func (h *Household) CreatedAt() time.Time {
	return h.createdAt
}

// UpdatedAt returns when the household was last updated
func (h *Household) UpdatedAt() time.Time {
	return h.updatedAt
}

// Location resolves the household's timezone. A household is never
// constructed with an unloadable zone, so failures fall back to UTC.
func (h *Household) Location() *time.Location {
	loc, err := time.LoadLocation(h.timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalMidnight returns midnight of the current day in the household's
// timezone, the anchor for expiration urgency.
func (h *Household) LocalMidnight(now time.Time) time.Time {
	local := now.In(h.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// UpdateEquipment replaces the household's capability set
func (h *Household) UpdateEquipment(equipment Equipment) {
	h.equipment = equipment
	h.updatedAt = time.Now()
}

func validateName(name string) error {
	if len(name) < 1 {
		return ErrNameRequired
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
