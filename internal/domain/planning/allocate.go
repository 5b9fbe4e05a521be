package planning

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
)

// Consumption instructs the inventory layer to draw a quantity from one
// specific lot when the plan is committed as cooked.
type Consumption struct {
	ItemID        uuid.UUID  `json:"item_id"`
	CanonicalName string     `json:"canonical_name"`
	Quantity      float64    `json:"quantity"`
	Unit          string     `json:"unit"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// GroceryAddon is the quantity of an ingredient the household must buy
// because on-hand stock cannot cover the requirement. Always positive.
type GroceryAddon struct {
	CanonicalName string  `json:"canonical_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
}

// Allocate computes FEFO consumption for the winning recipe's ingredient
// list. Per ingredient, matching non-expired lots are consumed earliest
// expiration first; lots with no expiration come after every dated lot;
// remaining ties fall back to CreatedAt ascending. Any unmet remainder
// becomes a grocery addon carrying the exact missing quantity.
func Allocate(
	ingredients []recipe.Ingredient,
	inventory []household.InventoryItem,
	localMidnight time.Time,
) ([]Consumption, []GroceryAddon) {
	var consumptions []Consumption
	var addons []GroceryAddon

	for _, ingredient := range ingredients {
		lots := matchingLots(ingredient.CanonicalName, inventory, localMidnight)

		remaining := ingredient.Quantity
		for _, lot := range lots {
			if remaining <= 0 {
				break
			}
			take := lot.Quantity
			if take > remaining {
				take = remaining
			}
			if take <= 0 {
				continue
			}
			consumptions = append(consumptions, Consumption{
				ItemID:        lot.ID,
				CanonicalName: lot.CanonicalName,
				Quantity:      take,
				Unit:          lot.Unit,
				ExpiresAt:     lot.ExpiresAt,
			})
			remaining -= take
		}

		if remaining > 0 {
			addons = append(addons, GroceryAddon{
				CanonicalName: ingredient.CanonicalName,
				Quantity:      remaining,
				Unit:          ingredient.Unit,
			})
		}
	}

	return consumptions, addons
}

// matchingLots returns the non-expired lots for one canonical name in
// FEFO order: dated lots by expiration ascending, undated lots last,
// CreatedAt ascending as the final tie-break.
func matchingLots(canonicalName string, inventory []household.InventoryItem, localMidnight time.Time) []household.InventoryItem {
	var lots []household.InventoryItem
	for _, item := range inventory {
		if item.CanonicalName != canonicalName || item.IsExpired(localMidnight) {
			continue
		}
		lots = append(lots, item)
	}
	sort.Slice(lots, func(a, b int) bool {
		ea, eb := lots[a].ExpiresAt, lots[b].ExpiresAt
		switch {
		case ea == nil && eb == nil:
			return lots[a].CreatedAt.Before(lots[b].CreatedAt)
		case ea == nil:
			return false
		case eb == nil:
			return true
		case !ea.Equal(*eb):
			return ea.Before(*eb)
		default:
			return lots[a].CreatedAt.Before(lots[b].CreatedAt)
		}
	})
	return lots
}
