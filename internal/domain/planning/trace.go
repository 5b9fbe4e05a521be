package planning

import (
	"time"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/household"
)

// InventorySnapshotEntry records one inventory lot and the urgency the
// scorer saw for it, so explanations can be audited after the fact.
type InventorySnapshotEntry struct {
	ItemID        uuid.UUID `json:"item_id"`
	CanonicalName string    `json:"canonical_name"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	Urgency       int       `json:"urgency"`
}

// EligibleEntry records one scored candidate in the trace
type EligibleEntry struct {
	Slug               string  `json:"slug"`
	Name               string  `json:"name"`
	Final              float64 `json:"final_score"`
	Coverage           float64 `json:"coverage"`
	UrgencyBonus       float64 `json:"urgency_bonus"`
	MatchedIngredients int     `json:"matched_ingredients"`
	TotalIngredients   int     `json:"total_ingredients"`
}

// RejectedEntry records one rejected candidate and its taxonomy reason
type RejectedEntry struct {
	Slug   string          `json:"slug"`
	Name   string          `json:"name"`
	Reason RejectionReason `json:"reason"`
}

// Trace is the complete audit record for one planning decision. It is
// fully reconstructible from the pipeline's intermediate outputs; there
// is no hidden state behind it.
type Trace struct {
	InventorySnapshot []InventorySnapshotEntry `json:"inventory_snapshot"`
	EligibleRecipes   []EligibleEntry          `json:"eligible_recipes"`
	RejectedRecipes   []RejectedEntry          `json:"rejected_recipes"`
	WinnerSlug        string                   `json:"winner,omitempty"`
	TieBreaker        string                   `json:"tie_breaker,omitempty"`
}

// BuildTrace assembles the audit object from the component outputs.
// EligibleRecipes keeps the selector's deterministic ordering, though
// consumers are free to re-sort.
func BuildTrace(
	inventory []household.InventoryItem,
	localMidnight time.Time,
	eligible []ScoredRecipe,
	rejected []RejectedRecipe,
	winnerSlug string,
	tieBreaker string,
) *Trace {
	snapshot := make([]InventorySnapshotEntry, 0, len(inventory))
	for _, item := range inventory {
		snapshot = append(snapshot, InventorySnapshotEntry{
			ItemID:        item.ID,
			CanonicalName: item.CanonicalName,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			Urgency:       ComputeUrgency(item.ExpiresAt, localMidnight),
		})
	}

	eligibleEntries := make([]EligibleEntry, 0, len(eligible))
	for _, scored := range eligible {
		eligibleEntries = append(eligibleEntries, EligibleEntry{
			Slug:               scored.Recipe.Slug(),
			Name:               scored.Recipe.Name(),
			Final:              scored.Scores.Final,
			Coverage:           scored.Scores.Coverage,
			UrgencyBonus:       scored.Scores.UrgencyBonus,
			MatchedIngredients: scored.Scores.MatchedIngredients,
			TotalIngredients:   scored.Scores.TotalIngredients,
		})
	}

	rejectedEntries := make([]RejectedEntry, 0, len(rejected))
	for _, rejection := range rejected {
		rejectedEntries = append(rejectedEntries, RejectedEntry{
			Slug:   rejection.Recipe.Slug(),
			Name:   rejection.Recipe.Name(),
			Reason: rejection.Reason,
		})
	}

	return &Trace{
		InventorySnapshot: snapshot,
		EligibleRecipes:   eligibleEntries,
		RejectedRecipes:   rejectedEntries,
		WinnerSlug:        winnerSlug,
		TieBreaker:        tieBreaker,
	}
}
