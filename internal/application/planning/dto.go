package planning

import (
	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/inbound"
)

// toPlanDTO converts a plan aggregate to its transport representation
func toPlanDTO(p *plan.Plan) *inbound.PlanDTO {
	return &inbound.PlanDTO{
		ID:                 p.ID(),
		HouseholdID:        p.HouseholdID(),
		RecipeSlug:         p.RecipeSlug(),
		RecipeName:         winnerName(p.Trace(), p.RecipeSlug()),
		Status:             p.Status(),
		InventoryToConsume: p.InventoryToConsume(),
		GroceryAddons:      p.GroceryAddons(),
		GroceryList:        ToGroceryListDTO(p.GroceryList()),
		Trace:              ToTraceDTO(p.Trace()),
		CreatedAt:          p.CreatedAt(),
	}
}

// winnerName resolves the winning recipe's display name from the trace
func winnerName(trace *planning.Trace, slug string) string {
	if trace == nil {
		return ""
	}
	for _, entry := range trace.EligibleRecipes {
		if entry.Slug == slug {
			return entry.Name
		}
	}
	return ""
}

// ToGroceryListDTO converts a normalized grocery list; nil stays nil.
func ToGroceryListDTO(list *planning.GroceryList) *inbound.GroceryListDTO {
	if list == nil {
		return nil
	}
	items := make([]inbound.GroceryItemDTO, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, inbound.GroceryItemDTO{
			CanonicalName: item.CanonicalName,
			DisplayName:   item.DisplayName,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			Category:      string(item.Category),
		})
	}
	return &inbound.GroceryListDTO{Items: items, Summary: list.Summary}
}

// ToTraceDTO converts a reasoning trace for transport. Exported so the
// HTTP layer can render the trace attached to a no-eligible-recipe
// rejection as well.
func ToTraceDTO(trace *planning.Trace) *inbound.TraceDTO {
	if trace == nil {
		return nil
	}
	snapshot := make([]inbound.InventorySnapshotDTO, 0, len(trace.InventorySnapshot))
	for _, entry := range trace.InventorySnapshot {
		snapshot = append(snapshot, inbound.InventorySnapshotDTO{
			ItemID:        entry.ItemID,
			CanonicalName: entry.CanonicalName,
			Quantity:      entry.Quantity,
			Unit:          entry.Unit,
			Urgency:       entry.Urgency,
		})
	}
	eligible := make([]inbound.ScoredRecipeDTO, 0, len(trace.EligibleRecipes))
	for _, entry := range trace.EligibleRecipes {
		eligible = append(eligible, inbound.ScoredRecipeDTO{
			Slug:               entry.Slug,
			Name:               entry.Name,
			Final:              entry.Final,
			Coverage:           entry.Coverage,
			UrgencyBonus:       entry.UrgencyBonus,
			MatchedIngredients: entry.MatchedIngredients,
			TotalIngredients:   entry.TotalIngredients,
		})
	}
	rejected := make([]inbound.RejectedRecipeDTO, 0, len(trace.RejectedRecipes))
	for _, entry := range trace.RejectedRecipes {
		rejected = append(rejected, inbound.RejectedRecipeDTO{
			Slug:   entry.Slug,
			Name:   entry.Name,
			Reason: string(entry.Reason),
		})
	}
	return &inbound.TraceDTO{
		InventorySnapshot: snapshot,
		EligibleRecipes:   eligible,
		RejectedRecipes:   rejected,
		Winner:            trace.WinnerSlug,
		TieBreaker:        trace.TieBreaker,
	}
}
