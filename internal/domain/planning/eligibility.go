package planning

import (
	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
)

// RejectedRecipe pairs a candidate with the taxonomy reason it was excluded
type RejectedRecipe struct {
	Recipe *recipe.Recipe
	Reason RejectionReason
}

// FilterEligible splits candidates into recipes the household can cook
// tonight and rejections. A recipe is eligible only when every required
// equipment token maps to a true household capability and its total time
// fits the chosen window. When no window exists every candidate is
// rejected with ReasonNoTimeWindow.
func FilterEligible(
	candidates []*recipe.Recipe,
	equipment household.Equipment,
	window TimeInterval,
	hasWindow bool,
) (eligible []*recipe.Recipe, rejected []RejectedRecipe) {
	for _, candidate := range candidates {
		if !hasWindow {
			rejected = append(rejected, RejectedRecipe{Recipe: candidate, Reason: ReasonNoTimeWindow})
			continue
		}
		if !hasEquipment(equipment, candidate.RequiredEquipment()) {
			rejected = append(rejected, RejectedRecipe{Recipe: candidate, Reason: ReasonEquipmentMissing})
			continue
		}
		if candidate.TotalTimeMinutes() > window.Minutes() {
			rejected = append(rejected, RejectedRecipe{Recipe: candidate, Reason: ReasonTimeInsufficient})
			continue
		}
		eligible = append(eligible, candidate)
	}
	return eligible, rejected
}

// hasEquipment reports whether every required token is a capability the
// household actually has. Unknown tokens are unmet, never assumed.
func hasEquipment(equipment household.Equipment, required []recipe.EquipmentType) bool {
	for _, req := range required {
		switch req {
		case recipe.EquipmentOven:
			if !equipment.HasOven {
				return false
			}
		case recipe.EquipmentStovetop:
			if !equipment.HasStovetop {
				return false
			}
		case recipe.EquipmentBlender:
			if !equipment.HasBlender {
				return false
			}
		default:
			return false
		}
	}
	return true
}
