package planning

import (
	"sort"
	"time"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
)

// TieBreakerLexicographicSlug identifies the only tie-break rule the
// selector applies: exact top-score ties go to the smallest slug.
const TieBreakerLexicographicSlug = "lexicographic-slug"

// ScoreWeights is the tunable scoring policy. The weights are policy, the
// structural contracts (coverage dominance, urgency monotonicity) are not.
type ScoreWeights struct {
	Coverage float64
	Urgency  float64
}

// DefaultScoreWeights returns the stock policy: coverage dominates, the
// urgency bonus nudges the planner toward rescuing soon-expiring stock.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Coverage: 10.0, Urgency: 1.0}
}

// Scores holds a recipe's final score and its subscores
type Scores struct {
	Final              float64
	Coverage           float64
	UrgencyBonus       float64
	MatchedIngredients int
	TotalIngredients   int
}

// ScoredRecipe pairs an eligible recipe with its computed scores
type ScoredRecipe struct {
	Recipe *recipe.Recipe
	Scores Scores
}

// ScoreRecipes computes a final score for every eligible recipe.
// Coverage is the fraction of the recipe's ingredients fully satisfiable
// from non-expired inventory by canonical name; the urgency bonus is the
// summed urgency of the lots FEFO allocation would actually consume.
func ScoreRecipes(
	eligible []*recipe.Recipe,
	inventory []household.InventoryItem,
	localMidnight time.Time,
	weights ScoreWeights,
) []ScoredRecipe {
	scored := make([]ScoredRecipe, 0, len(eligible))
	for _, candidate := range eligible {
		scored = append(scored, ScoredRecipe{
			Recipe: candidate,
			Scores: scoreOne(candidate, inventory, localMidnight, weights),
		})
	}
	return scored
}

func scoreOne(
	candidate *recipe.Recipe,
	inventory []household.InventoryItem,
	localMidnight time.Time,
	weights ScoreWeights,
) Scores {
	ingredients := candidate.Ingredients()
	total := len(ingredients)

	matched := 0
	for _, ingredient := range ingredients {
		var onHand float64
		for _, item := range inventory {
			if item.CanonicalName != ingredient.CanonicalName || item.IsExpired(localMidnight) {
				continue
			}
			onHand += item.Quantity
		}
		if onHand >= ingredient.Quantity {
			matched++
		}
	}

	coverage := 0.0
	if total > 0 {
		coverage = float64(matched) / float64(total)
	}

	// Urgency credit accrues only for lots the recipe would consume,
	// which keeps the bonus monotonic in the per-item urgencies.
	consumptions, _ := Allocate(ingredients, inventory, localMidnight)
	bonus := 0.0
	for _, consumption := range consumptions {
		if u := ComputeUrgency(consumption.ExpiresAt, localMidnight); u > 0 {
			bonus += float64(u)
		}
	}

	return Scores{
		Final:              weights.Coverage*coverage + weights.Urgency*bonus,
		Coverage:           coverage,
		UrgencyBonus:       bonus,
		MatchedIngredients: matched,
		TotalIngredients:   total,
	}
}

// SelectWinner orders scored recipes by final score descending, breaking
// exact ties by lexicographically smallest slug, and returns the sorted
// list, the winner, and the tie-break rule applied (empty when the top
// score was unambiguous). The ordering is a total order: the same input
// multiset always yields the same winner regardless of input order.
func SelectWinner(scored []ScoredRecipe) (ordered []ScoredRecipe, winner *ScoredRecipe, tieBreaker string) {
	if len(scored) == 0 {
		return nil, nil, ""
	}
	ordered = make([]ScoredRecipe, len(scored))
	copy(ordered, scored)
	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].Scores.Final != ordered[b].Scores.Final {
			return ordered[a].Scores.Final > ordered[b].Scores.Final
		}
		return ordered[a].Recipe.Slug() < ordered[b].Recipe.Slug()
	})

	winner = &ordered[0]
	if len(ordered) > 1 && ordered[1].Scores.Final == winner.Scores.Final {
		tieBreaker = TieBreakerLexicographicSlug
	}
	return ordered, winner, tieBreaker
}
