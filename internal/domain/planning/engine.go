package planning

import (
	"time"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
)

// Snapshot is everything the engine needs for one planning decision.
// It is read-only inside the pipeline; consumption is decided here but
// applied elsewhere, on commit.
type Snapshot struct {
	Equipment      household.Equipment
	Inventory      []household.InventoryItem
	CalendarBlocks []household.CalendarBlock
	Candidates     []*recipe.Recipe
	Window         TimeInterval
	LocalMidnight  time.Time
}

// Result is the engine's full output for a successful decision.
type Result struct {
	Winner             *recipe.Recipe
	Scores             Scores
	InventoryToConsume []Consumption
	GroceryAddons      []GroceryAddon
	GroceryList        *GroceryList
	Trace              *Trace
	ChosenWindow       TimeInterval
}

// Engine runs the planning pipeline: window subtraction, eligibility
// filtering, scoring, winner selection, FEFO allocation, grocery
// normalization, and trace assembly. It is deterministic, stateless,
// and performs no I/O; the same snapshot always yields the same result.
type Engine struct {
	weights ScoreWeights
}

// NewEngine creates an engine with the given scoring policy
func NewEngine(weights ScoreWeights) *Engine {
	return &Engine{weights: weights}
}

// Plan runs the full pipeline over one snapshot. When every candidate is
// rejected it returns a *NoEligibleRecipeError carrying the trace; that
// is an expected outcome, not a failure of the engine.
func (e *Engine) Plan(snapshot Snapshot) (*Result, error) {
	free := SubtractBlocks(snapshot.Window, snapshot.CalendarBlocks)
	window, hasWindow := PickLongestThenEarliest(free)

	eligible, rejected := FilterEligible(snapshot.Candidates, snapshot.Equipment, window, hasWindow)
	if len(eligible) == 0 {
		trace := BuildTrace(snapshot.Inventory, snapshot.LocalMidnight, nil, rejected, "", "")
		return nil, &NoEligibleRecipeError{Trace: trace}
	}

	scored := ScoreRecipes(eligible, snapshot.Inventory, snapshot.LocalMidnight, e.weights)
	ordered, winner, tieBreaker := SelectWinner(scored)

	consumptions, addons := Allocate(winner.Recipe.Ingredients(), snapshot.Inventory, snapshot.LocalMidnight)
	groceries := NormalizeGroceries(addons)

	trace := BuildTrace(snapshot.Inventory, snapshot.LocalMidnight, ordered, rejected, winner.Recipe.Slug(), tieBreaker)

	return &Result{
		Winner:             winner.Recipe,
		Scores:             winner.Scores,
		InventoryToConsume: consumptions,
		GroceryAddons:      addons,
		GroceryList:        groceries,
		Trace:              trace,
		ChosenWindow:       window,
	}, nil
}
