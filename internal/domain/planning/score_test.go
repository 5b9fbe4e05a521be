package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/test/testutils"
)

// ScoreTestSuite provides a test suite for recipe scoring and selection
type ScoreTestSuite struct {
	suite.Suite
	midnight time.Time
}

func (suite *ScoreTestSuite) SetupSuite() {
	suite.midnight = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *ScoreTestSuite) lot(name string, quantity float64, daysToExpiry *int) household.InventoryItem {
	builder := testutils.NewInventoryItemBuilder().WithName(name).WithQuantity(quantity)
	if daysToExpiry != nil {
		builder = builder.ExpiringAt(suite.midnight.Add(time.Duration(*daysToExpiry) * 24 * time.Hour))
	}
	return builder.Build()
}

func intPtr(n int) *int { return &n }

func (suite *ScoreTestSuite) TestScoreRecipes() {
	suite.Run("FullCoverage_ShouldScoreCoverageWeight", func() {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("pantry-pasta").
			WithIngredients(
				recipe.Ingredient{CanonicalName: "pasta", Quantity: 1, Unit: "lb"},
				recipe.Ingredient{CanonicalName: "olive oil", Quantity: 2, Unit: "tbsp"},
			).
			MustBuild()
		inventory := []household.InventoryItem{
			suite.lot("pasta", 2, nil),
			suite.lot("olive oil", 10, nil),
		}

		scored := ScoreRecipes([]*recipe.Recipe{candidate}, inventory, suite.midnight, DefaultScoreWeights())

		require.Len(suite.T(), scored, 1)
		assert.Equal(suite.T(), 1.0, scored[0].Scores.Coverage)
		assert.Equal(suite.T(), 10.0, scored[0].Scores.Final)
		assert.Equal(suite.T(), 2, scored[0].Scores.MatchedIngredients)
	})

	suite.Run("PartialQuantity_ShouldNotCountAsMatched", func() {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("big-batch").
			WithIngredients(recipe.Ingredient{CanonicalName: "rice", Quantity: 3, Unit: "cup"}).
			MustBuild()
		inventory := []household.InventoryItem{suite.lot("rice", 1, nil)}

		scored := ScoreRecipes([]*recipe.Recipe{candidate}, inventory, suite.midnight, DefaultScoreWeights())

		require.Len(suite.T(), scored, 1)
		assert.Equal(suite.T(), 0.0, scored[0].Scores.Coverage)
		assert.Equal(suite.T(), 0, scored[0].Scores.MatchedIngredients)
	})

	suite.Run("SplitAcrossLots_ShouldCountAsMatched", func() {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("stir-fry").
			WithIngredients(recipe.Ingredient{CanonicalName: "carrot", Quantity: 4, Unit: "piece"}).
			MustBuild()
		inventory := []household.InventoryItem{
			suite.lot("carrot", 2, nil),
			suite.lot("carrot", 3, nil),
		}

		scored := ScoreRecipes([]*recipe.Recipe{candidate}, inventory, suite.midnight, DefaultScoreWeights())

		require.Len(suite.T(), scored, 1)
		assert.Equal(suite.T(), 1.0, scored[0].Scores.Coverage)
	})

	suite.Run("ExpiredStock_ShouldNotCountTowardCoverage", func() {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("milk-soup").
			WithIngredients(recipe.Ingredient{CanonicalName: "milk", Quantity: 1, Unit: "cup"}).
			MustBuild()
		inventory := []household.InventoryItem{suite.lot("milk", 5, intPtr(-2))}

		scored := ScoreRecipes([]*recipe.Recipe{candidate}, inventory, suite.midnight, DefaultScoreWeights())

		require.Len(suite.T(), scored, 1)
		assert.Equal(suite.T(), 0.0, scored[0].Scores.Coverage)
		assert.Equal(suite.T(), 0.0, scored[0].Scores.UrgencyBonus)
	})

	suite.Run("UrgencyBonus_ShouldSumConsumedLotUrgencies", func() {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("use-it-up").
			WithIngredients(recipe.Ingredient{CanonicalName: "spinach", Quantity: 1, Unit: "bag"}).
			MustBuild()
		// Two lots: FEFO consumes only the sooner-expiring one.
		inventory := []household.InventoryItem{
			suite.lot("spinach", 1, intPtr(1)),
			suite.lot("spinach", 1, intPtr(10)),
		}

		scored := ScoreRecipes([]*recipe.Recipe{candidate}, inventory, suite.midnight, DefaultScoreWeights())

		require.Len(suite.T(), scored, 1)
		assert.Equal(suite.T(), 5.0, scored[0].Scores.UrgencyBonus)
		assert.Equal(suite.T(), 15.0, scored[0].Scores.Final)
	})

	suite.Run("NoIngredients_ShouldScoreZeroCoverage", func() {
		candidate, err := recipe.NewRecipe("just-vibes", "Just Vibes", 10)
		require.NoError(suite.T(), err)

		scored := ScoreRecipes([]*recipe.Recipe{candidate}, nil, suite.midnight, DefaultScoreWeights())

		require.Len(suite.T(), scored, 1)
		assert.Equal(suite.T(), 0.0, scored[0].Scores.Coverage)
		assert.Equal(suite.T(), 0, scored[0].Scores.TotalIngredients)
	})
}

func (suite *ScoreTestSuite) TestSelectWinner() {
	score := func(slug string, final float64) ScoredRecipe {
		return ScoredRecipe{
			Recipe: testutils.NewRecipeBuilder().WithSlug(slug).MustBuild(),
			Scores: Scores{Final: final},
		}
	}

	suite.Run("DistinctScores_ShouldPickHighestWithoutTieBreak", func() {
		ordered, winner, tieBreaker := SelectWinner([]ScoredRecipe{
			score("beta", 5),
			score("alpha", 8),
		})

		require.NotNil(suite.T(), winner)
		assert.Equal(suite.T(), "alpha", winner.Recipe.Slug())
		assert.Equal(suite.T(), "alpha", ordered[0].Recipe.Slug())
		assert.Empty(suite.T(), tieBreaker)
	})

	suite.Run("ExactTie_ShouldPickSmallestSlug", func() {
		ordered, winner, tieBreaker := SelectWinner([]ScoredRecipe{
			score("zucchini-boats", 7),
			score("apple-curry", 7),
		})

		require.NotNil(suite.T(), winner)
		assert.Equal(suite.T(), "apple-curry", winner.Recipe.Slug())
		assert.Equal(suite.T(), TieBreakerLexicographicSlug, tieBreaker)
		assert.Equal(suite.T(), "zucchini-boats", ordered[1].Recipe.Slug())
	})

	suite.Run("InputOrder_ShouldNotAffectWinner", func() {
		forward := []ScoredRecipe{score("aaa", 7), score("bbb", 7), score("ccc", 3)}
		backward := []ScoredRecipe{score("ccc", 3), score("bbb", 7), score("aaa", 7)}

		_, winnerA, _ := SelectWinner(forward)
		_, winnerB, _ := SelectWinner(backward)

		require.NotNil(suite.T(), winnerA)
		require.NotNil(suite.T(), winnerB)
		assert.Equal(suite.T(), winnerA.Recipe.Slug(), winnerB.Recipe.Slug())
	})

	suite.Run("EmptyInput_ShouldReturnNoWinner", func() {
		ordered, winner, tieBreaker := SelectWinner(nil)

		assert.Nil(suite.T(), ordered)
		assert.Nil(suite.T(), winner)
		assert.Empty(suite.T(), tieBreaker)
	})
}

func TestScoreTestSuite(t *testing.T) {
	suite.Run(t, new(ScoreTestSuite))
}
