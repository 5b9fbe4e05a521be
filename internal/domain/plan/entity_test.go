package plan

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/test/testutils"
)

// PlanTestSuite provides a test suite for the plan aggregate
type PlanTestSuite struct {
	suite.Suite
}

func (suite *PlanTestSuite) newProposal() *Plan {
	winner := testutils.NewRecipeBuilder().WithSlug("weeknight-curry").MustBuild()
	return NewProposal(uuid.New(), &planning.Result{
		Winner: winner,
		Scores: planning.Scores{Final: 10},
		Trace:  &planning.Trace{WinnerSlug: winner.Slug()},
	})
}

func (suite *PlanTestSuite) TestNewProposal() {
	suite.Run("Proposal_ShouldStartProposedWithEvent", func() {
		householdID := uuid.New()
		winner := testutils.NewRecipeBuilder().WithSlug("weeknight-curry").MustBuild()

		p := NewProposal(householdID, &planning.Result{
			Winner: winner,
			Trace:  &planning.Trace{WinnerSlug: winner.Slug()},
		})

		require.NotNil(suite.T(), p)
		assert.NotEqual(suite.T(), uuid.Nil, p.ID())
		assert.Equal(suite.T(), householdID, p.HouseholdID())
		assert.Equal(suite.T(), StatusProposed, p.Status())
		assert.Equal(suite.T(), "weeknight-curry", p.RecipeSlug())

		events := p.Events()
		require.Len(suite.T(), events, 1)
		proposed, ok := events[0].(ProposedEvent)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), p.ID(), proposed.PlanID)
		assert.Equal(suite.T(), "plan.proposed", proposed.EventName())

		// Events drain on read.
		assert.Empty(suite.T(), p.Events())
	})
}

func (suite *PlanTestSuite) TestCommit() {
	suite.Run("CookedOutcome_ShouldCommitCooked", func() {
		p := suite.newProposal()
		p.Events()

		err := p.Commit(OutcomeCooked)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusCommittedCooked, p.Status())

		events := p.Events()
		require.Len(suite.T(), events, 1)
		committed, ok := events[0].(CommittedEvent)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), OutcomeCooked, committed.Outcome)
	})

	suite.Run("SkippedOutcome_ShouldCommitSkipped", func() {
		p := suite.newProposal()

		err := p.Commit(OutcomeSkipped)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusCommittedSkipped, p.Status())
	})

	suite.Run("UnknownOutcome_ShouldFail", func() {
		p := suite.newProposal()

		err := p.Commit(Outcome("burned"))

		assert.ErrorIs(suite.T(), err, ErrUnknownOutcome)
		assert.Equal(suite.T(), StatusProposed, p.Status())
	})

	suite.Run("CommittedPlan_ShouldRejectSecondCommit", func() {
		p := suite.newProposal()
		require.NoError(suite.T(), p.Commit(OutcomeCooked))

		err := p.Commit(OutcomeSkipped)

		assert.ErrorIs(suite.T(), err, ErrInvalidStatusTransition)
		assert.Equal(suite.T(), StatusCommittedCooked, p.Status())
	})

	suite.Run("InvalidatedPlan_ShouldRejectCommit", func() {
		p := suite.newProposal()
		require.NoError(suite.T(), p.Invalidate())

		err := p.Commit(OutcomeCooked)

		assert.ErrorIs(suite.T(), err, ErrInvalidStatusTransition)
	})
}

func (suite *PlanTestSuite) TestInvalidate() {
	suite.Run("ProposedPlan_ShouldInvalidate", func() {
		p := suite.newProposal()
		p.Events()

		err := p.Invalidate()

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusInvalidated, p.Status())

		events := p.Events()
		require.Len(suite.T(), events, 1)
		_, ok := events[0].(InvalidatedEvent)
		assert.True(suite.T(), ok)
	})

	suite.Run("CommittedPlan_ShouldRejectInvalidation", func() {
		p := suite.newProposal()
		require.NoError(suite.T(), p.Commit(OutcomeSkipped))

		err := p.Invalidate()

		assert.ErrorIs(suite.T(), err, ErrInvalidStatusTransition)
		assert.Equal(suite.T(), StatusCommittedSkipped, p.Status())
	})
}

func TestPlanTestSuite(t *testing.T) {
	suite.Run(t, new(PlanTestSuite))
}
