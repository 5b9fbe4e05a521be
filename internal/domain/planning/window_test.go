package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/platewise/v1/internal/domain/household"
)

// WindowTestSuite provides a test suite for window arithmetic
type WindowTestSuite struct {
	suite.Suite
	evening TimeInterval
}

func (suite *WindowTestSuite) SetupSuite() {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	suite.evening = TimeInterval{Start: start, End: start.Add(3 * time.Hour)}
}

func (suite *WindowTestSuite) at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func (suite *WindowTestSuite) TestMinutes() {
	suite.Run("ThreeHourWindow_ShouldBe180Minutes", func() {
		assert.Equal(suite.T(), 180, suite.evening.Minutes())
	})

	suite.Run("InvertedInterval_ShouldBeZero", func() {
		inverted := TimeInterval{Start: suite.evening.End, End: suite.evening.Start}
		assert.Equal(suite.T(), 0, inverted.Minutes())
	})

	suite.Run("EmptyInterval_ShouldBeZero", func() {
		empty := TimeInterval{Start: suite.evening.Start, End: suite.evening.Start}
		assert.Equal(suite.T(), 0, empty.Minutes())
	})
}

func (suite *WindowTestSuite) TestSubtractBlocks() {
	suite.Run("NoBlocks_ShouldReturnWholeWindow", func() {
		free := SubtractBlocks(suite.evening, nil)

		require.Len(suite.T(), free, 1)
		assert.Equal(suite.T(), suite.evening, free[0])
	})

	suite.Run("MiddleBlock_ShouldSplitWindow", func() {
		blocks := []household.CalendarBlock{
			{StartsAt: suite.at(18, 30), EndsAt: suite.at(19, 30)},
		}

		free := SubtractBlocks(suite.evening, blocks)

		require.Len(suite.T(), free, 2)
		assert.Equal(suite.T(), 30, free[0].Minutes())
		assert.Equal(suite.T(), 90, free[1].Minutes())
		assert.Equal(suite.T(), suite.at(19, 30), free[1].Start)
	})

	suite.Run("BlockCoveringWindow_ShouldLeaveNothing", func() {
		blocks := []household.CalendarBlock{
			{StartsAt: suite.at(17, 0), EndsAt: suite.at(22, 0)},
		}

		free := SubtractBlocks(suite.evening, blocks)

		assert.Empty(suite.T(), free)
	})

	suite.Run("UnsortedOverlappingBlocks_ShouldMergeCorrectly", func() {
		blocks := []household.CalendarBlock{
			{StartsAt: suite.at(19, 0), EndsAt: suite.at(20, 0)},
			{StartsAt: suite.at(18, 30), EndsAt: suite.at(19, 30)},
		}

		free := SubtractBlocks(suite.evening, blocks)

		require.Len(suite.T(), free, 2)
		assert.Equal(suite.T(), TimeInterval{Start: suite.at(18, 0), End: suite.at(18, 30)}, free[0])
		assert.Equal(suite.T(), TimeInterval{Start: suite.at(20, 0), End: suite.at(21, 0)}, free[1])
	})

	suite.Run("BlockOutsideWindow_ShouldBeIgnored", func() {
		blocks := []household.CalendarBlock{
			{StartsAt: suite.at(15, 0), EndsAt: suite.at(16, 0)},
			{StartsAt: suite.at(22, 0), EndsAt: suite.at(23, 0)},
		}

		free := SubtractBlocks(suite.evening, blocks)

		require.Len(suite.T(), free, 1)
		assert.Equal(suite.T(), suite.evening, free[0])
	})

	suite.Run("BlockTouchingWindowStart_ShouldNotEmitZeroGap", func() {
		blocks := []household.CalendarBlock{
			{StartsAt: suite.at(18, 0), EndsAt: suite.at(18, 45)},
		}

		free := SubtractBlocks(suite.evening, blocks)

		require.Len(suite.T(), free, 1)
		assert.Equal(suite.T(), suite.at(18, 45), free[0].Start)
	})

	suite.Run("TwoBlocks_ShouldLeaveThreeGaps", func() {
		blocks := []household.CalendarBlock{
			{StartsAt: suite.at(18, 30), EndsAt: suite.at(19, 0)},
			{StartsAt: suite.at(20, 0), EndsAt: suite.at(20, 30)},
		}

		free := SubtractBlocks(suite.evening, blocks)

		require.Len(suite.T(), free, 3)
		assert.Equal(suite.T(), 30, free[0].Minutes())
		assert.Equal(suite.T(), 60, free[1].Minutes())
		assert.Equal(suite.T(), 30, free[2].Minutes())
	})

	suite.Run("InvertedWindow_ShouldReturnNil", func() {
		inverted := TimeInterval{Start: suite.evening.End, End: suite.evening.Start}
		assert.Nil(suite.T(), SubtractBlocks(inverted, nil))
	})
}

func (suite *WindowTestSuite) TestPickLongestThenEarliest() {
	suite.Run("NoIntervals_ShouldReportNoWindow", func() {
		_, ok := PickLongestThenEarliest(nil)
		assert.False(suite.T(), ok)
	})

	suite.Run("DistinctLengths_ShouldPickLongest", func() {
		intervals := []TimeInterval{
			{Start: suite.at(18, 0), End: suite.at(18, 30)},
			{Start: suite.at(19, 30), End: suite.at(21, 0)},
		}

		chosen, ok := PickLongestThenEarliest(intervals)

		require.True(suite.T(), ok)
		assert.Equal(suite.T(), 90, chosen.Minutes())
	})

	suite.Run("EqualLengths_ShouldPickEarliest", func() {
		intervals := []TimeInterval{
			{Start: suite.at(20, 0), End: suite.at(20, 30)},
			{Start: suite.at(18, 0), End: suite.at(18, 30)},
		}

		chosen, ok := PickLongestThenEarliest(intervals)

		require.True(suite.T(), ok)
		assert.Equal(suite.T(), suite.at(18, 0), chosen.Start)
	})
}

func TestWindowTestSuite(t *testing.T) {
	suite.Run(t, new(WindowTestSuite))
}
