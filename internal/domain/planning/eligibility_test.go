package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/test/testutils"
)

func eveningWindow(minutes int) TimeInterval {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	return TimeInterval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

func TestFilterEligible(t *testing.T) {
	allEquipment := household.Equipment{HasOven: true, HasStovetop: true, HasBlender: true}

	t.Run("recipe fitting window and equipment is eligible", func(t *testing.T) {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("stovetop-pasta").
			WithTotalTime(30).
			WithEquipment(recipe.EquipmentStovetop).
			MustBuild()

		eligible, rejected := FilterEligible([]*recipe.Recipe{candidate}, allEquipment, eveningWindow(60), true)

		assert.Len(t, eligible, 1)
		assert.Empty(t, rejected)
	})

	t.Run("missing oven rejects with equipment reason", func(t *testing.T) {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("baked-ziti").
			WithTotalTime(45).
			WithEquipment(recipe.EquipmentOven).
			MustBuild()
		noOven := household.Equipment{HasStovetop: true, HasBlender: true}

		eligible, rejected := FilterEligible([]*recipe.Recipe{candidate}, noOven, eveningWindow(90), true)

		assert.Empty(t, eligible)
		require.Len(t, rejected, 1)
		assert.Equal(t, ReasonEquipmentMissing, rejected[0].Reason)
	})

	t.Run("recipe longer than window rejects with time reason", func(t *testing.T) {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("slow-braise").
			WithTotalTime(120).
			MustBuild()

		eligible, rejected := FilterEligible([]*recipe.Recipe{candidate}, allEquipment, eveningWindow(90), true)

		assert.Empty(t, eligible)
		require.Len(t, rejected, 1)
		assert.Equal(t, ReasonTimeInsufficient, rejected[0].Reason)
	})

	t.Run("recipe exactly filling window is eligible", func(t *testing.T) {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("exact-fit").
			WithTotalTime(90).
			MustBuild()

		eligible, rejected := FilterEligible([]*recipe.Recipe{candidate}, allEquipment, eveningWindow(90), true)

		assert.Len(t, eligible, 1)
		assert.Empty(t, rejected)
	})

	t.Run("no window rejects everything regardless of fit", func(t *testing.T) {
		quick := testutils.NewRecipeBuilder().WithSlug("quick-salad").WithTotalTime(5).MustBuild()
		slow := testutils.NewRecipeBuilder().WithSlug("slow-roast").WithTotalTime(180).MustBuild()

		eligible, rejected := FilterEligible([]*recipe.Recipe{quick, slow}, allEquipment, TimeInterval{}, false)

		assert.Empty(t, eligible)
		require.Len(t, rejected, 2)
		for _, rejection := range rejected {
			assert.Equal(t, ReasonNoTimeWindow, rejection.Reason)
		}
	})

	t.Run("unknown equipment token is treated as unmet", func(t *testing.T) {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("sous-vide-steak").
			WithTotalTime(30).
			WithEquipment(recipe.EquipmentType("sous-vide")).
			MustBuild()

		eligible, rejected := FilterEligible([]*recipe.Recipe{candidate}, allEquipment, eveningWindow(90), true)

		assert.Empty(t, eligible)
		require.Len(t, rejected, 1)
		assert.Equal(t, ReasonEquipmentMissing, rejected[0].Reason)
	})

	t.Run("equipment check runs before time check", func(t *testing.T) {
		candidate := testutils.NewRecipeBuilder().
			WithSlug("long-bake").
			WithTotalTime(240).
			WithEquipment(recipe.EquipmentOven).
			MustBuild()
		noOven := household.Equipment{HasStovetop: true}

		_, rejected := FilterEligible([]*recipe.Recipe{candidate}, noOven, eveningWindow(90), true)

		require.Len(t, rejected, 1)
		assert.Equal(t, ReasonEquipmentMissing, rejected[0].Reason)
	})
}
