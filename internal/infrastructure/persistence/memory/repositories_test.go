package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/test/testutils"
)

// recordingObserver counts inventory change notifications
type recordingObserver struct {
	notifications []uuid.UUID
}

func (o *recordingObserver) InventoryChanged(ctx context.Context, householdID uuid.UUID) {
	o.notifications = append(o.notifications, householdID)
}

func TestHouseholdRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewHouseholdRepository()

	t.Run("create then find", func(t *testing.T) {
		h := testutils.NewHouseholdBuilder().MustBuild()
		require.NoError(t, repo.Create(ctx, h))

		found, err := repo.FindByID(ctx, h.ID())
		require.NoError(t, err)
		assert.Equal(t, h.ID(), found.ID())
	})

	t.Run("find unknown", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, household.ErrHouseholdNotFound)
	})

	t.Run("update unknown", func(t *testing.T) {
		h := testutils.NewHouseholdBuilder().MustBuild()
		err := repo.Update(ctx, h)
		assert.ErrorIs(t, err, household.ErrHouseholdNotFound)
	})
}

func TestInventoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("add item notifies observers", func(t *testing.T) {
		repo := NewInventoryRepository()
		observer := &recordingObserver{}
		repo.Subscribe(observer)
		householdID := uuid.New()

		item := testutils.NewInventoryItemBuilder().WithName("rice").Build()
		require.NoError(t, repo.AddItem(ctx, householdID, item))

		require.Len(t, observer.notifications, 1)
		assert.Equal(t, householdID, observer.notifications[0])
	})

	t.Run("invalid item rejected before storage", func(t *testing.T) {
		repo := NewInventoryRepository()
		observer := &recordingObserver{}
		repo.Subscribe(observer)
		householdID := uuid.New()

		item := testutils.NewInventoryItemBuilder().WithName("").Build()
		err := repo.AddItem(ctx, householdID, item)

		assert.ErrorIs(t, err, household.ErrItemNameRequired)
		assert.Empty(t, observer.notifications)

		snapshot, err := repo.Snapshot(ctx, householdID)
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		repo := NewInventoryRepository()
		householdID := uuid.New()
		item := testutils.NewInventoryItemBuilder().WithName("rice").WithQuantity(2).Build()
		require.NoError(t, repo.AddItem(ctx, householdID, item))

		snapshot, err := repo.Snapshot(ctx, householdID)
		require.NoError(t, err)
		snapshot[0].Quantity = 99

		fresh, err := repo.Snapshot(ctx, householdID)
		require.NoError(t, err)
		assert.Equal(t, 2.0, fresh[0].Quantity)
	})

	t.Run("remove item notifies observers", func(t *testing.T) {
		repo := NewInventoryRepository()
		observer := &recordingObserver{}
		householdID := uuid.New()
		item := testutils.NewInventoryItemBuilder().WithName("rice").Build()
		require.NoError(t, repo.AddItem(ctx, householdID, item))
		repo.Subscribe(observer)

		require.NoError(t, repo.RemoveItem(ctx, householdID, item.ID))

		require.Len(t, observer.notifications, 1)
		snapshot, err := repo.Snapshot(ctx, householdID)
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("remove unknown item", func(t *testing.T) {
		repo := NewInventoryRepository()
		observer := &recordingObserver{}
		repo.Subscribe(observer)

		err := repo.RemoveItem(ctx, uuid.New(), uuid.New())

		assert.ErrorIs(t, err, household.ErrItemNotFound)
		assert.Empty(t, observer.notifications)
	})

	t.Run("apply consumptions decrements and drops drained lots", func(t *testing.T) {
		repo := NewInventoryRepository()
		observer := &recordingObserver{}
		householdID := uuid.New()
		partial := testutils.NewInventoryItemBuilder().WithName("rice").WithQuantity(3).Build()
		drained := testutils.NewInventoryItemBuilder().WithName("spinach").WithQuantity(1).Build()
		require.NoError(t, repo.AddItem(ctx, householdID, partial))
		require.NoError(t, repo.AddItem(ctx, householdID, drained))
		repo.Subscribe(observer)

		err := repo.ApplyConsumptions(ctx, householdID, []planning.Consumption{
			{ItemID: partial.ID, CanonicalName: "rice", Quantity: 1},
			{ItemID: drained.ID, CanonicalName: "spinach", Quantity: 1},
		})

		require.NoError(t, err)
		require.Len(t, observer.notifications, 1)
		snapshot, err := repo.Snapshot(ctx, householdID)
		require.NoError(t, err)
		require.Len(t, snapshot, 1)
		assert.Equal(t, "rice", snapshot[0].CanonicalName)
		assert.Equal(t, 2.0, snapshot[0].Quantity)
	})

	t.Run("over-consumption clamps at zero", func(t *testing.T) {
		repo := NewInventoryRepository()
		householdID := uuid.New()
		item := testutils.NewInventoryItemBuilder().WithName("rice").WithQuantity(1).Build()
		require.NoError(t, repo.AddItem(ctx, householdID, item))

		err := repo.ApplyConsumptions(ctx, householdID, []planning.Consumption{
			{ItemID: item.ID, CanonicalName: "rice", Quantity: 5},
		})

		require.NoError(t, err)
		snapshot, err := repo.Snapshot(ctx, householdID)
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})
}

func TestRecipeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRecipeRepository()

	zucchini := testutils.NewRecipeBuilder().WithSlug("zucchini-bake").MustBuild()
	apple := testutils.NewRecipeBuilder().WithSlug("apple-curry").MustBuild()
	miso := testutils.NewRecipeBuilder().WithSlug("miso-ramen").MustBuild()
	for _, entry := range []*recipe.Recipe{zucchini, apple, miso} {
		require.NoError(t, repo.Create(ctx, entry))
	}

	t.Run("find by slug", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "miso-ramen")
		require.NoError(t, err)
		assert.Equal(t, "miso-ramen", found.Slug())
	})

	t.Run("find unknown slug", func(t *testing.T) {
		_, err := repo.FindBySlug(ctx, "beef-wellington")
		assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
	})

	t.Run("find all ordered by slug", func(t *testing.T) {
		entries, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "apple-curry", entries[0].Slug())
		assert.Equal(t, "miso-ramen", entries[1].Slug())
		assert.Equal(t, "zucchini-bake", entries[2].Slug())
	})
}

func TestCalendarRepository(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()
	repo := NewCalendarRepository()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
	window := planning.TimeInterval{Start: at(18, 0), End: at(21, 0)}

	t.Run("invalid block rejected", func(t *testing.T) {
		err := repo.AddBlock(ctx, householdID, household.CalendarBlock{StartsAt: at(20, 0), EndsAt: at(19, 0)})
		assert.Error(t, err)
	})

	t.Run("only overlapping blocks returned", func(t *testing.T) {
		inside := household.CalendarBlock{StartsAt: at(19, 0), EndsAt: at(19, 30)}
		spanningStart := household.CalendarBlock{StartsAt: at(17, 0), EndsAt: at(18, 30)}
		before := household.CalendarBlock{StartsAt: at(15, 0), EndsAt: at(16, 0)}
		touchingStart := household.CalendarBlock{StartsAt: at(17, 0), EndsAt: at(18, 0)}
		for _, block := range []household.CalendarBlock{inside, spanningStart, before, touchingStart} {
			require.NoError(t, repo.AddBlock(ctx, householdID, block))
		}

		overlapping, err := repo.BlocksForEvening(ctx, householdID, window)

		require.NoError(t, err)
		assert.ElementsMatch(t, []household.CalendarBlock{inside, spanningStart}, overlapping)
	})
}

func TestPlanRepository(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()

	newProposal := func(t *testing.T) *plan.Plan {
		t.Helper()
		winner := testutils.NewRecipeBuilder().WithSlug("weeknight-curry").MustBuild()
		return plan.NewProposal(householdID, &planning.Result{Winner: winner})
	}

	t.Run("save then find", func(t *testing.T) {
		repo := NewPlanRepository()
		p := newProposal(t)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, p.ID(), found.ID())
	})

	t.Run("find unknown", func(t *testing.T) {
		repo := NewPlanRepository()
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})

	t.Run("proposed lookup scoped to household and status", func(t *testing.T) {
		repo := NewPlanRepository()
		p := newProposal(t)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindProposedByHousehold(ctx, householdID)
		require.NoError(t, err)
		assert.Equal(t, p.ID(), found.ID())

		_, err = repo.FindProposedByHousehold(ctx, uuid.New())
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})

	t.Run("invalidated plan drops out of proposed lookup", func(t *testing.T) {
		repo := NewPlanRepository()
		p := newProposal(t)
		require.NoError(t, repo.Save(ctx, p))
		require.NoError(t, p.Invalidate())
		require.NoError(t, repo.Save(ctx, p))

		_, err := repo.FindProposedByHousehold(ctx, householdID)
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})
}
