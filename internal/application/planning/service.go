// Package planning provides the application layer for dinner planning.
// It implements the use cases defined in the inbound ports and owns the
// per-household proposal lifecycle around the pure planning engine.
package planning

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/errors"
)

// WindowPolicy is the nominal evening cooking window, applied in the
// household's local timezone when a request does not override it.
type WindowPolicy struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// DefaultWindowPolicy plans against 18:00-21:00 household local time.
func DefaultWindowPolicy() WindowPolicy {
	return WindowPolicy{StartHour: 18, EndHour: 21}
}

// Metrics records planning-pipeline outcomes. The prometheus
// implementation lives in infrastructure/monitoring.
type Metrics interface {
	PlanProposed()
	PlanCacheHit()
	PlansInvalidated(count int)
	PlanCommitted(outcome plan.Outcome)
	PlanningRejected()
	ObservePlanningDuration(d time.Duration)
}

// NopMetrics discards all observations
type NopMetrics struct{}

func (NopMetrics) PlanProposed()                         {}
func (NopMetrics) PlanCacheHit()                         {}
func (NopMetrics) PlansInvalidated(int)                  {}
func (NopMetrics) PlanCommitted(plan.Outcome)            {}
func (NopMetrics) PlanningRejected()                     {}
func (NopMetrics) ObservePlanningDuration(time.Duration) {}

// Service implements the planning use cases. All proposal bookkeeping is
// serialized per household: the check-for-cached-proposal-or-run decision
// and inventory-triggered invalidation share one keyed lock, so two
// concurrent requests can never both create a proposed plan.
type Service struct {
	households outbound.HouseholdRepository
	inventory  outbound.InventoryRepository
	recipes    outbound.RecipeRepository
	calendar   outbound.CalendarRepository
	plans      outbound.PlanRepository

	engine  *planning.Engine
	window  WindowPolicy
	metrics Metrics
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex

	now func() time.Time
}

// NewService creates a new planning service
func NewService(
	households outbound.HouseholdRepository,
	inventory outbound.InventoryRepository,
	recipes outbound.RecipeRepository,
	calendar outbound.CalendarRepository,
	plans outbound.PlanRepository,
	engine *planning.Engine,
	window WindowPolicy,
	metrics Metrics,
	logger *zap.Logger,
) *Service {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Service{
		households: households,
		inventory:  inventory,
		recipes:    recipes,
		calendar:   calendar,
		plans:      plans,
		engine:     engine,
		window:     window,
		metrics:    metrics,
		logger:     logger.Named("planning-service"),
		locks:      make(map[uuid.UUID]*sync.Mutex),
		now:        time.Now,
	}
}

// householdLock returns the mutex serializing one household's proposals
func (s *Service) householdLock(householdID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[householdID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[householdID] = lock
	}
	return lock
}

// PlanTonight proposes a dinner plan, or returns the household's current
// proposed plan unchanged when inventory has not moved since.
func (s *Service) PlanTonight(ctx context.Context, cmd inbound.PlanTonightCommand) (*inbound.PlanDTO, error) {
	lock := s.householdLock(cmd.HouseholdID)
	lock.Lock()
	defer lock.Unlock()

	// Idempotency: an existing proposal is returned as-is, the pipeline
	// is not re-run. Inventory mutations clear proposals before this
	// check can observe them, so a hit here is never stale.
	existing, err := s.plans.FindProposedByHousehold(ctx, cmd.HouseholdID)
	if err != nil && err != plan.ErrPlanNotFound {
		return nil, errors.NewDatabaseError("find proposed plan", err)
	}
	if existing != nil {
		s.metrics.PlanCacheHit()
		s.logger.Debug("Returning cached proposal",
			zap.String("household_id", cmd.HouseholdID.String()),
			zap.String("plan_id", existing.ID().String()),
		)
		return toPlanDTO(existing), nil
	}

	h, err := s.households.FindByID(ctx, cmd.HouseholdID)
	if err != nil {
		return nil, errors.NewHouseholdNotFoundError(cmd.HouseholdID.String())
	}

	snapshot, err := s.buildSnapshot(ctx, h, cmd)
	if err != nil {
		return nil, err
	}

	started := s.now()
	result, err := s.engine.Plan(*snapshot)
	s.metrics.ObservePlanningDuration(s.now().Sub(started))
	if err != nil {
		if rejection, ok := err.(*planning.NoEligibleRecipeError); ok {
			s.metrics.PlanningRejected()
			s.logger.Info("No eligible recipe for household",
				zap.String("household_id", cmd.HouseholdID.String()),
				zap.Int("rejected", len(rejection.Trace.RejectedRecipes)),
			)
			return nil, rejection
		}
		return nil, err
	}

	proposal := plan.NewProposal(cmd.HouseholdID, result)
	if err := s.plans.Save(ctx, proposal); err != nil {
		return nil, errors.NewDatabaseError("save plan", err)
	}

	s.metrics.PlanProposed()
	s.logger.Info("Plan proposed",
		zap.String("household_id", cmd.HouseholdID.String()),
		zap.String("plan_id", proposal.ID().String()),
		zap.String("recipe", proposal.RecipeSlug()),
		zap.Float64("score", result.Scores.Final),
	)

	return toPlanDTO(proposal), nil
}

// CommitPlan settles a proposed plan as cooked or skipped. Consumption
// is applied outside the household lock: by then the plan is already
// committed, so the mutation hook finds no proposal to invalidate.
func (s *Service) CommitPlan(ctx context.Context, cmd inbound.CommitPlanCommand) (*inbound.PlanDTO, error) {
	target, err := s.plans.FindByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, errors.NewPlanNotFoundError(cmd.PlanID.String())
	}

	lock := s.householdLock(target.HouseholdID())
	lock.Lock()

	// Reload under the lock; an invalidation may have raced us in.
	target, err = s.plans.FindByID(ctx, cmd.PlanID)
	if err != nil {
		lock.Unlock()
		return nil, errors.NewPlanNotFoundError(cmd.PlanID.String())
	}
	if err := target.Commit(cmd.Outcome); err != nil {
		lock.Unlock()
		return nil, errors.NewConflictError("plan is not open for commit").WithCause(err)
	}
	if err := s.plans.Save(ctx, target); err != nil {
		lock.Unlock()
		return nil, errors.NewDatabaseError("save plan", err)
	}
	lock.Unlock()

	if cmd.Outcome == plan.OutcomeCooked {
		if err := s.inventory.ApplyConsumptions(ctx, target.HouseholdID(), target.InventoryToConsume()); err != nil {
			return nil, errors.NewDatabaseError("apply consumptions", err)
		}
	}

	s.metrics.PlanCommitted(cmd.Outcome)
	s.logger.Info("Plan committed",
		zap.String("plan_id", target.ID().String()),
		zap.String("outcome", string(cmd.Outcome)),
	)

	return toPlanDTO(target), nil
}

// GetPlan retrieves a plan by ID regardless of status
func (s *Service) GetPlan(ctx context.Context, planID uuid.UUID) (*inbound.PlanDTO, error) {
	target, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, errors.NewPlanNotFoundError(planID.String())
	}
	return toPlanDTO(target), nil
}

// NotifyInventoryChanged discards the household's proposed plan, if any.
// It runs under the household lock, so the invalidation is visible to
// every subsequent planning request before the mutation call returns.
func (s *Service) NotifyInventoryChanged(ctx context.Context, householdID uuid.UUID) (int, error) {
	lock := s.householdLock(householdID)
	lock.Lock()
	defer lock.Unlock()

	proposed, err := s.plans.FindProposedByHousehold(ctx, householdID)
	if err != nil {
		if err == plan.ErrPlanNotFound {
			return 0, nil
		}
		return 0, errors.NewDatabaseError("find proposed plan", err)
	}
	if proposed == nil {
		return 0, nil
	}

	if err := proposed.Invalidate(); err != nil {
		return 0, errors.NewConflictError("plan is not open for invalidation").WithCause(err)
	}
	if err := s.plans.Save(ctx, proposed); err != nil {
		return 0, errors.NewDatabaseError("save plan", err)
	}

	s.metrics.PlansInvalidated(1)
	s.logger.Info("Proposed plan invalidated by inventory change",
		zap.String("household_id", householdID.String()),
		zap.String("plan_id", proposed.ID().String()),
	)
	return 1, nil
}

// InventoryChanged implements outbound.InventoryObserver, so the service
// can be subscribed directly to the inventory repository.
func (s *Service) InventoryChanged(ctx context.Context, householdID uuid.UUID) {
	if _, err := s.NotifyInventoryChanged(ctx, householdID); err != nil {
		s.logger.Error("Failed to invalidate proposal on inventory change",
			zap.String("household_id", householdID.String()),
			zap.Error(err),
		)
	}
}

// buildSnapshot gathers the read-only inputs for one engine run
func (s *Service) buildSnapshot(ctx context.Context, h *household.Household, cmd inbound.PlanTonightCommand) (*planning.Snapshot, error) {
	inventory, err := s.inventory.Snapshot(ctx, h.ID())
	if err != nil {
		return nil, errors.NewDatabaseError("load inventory snapshot", err)
	}
	for _, item := range inventory {
		if err := item.Validate(); err != nil {
			return nil, errors.NewValidationError("inventory snapshot").WithCause(err)
		}
	}

	candidates, err := s.recipes.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load recipe catalog", err)
	}

	window := s.resolveWindow(h, cmd)
	if !window.End.After(window.Start) {
		return nil, errors.NewValidationError("cooking window must end after it starts")
	}

	blocks, err := s.calendar.BlocksForEvening(ctx, h.ID(), window)
	if err != nil {
		return nil, errors.NewDatabaseError("load calendar blocks", err)
	}
	for _, block := range blocks {
		if err := block.Validate(); err != nil {
			return nil, errors.NewValidationError("calendar blocks").WithCause(err)
		}
	}

	return &planning.Snapshot{
		Equipment:      h.Equipment(),
		Inventory:      inventory,
		CalendarBlocks: blocks,
		Candidates:     candidates,
		Window:         window,
		LocalMidnight:  h.LocalMidnight(s.now()),
	}, nil
}

// resolveWindow applies the command override or the nominal policy
// window in the household's local timezone.
func (s *Service) resolveWindow(h *household.Household, cmd inbound.PlanTonightCommand) planning.TimeInterval {
	if cmd.WindowStart != nil && cmd.WindowEnd != nil {
		return planning.TimeInterval{Start: *cmd.WindowStart, End: *cmd.WindowEnd}
	}
	local := s.now().In(h.Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), s.window.StartHour, s.window.StartMinute, 0, 0, local.Location())
	end := time.Date(local.Year(), local.Month(), local.Day(), s.window.EndHour, s.window.EndMinute, 0, 0, local.Location())
	return planning.TimeInterval{Start: start, End: end}
}
