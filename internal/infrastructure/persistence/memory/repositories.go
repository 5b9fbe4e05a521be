// Package memory provides in-memory repository implementations, used by
// tests and by deployments that have no PostgreSQL to talk to.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/outbound"
)

// HouseholdRepository implements in-memory household persistence
type HouseholdRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*household.Household
}

// NewHouseholdRepository creates a new in-memory household repository
func NewHouseholdRepository() *HouseholdRepository {
	return &HouseholdRepository{data: make(map[uuid.UUID]*household.Household)}
}

// Create stores a new household
func (r *HouseholdRepository) Create(ctx context.Context, h *household.Household) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[h.ID()] = h
	return nil
}

// FindByID retrieves a household by ID
func (r *HouseholdRepository) FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.data[id]
	if !ok {
		return nil, household.ErrHouseholdNotFound
	}
	return h, nil
}

// Update replaces a stored household
func (r *HouseholdRepository) Update(ctx context.Context, h *household.Household) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[h.ID()]; !ok {
		return household.ErrHouseholdNotFound
	}
	r.data[h.ID()] = h
	return nil
}

// InventoryRepository implements in-memory inventory lot persistence.
// Every mutation notifies subscribed observers before returning, which
// is what keeps stale proposed plans from surviving an inventory change.
type InventoryRepository struct {
	mu        sync.RWMutex
	lots      map[uuid.UUID][]household.InventoryItem
	observers []outbound.InventoryObserver
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{lots: make(map[uuid.UUID][]household.InventoryItem)}
}

// Subscribe registers an observer for inventory mutations
func (r *InventoryRepository) Subscribe(observer outbound.InventoryObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, observer)
}

// Snapshot returns a copy of the household's inventory lots
func (r *InventoryRepository) Snapshot(ctx context.Context, householdID uuid.UUID) ([]household.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.lots[householdID]
	snapshot := make([]household.InventoryItem, len(items))
	copy(snapshot, items)
	return snapshot, nil
}

// AddItem stores a new inventory lot and notifies observers
func (r *InventoryRepository) AddItem(ctx context.Context, householdID uuid.UUID, item household.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.lots[householdID] = append(r.lots[householdID], item)
	observers := r.snapshotObservers()
	r.mu.Unlock()

	r.notify(ctx, observers, householdID)
	return nil
}

// RemoveItem deletes an inventory lot and notifies observers
func (r *InventoryRepository) RemoveItem(ctx context.Context, householdID, itemID uuid.UUID) error {
	r.mu.Lock()
	items := r.lots[householdID]
	found := false
	for i, item := range items {
		if item.ID == itemID {
			r.lots[householdID] = append(items[:i], items[i+1:]...)
			found = true
			break
		}
	}
	observers := r.snapshotObservers()
	r.mu.Unlock()

	if !found {
		return household.ErrItemNotFound
	}
	r.notify(ctx, observers, householdID)
	return nil
}

// ApplyConsumptions decrements lot quantities per the plan's instructions,
// dropping lots drained to zero, then notifies observers.
func (r *InventoryRepository) ApplyConsumptions(ctx context.Context, householdID uuid.UUID, consumptions []planning.Consumption) error {
	r.mu.Lock()
	items := r.lots[householdID]
	for _, consumption := range consumptions {
		for i := range items {
			if items[i].ID != consumption.ItemID {
				continue
			}
			items[i].Quantity -= consumption.Quantity
			if items[i].Quantity < 0 {
				items[i].Quantity = 0
			}
			break
		}
	}
	remaining := items[:0]
	for _, item := range items {
		if item.Quantity > 0 {
			remaining = append(remaining, item)
		}
	}
	r.lots[householdID] = remaining
	observers := r.snapshotObservers()
	r.mu.Unlock()

	r.notify(ctx, observers, householdID)
	return nil
}

// snapshotObservers copies the observer list; callers hold the lock.
func (r *InventoryRepository) snapshotObservers() []outbound.InventoryObserver {
	observers := make([]outbound.InventoryObserver, len(r.observers))
	copy(observers, r.observers)
	return observers
}

// notify runs outside the repository lock so observers can re-read state.
func (r *InventoryRepository) notify(ctx context.Context, observers []outbound.InventoryObserver, householdID uuid.UUID) {
	for _, observer := range observers {
		observer.InventoryChanged(ctx, householdID)
	}
}

// RecipeRepository implements an in-memory recipe catalog
type RecipeRepository struct {
	mu   sync.RWMutex
	data map[string]*recipe.Recipe
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{data: make(map[string]*recipe.Recipe)}
}

// Create stores a catalog entry
func (r *RecipeRepository) Create(ctx context.Context, entry *recipe.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[entry.Slug()] = entry
	return nil
}

// FindBySlug retrieves a catalog entry by slug
func (r *RecipeRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.data[slug]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return entry, nil
}

// FindAll returns the catalog ordered by slug for deterministic engine input
func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*recipe.Recipe, 0, len(r.data))
	for _, entry := range r.data {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Slug() < entries[b].Slug() })
	return entries, nil
}

// CalendarRepository implements in-memory calendar block storage
type CalendarRepository struct {
	mu     sync.RWMutex
	blocks map[uuid.UUID][]household.CalendarBlock
}

// NewCalendarRepository creates a new in-memory calendar repository
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{blocks: make(map[uuid.UUID][]household.CalendarBlock)}
}

// AddBlock stores a calendar block
func (r *CalendarRepository) AddBlock(ctx context.Context, householdID uuid.UUID, block household.CalendarBlock) error {
	if err := block.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[householdID] = append(r.blocks[householdID], block)
	return nil
}

// BlocksForEvening returns the blocks overlapping the nominal window
func (r *CalendarRepository) BlocksForEvening(ctx context.Context, householdID uuid.UUID, window planning.TimeInterval) ([]household.CalendarBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var overlapping []household.CalendarBlock
	for _, block := range r.blocks[householdID] {
		if block.StartsAt.Before(window.End) && block.EndsAt.After(window.Start) {
			overlapping = append(overlapping, block)
		}
	}
	return overlapping, nil
}

// PlanRepository implements in-memory plan persistence
type PlanRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*plan.Plan
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{data: make(map[uuid.UUID]*plan.Plan)}
}

// Save stores or replaces a plan
func (r *PlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID()] = p
	return nil
}

// FindByID retrieves a plan by ID
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return nil, plan.ErrPlanNotFound
	}
	return p, nil
}

// FindProposedByHousehold returns the household's proposed plan, or
// ErrPlanNotFound when none exists. At most one can be proposed.
func (r *PlanRepository) FindProposedByHousehold(ctx context.Context, householdID uuid.UUID) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.data {
		if p.HouseholdID() == householdID && p.Status() == plan.StatusProposed {
			return p, nil
		}
	}
	return nil, plan.ErrPlanNotFound
}
