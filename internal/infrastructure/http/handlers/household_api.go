package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/errors"
)

// HouseholdAPIHandlers handles household, inventory, and calendar
// collaborator requests. These stay thin: inventory mutations trigger
// proposal invalidation through the repository's observer hook, not here.
type HouseholdAPIHandlers struct {
	households outbound.HouseholdRepository
	inventory  outbound.InventoryRepository
	calendar   outbound.CalendarRepository
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewHouseholdAPIHandlers creates a new household API handlers instance
func NewHouseholdAPIHandlers(
	households outbound.HouseholdRepository,
	inventory outbound.InventoryRepository,
	calendar outbound.CalendarRepository,
	logger *zap.Logger,
) *HouseholdAPIHandlers {
	return &HouseholdAPIHandlers{
		households: households,
		inventory:  inventory,
		calendar:   calendar,
		validate:   validator.New(),
		logger:     logger,
	}
}

type createHouseholdRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Timezone  string `json:"timezone" validate:"required"`
	Equipment struct {
		HasOven     bool `json:"has_oven"`
		HasStovetop bool `json:"has_stovetop"`
		HasBlender  bool `json:"has_blender"`
	} `json:"equipment"`
}

type householdResponse struct {
	ID       uuid.UUID `json:"household_id"`
	Name     string    `json:"name"`
	Timezone string    `json:"timezone"`
}

// CreateHousehold handles POST /api/v1/households
func (h *HouseholdAPIHandlers) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	var req createHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	entity, err := household.NewHousehold(req.Name, req.Timezone, household.Equipment{
		HasOven:     req.Equipment.HasOven,
		HasStovetop: req.Equipment.HasStovetop,
		HasBlender:  req.Equipment.HasBlender,
	})
	if err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	if err := h.households.Create(r.Context(), entity); err != nil {
		h.writeError(w, errors.NewDatabaseError("create household", err))
		return
	}

	h.writeJSON(w, http.StatusCreated, householdResponse{
		ID:       entity.ID(),
		Name:     entity.Name(),
		Timezone: entity.Timezone(),
	})
}

type addInventoryItemRequest struct {
	CanonicalName string     `json:"canonical_name" validate:"required"`
	Quantity      float64    `json:"quantity" validate:"required,gt=0"`
	Unit          string     `json:"unit" validate:"required"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type inventoryItemResponse struct {
	ItemID        uuid.UUID  `json:"item_id"`
	CanonicalName string     `json:"canonical_name"`
	Quantity      float64    `json:"quantity"`
	Unit          string     `json:"unit"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// AddInventoryItem handles POST /api/v1/households/{householdID}/inventory
func (h *HouseholdAPIHandlers) AddInventoryItem(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("householdID must be a valid UUID"))
		return
	}

	var req addInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	if _, err := h.households.FindByID(r.Context(), householdID); err != nil {
		h.writeError(w, errors.NewHouseholdNotFoundError(householdID.String()))
		return
	}

	item := household.InventoryItem{
		ID:            uuid.New(),
		CanonicalName: req.CanonicalName,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ExpiresAt:     req.ExpiresAt,
		CreatedAt:     time.Now(),
	}
	if err := h.inventory.AddItem(r.Context(), householdID, item); err != nil {
		h.writeError(w, errors.NewDatabaseError("add inventory item", err))
		return
	}

	h.writeJSON(w, http.StatusCreated, inventoryItemResponse{
		ItemID:        item.ID,
		CanonicalName: item.CanonicalName,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		ExpiresAt:     item.ExpiresAt,
	})
}

// RemoveInventoryItem handles DELETE /api/v1/households/{householdID}/inventory/{itemID}
func (h *HouseholdAPIHandlers) RemoveInventoryItem(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("householdID must be a valid UUID"))
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("itemID must be a valid UUID"))
		return
	}

	if err := h.inventory.RemoveItem(r.Context(), householdID, itemID); err != nil {
		if err == household.ErrItemNotFound {
			h.writeError(w, errors.NewItemNotFoundError(itemID.String()))
			return
		}
		h.writeError(w, errors.NewDatabaseError("remove inventory item", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addCalendarBlockRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

// AddCalendarBlock handles POST /api/v1/households/{householdID}/calendar-blocks
func (h *HouseholdAPIHandlers) AddCalendarBlock(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("householdID must be a valid UUID"))
		return
	}

	var req addCalendarBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	block := household.CalendarBlock{StartsAt: req.StartsAt, EndsAt: req.EndsAt}
	if err := h.calendar.AddBlock(r.Context(), householdID, block); err != nil {
		h.writeError(w, errors.NewDatabaseError("add calendar block", err))
		return
	}

	h.writeJSON(w, http.StatusCreated, block)
}

func (h *HouseholdAPIHandlers) writeError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		h.writeJSON(w, appErr.StatusCode(), errorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Code),
		})
		return
	}

	h.logger.Error("Unhandled error in household API", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Code:  string(errors.CodeInternal),
	})
}

func (h *HouseholdAPIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
