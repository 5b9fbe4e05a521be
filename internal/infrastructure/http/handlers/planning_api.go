// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appplanning "github.com/platewise/v1/internal/application/planning"
	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/pkg/errors"
)

// PlanningAPIHandlers handles planning REST API requests
type PlanningAPIHandlers struct {
	service  inbound.PlanningService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlanningAPIHandlers creates a new planning API handlers instance
func NewPlanningAPIHandlers(service inbound.PlanningService, logger *zap.Logger) *PlanningAPIHandlers {
	return &PlanningAPIHandlers{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// planTonightRequest is the optional body of a planning request. An
// empty body plans against the configured nominal evening window.
type planTonightRequest struct {
	WindowStart *time.Time `json:"window_start" validate:"required_with=WindowEnd"`
	WindowEnd   *time.Time `json:"window_end" validate:"required_with=WindowStart"`
}

// commitPlanRequest is the body of a plan commit request
type commitPlanRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=cooked skipped"`
}

// PlanTonight handles POST /api/v1/households/{householdID}/plan
func (h *PlanningAPIHandlers) PlanTonight(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("householdID must be a valid UUID"))
		return
	}

	var req planTonightRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, errors.NewValidationError("malformed request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.writeError(w, errors.NewValidationError(err.Error()))
			return
		}
	}

	dto, err := h.service.PlanTonight(r.Context(), inbound.PlanTonightCommand{
		HouseholdID: householdID,
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// CommitPlan handles POST /api/v1/plans/{planID}/commit
func (h *PlanningAPIHandlers) CommitPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("planID must be a valid UUID"))
		return
	}

	var req commitPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.service.CommitPlan(r.Context(), inbound.CommitPlanCommand{
		PlanID:  planID,
		Outcome: plan.Outcome(req.Outcome),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// GetPlan handles GET /api/v1/plans/{planID}
func (h *PlanningAPIHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		h.writeError(w, errors.NewValidationError("planID must be a valid UUID"))
		return
	}

	dto, err := h.service.GetPlan(r.Context(), planID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string            `json:"error"`
	Code  string            `json:"code"`
	Trace *inbound.TraceDTO `json:"reasoning_trace,omitempty"`
}

// writeError maps domain and application errors to HTTP responses. A
// planning rejection carries its full reasoning trace so the caller can
// see why every candidate was turned down.
func (h *PlanningAPIHandlers) writeError(w http.ResponseWriter, err error) {
	if rejection, ok := err.(*planning.NoEligibleRecipeError); ok {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: rejection.Error(),
			Code:  string(errors.CodeNoEligibleRecipe),
			Trace: appplanning.ToTraceDTO(rejection.Trace),
		})
		return
	}

	if appErr, ok := err.(*errors.AppError); ok {
		h.writeJSON(w, appErr.StatusCode(), errorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Code),
		})
		return
	}

	h.logger.Error("Unhandled error in planning API", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Code:  string(errors.CodeInternal),
	})
}

// writeJSON writes a JSON response
func (h *PlanningAPIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
