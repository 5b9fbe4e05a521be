package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/plan"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/pkg/errors"
)

// stubPlanningService records the last command and plays back canned results
type stubPlanningService struct {
	planDTO    *inbound.PlanDTO
	planErr    error
	commitDTO  *inbound.PlanDTO
	commitErr  error
	getDTO     *inbound.PlanDTO
	getErr     error
	lastPlan   inbound.PlanTonightCommand
	lastCommit inbound.CommitPlanCommand
}

func (s *stubPlanningService) PlanTonight(ctx context.Context, cmd inbound.PlanTonightCommand) (*inbound.PlanDTO, error) {
	s.lastPlan = cmd
	return s.planDTO, s.planErr
}

func (s *stubPlanningService) CommitPlan(ctx context.Context, cmd inbound.CommitPlanCommand) (*inbound.PlanDTO, error) {
	s.lastCommit = cmd
	return s.commitDTO, s.commitErr
}

func (s *stubPlanningService) GetPlan(ctx context.Context, planID uuid.UUID) (*inbound.PlanDTO, error) {
	return s.getDTO, s.getErr
}

func (s *stubPlanningService) NotifyInventoryChanged(ctx context.Context, householdID uuid.UUID) (int, error) {
	return 0, nil
}

func planningRouter(service inbound.PlanningService) *chi.Mux {
	h := NewPlanningAPIHandlers(service, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/households/{householdID}/plan", h.PlanTonight)
	r.Post("/plans/{planID}/commit", h.CommitPlan)
	r.Get("/plans/{planID}", h.GetPlan)
	return r
}

func samplePlanDTO() *inbound.PlanDTO {
	return &inbound.PlanDTO{
		ID:          uuid.New(),
		HouseholdID: uuid.New(),
		RecipeSlug:  "weeknight-curry",
		RecipeName:  "Weeknight Curry",
		Status:      plan.StatusProposed,
		CreatedAt:   time.Now(),
	}
}

func TestPlanTonightHandler(t *testing.T) {
	t.Run("empty body plans against nominal window", func(t *testing.T) {
		service := &stubPlanningService{planDTO: samplePlanDTO()}
		router := planningRouter(service)
		householdID := uuid.New()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/households/"+householdID.String()+"/plan", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, householdID, service.lastPlan.HouseholdID)
		assert.Nil(t, service.lastPlan.WindowStart)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "weeknight-curry", body["recipe_slug"])
		assert.Contains(t, body, "plan_id")
	})

	t.Run("window override forwarded to service", func(t *testing.T) {
		service := &stubPlanningService{planDTO: samplePlanDTO()}
		router := planningRouter(service)

		payload := `{"window_start":"2026-03-10T18:00:00Z","window_end":"2026-03-10T20:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/households/"+uuid.NewString()+"/plan", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, service.lastPlan.WindowStart)
		require.NotNil(t, service.lastPlan.WindowEnd)
		assert.Equal(t, 18, service.lastPlan.WindowStart.Hour())
	})

	t.Run("window start without end rejected", func(t *testing.T) {
		service := &stubPlanningService{planDTO: samplePlanDTO()}
		router := planningRouter(service)

		payload := `{"window_start":"2026-03-10T18:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/households/"+uuid.NewString()+"/plan", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid household id rejected", func(t *testing.T) {
		router := planningRouter(&stubPlanningService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/households/not-a-uuid/plan", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejection renders trace with 422", func(t *testing.T) {
		rejection := &planning.NoEligibleRecipeError{Trace: &planning.Trace{
			RejectedRecipes: []planning.RejectedEntry{
				{Slug: "sunday-roast", Name: "Sunday Roast", Reason: planning.ReasonTimeInsufficient},
			},
		}}
		router := planningRouter(&stubPlanningService{planErr: rejection})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/households/"+uuid.NewString()+"/plan", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body struct {
			Code  string            `json:"code"`
			Trace *inbound.TraceDTO `json:"reasoning_trace"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(errors.CodeNoEligibleRecipe), body.Code)
		require.NotNil(t, body.Trace)
		require.Len(t, body.Trace.RejectedRecipes, 1)
		assert.Equal(t, "TIME_INSUFFICIENT", body.Trace.RejectedRecipes[0].Reason)
	})

	t.Run("household not found maps to 404", func(t *testing.T) {
		router := planningRouter(&stubPlanningService{planErr: errors.NewHouseholdNotFoundError("x")})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/households/"+uuid.NewString()+"/plan", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCommitPlanHandler(t *testing.T) {
	t.Run("valid outcome forwarded", func(t *testing.T) {
		service := &stubPlanningService{commitDTO: samplePlanDTO()}
		router := planningRouter(service)
		planID := uuid.New()

		req := httptest.NewRequest(http.MethodPost, "/plans/"+planID.String()+"/commit", bytes.NewBufferString(`{"outcome":"cooked"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, planID, service.lastCommit.PlanID)
		assert.Equal(t, plan.OutcomeCooked, service.lastCommit.Outcome)
	})

	t.Run("outcome outside taxonomy rejected", func(t *testing.T) {
		router := planningRouter(&stubPlanningService{commitDTO: samplePlanDTO()})

		req := httptest.NewRequest(http.MethodPost, "/plans/"+uuid.NewString()+"/commit", bytes.NewBufferString(`{"outcome":"ordered-takeout"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		router := planningRouter(&stubPlanningService{commitErr: errors.NewConflictError("plan is not open for commit")})

		req := httptest.NewRequest(http.MethodPost, "/plans/"+uuid.NewString()+"/commit", bytes.NewBufferString(`{"outcome":"cooked"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetPlanHandler(t *testing.T) {
	t.Run("found plan returned", func(t *testing.T) {
		dto := samplePlanDTO()
		router := planningRouter(&stubPlanningService{getDTO: dto})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/"+dto.ID.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown plan maps to 404", func(t *testing.T) {
		router := planningRouter(&stubPlanningService{getErr: errors.NewPlanNotFoundError("x")})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
