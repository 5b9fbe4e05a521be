package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/errors"
)

// RecipeAPIHandlers handles recipe catalog requests
type RecipeAPIHandlers struct {
	recipes  outbound.RecipeRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipes outbound.RecipeRepository, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipes:  recipes,
		validate: validator.New(),
		logger:   logger,
	}
}

type createRecipeRequest struct {
	Slug              string   `json:"slug" validate:"required"`
	Name              string   `json:"name" validate:"required,min=3,max=200"`
	TotalTimeMinutes  int      `json:"total_time_minutes" validate:"required,gt=0"`
	RequiredEquipment []string `json:"required_equipment"`
	Ingredients       []struct {
		CanonicalName string  `json:"canonical_name" validate:"required"`
		Quantity      float64 `json:"quantity" validate:"required,gt=0"`
		Unit          string  `json:"unit" validate:"required"`
	} `json:"ingredients" validate:"required,min=1,dive"`
}

type ingredientResponse struct {
	CanonicalName string  `json:"canonical_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
}

type recipeResponse struct {
	Slug              string               `json:"slug"`
	Name              string               `json:"name"`
	TotalTimeMinutes  int                  `json:"total_time_minutes"`
	RequiredEquipment []string             `json:"required_equipment"`
	Ingredients       []ingredientResponse `json:"ingredients"`
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeAPIHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	entry, err := recipe.NewRecipe(req.Slug, req.Name, req.TotalTimeMinutes)
	if err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}
	for _, token := range req.RequiredEquipment {
		entry.RequireEquipment(recipe.EquipmentType(token))
	}
	for _, ing := range req.Ingredients {
		err := entry.AddIngredient(recipe.Ingredient{
			CanonicalName: ing.CanonicalName,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
		})
		if err != nil {
			h.writeError(w, errors.NewValidationError(err.Error()))
			return
		}
	}

	if err := h.recipes.Create(r.Context(), entry); err != nil {
		h.writeError(w, errors.NewDatabaseError("create recipe", err))
		return
	}

	h.writeJSON(w, http.StatusCreated, toRecipeResponse(entry))
}

// GetRecipe handles GET /api/v1/recipes/{slug}
func (h *RecipeAPIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	entry, err := h.recipes.FindBySlug(r.Context(), slug)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			h.writeError(w, errors.NewRecipeNotFoundError(slug))
			return
		}
		h.writeError(w, errors.NewDatabaseError("find recipe", err))
		return
	}

	h.writeJSON(w, http.StatusOK, toRecipeResponse(entry))
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.recipes.FindAll(r.Context())
	if err != nil {
		h.writeError(w, errors.NewDatabaseError("list recipes", err))
		return
	}

	responses := make([]recipeResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toRecipeResponse(entry))
	}
	h.writeJSON(w, http.StatusOK, responses)
}

func toRecipeResponse(entry *recipe.Recipe) recipeResponse {
	equipment := make([]string, 0, len(entry.RequiredEquipment()))
	for _, eq := range entry.RequiredEquipment() {
		equipment = append(equipment, string(eq))
	}
	ingredients := make([]ingredientResponse, 0, len(entry.Ingredients()))
	for _, ing := range entry.Ingredients() {
		ingredients = append(ingredients, ingredientResponse{
			CanonicalName: ing.CanonicalName,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
		})
	}
	return recipeResponse{
		Slug:              entry.Slug(),
		Name:              entry.Name(),
		TotalTimeMinutes:  entry.TotalTimeMinutes(),
		RequiredEquipment: equipment,
		Ingredients:       ingredients,
	}
}

func (h *RecipeAPIHandlers) writeError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		h.writeJSON(w, appErr.StatusCode(), errorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Code),
		})
		return
	}

	h.logger.Error("Unhandled error in recipe API", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Code:  string(errors.CodeInternal),
	})
}

func (h *RecipeAPIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
