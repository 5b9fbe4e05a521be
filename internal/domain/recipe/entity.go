// Package recipe contains the core domain logic for the candidate recipe
// catalog the planning engine draws from.
package recipe

import (
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Recipe represents a catalog entry the planner can propose. The slug is
// the stable public identifier; it also drives deterministic tie-breaks.
type Recipe struct {
	slug              string
	name              string
	requiredEquipment []EquipmentType
	totalTimeMinutes  int
	ingredients       []Ingredient

	createdAt time.Time
	updatedAt time.Time
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(slug, name string, totalTimeMinutes int) (*Recipe, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if totalTimeMinutes <= 0 {
		return nil, ErrInvalidTotalTime
	}

	now := time.Now()
	return &Recipe{
		slug:             slug,
		name:             name,
		totalTimeMinutes: totalTimeMinutes,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Rehydrate reconstructs a Recipe from persisted state.
func Rehydrate(
	slug, name string,
	totalTimeMinutes int,
	requiredEquipment []EquipmentType,
	ingredients []Ingredient,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		slug:              slug,
		name:              name,
		requiredEquipment: requiredEquipment,
		totalTimeMinutes:  totalTimeMinutes,
		ingredients:       ingredients,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Slug returns the recipe's stable identifier
func (r *Recipe) Slug() string {
	return r.slug
}

// Name returns the recipe's display name
func (r *Recipe) Name() string {
	return r.name
}

// RequiredEquipment returns the equipment the recipe cannot be cooked without
func (r *Recipe) RequiredEquipment() []EquipmentType {
	return r.requiredEquipment
}

// TotalTimeMinutes returns the wall-clock minutes the recipe takes
func (r *Recipe) TotalTimeMinutes() int {
	return r.totalTimeMinutes
}

// Ingredients returns the recipe's ingredient requirements
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// RequireEquipment adds an equipment requirement
func (r *Recipe) RequireEquipment(equipment EquipmentType) {
	for _, existing := range r.requiredEquipment {
		if existing == equipment {
			return
		}
	}
	r.requiredEquipment = append(r.requiredEquipment, equipment)
	r.updatedAt = time.Now()
}

// AddIngredient adds an ingredient requirement to the recipe
func (r *Recipe) AddIngredient(ingredient Ingredient) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}
	for _, existing := range r.ingredients {
		if existing.CanonicalName == ingredient.CanonicalName {
			return ErrDuplicateIngredient
		}
	}
	r.ingredients = append(r.ingredients, ingredient)
	r.updatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	if len(name) < 3 {
		return ErrNameTooShort
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
