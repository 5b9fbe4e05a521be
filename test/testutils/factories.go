// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/platewise/v1/internal/domain/household"
	"github.com/platewise/v1/internal/domain/recipe"
)

// HouseholdBuilder provides a fluent interface for building test households
type HouseholdBuilder struct {
	name      string
	timezone  string
	equipment household.Equipment
}

// NewHouseholdBuilder creates a new household builder with default values
func NewHouseholdBuilder() *HouseholdBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &HouseholdBuilder{
		name:     faker.LastName() + " household",
		timezone: "America/New_York",
		equipment: household.Equipment{
			HasOven:     true,
			HasStovetop: true,
			HasBlender:  true,
		},
	}
}

// WithName sets the household name
func (hb *HouseholdBuilder) WithName(name string) *HouseholdBuilder {
	hb.name = name
	return hb
}

// WithTimezone sets the household's IANA timezone
func (hb *HouseholdBuilder) WithTimezone(timezone string) *HouseholdBuilder {
	hb.timezone = timezone
	return hb
}

// WithEquipment sets the household's kitchen capability set
func (hb *HouseholdBuilder) WithEquipment(equipment household.Equipment) *HouseholdBuilder {
	hb.equipment = equipment
	return hb
}

// WithoutOven removes the oven capability
func (hb *HouseholdBuilder) WithoutOven() *HouseholdBuilder {
	hb.equipment.HasOven = false
	return hb
}

// Build creates the household
func (hb *HouseholdBuilder) Build() (*household.Household, error) {
	return household.NewHousehold(hb.name, hb.timezone, hb.equipment)
}

// MustBuild creates the household and panics on error
func (hb *HouseholdBuilder) MustBuild() *household.Household {
	h, err := hb.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build test household: %v", err))
	}
	return h
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	slug             string
	name             string
	totalTimeMinutes int
	equipment        []recipe.EquipmentType
	ingredients      []recipe.Ingredient
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		slug:             fmt.Sprintf("test-recipe-%d", faker.Number(1000, 9999)),
		name:             "Test " + faker.Dinner(),
		totalTimeMinutes: 30,
		ingredients: []recipe.Ingredient{
			{CanonicalName: "chicken breast", Quantity: 2, Unit: "piece"},
		},
	}
}

// WithSlug sets the recipe slug
func (rb *RecipeBuilder) WithSlug(slug string) *RecipeBuilder {
	rb.slug = slug
	return rb
}

// WithName sets the recipe display name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.name = name
	return rb
}

// WithTotalTime sets the recipe's wall-clock minutes
func (rb *RecipeBuilder) WithTotalTime(minutes int) *RecipeBuilder {
	rb.totalTimeMinutes = minutes
	return rb
}

// WithEquipment sets the recipe's required equipment
func (rb *RecipeBuilder) WithEquipment(equipment ...recipe.EquipmentType) *RecipeBuilder {
	rb.equipment = equipment
	return rb
}

// WithIngredients replaces the recipe's ingredient requirements
func (rb *RecipeBuilder) WithIngredients(ingredients ...recipe.Ingredient) *RecipeBuilder {
	rb.ingredients = ingredients
	return rb
}

// Build creates the recipe
func (rb *RecipeBuilder) Build() (*recipe.Recipe, error) {
	r, err := recipe.NewRecipe(rb.slug, rb.name, rb.totalTimeMinutes)
	if err != nil {
		return nil, err
	}
	for _, eq := range rb.equipment {
		r.RequireEquipment(eq)
	}
	for _, ing := range rb.ingredients {
		if err := r.AddIngredient(ing); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustBuild creates the recipe and panics on error
func (rb *RecipeBuilder) MustBuild() *recipe.Recipe {
	r, err := rb.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build test recipe: %v", err))
	}
	return r
}

// InventoryItemBuilder provides a fluent interface for building test lots
type InventoryItemBuilder struct {
	item household.InventoryItem
}

// NewInventoryItemBuilder creates a new inventory lot builder
func NewInventoryItemBuilder() *InventoryItemBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &InventoryItemBuilder{
		item: household.InventoryItem{
			ID:            uuid.New(),
			CanonicalName: faker.Vegetable(),
			Quantity:      1,
			Unit:          "piece",
			CreatedAt:     time.Now(),
		},
	}
}

// WithName sets the lot's canonical ingredient name
func (ib *InventoryItemBuilder) WithName(name string) *InventoryItemBuilder {
	ib.item.CanonicalName = name
	return ib
}

// WithQuantity sets the lot quantity
func (ib *InventoryItemBuilder) WithQuantity(quantity float64) *InventoryItemBuilder {
	ib.item.Quantity = quantity
	return ib
}

// WithUnit sets the lot unit
func (ib *InventoryItemBuilder) WithUnit(unit string) *InventoryItemBuilder {
	ib.item.Unit = unit
	return ib
}

// ExpiringAt sets the lot's expiration timestamp
func (ib *InventoryItemBuilder) ExpiringAt(t time.Time) *InventoryItemBuilder {
	ib.item.ExpiresAt = &t
	return ib
}

// CreatedAt sets the lot's creation timestamp
func (ib *InventoryItemBuilder) CreatedAt(t time.Time) *InventoryItemBuilder {
	ib.item.CreatedAt = t
	return ib
}

// Build returns the inventory lot
func (ib *InventoryItemBuilder) Build() household.InventoryItem {
	return ib.item
}
