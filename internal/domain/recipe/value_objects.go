package recipe

// Value Objects - Immutable objects that describe aspects of the domain

// EquipmentType identifies a kitchen capability a recipe may require
type EquipmentType string

// Known equipment types. Tokens outside this set are treated as unmet
// capabilities by the eligibility filter, never silently accepted.
const (
	EquipmentOven     EquipmentType = "oven"
	EquipmentStovetop EquipmentType = "stovetop"
	EquipmentBlender  EquipmentType = "blender"
)

// Ingredient represents a quantity of a canonical ingredient a recipe needs
type Ingredient struct {
	CanonicalName string
	Quantity      float64
	Unit          string
}

// Validate validates the ingredient requirement
func (i Ingredient) Validate() error {
	if i.CanonicalName == "" {
		return ErrIngredientNameRequired
	}
	if i.Quantity <= 0 {
		return ErrInvalidIngredientQuantity
	}
	return nil
}
