package recipe

import "errors"

// Domain errors for recipe catalog operations

var (
	ErrInvalidSlug               = errors.New("recipe slug must be lowercase kebab-case")
	ErrNameTooShort              = errors.New("recipe name must be at least 3 characters")
	ErrNameTooLong               = errors.New("recipe name must not exceed 200 characters")
	ErrInvalidTotalTime          = errors.New("recipe total time must be greater than 0 minutes")
	ErrIngredientNameRequired    = errors.New("ingredient canonical name is required")
	ErrInvalidIngredientQuantity = errors.New("ingredient quantity must be greater than 0")
	ErrDuplicateIngredient       = errors.New("ingredient already exists in recipe")
	ErrRecipeNotFound            = errors.New("recipe not found")
)
