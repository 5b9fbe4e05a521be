package planning

import (
	"fmt"
	"strings"
)

// GroceryCategory classifies a shopping item for store-aisle grouping
type GroceryCategory string

const (
	CategoryProduce GroceryCategory = "produce"
	CategoryDairy   GroceryCategory = "dairy"
	CategoryMeat    GroceryCategory = "meat & seafood"
	CategoryPantry  GroceryCategory = "pantry"
	CategoryFrozen  GroceryCategory = "frozen"
	CategoryOther   GroceryCategory = "other"
)

// GroceryListItem is a display-ready shopping entry
type GroceryListItem struct {
	CanonicalName string          `json:"canonical_name"`
	DisplayName   string          `json:"display_name"`
	Quantity      float64         `json:"total_quantity"`
	Unit          string          `json:"unit"`
	Category      GroceryCategory `json:"category"`
}

// GroceryList is the normalized shopping list for a plan. It is nil
// whenever there are no addons; never empty-but-non-nil.
type GroceryList struct {
	Items   []GroceryListItem `json:"items"`
	Summary string            `json:"summary"`
}

// NothingNeededSummary is the standalone sentence rendered when the
// household already has everything the winning recipe needs.
const NothingNeededSummary = "You have everything you need for tonight."

// categoryIndex maps canonical ingredient names to store categories.
// Unknown names fall through to CategoryOther.
var categoryIndex = map[string]GroceryCategory{
	"onion": CategoryProduce, "garlic": CategoryProduce, "tomato": CategoryProduce,
	"potato": CategoryProduce, "carrot": CategoryProduce, "bell pepper": CategoryProduce,
	"spinach": CategoryProduce, "broccoli": CategoryProduce, "lettuce": CategoryProduce,
	"lemon": CategoryProduce, "lime": CategoryProduce, "basil": CategoryProduce,
	"cilantro": CategoryProduce, "mushroom": CategoryProduce, "zucchini": CategoryProduce,
	"avocado": CategoryProduce, "banana": CategoryProduce, "apple": CategoryProduce,

	"milk": CategoryDairy, "butter": CategoryDairy, "cheese": CategoryDairy,
	"parmesan": CategoryDairy, "mozzarella": CategoryDairy, "yogurt": CategoryDairy,
	"cream": CategoryDairy, "sour cream": CategoryDairy, "egg": CategoryDairy,

	"chicken breast": CategoryMeat, "chicken thigh": CategoryMeat, "ground beef": CategoryMeat,
	"beef": CategoryMeat, "pork": CategoryMeat, "bacon": CategoryMeat,
	"salmon": CategoryMeat, "shrimp": CategoryMeat, "tuna": CategoryMeat,

	"rice": CategoryPantry, "pasta": CategoryPantry, "spaghetti": CategoryPantry,
	"flour": CategoryPantry, "sugar": CategoryPantry, "salt": CategoryPantry,
	"olive oil": CategoryPantry, "soy sauce": CategoryPantry, "vinegar": CategoryPantry,
	"canned tomatoes": CategoryPantry, "chicken stock": CategoryPantry, "beans": CategoryPantry,
	"lentils": CategoryPantry, "bread": CategoryPantry, "oats": CategoryPantry,

	"peas": CategoryFrozen, "frozen peas": CategoryFrozen, "frozen corn": CategoryFrozen,
	"ice cream": CategoryFrozen,
}

// NormalizeGroceries turns allocator addons into a categorized, display-
// ready list with a human-readable summary sentence. Addons arrive
// already deduplicated by canonical name.
func NormalizeGroceries(addons []GroceryAddon) *GroceryList {
	if len(addons) == 0 {
		return nil
	}

	items := make([]GroceryListItem, 0, len(addons))
	phrases := make([]string, 0, len(addons))
	for _, addon := range addons {
		item := GroceryListItem{
			CanonicalName: addon.CanonicalName,
			DisplayName:   displayName(addon.CanonicalName),
			Quantity:      addon.Quantity,
			Unit:          addon.Unit,
			Category:      classify(addon.CanonicalName),
		}
		items = append(items, item)
		phrases = append(phrases, describeItem(item))
	}

	return &GroceryList{
		Items:   items,
		Summary: fmt.Sprintf("Pick up %s.", joinNaturally(phrases)),
	}
}

func classify(canonicalName string) GroceryCategory {
	if category, ok := categoryIndex[canonicalName]; ok {
		return category
	}
	return CategoryOther
}

func displayName(canonicalName string) string {
	words := strings.Fields(canonicalName)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func describeItem(item GroceryListItem) string {
	quantity := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", item.Quantity), "0"), ".")
	if item.Unit == "" {
		return fmt.Sprintf("%s %s", quantity, item.DisplayName)
	}
	return fmt.Sprintf("%s %s of %s", quantity, item.Unit, item.DisplayName)
}

// joinNaturally renders "a", "a and b", or "a, b, and c".
func joinNaturally(phrases []string) string {
	switch len(phrases) {
	case 1:
		return phrases[0]
	case 2:
		return phrases[0] + " and " + phrases[1]
	default:
		return strings.Join(phrases[:len(phrases)-1], ", ") + ", and " + phrases[len(phrases)-1]
	}
}
