package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/outbound"
)

// RecipeRepository implements the recipe catalog over pgx. Equipment and
// ingredient requirements are stored as JSONB columns.
type RecipeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.RecipeRepository {
	return &RecipeRepository{db: db, logger: logger}
}

type ingredientModel struct {
	CanonicalName string  `json:"canonical_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
}

// Create stores a catalog entry
func (r *RecipeRepository) Create(ctx context.Context, entry *recipe.Recipe) error {
	equipment := make([]string, 0, len(entry.RequiredEquipment()))
	for _, eq := range entry.RequiredEquipment() {
		equipment = append(equipment, string(eq))
	}
	ingredients := make([]ingredientModel, 0, len(entry.Ingredients()))
	for _, ing := range entry.Ingredients() {
		ingredients = append(ingredients, ingredientModel{
			CanonicalName: ing.CanonicalName,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
		})
	}

	equipmentJSON, err := json.Marshal(equipment)
	if err != nil {
		return err
	}
	ingredientsJSON, err := json.Marshal(ingredients)
	if err != nil {
		return err
	}

	query := `INSERT INTO recipes (slug, name, total_time_minutes, required_equipment, ingredients, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (slug) DO UPDATE
	          SET name = EXCLUDED.name, total_time_minutes = EXCLUDED.total_time_minutes,
	              required_equipment = EXCLUDED.required_equipment, ingredients = EXCLUDED.ingredients,
	              updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query,
		entry.Slug(), entry.Name(), entry.TotalTimeMinutes(),
		equipmentJSON, ingredientsJSON, entry.CreatedAt(), entry.UpdatedAt(),
	)
	if err != nil {
		r.logger.Error("Failed to store recipe",
			zap.String("slug", entry.Slug()),
			zap.Error(err),
		)
	}
	return err
}

// FindBySlug retrieves a catalog entry by slug
func (r *RecipeRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error) {
	query := `SELECT slug, name, total_time_minutes, required_equipment, ingredients, created_at, updated_at
	          FROM recipes WHERE slug = $1`

	entry, err := r.scanRecipe(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}
	return entry, nil
}

// FindAll returns the catalog ordered by slug for deterministic engine input
func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	query := `SELECT slug, name, total_time_minutes, required_equipment, ingredients, created_at, updated_at
	          FROM recipes ORDER BY slug`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*recipe.Recipe
	for rows.Next() {
		entry, err := r.scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *RecipeRepository) scanRecipe(row pgx.Row) (*recipe.Recipe, error) {
	var (
		slug, name           string
		totalTime            int
		equipmentJSON        []byte
		ingredientsJSON      []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&slug, &name, &totalTime, &equipmentJSON, &ingredientsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var equipmentNames []string
	if err := json.Unmarshal(equipmentJSON, &equipmentNames); err != nil {
		return nil, err
	}
	equipment := make([]recipe.EquipmentType, 0, len(equipmentNames))
	for _, token := range equipmentNames {
		equipment = append(equipment, recipe.EquipmentType(token))
	}

	var models []ingredientModel
	if err := json.Unmarshal(ingredientsJSON, &models); err != nil {
		return nil, err
	}
	ingredients := make([]recipe.Ingredient, 0, len(models))
	for _, model := range models {
		ingredients = append(ingredients, recipe.Ingredient{
			CanonicalName: model.CanonicalName,
			Quantity:      model.Quantity,
			Unit:          model.Unit,
		})
	}

	return recipe.Rehydrate(slug, name, totalTime, equipment, ingredients, createdAt, updatedAt), nil
}
