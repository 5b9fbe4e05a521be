package redis

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/outbound"
)

const (
	catalogCacheKey    = "recipes:catalog"
	recipeCacheKeyBase = "recipes:slug:"
	defaultCatalogTTL  = 15 * time.Minute
)

// CachedRecipeRepository wraps a recipe repository with a read-through
// cache. The catalog is small and read on every planning request, so a
// stale window of a few minutes is acceptable; writes invalidate.
type CachedRecipeRepository struct {
	inner  outbound.RecipeRepository
	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRecipeRepository creates a caching decorator around a recipe repository
func NewCachedRecipeRepository(inner outbound.RecipeRepository, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) outbound.RecipeRepository {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CachedRecipeRepository{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

type recipeModel struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	TotalTimeMinutes int               `json:"total_time_minutes"`
	Equipment        []string          `json:"required_equipment"`
	Ingredients      []ingredientModel `json:"ingredients"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type ingredientModel struct {
	CanonicalName string  `json:"canonical_name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
}

// Create stores a catalog entry and invalidates cached reads
func (r *CachedRecipeRepository) Create(ctx context.Context, entry *recipe.Recipe) error {
	if err := r.inner.Create(ctx, entry); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, catalogCacheKey); err != nil {
		r.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
	if err := r.cache.Delete(ctx, recipeCacheKeyBase+entry.Slug()); err != nil {
		r.logger.Warn("Failed to invalidate recipe cache",
			zap.String("slug", entry.Slug()),
			zap.Error(err),
		)
	}
	return nil
}

// FindBySlug retrieves a catalog entry, serving from cache when possible
func (r *CachedRecipeRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error) {
	key := recipeCacheKeyBase + slug
	if data, err := r.cache.Get(ctx, key); err == nil {
		var model recipeModel
		if err := json.Unmarshal(data, &model); err == nil {
			return model.toEntity(), nil
		}
	}

	entry, err := r.inner.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	r.storeCached(ctx, key, toRecipeModel(entry))
	return entry, nil
}

// FindAll returns the catalog ordered by slug, serving from cache when possible
func (r *CachedRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	if data, err := r.cache.Get(ctx, catalogCacheKey); err == nil {
		var models []recipeModel
		if err := json.Unmarshal(data, &models); err == nil {
			entries := make([]*recipe.Recipe, 0, len(models))
			for _, model := range models {
				entries = append(entries, model.toEntity())
			}
			return entries, nil
		}
	}

	entries, err := r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]recipeModel, 0, len(entries))
	for _, entry := range entries {
		models = append(models, toRecipeModel(entry))
	}
	r.storeCached(ctx, catalogCacheKey, models)
	return entries, nil
}

func (r *CachedRecipeRepository) storeCached(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Failed to cache recipes", zap.String("key", key), zap.Error(err))
	}
}

func toRecipeModel(entry *recipe.Recipe) recipeModel {
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
	return recipeModel{
		Slug:             entry.Slug(),
		Name:             entry.Name(),
		TotalTimeMinutes: entry.TotalTimeMinutes(),
		Equipment:        equipment,
		Ingredients:      ingredients,
		CreatedAt:        entry.CreatedAt(),
		UpdatedAt:        entry.UpdatedAt(),
	}
}

func (m recipeModel) toEntity() *recipe.Recipe {
	equipment := make([]recipe.EquipmentType, 0, len(m.Equipment))
	for _, token := range m.Equipment {
		equipment = append(equipment, recipe.EquipmentType(token))
	}
	ingredients := make([]recipe.Ingredient, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{
			CanonicalName: ing.CanonicalName,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
		})
	}
	return recipe.Rehydrate(m.Slug, m.Name, m.TotalTimeMinutes, equipment, ingredients, m.CreatedAt, m.UpdatedAt)
}
