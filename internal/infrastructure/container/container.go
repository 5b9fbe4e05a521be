// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	appplanning "github.com/platewise/v1/internal/application/planning"
	"github.com/platewise/v1/internal/domain/planning"
	"github.com/platewise/v1/internal/infrastructure/config"
	"github.com/platewise/v1/internal/infrastructure/http/apiserver"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	"github.com/platewise/v1/internal/infrastructure/persistence/memory"
	"github.com/platewise/v1/internal/infrastructure/persistence/migrations"
	"github.com/platewise/v1/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/platewise/v1/internal/infrastructure/persistence/redis"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/healthcheck"
	"github.com/platewise/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	HealthModule,
	PersistenceModule,
	PlanningModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MetricsModule provides the Prometheus collector
var MetricsModule = fx.Provide(
	monitoring.NewMetricsCollector,
)

// HealthModule provides the health check registry. Dependency checkers
// are registered by NewRepositories for whichever backends are enabled.
var HealthModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *healthcheck.Health {
		return healthcheck.New(cfg.App.Version, log)
	},
)

// Repositories bundles the persistence ports behind one constructor so
// the Postgres/in-memory decision is made in a single place.
type Repositories struct {
	Households outbound.HouseholdRepository
	Inventory  outbound.InventoryRepository
	Recipes    outbound.RecipeRepository
	Calendar   outbound.CalendarRepository
	Plans      outbound.PlanRepository
	Cache      outbound.CacheRepository
}

// NewRepositories builds repositories according to configuration:
// Postgres-backed when the database is enabled, in-memory otherwise,
// with an optional Redis catalog cache in front of the recipe store.
func NewRepositories(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, health *healthcheck.Health) (*Repositories, error) {
	ctx := context.Background()
	repos := &Repositories{}

	if cfg.Database.Enabled {
		if cfg.Database.AutoMigrate {
			migrator, err := migrations.New(cfg.Database.DSN(), log)
			if err != nil {
				return nil, err
			}
			if err := migrator.Up(); err != nil {
				migrator.Close()
				return nil, err
			}
			if err := migrator.Close(); err != nil {
				return nil, err
			}
		}

		pool, err := postgres.Connect(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				pool.Close()
				return nil
			},
		})

		health.Register("database", healthcheck.NewPostgresChecker(pool))

		repos.Households = postgres.NewHouseholdRepository(pool, log)
		repos.Inventory = postgres.NewInventoryRepository(pool, log)
		repos.Recipes = postgres.NewRecipeRepository(pool, log)
		repos.Calendar = postgres.NewCalendarRepository(pool, log)
		repos.Plans = postgres.NewPlanRepository(pool, log)
	} else {
		log.Info("Using in-memory repositories")
		repos.Households = memory.NewHouseholdRepository()
		repos.Inventory = memory.NewInventoryRepository()
		repos.Recipes = memory.NewRecipeRepository()
		repos.Calendar = memory.NewCalendarRepository()
		repos.Plans = memory.NewPlanRepository()
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		health.Register("redis", healthcheck.NewRedisChecker(client))
		repos.Cache = redisrepo.NewCacheRepository(client, log)
		repos.Recipes = redisrepo.NewCachedRecipeRepository(repos.Recipes, repos.Cache, cfg.Redis.CatalogTTL, log)
	} else {
		repos.Cache = memory.NewCacheRepository()
	}

	return repos, nil
}

// PersistenceModule provides repository implementations
var PersistenceModule = fx.Provide(
	NewRepositories,
	func(r *Repositories) outbound.HouseholdRepository { return r.Households },
	func(r *Repositories) outbound.InventoryRepository { return r.Inventory },
	func(r *Repositories) outbound.RecipeRepository { return r.Recipes },
	func(r *Repositories) outbound.CalendarRepository { return r.Calendar },
	func(r *Repositories) outbound.PlanRepository { return r.Plans },
	func(r *Repositories) outbound.CacheRepository { return r.Cache },
)

// PlanningModule provides the engine and the planning service
var PlanningModule = fx.Provide(
	func(cfg *config.Config) *planning.Engine {
		return planning.NewEngine(planning.ScoreWeights{
			Coverage: cfg.Planning.CoverageWeight,
			Urgency:  cfg.Planning.UrgencyWeight,
		})
	},
	func(cfg *config.Config) (appplanning.WindowPolicy, error) {
		startHour, startMinute, endHour, endMinute, err := cfg.Planning.WindowTimes()
		if err != nil {
			return appplanning.WindowPolicy{}, err
		}
		return appplanning.WindowPolicy{
			StartHour:   startHour,
			StartMinute: startMinute,
			EndHour:     endHour,
			EndMinute:   endMinute,
		}, nil
	},
	func(
		repos *Repositories,
		engine *planning.Engine,
		window appplanning.WindowPolicy,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) *appplanning.Service {
		return appplanning.NewService(
			repos.Households,
			repos.Inventory,
			repos.Recipes,
			repos.Calendar,
			repos.Plans,
			engine,
			window,
			metrics,
			log,
		)
	},
	func(s *appplanning.Service) inbound.PlanningService { return s },
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule wires the observer hook and the server lifecycle
var LifecycleModule = fx.Invoke(
	SubscribeInventoryObserver,
	RegisterLifecycleHooks,
)

// SubscribeInventoryObserver registers the planning service as the
// inventory mutation observer, so proposals are invalidated before any
// inventory change returns.
func SubscribeInventoryObserver(repos *Repositories, service *appplanning.Service) {
	repos.Inventory.Subscribe(service)
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Platewise application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Platewise application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
