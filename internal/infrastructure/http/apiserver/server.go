// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/infrastructure/config"
	"github.com/platewise/v1/internal/infrastructure/http/handlers"
	"github.com/platewise/v1/internal/infrastructure/http/middleware"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/healthcheck"
)

// APIServer represents the JSON API HTTP server
type APIServer struct {
	config          *config.Config
	logger          *zap.Logger
	server          *http.Server
	router          *chi.Mux
	planningService inbound.PlanningService
	households      outbound.HouseholdRepository
	inventory       outbound.InventoryRepository
	calendar        outbound.CalendarRepository
	recipes         outbound.RecipeRepository
	metrics         *monitoring.MetricsCollector
	health          *healthcheck.Health
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	planningService inbound.PlanningService,
	households outbound.HouseholdRepository,
	inventory outbound.InventoryRepository,
	calendar outbound.CalendarRepository,
	recipes outbound.RecipeRepository,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.Health,
) *APIServer {
	server := &APIServer{
		config:          cfg,
		logger:          log,
		planningService: planningService,
		households:      households,
		inventory:       inventory,
		calendar:        calendar,
		recipes:         recipes,
		metrics:         metrics,
		health:          health,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.Metrics(s.metrics))

	if s.config.RateLimit.Enable {
		r.Use(middleware.RateLimit(s.config.RateLimit.RequestsPerSec, s.config.RateLimit.BurstSize))
	}

	r.Get("/health", s.health.Handler())
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	planningH := handlers.NewPlanningAPIHandlers(s.planningService, s.logger)
	householdH := handlers.NewHouseholdAPIHandlers(s.households, s.inventory, s.calendar, s.logger)
	recipeH := handlers.NewRecipeAPIHandlers(s.recipes, s.logger)

	r.Route("/households", func(r chi.Router) {
		r.Post("/", householdH.CreateHousehold)

		r.Route("/{householdID}", func(r chi.Router) {
			r.Post("/plan", planningH.PlanTonight)
			r.Post("/inventory", householdH.AddInventoryItem)
			r.Delete("/inventory/{itemID}", householdH.RemoveInventoryItem)
			r.Post("/calendar-blocks", householdH.AddCalendarBlock)
		})
	})

	r.Route("/plans", func(r chi.Router) {
		r.Get("/{planID}", planningH.GetPlan)
		r.Post("/{planID}/commit", planningH.CommitPlan)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeH.ListRecipes)
		r.Post("/", recipeH.CreateRecipe)
		r.Get("/{slug}", recipeH.GetRecipe)
	})
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}
