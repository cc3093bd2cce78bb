package rest

import (
	"net/http"

	"pledgeboard-backend/application/ports"
	querybus "pledgeboard-backend/application/queries/bus"
	"pledgeboard-backend/infrastructure/config"
	"pledgeboard-backend/interfaces/http/rest/handlers"
	"pledgeboard-backend/interfaces/http/rest/middleware"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	queryBus *querybus.QueryBus
	sessions ports.SessionRepository
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	queryBus *querybus.QueryBus,
	sessions ports.SessionRepository,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		queryBus: queryBus,
		sessions: sessions,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	errHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))

	// The API is public read-only data; CORS stays permissive for GETs
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		sessionHandler := handlers.NewSessionHandler(rt.sessions, rt.queryBus, errHandler, rt.logger)
		officeholderHandler := handlers.NewOfficeholderHandler(rt.queryBus, errHandler, rt.logger)
		evidenceHandler := handlers.NewEvidenceHandler(rt.queryBus, errHandler, rt.logger)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.ListSessions)
			r.Get("/{sessionID}/commitments", sessionHandler.ListCommitments)
			r.Get("/{sessionID}/roles/{roleID}/officeholder", officeholderHandler.GetOfficeholder)
		})

		r.Route("/commitments", func(r chi.Router) {
			r.Get("/{commitmentID}/evidence", evidenceHandler.GetTimeline)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	// Store reads are lazy; reachability problems surface per-request as
	// STORE errors rather than failing readiness.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
