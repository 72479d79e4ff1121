// Package api provides the HTTP API server and handlers for the Blossom application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blossomapp/blossom-server/internal/ratelimit"
	"github.com/blossomapp/blossom-server/internal/search"
	"github.com/blossomapp/blossom-server/internal/service"
	"github.com/blossomapp/blossom-server/internal/sse"
	"github.com/blossomapp/blossom-server/internal/store"
	"github.com/blossomapp/blossom-server/internal/validation"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Registry *service.RegistryService
	Card     *service.CardService
	Advice   *service.AdviceService
	Journey  *service.JourneyService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.EntityStore
	services     *Services
	searchIndex  *search.SearchIndex
	sseManager   *sse.Manager
	sseHandler   *sse.Handler
	router       *chi.Mux
	api          huma.API
	validate     *validation.Validator
	writeLimiter *ratelimit.KeyedRateLimiter
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(entityStore store.EntityStore, services *Services, searchIndex *search.SearchIndex, sseManager *sse.Manager, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:       entityStore,
		services:    services,
		searchIndex: searchIndex,
		sseManager:  sseManager,
		sseHandler:  sseHandler,
		router:      router,
		validate:    validation.New(),
		// Guests fill in forms by hand; 30 writes a minute per IP is
		// generous for humans while stopping runaway scripts.
		writeLimiter: ratelimit.New(0.5, 10),
		logger:       logger,
	}

	// chi requires all middleware before any route; humachi.New registers
	// the openapi/docs routes, so it must come after setupMiddleware.
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Blossom API", "1.0.0")
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The web client is a browser SPA that may be served from a
	// different origin on the LAN.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(s.viewerCookie)
	s.router.Use(s.rateLimitWrites)
}

// setupRoutes registers all huma operations plus the raw SSE stream.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerRegistryRoutes()
	s.registerCardRoutes()
	s.registerAdviceRoutes()
	s.registerJourneyRoutes()
	s.registerSearchRoutes()

	// The event stream holds the connection open, which does not fit
	// the huma request/response model, so it mounts on chi directly.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
}
