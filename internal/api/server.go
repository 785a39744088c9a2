// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package api is the composition root of the HTTP surface: the middleware
// chain, probes, API documentation and the /api/v1 route tree. Domain
// packages only expose RegisterRoutes; prefixes are decided here.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taligrayzel/BooksAPI/internal/auth"
	"github.com/taligrayzel/BooksAPI/internal/core/author"
	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/config"
	"github.com/taligrayzel/BooksAPI/internal/platform/constants"
	"github.com/taligrayzel/BooksAPI/internal/platform/middleware"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

var errRouteNotFound = apperr.NotFound("route-not-found", "Resource not found")

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 503 when a dependency is down.
	Readiness http.HandlerFunc

	// Auth handles register, login and the current user.
	Auth *auth.Handler

	// Author handles author creation, lookup and deletion.
	Author *author.Handler

	// Book handles the book catalogue.
	Book *book.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, limiter middleware.Limiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(limiter, cfg.TrustProxyHeaders))
	r.Use(middleware.CORS(cfg, cfg.AllowedOrigins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Documentation
	r.Get("/openapi.json", OpenAPIDocument)
	r.Get("/docs/*", SwaggerUI())

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, errRouteNotFound)
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.JSON(writer, http.StatusMethodNotAllowed, respond.ErrorEnvelope{
			Error: "Method not allowed",
			Code:  "method-not-allowed",
		})
	})

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", h.Auth.RegisterRoutes)
		api.Route("/authors", h.Author.RegisterRoutes)
		api.Route("/books", h.Book.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
