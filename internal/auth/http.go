// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taligrayzel/BooksAPI/internal/platform/request"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	requireAuth func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. requireAuth guards /me.
func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{authService: service, requireAuth: requireAuth}
}

// RegisterRoutes mounts the authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns an access token.
//   - GET  /me       : Returns the authenticated account.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.With(handler.requireAuth).Get("/me", handler.me)
}

// register handles POST /api/v1/auth/register.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────
	payload, err := requestutil.DecodePayload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Validation ─────────────────────────────────────────────────────
	input, err := ParseRegister(payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────
	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────
	respond.Created(writer, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

// login handles POST /api/v1/auth/login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────
	payload, err := requestutil.DecodePayload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Validation ─────────────────────────────────────────────────────
	input, err := ParseLogin(payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────
	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────
	respond.OK(writer, session)
}

// me handles GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
