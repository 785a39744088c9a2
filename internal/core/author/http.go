package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taligrayzel/BooksAPI/internal/platform/request"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

type Handler struct {
	service     *Service
	requireAuth func(http.Handler) http.Handler
}

func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/{id}/books", handler.getAuthorBooks)

	// Authenticated
	router.Group(func(protected chi.Router) {
		protected.Use(handler.requireAuth)

		protected.Post("/", handler.createAuthor)
		protected.Delete("/{id}", handler.deleteAuthor)
	})
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	payload, err := requestutil.DecodePayload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := ParseCreate(payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"id":   created.ID,
		"name": created.Name,
	})
}

func (handler *Handler) getAuthorBooks(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetWithBooks(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
