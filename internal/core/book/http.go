package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taligrayzel/BooksAPI/internal/platform/request"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

// Handler implements the book HTTP endpoints.
type Handler struct {
	service     *Service
	requireAuth func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. requireAuth guards the write routes.
func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

// RegisterRoutes mounts the book routes.
//
// # Endpoints
//   - POST   /     : Creates a book owned by the caller.
//   - GET    /     : Lists books, optionally filtered by ?author_id=.
//   - GET    /{id} : Returns one book.
//   - PUT    /{id} : Partially updates a book.
//   - DELETE /{id} : Deletes a book owned by the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)

	router.Group(func(protected chi.Router) {
		protected.Use(handler.requireAuth)
		protected.Post("/", handler.createBook)
		protected.Put("/{id}", handler.updateBook)
		protected.Delete("/{id}", handler.deleteBook)
	})
}

// createBook handles POST /api/v1/books.
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Caller ─────────────────────────────────────────────────────────
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Payload Extraction & Validation ────────────────────────────────
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

	// ── 3. Application Execution ──────────────────────────────────────────
	created, err := handler.service.Create(request.Context(), input, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────
	respond.Created(writer, map[string]any{
		"id":    created.ID,
		"title": created.Title,
	})
}

// listBooks handles GET /api/v1/books.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.OptionalInt64Query(request, FieldAuthorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.ListAll(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

// getBook handles GET /api/v1/books/{id}.
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// updateBook handles PUT /api/v1/books/{id}.
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Target ─────────────────────────────────────────────────────────
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Payload Extraction & Validation ────────────────────────────────
	payload, err := requestutil.DecodePayload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	input, err := ParseUpdate(payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────
	updated, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// deleteBook handles DELETE /api/v1/books/{id}.
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
