// Package book implements the book catalogue: creation with author and genre
// linkage, listing, partial update and ownership-gated deletion.
package book

import (
	"time"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
)

// Book is a catalogue entry identified by a client-supplied id.
//
// # Rules
//   - AuthorID always references an existing author.
//   - CreatedByID is set once at creation and never reassigned.
//   - Genres is a set of names; order carries no meaning.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	AuthorID      int64     `json:"author_id"`
	ISBN          *string   `json:"isbn"`
	PublishedYear *int      `json:"published_year"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedByID   *int64    `json:"-"`
	Genres        []string  `json:"genres"`
}

// OwnedBy reports whether userID is the recorded creator. A book without a
// creator is owned by no one.
func (b *Book) OwnedBy(userID int64) bool {
	return b.CreatedByID != nil && *b.CreatedByID == userID
}

// Domain errors.
var (
	ErrBookNotFound   = apperr.NotFound("book-not-found", "Book not found")
	ErrDuplicateBook  = apperr.Conflict("duplicate-id-or-isbn", "A book with this ID or ISBN already exists")
	ErrDuplicateISBN  = apperr.Conflict("duplicate-id-or-isbn", "A book with this ISBN already exists")
	ErrNotBookCreator = apperr.Forbidden("forbidden", "Only the creator of this book can delete it")
)

// Field names
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldAuthorID      = "author_id"
	FieldISBN          = "isbn"
	FieldPublishedYear = "published_year"
	FieldGenres        = "genres"
)

// Field limits
const (
	TitleMaxLen  = 255
	MinPublished = 1000
)
