// Package author implements authors: creation with client-supplied ids,
// retrieval together with their books, and cascading deletion.
package author

import (
	"fmt"

	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
)

// Author is the writer of zero or more books. Deleting an author deletes
// its books.
type Author struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Bio     *string `json:"bio"`
	Country *string `json:"country"`
}

// WithBooks is an author together with all of its books.
type WithBooks struct {
	Author *Author      `json:"author"`
	Books  []*book.Book `json:"books"`
}

// Domain errors.
var (
	ErrAuthorExists   = apperr.Conflict("already-exists", "Author already exists")
	ErrAuthorNotFound = apperr.NotFound("author-not-found", "Author not found")
	ErrNoBooks        = apperr.NotFound("no-books-for-author", "No books found for author")
)

// AlreadyAdded is the conflict reported when the id is known up front.
func AlreadyAdded(id int64) *apperr.AppError {
	return apperr.Conflict("id-already-added", fmt.Sprintf("Author with id %d already added", id))
}

// Field names
const (
	FieldID      = "id"
	FieldName    = "name"
	FieldBio     = "bio"
	FieldCountry = "country"
)

// Field limits
const (
	NameMaxLen    = 255
	BioMaxLen     = 1000
	CountryMaxLen = 100
)
