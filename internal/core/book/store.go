package book

import "context"

// Repository defines the data access contract for books.
//
// Implementations return dberr.ErrNotFound for a missing book and
// dberr.ErrUniqueViolation for a duplicate id or ISBN.
type Repository interface {
	// FindByID returns the book with its genre names.
	FindByID(context context.Context, id int64) (*Book, error)

	// List returns all books, or only those of authorID when it is non-nil.
	List(context context.Context, authorID *int64) ([]*Book, error)

	// Create inserts the book row. Genres are linked with SetGenres.
	Create(context context.Context, b *Book) error

	// Update writes title, author, ISBN and published year.
	Update(context context.Context, b *Book) error

	// SetGenres replaces the genre links of a book.
	SetGenres(context context.Context, bookID int64, genreIDs []int64) error

	// Delete removes the book and its genre links.
	Delete(context context.Context, id int64) error
}
