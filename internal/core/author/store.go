package author

import "context"

// Repository defines the data access contract for authors.
type Repository interface {
	FindByID(context context.Context, id int64) (*Author, error)
	Exists(context context.Context, id int64) (bool, error)
	Create(context context.Context, a *Author) error

	// Delete removes the author together with its books.
	Delete(context context.Context, id int64) error
}
