package genre

import "context"

// Repository defines the data access contract for genres.
type Repository interface {
	// FindByName returns the genre with exactly this name, or dberr.ErrNotFound.
	FindByName(context context.Context, name string) (*Genre, error)

	// Create stores a genre. If a concurrent writer created the same name
	// first, implementations return that existing genre instead of failing.
	Create(context context.Context, name string) (*Genre, error)
}
