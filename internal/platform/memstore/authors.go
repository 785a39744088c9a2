package memstore

import (
	"context"
	"fmt"

	"github.com/taligrayzel/BooksAPI/internal/core/author"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
)

// AuthorRepository implements author.Repository and book.AuthorRegistry.
type AuthorRepository struct {
	store *Store
}

// Authors returns the author table.
func (s *Store) Authors() *AuthorRepository {
	return &AuthorRepository{store: s}
}

func (repository *AuthorRepository) FindByID(ctx context.Context, id int64) (*author.Author, error) {
	defer repository.store.acquire(ctx)()

	a, ok := repository.store.data.authors[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &a, nil
}

func (repository *AuthorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	defer repository.store.acquire(ctx)()

	_, ok := repository.store.data.authors[id]
	return ok, nil
}

func (repository *AuthorRepository) Create(ctx context.Context, a *author.Author) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if _, taken := data.authors[a.ID]; taken {
		return fmt.Errorf("memstore: authors.id: %w", dberr.ErrUniqueViolation)
	}
	data.authors[a.ID] = *a
	return nil
}

// Delete cascades to the author's books and their genre links.
func (repository *AuthorRepository) Delete(ctx context.Context, id int64) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if _, ok := data.authors[id]; !ok {
		return dberr.ErrNotFound
	}
	for bookID, b := range data.books {
		if b.AuthorID == id {
			data.deleteBook(bookID)
		}
	}
	delete(data.authors, id)
	return nil
}
