package memstore

import (
	"context"

	"github.com/taligrayzel/BooksAPI/internal/core/genre"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
)

// GenreRepository implements genre.Repository.
type GenreRepository struct {
	store *Store
}

// Genres returns the genre table.
func (s *Store) Genres() *GenreRepository {
	return &GenreRepository{store: s}
}

func (repository *GenreRepository) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	id, ok := data.genreNames[name]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	g := data.genres[id]
	return &g, nil
}

// Create returns the existing genre when the name is taken.
func (repository *GenreRepository) Create(ctx context.Context, name string) (*genre.Genre, error) {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if id, ok := data.genreNames[name]; ok {
		g := data.genres[id]
		return &g, nil
	}

	data.nextGenreID++
	g := genre.Genre{ID: data.nextGenreID, Name: name}
	data.genres[g.ID] = g
	data.genreNames[name] = g.ID
	return &g, nil
}

// Count returns the number of stored genres.
func (repository *GenreRepository) Count(ctx context.Context) int {
	defer repository.store.acquire(ctx)()
	return len(repository.store.data.genres)
}
