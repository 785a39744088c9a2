package book

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/taligrayzel/BooksAPI/internal/core/genre"
	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/txscope"
	"github.com/taligrayzel/BooksAPI/pkg/pointer"
	"github.com/taligrayzel/BooksAPI/pkg/slice"
)

// AuthorRegistry answers whether an author exists.
type AuthorRegistry interface {
	Exists(context context.Context, id int64) (bool, error)
}

// GenreResolver turns genre names into stored genres, creating missing ones.
type GenreResolver interface {
	Resolve(ctx context.Context, names []string) ([]genre.Genre, error)
}

// Service implements the book use cases. Every operation runs in one scope.
type Service struct {
	repo    Repository
	authors AuthorRegistry
	genres  GenreResolver
	scope   txscope.Scope
	logger  *slog.Logger
}

func NewService(repo Repository, authors AuthorRegistry, genres GenreResolver, scope txscope.Scope, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		authors: authors,
		genres:  genres,
		scope:   scope,
		logger:  logger,
	}
}

// AuthorNotFound builds the error for a missing referenced author.
func AuthorNotFound(id int64) *apperr.AppError {
	return apperr.NotFound("author-not-found", fmt.Sprintf("Author with id %d not found", id))
}

// Create stores a new book owned by creatorID.
//
// # Business Rules
//   - The author must exist.
//   - Duplicate genre names collapse; unknown genres are created.
//   - A duplicate id or ISBN is [ErrDuplicateBook].
func (service *Service) Create(ctx context.Context, input CreateInput, creatorID int64) (*Book, error) {
	var created *Book

	err := service.scope.Run(ctx, func(ctx context.Context) error {

		// ── 1. Author Reference ───────────────────────────────────────────
		if err := service.requireAuthor(ctx, input.AuthorID); err != nil {
			return err
		}

		// ── 2. Genres ─────────────────────────────────────────────────────
		genres, err := service.genres.Resolve(ctx, input.Genres)
		if err != nil {
			return err
		}

		// ── 3. Persistence ────────────────────────────────────────────────
		b := &Book{
			ID:            input.ID,
			Title:         input.Title,
			AuthorID:      input.AuthorID,
			ISBN:          input.ISBN,
			PublishedYear: input.PublishedYear,
			CreatedByID:   pointer.To(creatorID),
		}
		if err := service.repo.Create(ctx, b); err != nil {
			if dberr.IsUniqueViolation(err) {
				return ErrDuplicateBook
			}
			return err
		}

		if err := service.repo.SetGenres(ctx, b.ID, genreIDs(genres)); err != nil {
			return err
		}
		b.Genres = genreNames(genres)

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int64("book_id", created.ID),
		slog.Int64("author_id", created.AuthorID),
		slog.String("isbn", pointer.Val(created.ISBN)),
		slog.Int64("created_by", creatorID),
	)
	return created, nil
}

// ListAll returns every book, or the books of authorID when it is non-nil.
// An unknown author yields an empty list.
func (service *Service) ListAll(ctx context.Context, authorID *int64) ([]*Book, error) {
	var books []*Book

	err := service.scope.Run(ctx, func(ctx context.Context) error {
		found, err := service.repo.List(ctx, authorID)
		if err != nil {
			return err
		}
		books = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetByID returns one book with its genres.
func (service *Service) GetByID(ctx context.Context, id int64) (*Book, error) {
	var b *Book

	err := service.scope.Run(ctx, func(ctx context.Context) error {
		found, err := service.find(ctx, id)
		if err != nil {
			return err
		}
		b = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Update applies a partial update. Absent fields keep their values; genres,
// when given, replace the whole set.
func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Book, error) {
	var updated *Book

	err := service.scope.Run(ctx, func(ctx context.Context) error {

		// ── 1. Existence ──────────────────────────────────────────────────
		b, err := service.find(ctx, id)
		if err != nil {
			return err
		}

		// ── 2. Field Merge ────────────────────────────────────────────────
		if input.Title != nil {
			b.Title = *input.Title
		}
		if input.AuthorID != nil {
			if err := service.requireAuthor(ctx, *input.AuthorID); err != nil {
				return err
			}
			b.AuthorID = *input.AuthorID
		}
		if input.ISBN != nil {
			b.ISBN = input.ISBN
			if *input.ISBN == "" {
				b.ISBN = nil
			}
		}
		if input.PublishedYear != nil {
			b.PublishedYear = input.PublishedYear
		}

		// ── 3. Persistence ────────────────────────────────────────────────
		if err := service.repo.Update(ctx, b); err != nil {
			if dberr.IsUniqueViolation(err) {
				return ErrDuplicateISBN
			}
			if dberr.IsNotFound(err) {
				return ErrBookNotFound
			}
			return err
		}

		if input.ReplaceGenres {
			genres, err := service.genres.Resolve(ctx, input.Genres)
			if err != nil {
				return err
			}
			if err := service.repo.SetGenres(ctx, b.ID, genreIDs(genres)); err != nil {
				return err
			}
			b.Genres = genreNames(genres)
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.Int64("book_id", updated.ID))
	return updated, nil
}

// Delete removes a book. Only its creator may do so; a book without a
// recorded creator cannot be deleted.
func (service *Service) Delete(ctx context.Context, id, requesterID int64) error {
	err := service.scope.Run(ctx, func(ctx context.Context) error {
		b, err := service.find(ctx, id)
		if err != nil {
			return err
		}
		if !b.OwnedBy(requesterID) {
			return ErrNotBookCreator
		}

		if err := service.repo.Delete(ctx, id); err != nil {
			if dberr.IsNotFound(err) {
				return ErrBookNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.Info("book_deleted", slog.Int64("book_id", id), slog.Int64("deleted_by", requesterID))
	return nil
}

func (service *Service) find(ctx context.Context, id int64) (*Book, error) {
	b, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

func (service *Service) requireAuthor(ctx context.Context, authorID int64) error {
	ok, err := service.authors.Exists(ctx, authorID)
	if err != nil {
		return err
	}
	if !ok {
		return AuthorNotFound(authorID)
	}
	return nil
}

func genreIDs(genres []genre.Genre) []int64 {
	return slice.Map(genres, func(g genre.Genre) int64 { return g.ID })
}

func genreNames(genres []genre.Genre) []string {
	names := slice.Map(genres, func(g genre.Genre) string { return g.Name })
	sort.Strings(names)
	return names
}
