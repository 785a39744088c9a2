package author

import (
	"context"
	"log/slog"

	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/txscope"
)

// BookLister lists the books of one author.
type BookLister interface {
	List(context context.Context, authorID *int64) ([]*book.Book, error)
}

type Service struct {
	repo   Repository
	books  BookLister
	scope  txscope.Scope
	logger *slog.Logger
}

func NewService(repo Repository, books BookLister, scope txscope.Scope, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		scope:  scope,
		logger: logger,
	}
}

// Create stores a new author under its client-supplied id.
//
// # Business Rules
//   - A known id is rejected up front with [AlreadyAdded].
//   - A collision that slips past the pre-check surfaces as [ErrAuthorExists].
func (service *Service) Create(ctx context.Context, input CreateInput) (*Author, error) {
	a := &Author{ID: input.ID, Name: input.Name, Bio: input.Bio, Country: input.Country}

	err := service.scope.Run(ctx, func(ctx context.Context) error {
		_, err := service.repo.FindByID(ctx, input.ID)
		if err == nil {
			return AlreadyAdded(input.ID)
		}
		if !dberr.IsNotFound(err) {
			return err
		}

		if err := service.repo.Create(ctx, a); err != nil {
			if dberr.IsUniqueViolation(err) {
				return ErrAuthorExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("author_created", slog.Int64("author_id", a.ID), slog.String("name", a.Name))
	return a, nil
}

// GetWithBooks returns the author and its books. An author without books is
// reported as [ErrNoBooks].
func (service *Service) GetWithBooks(ctx context.Context, id int64) (*WithBooks, error) {
	var result *WithBooks

	err := service.scope.Run(ctx, func(ctx context.Context) error {
		a, err := service.repo.FindByID(ctx, id)
		if err != nil {
			if dberr.IsNotFound(err) {
				return ErrAuthorNotFound
			}
			return err
		}

		books, err := service.books.List(ctx, &a.ID)
		if err != nil {
			return err
		}
		if len(books) == 0 {
			return ErrNoBooks
		}

		result = &WithBooks{Author: a, Books: books}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the author, its books and their genre links. Genres stay.
func (service *Service) Delete(ctx context.Context, id int64) error {
	err := service.scope.Run(ctx, func(ctx context.Context) error {
		if err := service.repo.Delete(ctx, id); err != nil {
			if dberr.IsNotFound(err) {
				return ErrAuthorNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}
