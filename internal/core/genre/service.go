package genre

import (
	"context"
	"log/slog"

	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
)

// Service resolves genre names. It runs inside the caller's transaction.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve returns one Genre per distinct normalized name, creating absent
// ones. Order follows the first occurrence of each name.
func (service *Service) Resolve(ctx context.Context, names []string) ([]Genre, error) {
	unique := UniqueNames(names)
	genres := make([]Genre, 0, len(unique))

	for _, name := range unique {
		existing, err := service.repo.FindByName(ctx, name)
		if err == nil {
			genres = append(genres, *existing)
			continue
		}
		if !dberr.IsNotFound(err) {
			return nil, err
		}

		created, err := service.repo.Create(ctx, name)
		if err != nil {
			return nil, err
		}
		service.logger.Info("genre_created", slog.Int64("genre_id", created.ID), slog.String("name", created.Name))
		genres = append(genres, *created)
	}

	return genres, nil
}
