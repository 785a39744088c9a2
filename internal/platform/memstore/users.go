package memstore

import (
	"context"
	"fmt"

	"github.com/taligrayzel/BooksAPI/internal/auth"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
)

// UserRepository implements auth.UserRepository.
type UserRepository struct {
	store *Store
}

// Users returns the user table.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (repository *UserRepository) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	defer repository.store.acquire(ctx)()

	user, ok := repository.store.data.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &user, nil
}

func (repository *UserRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	defer repository.store.acquire(ctx)()

	id, ok := repository.store.data.usernames[username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	user := repository.store.data.users[id]
	return &user, nil
}

func (repository *UserRepository) Create(ctx context.Context, user *auth.User) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if _, taken := data.usernames[user.Username]; taken {
		return fmt.Errorf("memstore: users.username: %w", dberr.ErrUniqueViolation)
	}

	data.nextUserID++
	user.ID = data.nextUserID
	user.CreatedAt = repository.store.now().UTC()

	data.users[user.ID] = *user
	data.usernames[user.Username] = user.ID
	return nil
}
