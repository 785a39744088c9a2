// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taligrayzel/BooksAPI/internal/platform/database/schema"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/postgres"
)

// PostgresRepository implements [UserRepository] using PostgreSQL.
//
// Queries run on the transaction bound to the context when there is one.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectUser = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.User.Columns()...), schema.User.Table)

// FindByID implements [UserRepository].
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := selectUser + fmt.Sprintf(` WHERE %s = $1`, schema.User.ID)

	user := &User{}
	err := postgres.Conn(context, repository.pool).QueryRow(context, query, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

// FindByUsername implements [UserRepository].
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := selectUser + fmt.Sprintf(` WHERE %s = $1`, schema.User.Username)

	user := &User{}
	err := postgres.Conn(context, repository.pool).QueryRow(context, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}
	return user, nil
}

// Create implements [UserRepository].
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		schema.User.Table, schema.User.Username, schema.User.Password,
		schema.User.ID, schema.User.CreatedAt)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}
