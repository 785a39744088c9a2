package author

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taligrayzel/BooksAPI/internal/platform/database/schema"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/postgres"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.List(schema.Author.Columns()...), schema.Author.Table, schema.Author.ID)

	a := &Author{}
	err := postgres.Conn(context, repository.pool).QueryRow(context, query, id).
		Scan(&a.ID, &a.Name, &a.Bio, &a.Country)
	if err != nil {
		return nil, dberr.Wrap(err, "find_author_by_id")
	}
	return a, nil
}

// Exists satisfies book.AuthorRegistry.
func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Author.Table, schema.Author.ID)

	var exists bool
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "author_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, a *Author) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)`,
		schema.Author.Table, schema.List(schema.Author.Columns()...))

	if _, err := postgres.Conn(context, repository.pool).Exec(context, query, a.ID, a.Name, a.Bio, a.Country); err != nil {
		return dberr.Wrap(err, "create_author")
	}
	return nil
}

// Delete relies on ON DELETE CASCADE from books and book_genre.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Author.Table, schema.Author.ID)

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
