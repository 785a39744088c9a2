package genre

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

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Table, schema.Genre.Name)

	g := &Genre{}
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, name).Scan(&g.ID, &g.Name); err != nil {
		return nil, dberr.Wrap(err, "find_genre_by_name")
	}
	return g, nil
}

// Create upserts on the unique name so a concurrent insert of the same genre
// resolves to the existing row.
func (repository *PostgresRepository) Create(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s
	`,
		schema.Genre.Table, schema.Genre.Name,
		schema.Genre.Name, schema.Genre.Name, schema.Genre.Name,
		schema.Genre.ID, schema.Genre.Name,
	)

	g := &Genre{}
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, name).Scan(&g.ID, &g.Name); err != nil {
		return nil, dberr.Wrap(err, "create_genre")
	}
	return g, nil
}
