package book

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taligrayzel/BooksAPI/internal/platform/database/schema"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectBook = fmt.Sprintf(`SELECT %s FROM %s`, schema.List(schema.Book.Columns()...), schema.Book.Table)

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.AuthorID, &b.ISBN, &b.PublishedYear, &b.CreatedAt, &b.CreatedByID)
	if err != nil {
		return nil, err
	}
	b.Genres = []string{}
	return b, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Book, error) {
	query := selectBook + fmt.Sprintf(` WHERE %s = $1`, schema.Book.ID)

	b, err := scanBook(postgres.Conn(context, repository.pool).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_book_by_id")
	}

	if err := repository.attachGenres(context, []*Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (repository *PostgresRepository) List(context context.Context, authorID *int64) ([]*Book, error) {
	query := selectBook
	var args []any
	if authorID != nil {
		query += fmt.Sprintf(` WHERE %s = $1`, schema.Book.AuthorID)
		args = append(args, *authorID)
	}
	query += fmt.Sprintf(` ORDER BY %s`, schema.Book.ID)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	if err := repository.attachGenres(context, books); err != nil {
		return nil, err
	}
	return books, nil
}

// attachGenres loads genre names for all books in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	index := make(map[int64]*Book, len(books))
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		index[b.ID] = b
		ids = append(ids, b.ID)
	}

	query := fmt.Sprintf(`
		SELECT bg.%s, g.%s
		FROM %s bg
		JOIN %s g ON g.%s = bg.%s
		WHERE bg.%s = ANY($1)
		ORDER BY g.%s
	`,
		schema.BookGenre.BookID, schema.Genre.Name,
		schema.BookGenre.Table,
		schema.Genre.Table, schema.Genre.ID, schema.BookGenre.GenreID,
		schema.BookGenre.BookID,
		schema.Genre.Name,
	)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_book_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var name string
		if err := rows.Scan(&bookID, &name); err != nil {
			return dberr.Wrap(err, "scan_book_genre")
		}
		if b, ok := index[bookID]; ok {
			b.Genres = append(b.Genres, name)
		}
	}
	return dberr.Wrap(rows.Err(), "list_book_genres")
}

// Create inserts the row and fills CreatedAt from the database default.
func (repository *PostgresRepository) Create(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.Book.Table,
		schema.Book.ID, schema.Book.Title, schema.Book.AuthorID,
		schema.Book.ISBN, schema.Book.PublishedYear, schema.Book.CreatedByID,
		schema.Book.CreatedAt,
	)

	err := postgres.Conn(context, repository.pool).
		QueryRow(context, query, b.ID, b.Title, b.AuthorID, b.ISBN, b.PublishedYear, b.CreatedByID).
		Scan(&b.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.Book.Table,
		schema.Book.Title, schema.Book.AuthorID, schema.Book.ISBN, schema.Book.PublishedYear,
		schema.Book.ID,
	)

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, b.ID, b.Title, b.AuthorID, b.ISBN, b.PublishedYear)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetGenres clears the links of bookID and batch-inserts the new set.
func (repository *PostgresRepository) SetGenres(context context.Context, bookID int64, genreIDs []int64) error {
	conn := postgres.Conn(context, repository.pool)

	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.BookGenre.Table, schema.BookGenre.BookID)
	if _, err := conn.Exec(context, unlink, bookID); err != nil {
		return dberr.Wrap(err, "clear_book_genres")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	link := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.BookGenre.Table, schema.BookGenre.BookID, schema.BookGenre.GenreID)
	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(link, bookID, genreID)
	}

	if err := conn.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "link_book_genres")
	}
	return nil
}

// Delete removes the book. Genre links go with it through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Book.Table, schema.Book.ID)

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
