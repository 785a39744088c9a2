package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/pkg/pointer"
)

// BookRepository implements book.Repository and author.BookLister.
type BookRepository struct {
	store *Store
}

// Books returns the book table.
func (s *Store) Books() *BookRepository {
	return &BookRepository{store: s}
}

func (repository *BookRepository) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	row, ok := data.books[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return data.hydrate(row), nil
}

// List returns books ordered by id.
func (repository *BookRepository) List(ctx context.Context, authorID *int64) ([]*book.Book, error) {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	books := []*book.Book{}
	for _, row := range data.books {
		if authorID != nil && row.AuthorID != *authorID {
			continue
		}
		books = append(books, data.hydrate(row))
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (repository *BookRepository) Create(ctx context.Context, b *book.Book) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if _, taken := data.books[b.ID]; taken {
		return fmt.Errorf("memstore: books.id: %w", dberr.ErrUniqueViolation)
	}
	if err := data.checkISBN(b); err != nil {
		return err
	}
	if _, ok := data.authors[b.AuthorID]; !ok {
		return fmt.Errorf("memstore: books.author_id %d references no author", b.AuthorID)
	}

	b.CreatedAt = repository.store.now().UTC()
	data.putBook(b)
	return nil
}

func (repository *BookRepository) Update(ctx context.Context, b *book.Book) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	existing, ok := data.books[b.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	if err := data.checkISBN(b); err != nil {
		return err
	}
	if _, ok := data.authors[b.AuthorID]; !ok {
		return fmt.Errorf("memstore: books.author_id %d references no author", b.AuthorID)
	}

	if existing.ISBN != nil {
		delete(data.isbns, *existing.ISBN)
	}
	updated := existing
	updated.Title = b.Title
	updated.AuthorID = b.AuthorID
	updated.ISBN = b.ISBN
	updated.PublishedYear = b.PublishedYear
	data.putBook(&updated)
	return nil
}

func (repository *BookRepository) SetGenres(ctx context.Context, bookID int64, genreIDs []int64) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if _, ok := data.books[bookID]; !ok {
		return dberr.ErrNotFound
	}
	links := make(map[int64]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		if _, ok := data.genres[id]; !ok {
			return fmt.Errorf("memstore: book_genre.genre_id %d references no genre", id)
		}
		links[id] = struct{}{}
	}
	data.bookGenres[bookID] = links
	return nil
}

func (repository *BookRepository) Delete(ctx context.Context, id int64) error {
	defer repository.store.acquire(ctx)()
	data := repository.store.data

	if _, ok := data.books[id]; !ok {
		return dberr.ErrNotFound
	}
	data.deleteBook(id)
	return nil
}

func (t *tables) checkISBN(b *book.Book) error {
	if b.ISBN == nil {
		return nil
	}
	if owner, taken := t.isbns[*b.ISBN]; taken && owner != b.ID {
		return fmt.Errorf("memstore: books.isbn: %w", dberr.ErrUniqueViolation)
	}
	return nil
}

// putBook stores a detached copy of b without its genres.
func (t *tables) putBook(b *book.Book) {
	row := copyBook(b)
	row.Genres = nil
	t.books[row.ID] = *row
	if row.ISBN != nil {
		t.isbns[*row.ISBN] = row.ID
	}
}

func (t *tables) deleteBook(id int64) {
	if row, ok := t.books[id]; ok && row.ISBN != nil {
		delete(t.isbns, *row.ISBN)
	}
	delete(t.books, id)
	delete(t.bookGenres, id)
}

// hydrate returns a detached copy of row with its genre names, sorted.
func (t *tables) hydrate(row book.Book) *book.Book {
	b := copyBook(&row)
	b.Genres = make([]string, 0, len(t.bookGenres[row.ID]))
	for genreID := range t.bookGenres[row.ID] {
		b.Genres = append(b.Genres, t.genres[genreID].Name)
	}
	sort.Strings(b.Genres)
	return b
}

func copyBook(b *book.Book) *book.Book {
	c := *b
	if b.ISBN != nil {
		c.ISBN = pointer.To(*b.ISBN)
	}
	if b.PublishedYear != nil {
		c.PublishedYear = pointer.To(*b.PublishedYear)
	}
	if b.CreatedByID != nil {
		c.CreatedByID = pointer.To(*b.CreatedByID)
	}
	c.Genres = append([]string(nil), b.Genres...)
	return &c
}
