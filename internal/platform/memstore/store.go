// Package memstore is an in-memory, transactional implementation of every
// repository in the service, used by tests and by STORE_DRIVER=memory.
//
// # Transactions
//
// [Store.Run] serialises units of work on one mutex and snapshots the data
// before fn runs. When fn fails or panics the snapshot is restored, so a
// failed unit leaves no trace. Repository calls made outside Run take the
// mutex for the single call.
//
// Constraint behaviour mirrors the SQL schema: duplicate keys surface as
// [dberr.ErrUniqueViolation], missing rows as [dberr.ErrNotFound], and
// deleting an author cascades to its books and their genre links.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/taligrayzel/BooksAPI/internal/auth"
	"github.com/taligrayzel/BooksAPI/internal/core/author"
	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/core/genre"
	"github.com/taligrayzel/BooksAPI/internal/platform/ctxkey"
)

// Store holds all tables. The zero value is not usable; call [New].
type Store struct {
	mu   sync.Mutex
	data *tables
	now  func() time.Time
}

type tables struct {
	users       map[int64]auth.User
	usernames   map[string]int64
	nextUserID  int64
	authors     map[int64]author.Author
	books       map[int64]book.Book
	isbns       map[string]int64
	bookGenres  map[int64]map[int64]struct{}
	genres      map[int64]genre.Genre
	genreNames  map[string]int64
	nextGenreID int64
}

// Option customises a [Store].
type Option func(*Store)

// WithClock overrides the timestamp source for created_at columns.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		data: &tables{
			users:      map[int64]auth.User{},
			usernames:  map[string]int64{},
			authors:    map[int64]author.Author{},
			books:      map[int64]book.Book{},
			isbns:      map[string]int64{},
			bookGenres: map[int64]map[int64]struct{}{},
			genres:     map[int64]genre.Genre{},
			genreNames: map[string]int64{},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// txMarker tags a context as running inside a unit of work of one store.
type txMarker struct {
	store *Store
}

// Run implements txscope.Scope. A nested Run joins the outer unit.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, ctxkey.KeyTx, txMarker{store: s})); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Ping satisfies the readiness probe.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	marker, ok := ctx.Value(ctxkey.KeyTx).(txMarker)
	return ok && marker.store == s
}

// acquire locks the store unless ctx already runs inside one of its units.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (t *tables) clone() *tables {
	c := &tables{
		users:       maps.Clone(t.users),
		usernames:   maps.Clone(t.usernames),
		nextUserID:  t.nextUserID,
		authors:     maps.Clone(t.authors),
		books:       maps.Clone(t.books),
		isbns:       maps.Clone(t.isbns),
		bookGenres:  make(map[int64]map[int64]struct{}, len(t.bookGenres)),
		genres:      maps.Clone(t.genres),
		genreNames:  maps.Clone(t.genreNames),
		nextGenreID: t.nextGenreID,
	}
	for bookID, links := range t.bookGenres {
		c.bookGenres[bookID] = maps.Clone(links)
	}
	return c
}
