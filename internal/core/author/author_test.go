package author_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taligrayzel/BooksAPI/internal/core/author"
	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/memstore"
	"github.com/taligrayzel/BooksAPI/internal/platform/validate"
	"github.com/taligrayzel/BooksAPI/pkg/pointer"
)

func newService(t *testing.T) (*author.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	service := author.NewService(store.Authors(), store.Books(), store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, store
}

func TestParseCreate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		input, err := author.ParseCreate(validate.Payload{
			"id":      json.Number("3"),
			"name":    " Le Guin ",
			"country": "US",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), input.ID)
		assert.Equal(t, "Le Guin", input.Name)
		assert.Nil(t, input.Bio)
		assert.Equal(t, "US", *input.Country)
	})

	tests := []struct {
		name    string
		payload validate.Payload
		want    string
	}{
		{"empty", validate.Payload{}, "Request body must be JSON"},
		{"id_missing", validate.Payload{"name": "A"}, "Field 'id' is required"},
		{"id_fraction", validate.Payload{"id": json.Number("1.5"), "name": "A"}, "Field 'id' must be an integer"},
		{"name_missing", validate.Payload{"id": json.Number("1")}, "Field 'name' is required"},
		{"bio_blank", validate.Payload{"id": json.Number("1"), "name": "A", "bio": " "}, "Field 'bio' must be a non-empty string"},
		{"bio_too_long", validate.Payload{"id": json.Number("1"), "name": "A", "bio": strings.Repeat("b", 1001)}, "Field 'bio' must not exceed 1000 characters"},
		{"country_too_long", validate.Payload{"id": json.Number("1"), "name": "A", "country": strings.Repeat("c", 101)}, "Field 'country' must not exceed 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := author.ParseCreate(tt.payload)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.want, ae.Message)
		})
	}
}

func TestService_Create(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, author.CreateInput{ID: 1, Name: "Frank Herbert"})
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", created.Name)

	_, err = service.Create(ctx, author.CreateInput{ID: 1, Name: "Someone Else"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, "id-already-added", ae.Code)
	assert.Equal(t, "Author with id 1 already added", ae.Message)
}

/*
TestService_Create_RaceFallback maps a unique violation past the pre-check to the same conflict kind.
*/
func TestService_Create_RaceFallback(t *testing.T) {
	store := memstore.New()
	racing := &racingRepository{Repository: store.Authors()}
	service := author.NewService(racing, store.Books(), store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.Create(context.Background(), author.CreateInput{ID: 7, Name: "Late"})
	assert.ErrorIs(t, err, author.ErrAuthorExists)
}

// racingRepository hides the row from the pre-check, as a concurrent insert would.
type racingRepository struct {
	author.Repository
}

func (r *racingRepository) FindByID(ctx context.Context, id int64) (*author.Author, error) {
	if err := r.Repository.Create(ctx, &author.Author{ID: id, Name: "Winner"}); err != nil {
		return nil, err
	}
	return nil, dberr.ErrNotFound
}

func TestService_GetWithBooks(t *testing.T) {
	service, store := newService(t)
	ctx := context.Background()

	_, err := service.GetWithBooks(ctx, 1)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	_, err = service.Create(ctx, author.CreateInput{ID: 1, Name: "Frank Herbert"})
	require.NoError(t, err)

	_, err = service.GetWithBooks(ctx, 1)
	assert.ErrorIs(t, err, author.ErrNoBooks)

	require.NoError(t, store.Books().Create(ctx, &book.Book{ID: 10, Title: "Dune", AuthorID: 1, CreatedByID: pointer.To(int64(1))}))

	result, err := service.GetWithBooks(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", result.Author.Name)
	require.Len(t, result.Books, 1)
	assert.Equal(t, "Dune", result.Books[0].Title)
}

/*
TestService_Delete removes the author's books with it.
*/
func TestService_Delete(t *testing.T) {
	service, store := newService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, author.CreateInput{ID: 1, Name: "Frank Herbert"})
	require.NoError(t, err)
	require.NoError(t, store.Books().Create(ctx, &book.Book{ID: 10, Title: "Dune", AuthorID: 1}))

	require.NoError(t, service.Delete(ctx, 1))

	books, err := store.Books().List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, books)

	assert.ErrorIs(t, service.Delete(ctx, 1), author.ErrAuthorNotFound)
}
