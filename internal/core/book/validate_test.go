package book_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taligrayzel/BooksAPI/internal/core/book"
	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/validate"
)

func validCreate() validate.Payload {
	return validate.Payload{
		"id":        json.Number("1"),
		"title":     "  Dune ",
		"author_id": json.Number("7"),
	}
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, apperr.KindValidation, ae.Kind)
	return ae.Message
}

func TestParseCreate(t *testing.T) {
	nextYear := time.Now().Year() + 1

	t.Run("minimal", func(t *testing.T) {
		input, err := book.ParseCreate(validCreate())
		require.NoError(t, err)
		assert.Equal(t, int64(1), input.ID)
		assert.Equal(t, "Dune", input.Title)
		assert.Equal(t, int64(7), input.AuthorID)
		assert.Nil(t, input.ISBN)
		assert.Nil(t, input.PublishedYear)
		assert.Equal(t, []string{}, input.Genres)
	})

	t.Run("full", func(t *testing.T) {
		p := validCreate()
		p["isbn"] = "978-0-13-235088-4"
		p["published_year"] = json.Number(fmt.Sprint(nextYear))
		p["genres"] = []any{" Sci-Fi", "Drama"}

		input, err := book.ParseCreate(p)
		require.NoError(t, err)
		assert.Equal(t, "978-0-13-235088-4", *input.ISBN)
		assert.Equal(t, nextYear, *input.PublishedYear)
		assert.Equal(t, []string{"Sci-Fi", "Drama"}, input.Genres)
	})

	t.Run("empty_isbn_is_absent", func(t *testing.T) {
		p := validCreate()
		p["isbn"] = ""
		input, err := book.ParseCreate(p)
		require.NoError(t, err)
		assert.Nil(t, input.ISBN)
	})

	tests := []struct {
		name   string
		mutate func(validate.Payload)
		want   string
	}{
		{"empty_body", func(p validate.Payload) { clear(p) }, "Request body must be JSON"},
		{"id_missing", func(p validate.Payload) { delete(p, "id") }, "Field 'id' is required"},
		{"id_before_title", func(p validate.Payload) { delete(p, "id"); delete(p, "title") }, "Field 'id' is required"},
		{"title_blank", func(p validate.Payload) { p["title"] = "  " }, "Field 'title' must be a non-empty string"},
		{"author_id_string", func(p validate.Payload) { p["author_id"] = "7" }, "Field 'author_id' must be an integer"},
		{"isbn_short", func(p validate.Payload) { p["isbn"] = "short" }, "Field 'isbn' must be a valid ISBN-10 or ISBN-13 format"},
		{"year_3000", func(p validate.Payload) { p["published_year"] = json.Number("3000") },
			fmt.Sprintf("Field 'published_year' must be between 1000 and %d", nextYear)},
		{"year_too_early", func(p validate.Payload) { p["published_year"] = json.Number("999") },
			fmt.Sprintf("Field 'published_year' must be between 1000 and %d", nextYear)},
		{"genres_null", func(p validate.Payload) { p["genres"] = nil }, "Field 'genres' must be a list"},
		{"genres_bad_item", func(p validate.Payload) { p["genres"] = []any{"Drama", json.Number("3")} }, "Each genre must be a non-empty string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreate()
			tt.mutate(p)
			_, err := book.ParseCreate(p)
			assert.Equal(t, tt.want, validationMessage(t, err))
		})
	}
}

func TestParseUpdate(t *testing.T) {
	t.Run("nothing_recognised", func(t *testing.T) {
		_, err := book.ParseUpdate(validate.Payload{"colour": "red"})
		assert.Equal(t, "At least one field must be provided for update", validationMessage(t, err))
	})

	t.Run("only_nulls", func(t *testing.T) {
		_, err := book.ParseUpdate(validate.Payload{"title": nil, "isbn": nil})
		assert.Equal(t, "At least one field must be provided for update", validationMessage(t, err))
	})

	t.Run("title_checked_before_author", func(t *testing.T) {
		_, err := book.ParseUpdate(validate.Payload{"title": "", "author_id": "x"})
		assert.Equal(t, "Field 'title' must be a non-empty string", validationMessage(t, err))
	})

	t.Run("author_id_string", func(t *testing.T) {
		_, err := book.ParseUpdate(validate.Payload{"author_id": "x"})
		assert.Equal(t, "Field 'author_id' must be an integer", validationMessage(t, err))
	})

	t.Run("partial", func(t *testing.T) {
		input, err := book.ParseUpdate(validate.Payload{"title": " New "})
		require.NoError(t, err)
		assert.Equal(t, "New", *input.Title)
		assert.Nil(t, input.AuthorID)
		assert.False(t, input.ReplaceGenres)
	})

	t.Run("empty_genres_replace", func(t *testing.T) {
		input, err := book.ParseUpdate(validate.Payload{"genres": []any{}})
		require.NoError(t, err)
		assert.True(t, input.ReplaceGenres)
		assert.Empty(t, input.Genres)
	})
}
