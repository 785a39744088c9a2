// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/validate"
)

func message(t *testing.T, err error) string {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "validation-error", ae.Code)
	return ae.Message
}

/*
TestValidator_RequiredInt covers presence and integral checks.
*/
func TestValidator_RequiredInt(t *testing.T) {
	tests := []struct {
		name    string
		payload validate.Payload
		want    int64
		errMsg  string
	}{
		{"json_number", validate.Payload{"id": json.Number("42")}, 42, ""},
		{"native_int", validate.Payload{"id": 7}, 7, ""},
		{"absent", validate.Payload{}, 0, "Field 'id' is required"},
		{"null", validate.Payload{"id": nil}, 0, "Field 'id' is required"},
		{"fraction", validate.Payload{"id": json.Number("1.5")}, 0, "Field 'id' must be an integer"},
		{"exponent", validate.Payload{"id": json.Number("1e3")}, 0, "Field 'id' must be an integer"},
		{"string", validate.Payload{"id": "42"}, 0, "Field 'id' must be an integer"},
		{"bool", validate.Payload{"id": true}, 0, "Field 'id' must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v validate.Validator
			got := v.RequiredInt(tt.payload, "id")
			if tt.errMsg == "" {
				require.NoError(t, v.Err())
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, tt.errMsg, message(t, v.Err()))
		})
	}
}

/*
TestValidator_RequiredString covers the blank, type and length rules.
*/
func TestValidator_RequiredString(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		errMsg string
	}{
		{"trimmed", " Dune", "Dune", ""},
		{"raw_length_counts", " abcde ", "", "Field 'title' must not exceed 5 characters"},
		{"absent", nil, "", "Field 'title' is required"},
		{"blank", "   ", "", "Field 'title' must be a non-empty string"},
		{"number", json.Number("3"), "", "Field 'title' must be a non-empty string"},
		{"too_long", "abcdef", "", "Field 'title' must not exceed 5 characters"},
		{"runes_not_bytes", "ééééé", "ééééé", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validate.Payload{}
			if tt.value != nil {
				p["title"] = tt.value
			}
			var v validate.Validator
			got := v.RequiredString(p, "title", 5)
			if tt.errMsg == "" {
				require.NoError(t, v.Err())
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, tt.errMsg, message(t, v.Err()))
		})
	}
}

/*
TestValidator_FirstViolationWins verifies later checks do not overwrite the first failure.
*/
func TestValidator_FirstViolationWins(t *testing.T) {
	var v validate.Validator
	p := validate.Payload{"title": ""}

	v.RequiredInt(p, "id")
	v.RequiredString(p, "title", 255)
	v.Custom(true, "custom")

	assert.Equal(t, "Field 'id' is required", message(t, v.Err()))
}

/*
TestValidator_OptionalString treats null as absent.
*/
func TestValidator_OptionalString(t *testing.T) {
	var v validate.Validator
	assert.Nil(t, v.OptionalString(validate.Payload{"bio": nil}, "bio", 10))
	got := v.OptionalString(validate.Payload{"bio": " short "}, "bio", 10)
	require.NoError(t, v.Err())
	require.NotNil(t, got)
	assert.Equal(t, "short", *got)

	v.OptionalString(validate.Payload{"bio": ""}, "bio", 10)
	assert.Equal(t, "Field 'bio' must be a non-empty string", message(t, v.Err()))
}

/*
TestValidISBN covers the 10/13 digit and trailing X rules.
*/
func TestValidISBN(t *testing.T) {
	tests := []struct {
		isbn string
		want bool
	}{
		{"9780132350884", true},
		{"0132350882", true},
		{"978-0-13-235088-4", true},
		{"0 13 235088 2", true},
		{"080442957X", true},
		{"080442957x", true},
		{"", true},
		{"short", false},
		{"97801323508", false},
		{"978013235088X", false},
		{"abcdefghij", false},
	}

	for _, tt := range tests {
		t.Run(tt.isbn, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.ValidISBN(tt.isbn))
		})
	}
}

/*
TestValidator_OptionalISBN checks the type → format → length ordering.
*/
func TestValidator_OptionalISBN(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		errMsg string
	}{
		{"not_string", json.Number("9780132350884"), "Field 'isbn' must be a string"},
		{"bad_format", "short", "Field 'isbn' must be a valid ISBN-10 or ISBN-13 format"},
		{"too_long", "9-7-8-0-1-3-2-3-5-0-8-8-4", "Field 'isbn' must not exceed 20 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v validate.Validator
			v.OptionalISBN(validate.Payload{"isbn": tt.value}, "isbn")
			assert.Equal(t, tt.errMsg, message(t, v.Err()))
		})
	}

	t.Run("valid_kept_verbatim", func(t *testing.T) {
		var v validate.Validator
		got := v.OptionalISBN(validate.Payload{"isbn": "978-0-13-235088-4"}, "isbn")
		require.NoError(t, v.Err())
		require.NotNil(t, got)
		assert.Equal(t, "978-0-13-235088-4", *got)
	})

	t.Run("empty_passes", func(t *testing.T) {
		var v validate.Validator
		got := v.OptionalISBN(validate.Payload{"isbn": ""}, "isbn")
		require.NoError(t, v.Err())
		require.NotNil(t, got)
		assert.Empty(t, *got)
	})
}

/*
TestValidator_OptionalYear covers range enforcement.
*/
func TestValidator_OptionalYear(t *testing.T) {
	var v validate.Validator
	got := v.OptionalYear(validate.Payload{"published_year": json.Number("2001")}, "published_year", 1000, 2027)
	require.NoError(t, v.Err())
	require.NotNil(t, got)
	assert.Equal(t, 2001, *got)

	var late validate.Validator
	late.OptionalYear(validate.Payload{"published_year": json.Number("3000")}, "published_year", 1000, 2027)
	assert.Equal(t, "Field 'published_year' must be between 1000 and 2027", message(t, late.Err()))

	var typed validate.Validator
	typed.OptionalYear(validate.Payload{"published_year": "1999"}, "published_year", 1000, 2027)
	assert.Equal(t, "Field 'published_year' must be an integer", message(t, typed.Err()))
}

/*
TestValidator_StringList trims items and rejects non-lists.
*/
func TestValidator_StringList(t *testing.T) {
	var v validate.Validator
	got := v.StringList(validate.Payload{"genres": []any{" Sci-Fi ", "Drama"}}, "genres", "bad item")
	require.NoError(t, v.Err())
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, got)

	var notList validate.Validator
	notList.StringList(validate.Payload{"genres": "Drama"}, "genres", "bad item")
	assert.Equal(t, "Field 'genres' must be a list", message(t, notList.Err()))

	var badItem validate.Validator
	badItem.StringList(validate.Payload{"genres": []any{"Drama", " "}}, "genres", "bad item")
	assert.Equal(t, "bad item", message(t, badItem.Err()))
}

func TestRequireBody(t *testing.T) {
	assert.ErrorIs(t, validate.RequireBody(nil), validate.ErrBodyNotJSON)
	assert.ErrorIs(t, validate.RequireBody(validate.Payload{}), validate.ErrBodyNotJSON)
	assert.NoError(t, validate.RequireBody(validate.Payload{"a": 1}))
}
