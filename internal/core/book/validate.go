package book

import (
	"time"

	"github.com/taligrayzel/BooksAPI/internal/platform/validate"
)

const genreItemMessage = "Each genre must be a non-empty string"

// CreateInput is a validated book-create payload.
type CreateInput struct {
	ID            int64
	Title         string
	AuthorID      int64
	ISBN          *string
	PublishedYear *int
	Genres        []string
}

// UpdateInput is a validated partial update. Nil fields are left untouched.
type UpdateInput struct {
	Title    *string
	AuthorID *int64

	// ISBN replaces the stored value; an empty string clears it.
	ISBN          *string
	PublishedYear *int

	// Genres replaces the whole set when ReplaceGenres is true.
	Genres        []string
	ReplaceGenres bool
}

// ParseCreate validates a create payload. Checks run in a fixed order and the
// first violation is returned.
func ParseCreate(payload validate.Payload) (CreateInput, error) {
	if err := validate.RequireBody(payload); err != nil {
		return CreateInput{}, err
	}

	var v validate.Validator
	id := v.RequiredInt(payload, FieldID)
	title := v.RequiredString(payload, FieldTitle, TitleMaxLen)
	authorID := v.RequiredInt(payload, FieldAuthorID)
	isbn := v.OptionalISBN(payload, FieldISBN)
	year := v.OptionalYear(payload, FieldPublishedYear, MinPublished, maxPublishedYear())

	genres := []string{}
	if _, present := payload[FieldGenres]; present {
		genres = v.StringList(payload, FieldGenres, genreItemMessage)
	}

	if err := v.Err(); err != nil {
		return CreateInput{}, err
	}

	if isbn != nil && *isbn == "" {
		isbn = nil
	}

	return CreateInput{
		ID:            id,
		Title:         title,
		AuthorID:      authorID,
		ISBN:          isbn,
		PublishedYear: year,
		Genres:        genres,
	}, nil
}

// ParseUpdate validates a partial update payload. Null values count as absent.
func ParseUpdate(payload validate.Payload) (UpdateInput, error) {
	if err := validate.RequireBody(payload); err != nil {
		return UpdateInput{}, err
	}

	var v validate.Validator
	v.Custom(!anyPresent(payload, FieldTitle, FieldAuthorID, FieldISBN, FieldPublishedYear, FieldGenres),
		"At least one field must be provided for update")

	input := UpdateInput{}
	input.Title = v.OptionalString(payload, FieldTitle, TitleMaxLen)
	input.AuthorID = v.OptionalInt(payload, FieldAuthorID)
	input.ISBN = v.OptionalISBN(payload, FieldISBN)
	input.PublishedYear = v.OptionalYear(payload, FieldPublishedYear, MinPublished, maxPublishedYear())

	if _, present := payload.Lookup(FieldGenres); present {
		input.Genres = v.StringList(payload, FieldGenres, genreItemMessage)
		input.ReplaceGenres = true
	}

	if err := v.Err(); err != nil {
		return UpdateInput{}, err
	}
	return input, nil
}

func anyPresent(payload validate.Payload, fields ...string) bool {
	for _, field := range fields {
		if _, ok := payload.Lookup(field); ok {
			return true
		}
	}
	return false
}

// maxPublishedYear allows books announced for next year.
func maxPublishedYear() int {
	return time.Now().Year() + 1
}
