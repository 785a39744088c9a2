package author

import "github.com/taligrayzel/BooksAPI/internal/platform/validate"

// CreateInput is a validated author-create payload.
type CreateInput struct {
	ID      int64
	Name    string
	Bio     *string
	Country *string
}

// ParseCreate validates id, name, bio and country in that order.
func ParseCreate(payload validate.Payload) (CreateInput, error) {
	if err := validate.RequireBody(payload); err != nil {
		return CreateInput{}, err
	}

	var v validate.Validator
	id := v.RequiredInt(payload, FieldID)
	name := v.RequiredString(payload, FieldName, NameMaxLen)
	bio := v.OptionalString(payload, FieldBio, BioMaxLen)
	country := v.OptionalString(payload, FieldCountry, CountryMaxLen)

	if err := v.Err(); err != nil {
		return CreateInput{}, err
	}
	return CreateInput{ID: id, Name: name, Bio: bio, Country: country}, nil
}
