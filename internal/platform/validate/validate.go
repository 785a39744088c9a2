// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package validate turns raw request payloads into typed values.
//
// # Architecture
//
// Validators never touch storage. A [Validator] records the FIRST violated rule
// and turns every later check into a no-op, so callers can write the checks as
// straight-line statements in precedence order (presence, type, format/range)
// and read the verdict once with [Validator.Err].
//
//	var v validate.Validator
//	id := v.RequiredInt(p, "id")
//	name := v.RequiredString(p, "name", 255)
//	if err := v.Err(); err != nil {
//	    return Input{}, err
//	}
//
// Each check must be its own statement: argument evaluation order inside a
// single expression is not something to rely on.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
)

// ErrBodyNotJSON is returned when the body is absent, empty or not an object.
var ErrBodyNotJSON = apperr.Validation("Request body must be JSON")

// Payload is the decoded JSON body before validation. Numbers are kept as
// [json.Number] so integers can be told apart from fractional values.
type Payload map[string]any

// Lookup returns the value for field and whether it is present and non-null.
func (p Payload) Lookup(field string) (any, bool) {
	value, ok := p[field]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// RequireBody rejects an absent or empty payload.
func RequireBody(p Payload) error {
	if len(p) == 0 {
		return ErrBodyNotJSON
	}
	return nil
}

// Validator keeps the first rule violation.
//
// # Concurrency
//
// Validator is not safe for concurrent use. Create one per payload.
type Validator struct {
	err *apperr.AppError
}

// Failed reports whether a rule has already been violated.
func (v *Validator) Failed() bool {
	return v.err != nil
}

// Err returns the first violation as a [apperr.KindValidation] error, or nil.
func (v *Validator) Err() error {
	if v.err == nil {
		return nil
	}
	return v.err
}

// Custom records message when failed is true and nothing failed before.
func (v *Validator) Custom(failed bool, message string) {
	if failed {
		v.fail(message)
	}
}

func (v *Validator) fail(message string) {
	if v.err == nil {
		v.err = apperr.Validation(message)
	}
}

// # Integers

// RequiredInt extracts an integer field that must be present.
func (v *Validator) RequiredInt(p Payload, field string) int64 {
	if v.Failed() {
		return 0
	}
	raw, ok := p.Lookup(field)
	if !ok {
		v.fail(fmt.Sprintf("Field '%s' is required", field))
		return 0
	}
	n, ok := AsInt(raw)
	if !ok {
		v.fail(fmt.Sprintf("Field '%s' must be an integer", field))
		return 0
	}
	return n
}

// OptionalInt extracts an integer field if present. A null value counts as absent.
func (v *Validator) OptionalInt(p Payload, field string) *int64 {
	if v.Failed() {
		return nil
	}
	raw, ok := p.Lookup(field)
	if !ok {
		return nil
	}
	n, ok := AsInt(raw)
	if !ok {
		v.fail(fmt.Sprintf("Field '%s' must be an integer", field))
		return nil
	}
	return &n
}

// AsInt reports whether raw is an integral JSON number. Booleans and
// fractional numbers are not integers.
func AsInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// # Strings

// RequiredString extracts a non-blank string no longer than max characters.
// The length limit applies to the raw value; the returned value is trimmed.
func (v *Validator) RequiredString(p Payload, field string, max int) string {
	if v.Failed() {
		return ""
	}
	raw, ok := p.Lookup(field)
	if !ok {
		v.fail(fmt.Sprintf("Field '%s' is required", field))
		return ""
	}
	return v.nonEmptyString(raw, field, max)
}

// OptionalString is [Validator.RequiredString] for fields that may be absent or null.
func (v *Validator) OptionalString(p Payload, field string, max int) *string {
	if v.Failed() {
		return nil
	}
	raw, ok := p.Lookup(field)
	if !ok {
		return nil
	}
	s := v.nonEmptyString(raw, field, max)
	if v.Failed() {
		return nil
	}
	return &s
}

func (v *Validator) nonEmptyString(raw any, field string, max int) string {
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		v.fail(fmt.Sprintf("Field '%s' must be a non-empty string", field))
		return ""
	}
	if utf8.RuneCountInString(s) > max {
		v.fail(fmt.Sprintf("Field '%s' must not exceed %d characters", field, max))
		return ""
	}
	return strings.TrimSpace(s)
}

// StringList extracts a list of non-blank strings, each trimmed. A present
// null is not a list.
func (v *Validator) StringList(p Payload, field, itemMessage string) []string {
	if v.Failed() {
		return nil
	}
	items, ok := p[field].([]any)
	if !ok {
		v.fail(fmt.Sprintf("Field '%s' must be a list", field))
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			v.fail(itemMessage)
			return nil
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

// # Domain Formats

// ISBNMaxLen is the storage limit of the raw ISBN value.
const ISBNMaxLen = 20

// OptionalISBN extracts an ISBN field if present: string, then format, then length.
// The empty string passes and is returned as is.
func (v *Validator) OptionalISBN(p Payload, field string) *string {
	if v.Failed() {
		return nil
	}
	raw, ok := p.Lookup(field)
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(fmt.Sprintf("Field '%s' must be a string", field))
		return nil
	}
	if !ValidISBN(s) {
		v.fail(fmt.Sprintf("Field '%s' must be a valid ISBN-10 or ISBN-13 format", field))
		return nil
	}
	if utf8.RuneCountInString(s) > ISBNMaxLen {
		v.fail(fmt.Sprintf("Field '%s' must not exceed %d characters", field, ISBNMaxLen))
		return nil
	}
	return &s
}

// ValidISBN strips hyphens and spaces, then accepts 10 or 13 digits, or any
// 10 characters ending in 'X' (either case). The empty string is accepted.
// Check digits are not verified.
func ValidISBN(isbn string) bool {
	if isbn == "" {
		return true
	}
	clean := []rune(isbnCleaner.Replace(isbn))
	if len(clean) != 10 && len(clean) != 13 {
		return false
	}
	if allDigits(string(clean)) {
		return true
	}
	last := clean[len(clean)-1]
	return len(clean) == 10 && (last == 'X' || last == 'x')
}

var isbnCleaner = strings.NewReplacer("-", "", " ", "")

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// OptionalYear extracts an integer year within [min, max] if present.
func (v *Validator) OptionalYear(p Payload, field string, min, max int) *int {
	n := v.OptionalInt(p, field)
	if n == nil {
		return nil
	}
	if *n < int64(min) || *n > int64(max) {
		v.fail(fmt.Sprintf("Field '%s' must be between %d and %d", field, min, max))
		return nil
	}
	year := int(*n)
	return &year
}
