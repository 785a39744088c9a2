// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the body
decoding pattern, so handlers hand validators a [validate.Payload] and typed
path or query values instead of raw strings.
*/
package requestutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/ctxutil"
	"github.com/taligrayzel/BooksAPI/internal/platform/validate"
)

// maxBodyBytes caps the size of a JSON request body.
const maxBodyBytes = 1 << 20

/*
DecodePayload reads the request body as a JSON object.

Numbers are decoded as [json.Number]. An empty body, invalid JSON, trailing
data after the object, or a JSON value that is not an object yields
validate.ErrBodyNotJSON.
*/
func DecodePayload(request *http.Request) (validate.Payload, error) {
	if request.Body == nil {
		return nil, validate.ErrBodyNotJSON
	}

	body, err := io.ReadAll(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return nil, validate.ErrBodyNotJSON
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, validate.ErrBodyNotJSON
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, validate.ErrBodyNotJSON
	}

	object, ok := raw.(map[string]any)
	if !ok {
		return nil, validate.ErrBodyNotJSON
	}

	payload := validate.Payload(object)
	if err := validate.RequireBody(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

/*
Int64Param retrieves a named URL parameter and parses it as an integer.
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil {
		return 0, apperr.Validation(fmt.Sprintf("Path parameter '%s' must be an integer", name))
	}
	return value, nil
}

/*
OptionalInt64Query parses a query parameter as an integer.

Returns nil when the parameter is absent. A present but non-integer value
(including the empty string) is a validation error.
*/
func OptionalInt64Query(request *http.Request, name string) (*int64, error) {
	query := request.URL.Query()
	if !query.Has(name) {
		return nil, nil
	}

	value, err := strconv.ParseInt(strings.TrimSpace(query.Get(name)), 10, 64)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("Query parameter '%s' must be an integer", name))
	}
	return &value, nil
}

/*
RequiredUserID returns the verified user id placed in the context by the
bearer-token middleware.

Returns:
  - int64: User ID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (int64, error) {
	userID, ok := ctxutil.GetUserID(request.Context())
	if !ok {
		return 0, apperr.Unauthorized("token-missing", "Token is missing")
	}
	return userID, nil
}
