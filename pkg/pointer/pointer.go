// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package pointer builds and reads the optional (pointer) fields used by
// entities for nullable columns.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
