// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package slice complements the standard [slices] package with generic
// projections.
package slice

// Map applies transform to every element. A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}
