// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taligrayzel/BooksAPI/pkg/pointer"
	"github.com/taligrayzel/BooksAPI/pkg/slice"
)

func TestToAndVal(t *testing.T) {
	p := pointer.To(1965)
	assert.Equal(t, 1965, pointer.Val(p))
	assert.Equal(t, "", pointer.Val[string](nil))
}

func TestSliceMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, func(int) string { return "" }))
	assert.Equal(t, []int{2, 4}, slice.Map([]int{1, 2}, func(v int) int { return v * 2 }))
}
