// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/otakurin/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Equal(t, []string{}, slice.Map[int, string](nil, strconv.Itoa))
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"PC", "PS4"}, slice.NonEmpty([]string{"", "PC", "", "PS4"}))
}
