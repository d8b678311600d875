// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/pkg/pagination"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

/*
TestSlice_TotalInvariant walks every page and checks that page lengths add up to the
total and that only the last page may be short.
*/
func TestSlice_TotalInvariant(t *testing.T) {
	for _, total := range []int{0, 1, 5, 20, 21, 57} {
		for _, size := range []int{1, 3, 10, 20} {
			all := sequence(total)

			seen := 0
			pages := (total + size - 1) / size
			for page := 1; page <= pages; page++ {
				result := pagination.Slice(all, pagination.New(page, size))

				assert.Equal(t, total, result.TotalCount)
				assert.LessOrEqual(t, len(result.Items), size)
				if page < pages {
					assert.Len(t, result.Items, size)
				}
				if len(result.Items) > 0 {
					assert.Equal(t, seen, result.Items[0])
				}
				seen += len(result.Items)
			}

			assert.Equal(t, total, seen, "total=%d size=%d", total, size)
		}
	}
}

/*
TestSlice_PastTheEnd verifies an empty, non-nil page beyond the last one.
*/
func TestSlice_PastTheEnd(t *testing.T) {
	result := pagination.Slice(sequence(5), pagination.New(4, 2))

	require.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 5, result.TotalCount)
	assert.Equal(t, 4, result.Page)

	huge := pagination.Slice(sequence(3), pagination.New(math.MaxInt, 20))
	require.NotNil(t, huge.Items)
	assert.Empty(t, huge.Items)
	assert.Equal(t, 3, huge.TotalCount)
}

/*
TestNew_Clamping verifies page and size normalization.
*/
func TestNew_Clamping(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{"defaults", 0, 0, 1, pagination.DefaultPageSize, 0},
		{"negative_page", -3, 10, 1, 10, 0},
		{"too_large", 2, 500, 2, pagination.DefaultPageSize, pagination.DefaultPageSize},
		{"regular", 3, 10, 3, 10, 20},
		{"huge_page", math.MaxInt, 20, pagination.MaxPage, 20, (pagination.MaxPage - 1) * 20},
		{"huge_page_max_size", math.MaxInt, pagination.MaxPageSize, pagination.MaxPage, pagination.MaxPageSize, (pagination.MaxPage - 1) * pagination.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.New(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPageSize, params.PageSize)
			assert.Equal(t, tt.wantOffset, params.Offset())
		})
	}
}

/*
TestFromRequest verifies query parsing with fallbacks.
*/
func TestFromRequest(t *testing.T) {
	params := pagination.FromRequest(httptest.NewRequest("GET", "/?page=2&page_size=5", nil))
	assert.Equal(t, pagination.Params{Page: 2, PageSize: 5}, params)

	params = pagination.FromRequest(httptest.NewRequest("GET", "/?page=abc", nil))
	assert.Equal(t, pagination.Params{Page: 1, PageSize: pagination.DefaultPageSize}, params)

	params = pagination.FromRequest(httptest.NewRequest("GET", "/?page=9223372036854775807&page_size=20", nil))
	assert.Equal(t, pagination.MaxPage, params.Page)
	assert.Positive(t, params.Offset())
}

/*
TestMeta verifies the total page calculation.
*/
func TestMeta(t *testing.T) {
	meta := pagination.Slice(sequence(21), pagination.New(1, 10)).Meta()

	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 21, meta.Total)
	assert.Equal(t, 10, meta.PageSize)
}
