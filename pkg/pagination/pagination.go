// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination implements offset pagination with a total count.
//
// Callers filter and sort first, then hand the sequence (or the SQL query, see
// postgres.Paginate) to this package, which counts the full filtered set and
// cuts out one page.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/otakurin/pkg/convert"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 20
	// MaxPageSize is the upper bound for items per page.
	MaxPageSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage bounds the page number so that Offset never overflows.
	MaxPage = math.MaxInt/MaxPageSize + 1
)

// Params is a normalized 1-based page request.
type Params struct {
	Page     int
	PageSize int
}

// New clamps page and pageSize into the accepted range.
//
// A page below 1 becomes 1 and a page above MaxPage becomes MaxPage. A size
// outside [1, MaxPageSize] becomes DefaultPageSize.
func New(page, pageSize int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows to skip: (page-1) * pageSize.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Page is one page of a filtered result set.
//
// TotalCount counts the whole filtered set and does not depend on Page or PageSize.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// NewPage assembles a page, substituting an empty slice for nil items.
func NewPage[T any](items []T, totalCount int, params Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: totalCount, Page: params.Page, PageSize: params.PageSize}
}

// Slice paginates an already filtered and sorted in-memory sequence.
func Slice[T any](all []T, params Params) Page[T] {
	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}

	items := make([]T, end-start)
	copy(items, all[start:end])

	return NewPage(items, len(all), params)
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Meta derives response metadata, including the total number of pages.
func (p Page[T]) Meta() Meta {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (p.TotalCount + p.PageSize - 1) / p.PageSize
	}

	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.TotalCount,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "page_size" query parameters, clamped by [New].
// Malformed values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return New(
		convert.ToIntD(query.Get("page"), DefaultPage),
		convert.ToIntD(query.Get("page_size"), DefaultPageSize),
	)
}
