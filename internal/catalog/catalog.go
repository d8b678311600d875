// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the contract every external metadata provider meets.

One [Client] exists per media kind: IGDB for games (int64 ids), TMDB for shows
and Google Books for books (string ids). The media pipeline is written once
against this contract and never sees provider-specific payloads.
*/
package catalog

import (
	"context"
	"errors"
)

// RemoteID is the identifier type a provider uses for its items.
type RemoteID interface {
	~int64 | ~string
}

// Field names shared by the clients and the media tables.
const (
	FieldPlatforms   = "platforms"
	FieldCompanies   = "companies"
	FieldScreenshots = "screenshots"
	FieldAuthors     = "authors"
	FieldShowType    = "showtype"
)

// Show types reported under [FieldShowType].
const (
	ShowTypeMovie  = "Movie"
	ShowTypeSeries = "Series"
)

// ErrNotFound means the provider has no item with the requested id.
var ErrNotFound = errors.New("catalog: item not found")

// BasicSummary is one search hit.
type BasicSummary[R RemoteID] struct {
	RemoteID      R                   `json:"remote_id"`
	Title         string              `json:"title"`
	CoverImageURL string              `json:"cover_image_url"`
	Lists         map[string][]string `json:"lists,omitempty"`
	Values        map[string]string   `json:"values,omitempty"`
}

// Summary is the full record for one item.
type Summary[R RemoteID] struct {
	RemoteID      R
	Title         string
	CoverImageURL string
	Summary       string
	Lists         map[string][]string
	Values        map[string]string
}

// Client is an external metadata provider for one media kind.
type Client[R RemoteID] interface {
	// SearchByTitle returns possibly empty results. An error means the provider failed.
	SearchByTitle(ctx context.Context, title string) ([]BasicSummary[R], error)

	// GetByID returns the full record, or ErrNotFound when the provider has none.
	GetByID(ctx context.Context, id R) (*Summary[R], error)
}
