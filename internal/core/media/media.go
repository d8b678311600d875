// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media caches catalog records locally and keeps them fresh.

The package is written once, generically over the catalog id type, and
instantiated per kind through a [Kind] descriptor:

	Game  Kind[int64]   IGDB         platforms, companies, screenshots
	Show  Kind[string]  TMDB         showtype
	Book  Kind[string]  Google Books authors

Two flows matter. Fetch-or-create returns the local id for a remote id,
calling the catalog only on a cache miss. Get reads a cached item and, when
it is older than the staleness window, refreshes it from the catalog first.
A failed refresh still returns the cached copy, marked stale.
*/
package media

import (
	"strconv"
	"time"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/platform/database/schema"
	"github.com/taibuivan/otakurin/pkg/multivalue"
)

// Type names a media kind in activity records and error messages.
type Type string

const (
	TypeGame Type = "Game"
	TypeShow Type = "Show"
	TypeBook Type = "Book"
)

// Kind describes one media kind.
type Kind[R catalog.RemoteID] struct {
	Type  Type
	Table schema.MediaTable
	// ParseRemoteID converts a path or body value into the catalog id type.
	ParseRemoteID func(raw string) (R, error)
}

// Game is the IGDB-backed kind.
var Game = Kind[int64]{
	Type:  TypeGame,
	Table: schema.MediaGame,
	ParseRemoteID: func(raw string) (int64, error) {
		return strconv.ParseInt(raw, 10, 64)
	},
}

// Show is the TMDB-backed kind.
var Show = Kind[string]{
	Type:          TypeShow,
	Table:         schema.MediaShow,
	ParseRemoteID: identity,
}

// Book is the Google Books-backed kind.
var Book = Kind[string]{
	Type:          TypeBook,
	Table:         schema.MediaBook,
	ParseRemoteID: identity,
}

func identity(raw string) (string, error) { return raw, nil }

// Item is a cached media row. List fields are stored ';'-joined.
type Item[R catalog.RemoteID] struct {
	ID            string
	RemoteID      R
	Title         string
	CoverImageURL string
	Summary       string
	Lists         map[string]string
	Values        map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Content is an item as returned to callers, with list fields split back out.
type Content[R catalog.RemoteID] struct {
	ID            string              `json:"id"`
	RemoteID      R                   `json:"remote_id"`
	Title         string              `json:"title"`
	CoverImageURL string              `json:"cover_image_url"`
	Summary       string              `json:"summary"`
	Lists         map[string][]string `json:"lists,omitempty"`
	Values        map[string]string   `json:"values,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`

	// Stale is set when a refresh was due but failed; the fields above are
	// then the last cached copy.
	Stale bool `json:"stale"`
	// RefreshErr carries the swallowed refresh failure for callers that care.
	RefreshErr error `json:"-"`
}

// Snapshot is the part of an item copied into activity records and list rows.
type Snapshot struct {
	ID            string
	Title         string
	CoverImageURL string
}

// newItem builds the row stored on a cache miss.
func newItem[R catalog.RemoteID](kind Kind[R], id string, summary *catalog.Summary[R], now time.Time) *Item[R] {
	item := &Item[R]{
		ID:        id,
		RemoteID:  summary.RemoteID,
		CreatedAt: now,
	}
	apply(kind, item, summary, now)
	return item
}

// apply overwrites the descriptive fields with summary. The remote id and the
// creation time never change.
func apply[R catalog.RemoteID](kind Kind[R], item *Item[R], summary *catalog.Summary[R], now time.Time) {
	item.Title = summary.Title
	item.CoverImageURL = summary.CoverImageURL
	item.Summary = summary.Summary

	item.Lists = make(map[string]string, len(kind.Table.Lists))
	for _, field := range kind.Table.Lists {
		item.Lists[field] = multivalue.Join(multivalue.Clean(summary.Lists[field]))
	}

	item.Values = make(map[string]string, len(kind.Table.Values))
	for _, field := range kind.Table.Values {
		item.Values[field] = summary.Values[field]
	}

	item.UpdatedAt = now
}

// toContent splits the stored list fields.
func toContent[R catalog.RemoteID](kind Kind[R], item *Item[R]) *Content[R] {
	content := &Content[R]{
		ID:            item.ID,
		RemoteID:      item.RemoteID,
		Title:         item.Title,
		CoverImageURL: item.CoverImageURL,
		Summary:       item.Summary,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}

	if len(kind.Table.Lists) > 0 {
		content.Lists = make(map[string][]string, len(kind.Table.Lists))
		for _, field := range kind.Table.Lists {
			content.Lists[field] = multivalue.Split(item.Lists[field])
		}
	}

	if len(kind.Table.Values) > 0 {
		content.Values = make(map[string]string, len(kind.Table.Values))
		for _, field := range kind.Table.Values {
			content.Values[field] = item.Values[field]
		}
	}

	return content
}
