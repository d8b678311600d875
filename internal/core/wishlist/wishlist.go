// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wishlist is the per-user list of media a user wants.

It shares the tracking ledger's natural key and uniqueness rules, carries
no payload, and writes no activity.
*/
package wishlist

import (
	"time"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/database/schema"
)

// Ledger describes the wishlist table of one media kind.
type Ledger struct {
	MediaType media.Type
	Media     schema.MediaTable
	Table     schema.WishlistTable
}

// PlatformKeyed reports whether platform is part of the natural key.
func (l Ledger) PlatformKeyed() bool { return l.Table.Platform != "" }

var (
	Games = Ledger{MediaType: media.TypeGame, Media: schema.MediaGame, Table: schema.LibraryGameWishlist}
	Shows = Ledger{MediaType: media.TypeShow, Media: schema.MediaShow, Table: schema.LibraryShowWishlist}
	Books = Ledger{MediaType: media.TypeBook, Media: schema.MediaBook, Table: schema.LibraryBookWishlist}
)

// Key is the natural key of a wishlist entry.
type Key struct {
	UserID   string
	MediaID  string
	Platform string
}

// Wishlist is one ledger row.
type Wishlist struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MediaID   string    `json:"media_id"`
	Platform  string    `json:"platform,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the entry's natural key.
func (w *Wishlist) Key() Key {
	return Key{UserID: w.UserID, MediaID: w.MediaID, Platform: w.Platform}
}

// Entry is a list row joined with its media.
type Entry struct {
	MediaID       string    `json:"media_id"`
	Title         string    `json:"title"`
	CoverImageURL string    `json:"cover_image_url"`
	Platform      string    `json:"platform,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListFilter orders a user's wishlist. SortByPlatform beats
// SortByRecentlyModified when both are set.
type ListFilter struct {
	UserID                 string
	SortByRecentlyModified bool
	SortByPlatform         bool
}
