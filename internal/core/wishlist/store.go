// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wishlist

import (
	"context"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/pkg/pagination"
)

// Store is the wishlist of one media kind.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error

	Exists(ctx context.Context, key Key) (bool, error)
	ListForMedia(ctx context.Context, userID, mediaID string) ([]Wishlist, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[Entry], error)
}

// Tx is the write side of a [Store], bound to one transaction.
type Tx interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	// FindMedia returns nil when the media does not exist.
	FindMedia(ctx context.Context, mediaID string) (*media.Snapshot, error)
	// Insert reports false, writing nothing, when the key is already taken.
	Insert(ctx context.Context, wishlist *Wishlist) (bool, error)
	// Lock returns the entry with the key for update, or apperr NotFound.
	Lock(ctx context.Context, key Key) (*Wishlist, error)
	Delete(ctx context.Context, id string) error
}
