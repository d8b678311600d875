// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"context"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/users/activity"
	"github.com/taibuivan/otakurin/pkg/pagination"
)

// Store is the ledger of one media kind.
type Store interface {
	// InTx runs fn in one transaction. Returning an error rolls back every
	// write fn made through tx.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Find returns apperr NotFound when no tracking has the key.
	Find(ctx context.Context, key Key) (*Tracking, error)
	// ListForMedia returns the user's trackings of one media, oldest first.
	ListForMedia(ctx context.Context, userID, mediaID string) ([]Tracking, error)
	// List returns one page of the user's trackings joined with their media.
	List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[Entry], error)
}

// Tx is the write side of a [Store], bound to one transaction.
type Tx interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	// FindMedia returns nil when the media does not exist.
	FindMedia(ctx context.Context, mediaID string) (*media.Snapshot, error)
	// Insert reports false, writing nothing, when the key is already taken.
	Insert(ctx context.Context, tracking *Tracking) (bool, error)
	// Lock returns the tracking with the key for update, or apperr NotFound.
	Lock(ctx context.Context, key Key) (*Tracking, error)
	Update(ctx context.Context, tracking *Tracking) error
	Delete(ctx context.Context, id string) error
	AppendActivity(ctx context.Context, item *activity.Activity) error
}
