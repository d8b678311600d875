// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"

	"github.com/taibuivan/otakurin/internal/catalog"
)

// Repository persists cached items of one kind.
type Repository[R catalog.RemoteID] interface {
	// FindByID returns apperr NotFound when no row has the id.
	FindByID(ctx context.Context, id string) (*Item[R], error)
	// FindByRemoteID returns apperr NotFound when no row has the remote id.
	FindByRemoteID(ctx context.Context, remoteID R) (*Item[R], error)
	// Create returns apperr Conflict when the remote id is already cached.
	Create(ctx context.Context, item *Item[R]) error
	// Update rewrites the descriptive fields and UpdatedAt.
	Update(ctx context.Context, item *Item[R]) error
}
