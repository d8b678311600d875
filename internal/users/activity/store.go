// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import "context"

// Repository reads the activity feed.
type Repository interface {
	// FindOwner returns apperr NotFound when the user does not exist.
	FindOwner(ctx context.Context, userID string) (*Owner, error)
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]Activity, error)
}
