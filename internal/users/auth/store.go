// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # Repository Contracts

// UserRepository persists accounts.
type UserRepository interface {
	// Create fails with apperr Conflict when the username or email is taken.
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// SessionRepository keeps live sessions until they expire.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
