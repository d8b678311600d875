// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/otakurin/internal/platform/database/schema"
	"github.com/taibuivan/otakurin/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] over users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new account.

The unique indexes on username and email turn a concurrent duplicate
sign-up into a Conflict.

Returns:
  - error: Conflict, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	u := schema.UserAccount
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		u.Table, strings.Join(u.Columns(), ", "))

	_, err := repository.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Bio, user.ProfilePictureURL, user.CreatedAt, user.UpdatedAt,
	)
	return dberr.Wrap(err, "User", "postgres_user_create_failed")
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.ID, id)
}

// FindByUsername implements [UserRepository].
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.Username, username)
}

// FindByEmail implements [UserRepository]. Emails compare case-insensitively.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, "lower("+schema.UserAccount.Email+")", strings.ToLower(email))
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, column, value string) (*User, error) {
	u := schema.UserAccount
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", strings.Join(u.Columns(), ", "), u.Table, column)

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Bio, &user.ProfilePictureURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_find_failed")
	}
	return user, nil
}
