// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/otakurin/internal/platform/database/schema"
	"github.com/taibuivan/otakurin/internal/platform/dberr"
	"github.com/taibuivan/otakurin/internal/platform/postgres"
)

// PostgresRepository reads users.activity.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a feed reader over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindOwner implements [Repository].
func (r *PostgresRepository) FindOwner(ctx context.Context, userID string) (*Owner, error) {
	u := schema.UserAccount
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = $1",
		u.ID, u.Username, u.ProfilePictureURL, u.Table, u.ID)

	var owner Owner
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&owner.UserID, &owner.Username, &owner.ProfilePictureURL); err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_activity_find_owner_failed")
	}
	return &owner, nil
}

// ListRecent implements [Repository]. Ties on createdat fall back to id so
// the order is total.
func (r *PostgresRepository) ListRecent(ctx context.Context, userID string, limit int) ([]Activity, error) {
	a := schema.UserActivity
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC LIMIT $2",
		strings.Join(a.Columns(), ", "), a.Table, a.UserID, a.CreatedAt, a.ID)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_activity_list_failed: %w", err)
	}

	activities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Activity, error) {
		var item Activity
		err := row.Scan(
			&item.ID, &item.UserID, &item.MediaID, &item.MediaTitle, &item.MediaCoverImageURL,
			&item.MediaType, &item.Action, &item.Status, &item.Progress, &item.CreatedAt,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_activity_scan_failed: %w", err)
	}
	return activities, nil
}

// Insert appends one entry. Ledgers call it with their open transaction.
func Insert(ctx context.Context, db postgres.Querier, item *Activity) error {
	a := schema.UserActivity
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		a.Table, strings.Join(a.Columns(), ", "))

	_, err := db.Exec(ctx, query,
		item.ID, item.UserID, item.MediaID, item.MediaTitle, item.MediaCoverImageURL,
		item.MediaType, item.Action, item.Status, item.Progress, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_activity_insert_failed: %w", err)
	}
	return nil
}
