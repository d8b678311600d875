// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/database/schema"
	"github.com/taibuivan/otakurin/internal/platform/dberr"
	"github.com/taibuivan/otakurin/internal/platform/postgres"
	"github.com/taibuivan/otakurin/internal/users/activity"
	"github.com/taibuivan/otakurin/pkg/pagination"
)

const resource = "Tracking"

// PostgresStore keeps one ledger in its library.<kind>tracking table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	ledger Ledger
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore returns the store for ledger.
func NewPostgresStore(pool *pgxpool.Pool, ledger Ledger) *PostgresStore {
	return &PostgresStore{pool: pool, ledger: ledger}
}

// InTx implements [Store].
func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return postgres.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&postgresTx{tx: tx, ledger: s.ledger})
	})
}

// Find implements [Store].
func (s *PostgresStore) Find(ctx context.Context, key Key) (*Tracking, error) {
	return findByKey(ctx, s.pool, s.ledger, key, false)
}

// ListForMedia implements [Store].
func (s *PostgresStore) ListForMedia(ctx context.Context, userID, mediaID string) ([]Tracking, error) {
	t := s.ledger.Table
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s ASC, %s ASC",
		strings.Join(columns(t), ", "), t.Table, t.UserID, t.MediaID, t.CreatedAt, t.ID)

	rows, err := s.pool.Query(ctx, query, userID, mediaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_tracking_list_for_media_failed: %w", err)
	}

	trackings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Tracking, error) {
		tracking, err := scanTracking(row, t)
		if err != nil {
			return Tracking{}, err
		}
		return *tracking, nil
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_tracking_list_for_media_scan_failed: %w", err)
	}
	return trackings, nil
}

// List implements [Store]. Trackings whose media row is missing drop out of
// both the page and the total.
func (s *PostgresStore) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[Entry], error) {
	t, m := s.ledger.Table, s.ledger.Media

	platform := "''"
	if s.ledger.PlatformKeyed() {
		platform = "t." + t.Platform
	}

	from := fmt.Sprintf("FROM %s t JOIN %s m ON m.%s = t.%s WHERE t.%s = $1",
		t.Table, m.Table, m.ID, t.MediaID, t.UserID)
	args := []any{filter.UserID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		from += fmt.Sprintf(" AND t.%s = $%d", t.Status, len(args))
	}

	query := postgres.ListQuery{
		Select: fmt.Sprintf("SELECT m.%s, m.%s, m.%s, %s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s",
			m.ID, m.Title, m.CoverImageURL, platform,
			t.Progress, t.Format, t.Status, t.Ownership, t.CreatedAt, t.UpdatedAt),
		From:    from,
		OrderBy: orderBy(s.ledger, filter.SortKey()),
		Args:    args,
	}

	page, err := postgres.Paginate(ctx, s.pool, query, params, func(row pgx.CollectableRow) (Entry, error) {
		var entry Entry
		err := row.Scan(&entry.MediaID, &entry.Title, &entry.CoverImageURL, &entry.Platform,
			&entry.Progress, &entry.Format, &entry.Status, &entry.Ownership, &entry.CreatedAt, &entry.UpdatedAt)
		return entry, err
	})
	if err != nil {
		return pagination.Page[Entry]{}, fmt.Errorf("postgres_tracking_list_failed: %w", err)
	}
	return page, nil
}

// orderBy renders the ORDER BY for key. Every order ends with the default
// order as a tie-breaker, so pages never overlap.
func orderBy(ledger Ledger, key SortKey) string {
	t := ledger.Table
	tieBreak := fmt.Sprintf("t.%s ASC, t.%s ASC", t.CreatedAt, t.ID)

	var primary string
	switch key {
	case SortRecentlyModified:
		primary = fmt.Sprintf("t.%s DESC", t.UpdatedAt)
	case SortProgress:
		primary = fmt.Sprintf("t.%s ASC", t.Progress)
	case SortPlatform:
		if ledger.PlatformKeyed() {
			primary = fmt.Sprintf("t.%s ASC", t.Platform)
		}
	case SortFormat:
		primary = fmt.Sprintf("array_position(%s, t.%s::text) ASC", enumArray(Formats), t.Format)
	case SortOwnership:
		primary = fmt.Sprintf("array_position(%s, t.%s::text) ASC", enumArray(Ownerships), t.Ownership)
	}

	if primary == "" {
		return "ORDER BY " + tieBreak
	}
	return "ORDER BY " + primary + ", " + tieBreak
}

// enumArray renders a constant text[] literal. Values are compile-time enum names.
func enumArray[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + string(v) + "'"
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::text[]"
}

// # Transaction

type postgresTx struct {
	tx     pgx.Tx
	ledger Ledger
}

func (p *postgresTx) UserExists(ctx context.Context, userID string) (bool, error) {
	u := schema.UserAccount
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", u.Table, u.ID)

	var exists bool
	if err := p.tx.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_tracking_user_exists_failed: %w", err)
	}
	return exists, nil
}

func (p *postgresTx) FindMedia(ctx context.Context, mediaID string) (*media.Snapshot, error) {
	return media.FindSnapshot(ctx, p.tx, p.ledger.Media, mediaID)
}

// Insert leans on the natural-key unique index: a taken key inserts nothing.
func (p *postgresTx) Insert(ctx context.Context, tracking *Tracking) (bool, error) {
	t := p.ledger.Table
	cols := columns(t)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		t.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(t.KeyColumns(), ", "))

	tag, err := p.tx.Exec(ctx, query, values(t, tracking)...)
	if err != nil {
		return false, dberr.Wrap(err, resource, "postgres_tracking_insert_failed")
	}
	return tag.RowsAffected() == 1, nil
}

func (p *postgresTx) Lock(ctx context.Context, key Key) (*Tracking, error) {
	return findByKey(ctx, p.tx, p.ledger, key, true)
}

func (p *postgresTx) Update(ctx context.Context, tracking *Tracking) error {
	t := p.ledger.Table
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1",
		t.Table, t.Progress, t.Format, t.Status, t.Ownership, t.UpdatedAt, t.ID)

	tag, err := p.tx.Exec(ctx, query, tracking.ID,
		tracking.Progress, tracking.Format, tracking.Status, tracking.Ownership, tracking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_tracking_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

func (p *postgresTx) Delete(ctx context.Context, id string) error {
	t := p.ledger.Table
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Table, t.ID)

	if _, err := p.tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_tracking_delete_failed: %w", err)
	}
	return nil
}

func (p *postgresTx) AppendActivity(ctx context.Context, item *activity.Activity) error {
	return activity.Insert(ctx, p.tx, item)
}

// # Row helpers

func columns(t schema.TrackingTable) []string {
	cols := []string{t.ID, t.UserID, t.MediaID}
	if t.Platform != "" {
		cols = append(cols, t.Platform)
	}
	return append(cols, t.Progress, t.Format, t.Status, t.Ownership, t.CreatedAt, t.UpdatedAt)
}

func values(t schema.TrackingTable, tracking *Tracking) []any {
	args := []any{tracking.ID, tracking.UserID, tracking.MediaID}
	if t.Platform != "" {
		args = append(args, tracking.Platform)
	}
	return append(args, tracking.Progress, tracking.Format, tracking.Status,
		tracking.Ownership, tracking.CreatedAt, tracking.UpdatedAt)
}

func scanTracking(row pgx.Row, t schema.TrackingTable) (*Tracking, error) {
	tracking := &Tracking{}
	dest := []any{&tracking.ID, &tracking.UserID, &tracking.MediaID}
	if t.Platform != "" {
		dest = append(dest, &tracking.Platform)
	}
	dest = append(dest, &tracking.Progress, &tracking.Format, &tracking.Status,
		&tracking.Ownership, &tracking.CreatedAt, &tracking.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return tracking, nil
}

func findByKey(ctx context.Context, db postgres.Querier, ledger Ledger, key Key, forUpdate bool) (*Tracking, error) {
	t := ledger.Table
	where := fmt.Sprintf("%s = $1 AND %s = $2", t.UserID, t.MediaID)
	args := []any{key.UserID, key.MediaID}
	if ledger.PlatformKeyed() {
		where += fmt.Sprintf(" AND %s = $3", t.Platform)
		args = append(args, key.Platform)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(columns(t), ", "), t.Table, where)
	if forUpdate {
		query += " FOR UPDATE"
	}

	tracking, err := scanTracking(db.QueryRow(ctx, query, args...), t)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "postgres_tracking_find_failed")
	}
	return tracking, nil
}
