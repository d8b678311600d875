// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wishlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/database/schema"
	"github.com/taibuivan/otakurin/internal/platform/dberr"
	"github.com/taibuivan/otakurin/internal/platform/postgres"
	"github.com/taibuivan/otakurin/pkg/pagination"
)

const resource = "Wishlist"

// PostgresStore keeps one wishlist in its library.<kind>wishlist table.
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

// Exists implements [Store].
func (s *PostgresStore) Exists(ctx context.Context, key Key) (bool, error) {
	where, args := keyClause(s.ledger, key)
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", s.ledger.Table.Table, where)

	var exists bool
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_wishlist_exists_failed: %w", err)
	}
	return exists, nil
}

// ListForMedia implements [Store].
func (s *PostgresStore) ListForMedia(ctx context.Context, userID, mediaID string) ([]Wishlist, error) {
	t := s.ledger.Table
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s ASC, %s ASC",
		strings.Join(columns(t), ", "), t.Table, t.UserID, t.MediaID, t.CreatedAt, t.ID)

	rows, err := s.pool.Query(ctx, query, userID, mediaID)
	if err != nil {
		return nil, fmt.Errorf("postgres_wishlist_list_for_media_failed: %w", err)
	}

	wishlists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Wishlist, error) {
		wishlist, err := scanWishlist(row, t)
		if err != nil {
			return Wishlist{}, err
		}
		return *wishlist, nil
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_wishlist_list_for_media_scan_failed: %w", err)
	}
	return wishlists, nil
}

// List implements [Store].
func (s *PostgresStore) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[Entry], error) {
	t, m := s.ledger.Table, s.ledger.Media

	platform := "''"
	if s.ledger.PlatformKeyed() {
		platform = "w." + t.Platform
	}

	query := postgres.ListQuery{
		Select: fmt.Sprintf("SELECT m.%s, m.%s, m.%s, %s, w.%s, w.%s",
			m.ID, m.Title, m.CoverImageURL, platform, t.CreatedAt, t.UpdatedAt),
		From: fmt.Sprintf("FROM %s w JOIN %s m ON m.%s = w.%s WHERE w.%s = $1",
			t.Table, m.Table, m.ID, t.MediaID, t.UserID),
		OrderBy: orderBy(s.ledger, filter),
		Args:    []any{filter.UserID},
	}

	page, err := postgres.Paginate(ctx, s.pool, query, params, func(row pgx.CollectableRow) (Entry, error) {
		var entry Entry
		err := row.Scan(&entry.MediaID, &entry.Title, &entry.CoverImageURL, &entry.Platform, &entry.CreatedAt, &entry.UpdatedAt)
		return entry, err
	})
	if err != nil {
		return pagination.Page[Entry]{}, fmt.Errorf("postgres_wishlist_list_failed: %w", err)
	}
	return page, nil
}

func orderBy(ledger Ledger, filter ListFilter) string {
	t := ledger.Table
	order := fmt.Sprintf("w.%s ASC, w.%s ASC", t.CreatedAt, t.ID)

	switch {
	case filter.SortByPlatform && ledger.PlatformKeyed():
		order = fmt.Sprintf("w.%s ASC, ", t.Platform) + order
	case filter.SortByRecentlyModified:
		order = fmt.Sprintf("w.%s DESC, ", t.UpdatedAt) + order
	}
	return "ORDER BY " + order
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
		return false, fmt.Errorf("postgres_wishlist_user_exists_failed: %w", err)
	}
	return exists, nil
}

func (p *postgresTx) FindMedia(ctx context.Context, mediaID string) (*media.Snapshot, error) {
	return media.FindSnapshot(ctx, p.tx, p.ledger.Media, mediaID)
}

func (p *postgresTx) Insert(ctx context.Context, wishlist *Wishlist) (bool, error) {
	t := p.ledger.Table
	cols := columns(t)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		t.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(t.KeyColumns(), ", "))

	args := []any{wishlist.ID, wishlist.UserID, wishlist.MediaID}
	if t.Platform != "" {
		args = append(args, wishlist.Platform)
	}
	args = append(args, wishlist.CreatedAt, wishlist.UpdatedAt)

	tag, err := p.tx.Exec(ctx, query, args...)
	if err != nil {
		return false, dberr.Wrap(err, resource, "postgres_wishlist_insert_failed")
	}
	return tag.RowsAffected() == 1, nil
}

func (p *postgresTx) Lock(ctx context.Context, key Key) (*Wishlist, error) {
	t := p.ledger.Table
	where, args := keyClause(p.ledger, key)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s FOR UPDATE", strings.Join(columns(t), ", "), t.Table, where)

	wishlist, err := scanWishlist(p.tx.QueryRow(ctx, query, args...), t)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "postgres_wishlist_lock_failed")
	}
	return wishlist, nil
}

func (p *postgresTx) Delete(ctx context.Context, id string) error {
	t := p.ledger.Table
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Table, t.ID)

	if _, err := p.tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_wishlist_delete_failed: %w", err)
	}
	return nil
}

// # Row helpers

func columns(t schema.WishlistTable) []string {
	cols := []string{t.ID, t.UserID, t.MediaID}
	if t.Platform != "" {
		cols = append(cols, t.Platform)
	}
	return append(cols, t.CreatedAt, t.UpdatedAt)
}

func scanWishlist(row pgx.Row, t schema.WishlistTable) (*Wishlist, error) {
	wishlist := &Wishlist{}
	dest := []any{&wishlist.ID, &wishlist.UserID, &wishlist.MediaID}
	if t.Platform != "" {
		dest = append(dest, &wishlist.Platform)
	}
	dest = append(dest, &wishlist.CreatedAt, &wishlist.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func keyClause(ledger Ledger, key Key) (string, []any) {
	t := ledger.Table
	where := fmt.Sprintf("%s = $1 AND %s = $2", t.UserID, t.MediaID)
	args := []any{key.UserID, key.MediaID}
	if ledger.PlatformKeyed() {
		where += fmt.Sprintf(" AND %s = $3", t.Platform)
		args = append(args, key.Platform)
	}
	return where, args
}
