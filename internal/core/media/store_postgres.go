// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/database/schema"
	"github.com/taibuivan/otakurin/internal/platform/dberr"
	"github.com/taibuivan/otakurin/internal/platform/postgres"
)

// PostgresRepository stores one kind in its media.<kind> table. Queries are
// assembled from the kind's column list once, at construction.
type PostgresRepository[R catalog.RemoteID] struct {
	pool     *pgxpool.Pool
	table    schema.MediaTable
	resource string

	selectSQL string
	insertSQL string
	updateSQL string
}

var _ Repository[string] = (*PostgresRepository[string])(nil)

// NewPostgresRepository builds the repository for kind.
func NewPostgresRepository[R catalog.RemoteID](pool *pgxpool.Pool, kind Kind[R]) *PostgresRepository[R] {
	table := kind.Table
	columns := table.Columns()

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	// id and remoteid ($1, $2) and createdat are immutable.
	mutable := []string{table.Title, table.CoverImageURL, table.Summary}
	mutable = append(mutable, table.Lists...)
	mutable = append(mutable, table.Values...)
	mutable = append(mutable, table.UpdatedAt)

	assignments := make([]string, len(mutable))
	for i, column := range mutable {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	return &PostgresRepository[R]{
		pool:     pool,
		table:    table,
		resource: string(kind.Type),
		selectSQL: fmt.Sprintf("SELECT %s FROM %s",
			strings.Join(columns, ", "), table.Table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
			table.Table, strings.Join(assignments, ", "), table.ID),
	}
}

// FindByID implements [Repository].
func (r *PostgresRepository[R]) FindByID(ctx context.Context, id string) (*Item[R], error) {
	query := fmt.Sprintf("%s WHERE %s = $1", r.selectSQL, r.table.ID)
	item, err := r.scan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, r.resource, "postgres_media_find_by_id_failed")
	}
	return item, nil
}

// FindByRemoteID implements [Repository].
func (r *PostgresRepository[R]) FindByRemoteID(ctx context.Context, remoteID R) (*Item[R], error) {
	query := fmt.Sprintf("%s WHERE %s = $1", r.selectSQL, r.table.RemoteID)
	item, err := r.scan(r.pool.QueryRow(ctx, query, remoteID))
	if err != nil {
		return nil, dberr.Wrap(err, r.resource, "postgres_media_find_by_remote_id_failed")
	}
	return item, nil
}

// Create implements [Repository]. The unique index on remoteid turns a lost
// race into a Conflict.
func (r *PostgresRepository[R]) Create(ctx context.Context, item *Item[R]) error {
	args := []any{item.ID, item.RemoteID, item.Title, item.CoverImageURL, item.Summary}
	for _, column := range r.table.Lists {
		args = append(args, item.Lists[column])
	}
	for _, column := range r.table.Values {
		args = append(args, item.Values[column])
	}
	args = append(args, item.CreatedAt, item.UpdatedAt)

	if _, err := r.pool.Exec(ctx, r.insertSQL, args...); err != nil {
		return dberr.Wrap(err, r.resource, "postgres_media_create_failed")
	}
	return nil
}

// Update implements [Repository].
func (r *PostgresRepository[R]) Update(ctx context.Context, item *Item[R]) error {
	args := []any{item.ID, item.Title, item.CoverImageURL, item.Summary}
	for _, column := range r.table.Lists {
		args = append(args, item.Lists[column])
	}
	for _, column := range r.table.Values {
		args = append(args, item.Values[column])
	}
	args = append(args, item.UpdatedAt)

	tag, err := r.pool.Exec(ctx, r.updateSQL, args...)
	if err != nil {
		return dberr.Wrap(err, r.resource, "postgres_media_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(r.resource)
	}
	return nil
}

func (r *PostgresRepository[R]) scan(row pgx.Row) (*Item[R], error) {
	item := &Item[R]{
		Lists:  make(map[string]string, len(r.table.Lists)),
		Values: make(map[string]string, len(r.table.Values)),
	}

	lists := make([]string, len(r.table.Lists))
	values := make([]string, len(r.table.Values))

	dest := []any{&item.ID, &item.RemoteID, &item.Title, &item.CoverImageURL, &item.Summary}
	for i := range lists {
		dest = append(dest, &lists[i])
	}
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &item.CreatedAt, &item.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for i, column := range r.table.Lists {
		item.Lists[column] = lists[i]
	}
	for i, column := range r.table.Values {
		item.Values[column] = values[i]
	}
	return item, nil
}

// FindSnapshot reads the fields copied into activity and list rows. It
// returns (nil, nil) when the item does not exist.
func FindSnapshot(ctx context.Context, db postgres.Querier, table schema.MediaTable, id string) (*Snapshot, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = $1",
		table.ID, table.Title, table.CoverImageURL, table.Table, table.ID)

	var snapshot Snapshot
	err := db.QueryRow(ctx, query, id).Scan(&snapshot.ID, &snapshot.Title, &snapshot.CoverImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_media_snapshot_failed: %w", err)
	}
	return &snapshot, nil
}
