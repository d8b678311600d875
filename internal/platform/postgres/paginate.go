// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/otakurin/pkg/pagination"
)

// ListQuery is a SELECT split into parts so it can be both counted and paged.
//
//	ListQuery{
//	    Select:  "SELECT t.id, m.title",
//	    From:    "FROM library.booktracking t JOIN media.book m ON m.id = t.bookid WHERE t.userid = $1",
//	    OrderBy: "ORDER BY t.createdat ASC, t.id ASC",
//	    Args:    []any{userID},
//	}
type ListQuery struct {
	Select  string
	From    string
	OrderBy string
	Args    []any
}

// Paginate counts the matching rows, then fetches the requested page and maps
// each row with scan. The page is always non-nil, even past the end.
func Paginate[T any](ctx context.Context, db Querier, query ListQuery, params pagination.Params, scan pgx.RowToFunc[T]) (pagination.Page[T], error) {
	var total int
	countSQL := "SELECT COUNT(*) " + query.From
	if err := db.QueryRow(ctx, countSQL, query.Args...).Scan(&total); err != nil {
		return pagination.Page[T]{}, fmt.Errorf("postgres: count failed: %w", err)
	}

	if total == 0 || params.Offset() >= total {
		return pagination.NewPage[T](nil, total, params), nil
	}

	limitArg := len(query.Args) + 1
	pageSQL := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		query.Select, query.From, query.OrderBy, limitArg, limitArg+1)

	args := append(append([]any{}, query.Args...), params.PageSize, params.Offset())

	rows, err := db.Query(ctx, pageSQL, args...)
	if err != nil {
		return pagination.Page[T]{}, fmt.Errorf("postgres: page query failed: %w", err)
	}

	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return pagination.Page[T]{}, fmt.Errorf("postgres: page scan failed: %w", err)
	}

	return pagination.NewPage(items, total, params), nil
}
