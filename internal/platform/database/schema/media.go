// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns used by the Postgres repositories.
package schema

// MediaTable describes one per-kind media cache table.
//
// Lists are ';'-joined multi-value columns and Values are single text columns.
// Both are keyed by the same names the catalog clients use for their fields.
type MediaTable struct {
	Table         string
	ID            string
	RemoteID      string
	Title         string
	CoverImageURL string
	Summary       string
	Lists         []string
	Values        []string
	CreatedAt     string
	UpdatedAt     string
}

// Columns returns every column in scan order.
func (t MediaTable) Columns() []string {
	columns := []string{t.ID, t.RemoteID, t.Title, t.CoverImageURL, t.Summary}
	columns = append(columns, t.Lists...)
	columns = append(columns, t.Values...)
	return append(columns, t.CreatedAt, t.UpdatedAt)
}

func mediaTable(table string, lists, values []string) MediaTable {
	return MediaTable{
		Table:         table,
		ID:            "id",
		RemoteID:      "remoteid",
		Title:         "title",
		CoverImageURL: "coverimageurl",
		Summary:       "summary",
		Lists:         lists,
		Values:        values,
		CreatedAt:     "createdat",
		UpdatedAt:     "updatedat",
	}
}

// MediaGame is the schema definition for media.game
var MediaGame = mediaTable("media.game", []string{"platforms", "companies", "screenshots"}, nil)

// MediaShow is the schema definition for media.show
var MediaShow = mediaTable("media.show", nil, []string{"showtype"})

// MediaBook is the schema definition for media.book
var MediaBook = mediaTable("media.book", []string{"authors"}, nil)
