// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "ORDER BY w.createdat ASC, w.id ASC", orderBy(Books, ListFilter{}))
	assert.Equal(t, "ORDER BY w.updatedat DESC, w.createdat ASC, w.id ASC",
		orderBy(Shows, ListFilter{SortByRecentlyModified: true}))
	assert.Equal(t, "ORDER BY w.platform ASC, w.createdat ASC, w.id ASC",
		orderBy(Games, ListFilter{SortByRecentlyModified: true, SortByPlatform: true}))
}

func TestKeyClause(t *testing.T) {
	where, args := keyClause(Games, Key{UserID: "u", MediaID: "m", Platform: "PC"})
	assert.Equal(t, "userid = $1 AND gameid = $2 AND platform = $3", where)
	assert.Equal(t, []any{"u", "m", "PC"}, args)

	where, args = keyClause(Books, Key{UserID: "u", MediaID: "m"})
	assert.Equal(t, "userid = $1 AND bookid = $2", where)
	assert.Len(t, args, 2)
}
