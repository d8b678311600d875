// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name   string
		ledger Ledger
		key    SortKey
		want   string
	}{
		{"default", Books, SortDefault, "ORDER BY t.createdat ASC, t.id ASC"},
		{"recently modified", Books, SortRecentlyModified, "ORDER BY t.updatedat DESC, t.createdat ASC, t.id ASC"},
		{"chapters read ascending", Books, SortProgress, "ORDER BY t.chaptersread ASC, t.createdat ASC, t.id ASC"},
		{"hours played ascending", Games, SortProgress, "ORDER BY t.hoursplayed ASC, t.createdat ASC, t.id ASC"},
		{"platform", Games, SortPlatform, "ORDER BY t.platform ASC, t.createdat ASC, t.id ASC"},
		{"platform ignored without column", Shows, SortPlatform, "ORDER BY t.createdat ASC, t.id ASC"},
		{
			"format by declaration order", Shows, SortFormat,
			"ORDER BY array_position(ARRAY['Digital', 'Physical']::text[], t.format::text) ASC, t.createdat ASC, t.id ASC",
		},
		{
			"ownership by declaration order", Games, SortOwnership,
			"ORDER BY array_position(ARRAY['Owned', 'Loan', 'Subscription']::text[], t.ownership::text) ASC, t.createdat ASC, t.id ASC",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderBy(tc.ledger, tc.key))
		})
	}
}

func TestColumns_PlatformOnlyForGames(t *testing.T) {
	assert.Contains(t, columns(Games.Table), "platform")
	assert.NotContains(t, columns(Books.Table), "platform")
	assert.Len(t, columns(Shows.Table), len(columns(Games.Table))-1)
}
