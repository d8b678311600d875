// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tracking is the per-user ledger of media a user is playing, watching
or reading.

One implementation serves all three kinds through a [Ledger] descriptor. A
tracking is identified by its natural key: (user, media) for shows and
books, (user, media, platform) for games, so a game can be tracked once per
platform. Every add, update and remove also appends an activity entry in the
same transaction.
*/
package tracking

import (
	"time"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/database/schema"
)

// Format is how the user owns a copy.
type Format string

const (
	FormatDigital  Format = "Digital"
	FormatPhysical Format = "Physical"
)

// Formats in sort order.
var Formats = []Format{FormatDigital, FormatPhysical}

// Status is where the user is with the media.
type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusPaused     Status = "Paused"
	StatusDropped    Status = "Dropped"
	StatusPlanning   Status = "Planning"
	StatusCompleted  Status = "Completed"
)

// Statuses in declaration order.
var Statuses = []Status{StatusInProgress, StatusPaused, StatusDropped, StatusPlanning, StatusCompleted}

// Ownership is how the user has access.
type Ownership string

const (
	OwnershipOwned        Ownership = "Owned"
	OwnershipLoan         Ownership = "Loan"
	OwnershipSubscription Ownership = "Subscription"
)

// Ownerships in sort order.
var Ownerships = []Ownership{OwnershipOwned, OwnershipLoan, OwnershipSubscription}

// Ledger describes the tracking table of one media kind.
type Ledger struct {
	MediaType media.Type
	Media     schema.MediaTable
	Table     schema.TrackingTable
	// ProgressField names the progress value in requests and errors.
	ProgressField string
}

// PlatformKeyed reports whether platform is part of the natural key.
func (l Ledger) PlatformKeyed() bool { return l.Table.Platform != "" }

var (
	Games = Ledger{MediaType: media.TypeGame, Media: schema.MediaGame, Table: schema.LibraryGameTracking, ProgressField: "hours_played"}
	Shows = Ledger{MediaType: media.TypeShow, Media: schema.MediaShow, Table: schema.LibraryShowTracking, ProgressField: "episodes_watched"}
	Books = Ledger{MediaType: media.TypeBook, Media: schema.MediaBook, Table: schema.LibraryBookTracking, ProgressField: "chapters_read"}
)

// Key is the natural key of a tracking. Platform is empty for kinds not keyed by it.
type Key struct {
	UserID   string
	MediaID  string
	Platform string
}

// Tracking is one ledger row.
type Tracking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MediaID   string    `json:"media_id"`
	Platform  string    `json:"platform,omitempty"`
	Progress  int       `json:"progress"`
	Format    Format    `json:"format"`
	Status    Status    `json:"status"`
	Ownership Ownership `json:"ownership"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the tracking's natural key.
func (t *Tracking) Key() Key {
	return Key{UserID: t.UserID, MediaID: t.MediaID, Platform: t.Platform}
}

// Entry is a list row: the tracking joined with its media's title and cover.
type Entry struct {
	MediaID       string    `json:"media_id"`
	Title         string    `json:"title"`
	CoverImageURL string    `json:"cover_image_url"`
	Platform      string    `json:"platform,omitempty"`
	Progress      int       `json:"progress"`
	Format        Format    `json:"format"`
	Status        Status    `json:"status"`
	Ownership     Ownership `json:"ownership"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SortKey selects the list order.
type SortKey int

const (
	// SortDefault is insertion order: createdat, then id.
	SortDefault SortKey = iota
	SortRecentlyModified
	SortProgress
	SortPlatform
	SortFormat
	SortOwnership
)

// ListFilter selects and orders a user's trackings.
//
// The Sort* toggles are applied in declaration order and the last one set
// wins, so SortByOwnership beats SortByFormat beats SortByPlatform and so on.
type ListFilter struct {
	UserID string
	// Status filters to one status when non-empty.
	Status Status

	SortByRecentlyModified bool
	SortByProgress         bool
	SortByPlatform         bool
	SortByFormat           bool
	SortByOwnership        bool
}

// SortKey resolves the toggles into one order.
func (f ListFilter) SortKey() SortKey {
	key := SortDefault
	for _, toggle := range []struct {
		set bool
		key SortKey
	}{
		{f.SortByRecentlyModified, SortRecentlyModified},
		{f.SortByProgress, SortProgress},
		{f.SortByPlatform, SortPlatform},
		{f.SortByFormat, SortFormat},
		{f.SortByOwnership, SortOwnership},
	} {
		if toggle.set {
			key = toggle.key
		}
	}
	return key
}
