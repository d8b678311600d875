// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TrackingTable represents a per-kind 'library.<kind>tracking' table.
//
// Platform is empty for kinds whose natural key is (user, media) only.
type TrackingTable struct {
	Table     string
	ID        string
	UserID    string
	MediaID   string
	Platform  string
	Progress  string
	Format    string
	Status    string
	Ownership string
	CreatedAt string
	UpdatedAt string
}

// KeyColumns returns the natural key columns.
func (t TrackingTable) KeyColumns() []string {
	if t.Platform == "" {
		return []string{t.UserID, t.MediaID}
	}
	return []string{t.UserID, t.MediaID, t.Platform}
}

func trackingTable(table, mediaID, platform, progress string) TrackingTable {
	return TrackingTable{
		Table:     table,
		ID:        "id",
		UserID:    "userid",
		MediaID:   mediaID,
		Platform:  platform,
		Progress:  progress,
		Format:    "format",
		Status:    "status",
		Ownership: "ownership",
		CreatedAt: "createdat",
		UpdatedAt: "updatedat",
	}
}

// LibraryGameTracking is the schema definition for library.gametracking
var LibraryGameTracking = trackingTable("library.gametracking", "gameid", "platform", "hoursplayed")

// LibraryShowTracking is the schema definition for library.showtracking
var LibraryShowTracking = trackingTable("library.showtracking", "showid", "", "episodeswatched")

// LibraryBookTracking is the schema definition for library.booktracking
var LibraryBookTracking = trackingTable("library.booktracking", "bookid", "", "chaptersread")

// WishlistTable represents a per-kind 'library.<kind>wishlist' table.
type WishlistTable struct {
	Table     string
	ID        string
	UserID    string
	MediaID   string
	Platform  string
	CreatedAt string
	UpdatedAt string
}

// KeyColumns returns the natural key columns.
func (t WishlistTable) KeyColumns() []string {
	if t.Platform == "" {
		return []string{t.UserID, t.MediaID}
	}
	return []string{t.UserID, t.MediaID, t.Platform}
}

func wishlistTable(table, mediaID, platform string) WishlistTable {
	return WishlistTable{
		Table:     table,
		ID:        "id",
		UserID:    "userid",
		MediaID:   mediaID,
		Platform:  platform,
		CreatedAt: "createdat",
		UpdatedAt: "updatedat",
	}
}

// LibraryGameWishlist is the schema definition for library.gamewishlist
var LibraryGameWishlist = wishlistTable("library.gamewishlist", "gameid", "platform")

// LibraryShowWishlist is the schema definition for library.showwishlist
var LibraryShowWishlist = wishlistTable("library.showwishlist", "showid", "")

// LibraryBookWishlist is the schema definition for library.bookwishlist
var LibraryBookWishlist = wishlistTable("library.bookwishlist", "bookid", "")
