// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity records what users do to their trackings and serves the
per-user feed of the most recent entries.

Entries are written by the tracking ledgers inside the same transaction as
the change they describe, and carry a snapshot of the media title and cover
so the feed never has to join back to the media tables.
*/
package activity

import (
	"time"

	"github.com/taibuivan/otakurin/internal/core/media"
)

// Action is what happened to a tracking.
type Action string

const (
	ActionAddTracking    Action = "AddTracking"
	ActionUpdateTracking Action = "UpdateTracking"
	ActionRemoveTracking Action = "RemoveTracking"
)

// Activity is one feed entry.
type Activity struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	MediaID            string     `json:"media_id"`
	MediaTitle         string     `json:"media_title"`
	MediaCoverImageURL string     `json:"media_cover_image_url"`
	MediaType          media.Type `json:"media_type"`
	Action             Action     `json:"action"`
	Status             string     `json:"status"`
	Progress           int        `json:"progress"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Owner is the user a feed belongs to.
type Owner struct {
	UserID            string
	Username          string
	ProfilePictureURL string
}

// Entry is an activity joined with its owner, as the feed returns it.
type Entry struct {
	Activity
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
