// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/users/activity"
)

const userID = "0195a3c4-0000-7000-8000-0000000000aa"

type memoryRepository struct {
	owners     map[string]activity.Owner
	activities []activity.Activity
}

func (r *memoryRepository) FindOwner(_ context.Context, id string) (*activity.Owner, error) {
	owner, ok := r.owners[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &owner, nil
}

func (r *memoryRepository) ListRecent(_ context.Context, id string, limit int) ([]activity.Activity, error) {
	var mine []activity.Activity
	for _, item := range r.activities {
		if item.UserID == id {
			mine = append(mine, item)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].CreatedAt.After(mine[j].CreatedAt)
		}
		return mine[i].ID > mine[j].ID
	})
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func TestListRecent_ReturnsNewestTen(t *testing.T) {
	repository := &memoryRepository{owners: map[string]activity.Owner{
		userID: {UserID: userID, Username: "otaku01", ProfilePictureURL: "https://img/me.png"},
	}}
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := range 12 {
		repository.activities = append(repository.activities, activity.Activity{
			ID:        string(rune('a' + i)),
			UserID:    userID,
			MediaType: media.TypeBook,
			Action:    activity.ActionAddTracking,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	entries, err := activity.NewService(repository).ListRecent(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, entries, 10)
	assert.Equal(t, "l", entries[0].ID)
	assert.Equal(t, "c", entries[9].ID)
	assert.Equal(t, "otaku01", entries[0].Username)
	assert.Equal(t, "https://img/me.png", entries[0].ProfilePictureURL)
}

func TestListRecent_EmptyFeed(t *testing.T) {
	repository := &memoryRepository{owners: map[string]activity.Owner{userID: {UserID: userID}}}

	entries, err := activity.NewService(repository).ListRecent(context.Background(), userID)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestListRecent_UnknownUser(t *testing.T) {
	service := activity.NewService(&memoryRepository{})

	_, err := service.ListRecent(context.Background(), userID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.ListRecent(context.Background(), "bogus")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}
