// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/core/tracking"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/users/activity"
	"github.com/taibuivan/otakurin/pkg/pagination"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

// # Fakes

type memoryState struct {
	users      map[string]bool
	media      map[string]media.Snapshot
	trackings  []tracking.Tracking
	activities []activity.Activity
}

func (s memoryState) clone() memoryState {
	return memoryState{
		users:      s.users,
		media:      s.media,
		trackings:  slices.Clone(s.trackings),
		activities: slices.Clone(s.activities),
	}
}

// memoryStore commits a transaction's writes only when fn succeeds.
type memoryStore struct {
	mu          sync.Mutex
	ledger      tracking.Ledger
	state       memoryState
	activityErr error
}

func newMemoryStore(ledger tracking.Ledger) *memoryStore {
	return &memoryStore{
		ledger: ledger,
		state:  memoryState{users: map[string]bool{}, media: map[string]media.Snapshot{}},
	}
}

func (s *memoryStore) addUser(id string) { s.state.users[id] = true }

func (s *memoryStore) addMedia(id, title string) {
	s.state.media[id] = media.Snapshot{ID: id, Title: title, CoverImageURL: "https://img/" + title}
}

func (s *memoryStore) activities() []activity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.activities)
}

func (s *memoryStore) InTx(_ context.Context, fn func(tx tracking.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (s *memoryStore) Find(_ context.Context, key tracking.Key) (*tracking.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.trackings {
		if t.Key() == key {
			return &t, nil
		}
	}
	return nil, apperr.NotFound("Tracking")
}

func (s *memoryStore) ListForMedia(_ context.Context, userID, mediaID string) ([]tracking.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tracking.Tracking
	for _, t := range s.state.trackings {
		if t.UserID == userID && t.MediaID == mediaID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memoryStore) List(_ context.Context, filter tracking.ListFilter, params pagination.Params) (pagination.Page[tracking.Entry], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []tracking.Entry
	for _, t := range s.state.trackings {
		snapshot, ok := s.state.media[t.MediaID]
		if t.UserID != filter.UserID || !ok {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		entries = append(entries, tracking.Entry{
			MediaID: t.MediaID, Title: snapshot.Title, Platform: t.Platform,
			Progress: t.Progress, Format: t.Format, Status: t.Status, Ownership: t.Ownership,
		})
	}
	return pagination.Slice(entries, params), nil
}

type memoryTx struct {
	store *memoryStore
	state memoryState
}

func (tx *memoryTx) UserExists(_ context.Context, userID string) (bool, error) {
	return tx.state.users[userID], nil
}

func (tx *memoryTx) FindMedia(_ context.Context, mediaID string) (*media.Snapshot, error) {
	snapshot, ok := tx.state.media[mediaID]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (tx *memoryTx) Insert(_ context.Context, t *tracking.Tracking) (bool, error) {
	for _, existing := range tx.state.trackings {
		if existing.Key() == t.Key() {
			return false, nil
		}
	}
	tx.state.trackings = append(tx.state.trackings, *t)
	return true, nil
}

func (tx *memoryTx) Lock(_ context.Context, key tracking.Key) (*tracking.Tracking, error) {
	for _, t := range tx.state.trackings {
		if t.Key() == key {
			return &t, nil
		}
	}
	return nil, apperr.NotFound("Tracking")
}

func (tx *memoryTx) Update(_ context.Context, t *tracking.Tracking) error {
	for i := range tx.state.trackings {
		if tx.state.trackings[i].ID == t.ID {
			tx.state.trackings[i] = *t
			return nil
		}
	}
	return apperr.NotFound("Tracking")
}

func (tx *memoryTx) Delete(_ context.Context, id string) error {
	tx.state.trackings = slices.DeleteFunc(tx.state.trackings, func(t tracking.Tracking) bool { return t.ID == id })
	return nil
}

func (tx *memoryTx) AppendActivity(_ context.Context, item *activity.Activity) error {
	if tx.store.activityErr != nil {
		return tx.store.activityErr
	}
	tx.state.activities = append(tx.state.activities, *item)
	return nil
}

// # Fixtures

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memoryStore
	clock   *clock.Fixed
	service *tracking.Service
	userID  string
	mediaID string
}

func newFixture(ledger tracking.Ledger) *fixture {
	f := &fixture{
		store:   newMemoryStore(ledger),
		clock:   clock.NewFixed(epoch),
		userID:  uuid.New(),
		mediaID: uuid.New(),
	}
	f.store.addUser(f.userID)
	f.store.addMedia(f.mediaID, "Chaos Chef")
	f.service = tracking.NewService(ledger, f.store, f.clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func (f *fixture) gameInput(platform string) tracking.Input {
	return tracking.Input{
		Key:       tracking.Key{UserID: f.userID, MediaID: f.mediaID, Platform: platform},
		Progress:  10,
		Format:    tracking.FormatDigital,
		Status:    tracking.StatusInProgress,
		Ownership: tracking.OwnershipOwned,
	}
}

func (f *fixture) bookInput() tracking.Input {
	input := f.gameInput("")
	input.Progress = 3
	return input
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

// # Add

/*
TestAdd_PerPlatformUniqueness verifies a game key can be tracked once per
platform: PC twice is a conflict, PS4 alongside PC is fine.
*/
func TestAdd_PerPlatformUniqueness(t *testing.T) {
	f := newFixture(tracking.Games)
	ctx := context.Background()

	_, err := f.service.Add(ctx, f.gameInput("PC"))
	require.NoError(t, err)

	again := f.gameInput("PC")
	again.Progress = 99
	again.Status = tracking.StatusCompleted
	_, err = f.service.Add(ctx, again)
	assertCode(t, err, apperr.CodeConflict)

	_, err = f.service.Add(ctx, f.gameInput("PS4"))
	require.NoError(t, err)

	trackings, err := f.service.ListForMedia(ctx, f.userID, f.mediaID)
	require.NoError(t, err)
	assert.Len(t, trackings, 2)
	assert.Len(t, f.store.activities(), 2)
}

func TestAdd_RecordsActivitySnapshot(t *testing.T) {
	f := newFixture(tracking.Games)

	added, err := f.service.Add(context.Background(), f.gameInput("PC"))
	require.NoError(t, err)
	assert.Equal(t, epoch, added.CreatedAt)
	assert.Equal(t, epoch, added.UpdatedAt)

	activities := f.store.activities()
	require.Len(t, activities, 1)
	entry := activities[0]
	assert.Equal(t, activity.ActionAddTracking, entry.Action)
	assert.Equal(t, f.userID, entry.UserID)
	assert.Equal(t, f.mediaID, entry.MediaID)
	assert.Equal(t, "Chaos Chef", entry.MediaTitle)
	assert.Equal(t, "https://img/Chaos Chef", entry.MediaCoverImageURL)
	assert.Equal(t, media.TypeGame, entry.MediaType)
	assert.Equal(t, string(tracking.StatusInProgress), entry.Status)
	assert.Equal(t, 10, entry.Progress)
}

func TestAdd_CheckOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user wins over everything", func(t *testing.T) {
		f := newFixture(tracking.Books)
		input := f.bookInput()
		input.UserID = uuid.New()
		input.MediaID = uuid.New()

		_, err := f.service.Add(ctx, input)
		assertCode(t, err, apperr.CodeNotFound)
		assert.Contains(t, err.Error(), "User")
	})

	t.Run("existing key wins over missing media", func(t *testing.T) {
		f := newFixture(tracking.Books)
		orphan := f.bookInput()
		orphan.MediaID = uuid.New()

		// Seed an orphaned tracking whose media row is gone.
		f.store.addMedia(orphan.MediaID, "Gone")
		_, err := f.service.Add(ctx, orphan)
		require.NoError(t, err)
		delete(f.store.state.media, orphan.MediaID)

		_, err = f.service.Add(ctx, orphan)
		assertCode(t, err, apperr.CodeConflict)
	})

	t.Run("missing media rolls back the insert", func(t *testing.T) {
		f := newFixture(tracking.Books)
		input := f.bookInput()
		input.MediaID = uuid.New()

		_, err := f.service.Add(ctx, input)
		assertCode(t, err, apperr.CodeNotFound)
		assert.Contains(t, err.Error(), "Book")

		trackings, err := f.service.ListForMedia(ctx, input.UserID, input.MediaID)
		require.NoError(t, err)
		assert.Empty(t, trackings)
		assert.Empty(t, f.store.activities())
	})
}

func TestAdd_ActivityFailureRollsBack(t *testing.T) {
	f := newFixture(tracking.Books)
	f.store.activityErr = errors.New("connection reset")

	_, err := f.service.Add(context.Background(), f.bookInput())
	require.Error(t, err)

	_, err = f.service.Get(context.Background(), f.bookInput().Key)
	assertCode(t, err, apperr.CodeNotFound)
}

func TestAdd_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		ledger tracking.Ledger
		mutate func(*tracking.Input)
		field  string
	}{
		{"game without platform", tracking.Games, func(in *tracking.Input) { in.Platform = "" }, "platform"},
		{"book with platform", tracking.Books, func(in *tracking.Input) { in.Platform = "PC" }, "platform"},
		{"negative progress", tracking.Books, func(in *tracking.Input) { in.Progress = -1 }, "chapters_read"},
		{"unknown format", tracking.Books, func(in *tracking.Input) { in.Format = "Cassette" }, "format"},
		{"unknown status", tracking.Shows, func(in *tracking.Input) { in.Status = "Binging" }, "status"},
		{"unknown ownership", tracking.Shows, func(in *tracking.Input) { in.Ownership = "Stolen" }, "ownership"},
		{"malformed media id", tracking.Shows, func(in *tracking.Input) { in.MediaID = "42" }, "media_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(tc.ledger)
			input := f.bookInput()
			if tc.ledger.PlatformKeyed() {
				input = f.gameInput("PC")
			}
			tc.mutate(&input)

			_, err := f.service.Add(ctx, input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.Equal(t, apperr.CodeValidation, appErr.Code)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tc.field, appErr.Details[0].Field)
		})
	}
}

// # Update and Remove

func TestUpdate_PostUpdateSnapshot(t *testing.T) {
	f := newFixture(tracking.Games)
	ctx := context.Background()

	_, err := f.service.Add(ctx, f.gameInput("PC"))
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	input := f.gameInput("PC")
	input.Progress = 42
	input.Status = tracking.StatusCompleted
	input.Format = tracking.FormatPhysical

	updated, err := f.service.Update(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Progress)
	assert.Equal(t, epoch, updated.CreatedAt)
	assert.Equal(t, epoch.Add(time.Hour), updated.UpdatedAt)

	stored, err := f.service.Get(ctx, input.Key)
	require.NoError(t, err)
	assert.Equal(t, tracking.FormatPhysical, stored.Format)

	activities := f.store.activities()
	require.Len(t, activities, 2)
	last := activities[1]
	assert.Equal(t, activity.ActionUpdateTracking, last.Action)
	assert.Equal(t, string(tracking.StatusCompleted), last.Status)
	assert.Equal(t, 42, last.Progress)
}

func TestUpdate_KeyMismatchIsNotFound(t *testing.T) {
	f := newFixture(tracking.Games)
	ctx := context.Background()

	_, err := f.service.Add(ctx, f.gameInput("PC"))
	require.NoError(t, err)

	_, err = f.service.Update(ctx, f.gameInput("PS4"))
	assertCode(t, err, apperr.CodeNotFound)
	assert.Len(t, f.store.activities(), 1)
}

func TestRemove_PreDeleteSnapshot(t *testing.T) {
	f := newFixture(tracking.Shows)
	ctx := context.Background()

	input := f.bookInput()
	input.Progress = 7
	input.Status = tracking.StatusPaused
	_, err := f.service.Add(ctx, input)
	require.NoError(t, err)

	require.NoError(t, f.service.Remove(ctx, input.Key))

	_, err = f.service.Get(ctx, input.Key)
	assertCode(t, err, apperr.CodeNotFound)

	activities := f.store.activities()
	require.Len(t, activities, 2)
	last := activities[1]
	assert.Equal(t, activity.ActionRemoveTracking, last.Action)
	assert.Equal(t, string(tracking.StatusPaused), last.Status)
	assert.Equal(t, 7, last.Progress)
	assert.Equal(t, media.TypeShow, last.MediaType)
}

func TestRemove_OrphanIsNotFound(t *testing.T) {
	f := newFixture(tracking.Books)
	ctx := context.Background()

	_, err := f.service.Add(ctx, f.bookInput())
	require.NoError(t, err)
	delete(f.store.state.media, f.mediaID)

	err = f.service.Remove(ctx, f.bookInput().Key)
	assertCode(t, err, apperr.CodeNotFound)

	_, err = f.service.Get(ctx, f.bookInput().Key)
	require.NoError(t, err)
}

// # List

/*
TestList_StatusFilterCountsAll verifies the total reflects the filter, not
the page: one completed tracking among six.
*/
func TestList_StatusFilterCountsAll(t *testing.T) {
	f := newFixture(tracking.Games)
	ctx := context.Background()

	platforms := []string{"PC", "PS4", "PS5", "Switch", "XONE", "XSX"}
	for i, platform := range platforms {
		input := f.gameInput(platform)
		if i == 3 {
			input.Status = tracking.StatusCompleted
		}
		_, err := f.service.Add(ctx, input)
		require.NoError(t, err)
	}

	page, err := f.service.List(ctx, tracking.ListFilter{UserID: f.userID, Status: tracking.StatusCompleted}, pagination.New(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Switch", page.Items[0].Platform)

	page, err = f.service.List(ctx, tracking.ListFilter{UserID: f.userID}, pagination.New(2, 4))
	require.NoError(t, err)
	assert.Equal(t, 6, page.TotalCount)
	assert.Len(t, page.Items, 2)
}

func TestList_Validation(t *testing.T) {
	f := newFixture(tracking.Books)
	ctx := context.Background()

	_, err := f.service.List(ctx, tracking.ListFilter{UserID: f.userID, SortByPlatform: true}, pagination.New(1, 20))
	assertCode(t, err, apperr.CodeValidation)

	_, err = f.service.List(ctx, tracking.ListFilter{UserID: f.userID, Status: "Binging"}, pagination.New(1, 20))
	assertCode(t, err, apperr.CodeValidation)
}

func TestListFilter_LastToggleWins(t *testing.T) {
	tests := []struct {
		name   string
		filter tracking.ListFilter
		want   tracking.SortKey
	}{
		{"none", tracking.ListFilter{}, tracking.SortDefault},
		{"recently modified", tracking.ListFilter{SortByRecentlyModified: true}, tracking.SortRecentlyModified},
		{"progress over recently modified", tracking.ListFilter{SortByRecentlyModified: true, SortByProgress: true}, tracking.SortProgress},
		{"format over platform", tracking.ListFilter{SortByPlatform: true, SortByFormat: true}, tracking.SortFormat},
		{"ownership over all", tracking.ListFilter{
			SortByRecentlyModified: true, SortByProgress: true, SortByPlatform: true,
			SortByFormat: true, SortByOwnership: true,
		}, tracking.SortOwnership},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.SortKey())
		})
	}
}
