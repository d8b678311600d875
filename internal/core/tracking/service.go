// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/platform/validate"
	"github.com/taibuivan/otakurin/internal/users/activity"
	"github.com/taibuivan/otakurin/pkg/pagination"
	"github.com/taibuivan/otakurin/pkg/slice"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

const maxPlatformLength = 100

// Input is the natural key plus the mutable fields of a tracking.
type Input struct {
	Key
	Progress  int
	Format    Format
	Status    Status
	Ownership Ownership
}

// Service runs one [Ledger].
type Service struct {
	ledger Ledger
	store  Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewService returns the ledger service for one media kind.
func NewService(ledger Ledger, store Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		ledger: ledger,
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("media_type", string(ledger.MediaType))),
	}
}

// Ledger returns the descriptor the service was built for.
func (s *Service) Ledger() Ledger { return s.ledger }

/*
Add starts tracking a media for a user.

Checks run in a fixed order and the first failure wins: the user must
exist, the key must be free, then the media must exist. The row and its
AddTracking activity commit together.

Returns:
  - *Tracking: The stored row
  - error: NotFound, Conflict, or a validation failure
*/
func (s *Service) Add(ctx context.Context, input Input) (*Tracking, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tracking := &Tracking{
		ID:        uuid.New(),
		UserID:    input.UserID,
		MediaID:   input.MediaID,
		Platform:  input.Platform,
		Progress:  input.Progress,
		Format:    input.Format,
		Status:    input.Status,
		Ownership: input.Ownership,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.InTx(ctx, func(tx Tx) error {
		exists, err := tx.UserExists(ctx, tracking.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("User")
		}

		inserted, err := tx.Insert(ctx, tracking)
		if err != nil {
			return err
		}
		if !inserted {
			return apperr.Conflict(resource + " already exists")
		}

		snapshot, err := s.findMedia(ctx, tx, tracking.MediaID)
		if err != nil {
			return err
		}
		return tx.AppendActivity(ctx, s.newActivity(activity.ActionAddTracking, snapshot, tracking, now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tracking_added",
		slog.String("user_id", tracking.UserID),
		slog.String("media_id", tracking.MediaID),
	)
	return tracking, nil
}

// Update overwrites the mutable fields of the tracking with input's key and
// records an UpdateTracking activity carrying the new values.
func (s *Service) Update(ctx context.Context, input Input) (*Tracking, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var updated *Tracking
	err := s.store.InTx(ctx, func(tx Tx) error {
		current, err := tx.Lock(ctx, input.Key)
		if err != nil {
			return err
		}

		snapshot, err := s.findMedia(ctx, tx, current.MediaID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		current.Progress = input.Progress
		current.Format = input.Format
		current.Status = input.Status
		current.Ownership = input.Ownership
		current.UpdatedAt = now

		if err := tx.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return tx.AppendActivity(ctx, s.newActivity(activity.ActionUpdateTracking, snapshot, current, now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tracking_updated",
		slog.String("user_id", updated.UserID),
		slog.String("media_id", updated.MediaID),
	)
	return updated, nil
}

// Remove deletes the tracking with key. The RemoveTracking activity carries
// the values the row had before deletion.
func (s *Service) Remove(ctx context.Context, key Key) error {
	if err := s.validateKey(new(validate.Validator), key).Err(); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx Tx) error {
		current, err := tx.Lock(ctx, key)
		if err != nil {
			return err
		}

		snapshot, err := s.findMedia(ctx, tx, current.MediaID)
		if err != nil {
			return err
		}

		if err := tx.Delete(ctx, current.ID); err != nil {
			return err
		}
		return tx.AppendActivity(ctx, s.newActivity(activity.ActionRemoveTracking, snapshot, current, s.clock.Now()))
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "tracking_removed",
		slog.String("user_id", key.UserID),
		slog.String("media_id", key.MediaID),
	)
	return nil
}

// Get returns the tracking with key.
func (s *Service) Get(ctx context.Context, key Key) (*Tracking, error) {
	if err := s.validateKey(new(validate.Validator), key).Err(); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, key)
}

// ListForMedia returns every tracking a user has for one media. For games
// that is one per platform.
func (s *Service) ListForMedia(ctx context.Context, userID, mediaID string) ([]Tracking, error) {
	err := new(validate.Validator).
		Required("user_id", userID).UUID("user_id", userID).
		Required("media_id", mediaID).UUID("media_id", mediaID).
		Err()
	if err != nil {
		return nil, err
	}

	trackings, err := s.store.ListForMedia(ctx, userID, mediaID)
	if err != nil {
		return nil, err
	}
	if trackings == nil {
		trackings = []Tracking{}
	}
	return trackings, nil
}

// List returns one page of a user's trackings.
func (s *Service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[Entry], error) {
	v := new(validate.Validator).
		Required("user_id", filter.UserID).UUID("user_id", filter.UserID).
		Custom("sort_by_platform", filter.SortByPlatform && !s.ledger.PlatformKeyed(), "Not supported for this media type")
	if filter.Status != "" {
		v.OneOf("status", string(filter.Status), names(Statuses)...)
	}
	if err := v.Err(); err != nil {
		return pagination.Page[Entry]{}, err
	}

	return s.store.List(ctx, filter, pagination.New(params.Page, params.PageSize))
}

// # Helpers

func (s *Service) findMedia(ctx context.Context, tx Tx, mediaID string) (*media.Snapshot, error) {
	snapshot, err := tx.FindMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperr.NotFound(string(s.ledger.MediaType))
	}
	return snapshot, nil
}

func (s *Service) newActivity(action activity.Action, snapshot *media.Snapshot, tracking *Tracking, now time.Time) *activity.Activity {
	return &activity.Activity{
		ID:                 uuid.New(),
		UserID:             tracking.UserID,
		MediaID:            snapshot.ID,
		MediaTitle:         snapshot.Title,
		MediaCoverImageURL: snapshot.CoverImageURL,
		MediaType:          s.ledger.MediaType,
		Action:             action,
		Status:             string(tracking.Status),
		Progress:           tracking.Progress,
		CreatedAt:          now,
	}
}

func (s *Service) validateKey(v *validate.Validator, key Key) *validate.Validator {
	v.Required("user_id", key.UserID).UUID("user_id", key.UserID).
		Required("media_id", key.MediaID).UUID("media_id", key.MediaID)

	if s.ledger.PlatformKeyed() {
		return v.Required("platform", key.Platform).MaxLen("platform", key.Platform, maxPlatformLength)
	}
	return v.Custom("platform", key.Platform != "", "Not supported for this media type")
}

func (s *Service) validateInput(input Input) error {
	return s.validateKey(new(validate.Validator), input.Key).
		Min(s.ledger.ProgressField, input.Progress, 0).
		OneOf("format", string(input.Format), names(Formats)...).
		OneOf("status", string(input.Status), names(Statuses)...).
		OneOf("ownership", string(input.Ownership), names(Ownerships)...).
		Err()
}

func names[T ~string](values []T) []string {
	return slice.Map(values, func(v T) string { return string(v) })
}
