// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wishlist

import (
	"context"
	"log/slog"

	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/platform/validate"
	"github.com/taibuivan/otakurin/pkg/pagination"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

const maxPlatformLength = 100

// Service runs one wishlist [Ledger].
type Service struct {
	ledger Ledger
	store  Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewService returns the wishlist service for one media kind.
func NewService(ledger Ledger, store Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		ledger: ledger,
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("media_type", string(ledger.MediaType))),
	}
}

// Add puts a media on the user's wishlist. The user must exist, the key
// must be free, then the media must exist.
func (s *Service) Add(ctx context.Context, key Key) (*Wishlist, error) {
	if err := s.validateKey(key); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	wishlist := &Wishlist{
		ID:        uuid.New(),
		UserID:    key.UserID,
		MediaID:   key.MediaID,
		Platform:  key.Platform,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.InTx(ctx, func(tx Tx) error {
		exists, err := tx.UserExists(ctx, key.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("User")
		}

		inserted, err := tx.Insert(ctx, wishlist)
		if err != nil {
			return err
		}
		if !inserted {
			return apperr.Conflict(resource + " already exists")
		}

		return s.requireMedia(ctx, tx, key.MediaID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "wishlist_added",
		slog.String("user_id", key.UserID),
		slog.String("media_id", key.MediaID),
	)
	return wishlist, nil
}

// Remove takes a media off the wishlist. The entry and its media must both exist.
func (s *Service) Remove(ctx context.Context, key Key) error {
	if err := s.validateKey(key); err != nil {
		return err
	}

	return s.store.InTx(ctx, func(tx Tx) error {
		current, err := tx.Lock(ctx, key)
		if err != nil {
			return err
		}
		if err := s.requireMedia(ctx, tx, current.MediaID); err != nil {
			return err
		}
		return tx.Delete(ctx, current.ID)
	})
}

// Has reports whether the key is on the wishlist. Absence is not an error.
func (s *Service) Has(ctx context.Context, key Key) (bool, error) {
	if err := s.validateKey(key); err != nil {
		return false, err
	}
	return s.store.Exists(ctx, key)
}

// ListForMedia returns the user's entries for one media.
func (s *Service) ListForMedia(ctx context.Context, userID, mediaID string) ([]Wishlist, error) {
	err := new(validate.Validator).
		Required("user_id", userID).UUID("user_id", userID).
		Required("media_id", mediaID).UUID("media_id", mediaID).
		Err()
	if err != nil {
		return nil, err
	}

	wishlists, err := s.store.ListForMedia(ctx, userID, mediaID)
	if err != nil {
		return nil, err
	}
	if wishlists == nil {
		wishlists = []Wishlist{}
	}
	return wishlists, nil
}

// List returns one page of the user's wishlist.
func (s *Service) List(ctx context.Context, filter ListFilter, params pagination.Params) (pagination.Page[Entry], error) {
	err := new(validate.Validator).
		Required("user_id", filter.UserID).UUID("user_id", filter.UserID).
		Custom("sort_by_platform", filter.SortByPlatform && !s.ledger.PlatformKeyed(), "Not supported for this media type").
		Err()
	if err != nil {
		return pagination.Page[Entry]{}, err
	}

	return s.store.List(ctx, filter, pagination.New(params.Page, params.PageSize))
}

func (s *Service) requireMedia(ctx context.Context, tx Tx, mediaID string) error {
	snapshot, err := tx.FindMedia(ctx, mediaID)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return apperr.NotFound(string(s.ledger.MediaType))
	}
	return nil
}

func (s *Service) validateKey(key Key) error {
	v := new(validate.Validator).
		Required("user_id", key.UserID).UUID("user_id", key.UserID).
		Required("media_id", key.MediaID).UUID("media_id", key.MediaID)

	if s.ledger.PlatformKeyed() {
		v.Required("platform", key.Platform).MaxLen("platform", key.Platform, maxPlatformLength)
	} else {
		v.Custom("platform", key.Platform != "", "Not supported for this media type")
	}
	return v.Err()
}
