// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"

	"github.com/taibuivan/otakurin/internal/platform/constants"
	"github.com/taibuivan/otakurin/internal/platform/validate"
)

// Service serves activity feeds.
type Service struct {
	repository Repository
	size       int
}

// NewService returns a feed service returning the latest [constants.ActivityFeedSize] entries.
func NewService(repository Repository) *Service {
	return &Service{repository: repository, size: constants.ActivityFeedSize}
}

/*
ListRecent returns the user's most recent activities, newest first.

Returns:
  - []Entry: at most ActivityFeedSize entries, empty when the user has none
  - error: Validation, NotFound for an unknown user, or store failures
*/
func (s *Service) ListRecent(ctx context.Context, userID string) ([]Entry, error) {
	if err := new(validate.Validator).Required("user_id", userID).UUID("user_id", userID).Err(); err != nil {
		return nil, err
	}

	owner, err := s.repository.FindOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	activities, err := s.repository.ListRecent(ctx, userID, s.size)
	if err != nil {
		return nil, fmt.Errorf("activity_service_list_failed: %w", err)
	}

	entries := make([]Entry, 0, len(activities))
	for _, item := range activities {
		entries = append(entries, Entry{
			Activity:          item,
			Username:          owner.Username,
			ProfilePictureURL: owner.ProfilePictureURL,
		})
	}
	return entries, nil
}
