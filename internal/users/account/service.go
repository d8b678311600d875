// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/otakurin/internal/platform/validate"
	"github.com/taibuivan/otakurin/internal/users/auth"
)

// Service implements profile reads.
type Service struct {
	userRepository auth.UserRepository
}

// NewService constructs a [Service].
func NewService(userRepo auth.UserRepository) *Service {
	return &Service{userRepository: userRepo}
}

/*
GetUser returns the public profile of any user.

Returns:
  - *Profile: id, username, bio, picture and join date
  - error: NotFound for an unknown id
*/
func (service *Service) GetUser(ctx context.Context, userID string) (*Profile, error) {
	if err := new(validate.Validator).Required("id", userID).UUID("id", userID).Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

// GetMe returns the caller's own account, email included.
func (service *Service) GetMe(ctx context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(ctx, userID)
}
