// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account serves user profiles.

It reads accounts through the auth package's repository and never exposes
the email or password hash of another user.
*/
package account

import (
	"time"

	"github.com/taibuivan/otakurin/internal/users/auth"
)

// # Domain Entities

// Profile is the public view of an account.
type Profile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Bio               string    `json:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
}

func profileOf(user *auth.User) *Profile {
	return &Profile{
		ID:                user.ID,
		Username:          user.Username,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt,
	}
}
