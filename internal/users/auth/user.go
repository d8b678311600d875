// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements sign up, sign in and sign out.

Accounts live in postgres. A sign-in issues a signed access token whose
unique id names a session kept in redis until the token expires; signing
out deletes the session, which revokes the token early.
*/
package auth

import "time"

// # Domain Entities

// User is a registered account.
type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Bio               string    `json:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Session is the server side of one issued token.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLogin    = "login"
)

// # Constraints

const (
	MinUsernameLength = 6
	MaxUsernameLength = 20
	MaxEmailLength    = 254
	MinPasswordLength = 6
)
