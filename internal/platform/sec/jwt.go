// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides password hashing and access token management.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

// AuthClaims is the payload embedded inside an access token.
//
// The session id (jti) lets sign-out revoke a token before it expires.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// SessionID returns the token's unique id.
func (c *AuthClaims) SessionID() string {
	return c.ID
}

// TokenService signs and verifies HS512 access tokens with a shared secret.
type TokenService struct {
	secret []byte
	issuer string
	clock  clock.Clock
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret, issuer string, clk clock.Clock) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, clock: clk}, nil
}

// GenerateAccessToken creates a signed token for a user and returns it with its claims.
func (service *TokenService) GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, *AuthClaims, error) {
	now := service.clock.Now()
	claims := &AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// VerifyToken checks the signature, issuer and expiry of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
