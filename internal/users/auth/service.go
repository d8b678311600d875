// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/platform/sec"
	"github.com/taibuivan/otakurin/internal/platform/validate"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs and verifies access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, *sec.AuthClaims, error)
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Service implements the account entry points.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	clock             clock.Clock
	logger            *slog.Logger
	tokenTTL          time.Duration
}

// NewService constructs a [Service]. Tokens and sessions live for tokenTTL.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	clk clock.Clock,
	logger *slog.Logger,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		clock:             clk,
		logger:            logger,
		tokenTTL:          tokenTTL,
	}
}

// # Sign Up

// SignUpInput holds the data required to create an account.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

/*
SignUp validates and persists a new account with an empty profile.

Parameters:
  - ctx: context.Context
  - input: SignUpInput

Returns:
  - *User: Created entity
  - error: Validation failure, Conflict on a taken username or email
*/
func (service *Service) SignUp(ctx context.Context, input SignUpInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	err := new(validate.Validator).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Alphanumeric(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Password(FieldPassword, input.Password).
		Err()
	if err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("User name already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_username_lookup_failed: %w", err)
	}

	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_email_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := service.clock.Now()
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent sign-up with the same name still surfaces as Conflict here.
	if err := service.userRepository.Create(ctx, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_sign_up_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_signed_up", slog.String("user_id", user.ID))
	return user, nil
}

// # Sign In

// SignInInput defines credentials for a sign-in attempt.
type SignInInput struct {
	Login    string // username or email
	Password string
}

// SignInResult is an issued token and the account it belongs to.
type SignInResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
SignIn checks credentials and opens a session.

An unknown login and a wrong password fail the same way so the response
does not reveal which accounts exist.

Returns:
  - *SignInResult: Token and account
  - error: Validation failure, Forbidden on bad credentials
*/
func (service *Service) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	input.Login = strings.TrimSpace(input.Login)

	err := new(validate.Validator).
		Required(FieldLogin, input.Login).
		Required(FieldPassword, input.Password).
		Err()
	if err != nil {
		return nil, err
	}

	user, err := service.findByLogin(ctx, input.Login)
	if err != nil {
		return nil, err
	}
	if user == nil || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Forbidden("Invalid login credentials")
	}

	accessToken, claims, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	session := &Session{ID: claims.SessionID(), UserID: user.ID, ExpiresAt: claims.ExpiresAt.Time}
	if err := service.sessionRepository.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_signed_in", slog.String("user_id", user.ID))
	return &SignInResult{AccessToken: accessToken, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// findByLogin returns nil, nil when neither a username nor an email matches.
func (service *Service) findByLogin(ctx context.Context, login string) (*User, error) {
	user, err := service.userRepository.FindByUsername(ctx, login)
	if err == nil {
		return user, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !strings.Contains(login, "@") {
		return nil, nil
	}

	user, err = service.userRepository.FindByEmail(ctx, login)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}
	return user, nil
}

// # Sign Out & Verification

// SignOut ends the session behind claims. Ending an ended session succeeds.
func (service *Service) SignOut(ctx context.Context, claims *sec.AuthClaims) error {
	if err := service.sessionRepository.Delete(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("auth_service_sign_out_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_signed_out", slog.String("user_id", claims.UserID))
	return nil
}

// VerifyToken checks a bearer token and that its session is still live.
func (service *Service) VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.VerifyToken(token)
	if err != nil {
		unauthorized := apperr.Unauthorized("Invalid or expired token")
		unauthorized.Cause = err
		return nil, unauthorized
	}

	live, err := service.sessionRepository.Exists(ctx, claims.SessionID())
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_lookup_failed: %w", err)
	}
	if !live {
		return nil, apperr.Unauthorized("Session has ended")
	}
	return claims, nil
}
