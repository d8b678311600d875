// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/otakurin/internal/platform/middleware"
	requestutil "github.com/taibuivan/otakurin/internal/platform/request"
	"github.com/taibuivan/otakurin/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the account entry points over HTTP.
type Handler struct {
	authService *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the auth routes.
//
// # Endpoints
//   - POST /signup  : Creates an account.
//   - POST /signin  : Issues an access token.
//   - POST /signout : Ends the caller's session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signUp)
	router.Post("/signin", handler.signIn)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/signout", handler.signOut)
	})
}

// # Request Payloads

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

/*
signUp handles POST /api/v1/auth/signup.

Response:
  - 201: User: Created account
  - 400: Validation failure
  - 409: Username or email already exists
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), SignUpInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

/*
signIn handles POST /api/v1/auth/signin.

Response:
  - 200: signInResponse
  - 403: Bad credentials
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignIn(request.Context(), SignInInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signInResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        result.User,
	})
}

func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.SignOut(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
