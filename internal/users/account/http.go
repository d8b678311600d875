// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/otakurin/internal/platform/middleware"
	requestutil "github.com/taibuivan/otakurin/internal/platform/request"
	"github.com/taibuivan/otakurin/internal/platform/respond"
)

// Handler serves profiles.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the profile routes under the users router.
//
// # Endpoints
//   - GET /me   : The caller's account.
//   - GET /{id} : Any user's public profile.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/me", handler.getMe)
	router.Get("/{id}", handler.getUser)
}

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetMe(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.accountService.GetUser(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
