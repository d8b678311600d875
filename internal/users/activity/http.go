// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/otakurin/internal/platform/request"
	"github.com/taibuivan/otakurin/internal/platform/respond"
)

// Handler serves the feed.
type Handler struct {
	service *Service
}

// NewHandler returns a feed handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /{id}/activities under the users router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}/activities", handler.listRecent)
}

func (handler *Handler) listRecent(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.ListRecent(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}
