// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/otakurin/internal/platform/middleware"
	requestutil "github.com/taibuivan/otakurin/internal/platform/request"
	"github.com/taibuivan/otakurin/internal/platform/respond"
	"github.com/taibuivan/otakurin/pkg/pagination"
)

// Handler exposes one ledger to the signed-in user.
type Handler struct {
	service *Service
}

// NewHandler returns the handler for service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the ledger routes under a media kind's router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/trackings", handler.list)
		r.Post("/trackings", handler.add)
		r.Get("/{id}/trackings", handler.listForMedia)
		r.Get("/{id}/tracking", handler.get)
		r.Put("/{id}/tracking", handler.update)
		r.Delete("/{id}/tracking", handler.remove)
	})
}

type addRequest struct {
	MediaID   string    `json:"media_id"`
	Platform  string    `json:"platform"`
	Progress  int       `json:"progress"`
	Format    Format    `json:"format"`
	Status    Status    `json:"status"`
	Ownership Ownership `json:"ownership"`
}

type updateRequest struct {
	Progress  int       `json:"progress"`
	Format    Format    `json:"format"`
	Status    Status    `json:"status"`
	Ownership Ownership `json:"ownership"`
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tracking, err := handler.service.Add(request.Context(), Input{
		Key:       Key{UserID: userID, MediaID: input.MediaID, Platform: input.Platform},
		Progress:  input.Progress,
		Format:    input.Format,
		Status:    input.Status,
		Ownership: input.Ownership,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tracking)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	key, err := keyFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tracking, err := handler.service.Update(request.Context(), Input{
		Key:       key,
		Progress:  input.Progress,
		Format:    input.Format,
		Status:    input.Status,
		Ownership: input.Ownership,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tracking)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	key, err := keyFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), key); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	key, err := keyFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tracking, err := handler.service.Get(request.Context(), key)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tracking)
}

func (handler *Handler) listForMedia(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trackings, err := handler.service.ListForMedia(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, trackings)
}

// list reads the sort toggles as sort_by_recently_modified,
// sort_by_<progress field>, sort_by_platform, sort_by_format and
// sort_by_ownership.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		UserID:                 userID,
		Status:                 Status(requestutil.Query(request, "status")),
		SortByRecentlyModified: requestutil.QueryBool(request, "sort_by_recently_modified"),
		SortByProgress:         requestutil.QueryBool(request, "sort_by_"+handler.service.Ledger().ProgressField),
		SortByPlatform:         requestutil.QueryBool(request, "sort_by_platform"),
		SortByFormat:           requestutil.QueryBool(request, "sort_by_format"),
		SortByOwnership:        requestutil.QueryBool(request, "sort_by_ownership"),
	}

	page, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page)
}

func keyFromRequest(request *http.Request) (Key, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return Key{}, err
	}
	return Key{
		UserID:   userID,
		MediaID:  requestutil.Param(request, "id"),
		Platform: requestutil.Query(request, "platform"),
	}, nil
}
