// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wishlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/otakurin/internal/platform/middleware"
	requestutil "github.com/taibuivan/otakurin/internal/platform/request"
	"github.com/taibuivan/otakurin/internal/platform/respond"
	"github.com/taibuivan/otakurin/pkg/pagination"
)

// Handler exposes one wishlist to the signed-in user.
type Handler struct {
	service *Service
}

// NewHandler returns the handler for service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the wishlist routes under a media kind's router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/wishlists", handler.list)
		r.Post("/wishlists", handler.add)
		r.Get("/{id}/wishlists", handler.listForMedia)
		r.Get("/{id}/wishlist", handler.has)
		r.Delete("/{id}/wishlist", handler.remove)
	})
}

type addRequest struct {
	MediaID  string `json:"media_id"`
	Platform string `json:"platform"`
}

type hasResponse struct {
	Exists bool `json:"exists"`
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

	wishlist, err := handler.service.Add(request.Context(), Key{UserID: userID, MediaID: input.MediaID, Platform: input.Platform})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, wishlist)
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

func (handler *Handler) has(writer http.ResponseWriter, request *http.Request) {
	key, err := keyFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	exists, err := handler.service.Has(request.Context(), key)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, hasResponse{Exists: exists})
}

func (handler *Handler) listForMedia(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	wishlists, err := handler.service.ListForMedia(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, wishlists)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		UserID:                 userID,
		SortByRecentlyModified: requestutil.QueryBool(request, "sort_by_recently_modified"),
		SortByPlatform:         requestutil.QueryBool(request, "sort_by_platform"),
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
