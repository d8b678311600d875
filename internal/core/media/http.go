// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	requestutil "github.com/taibuivan/otakurin/internal/platform/request"
	"github.com/taibuivan/otakurin/internal/platform/respond"
)

// Handler exposes one kind's pipeline over HTTP.
type Handler[R catalog.RemoteID] struct {
	service *Service[R]
}

// NewHandler returns the handler for service.
func NewHandler[R catalog.RemoteID](service *Service[R]) *Handler[R] {
	return &Handler[R]{service: service}
}

// RegisterRoutes mounts the public content routes.
func (handler *Handler[R]) RegisterRoutes(router chi.Router) {
	router.Get("/search", handler.search)
	router.Post("/fetch", handler.fetch)
	router.Get("/{id}", handler.get)
}

func (handler *Handler[R]) search(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.Search(request.Context(), requestutil.Query(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

type fetchRequest struct {
	// RemoteID accepts both 1942 and "1942".
	RemoteID json.RawMessage `json:"remote_id"`
}

type fetchResponse struct {
	ID string `json:"id"`
}

func (handler *Handler[R]) fetch(writer http.ResponseWriter, request *http.Request) {
	var input fetchRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	raw, err := remoteIDText(input.RemoteID)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: "remote_id", Message: "Must be a string or a number"}))
		return
	}

	remoteID, err := handler.service.Kind().ParseRemoteID(raw)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: "remote_id", Message: "Malformed remote id"}))
		return
	}

	id, err := handler.service.FetchByRemoteID(request.Context(), remoteID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fetchResponse{ID: id})
}

// remoteIDText decodes a JSON string or number. Absent and null are rejected.
func remoteIDText(raw json.RawMessage) (string, error) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("remote_id is missing")
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", err
		}
		return text, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", err
	}
	return number.String(), nil
}

func (handler *Handler[R]) get(writer http.ResponseWriter, request *http.Request) {
	content, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, content)
}
