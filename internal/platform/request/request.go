// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request extracts path parameters, query values, JSON bodies and the
authenticated caller from an incoming HTTP request.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/ctxutil"
	"github.com/taibuivan/otakurin/internal/platform/sec"
	"github.com/taibuivan/otakurin/internal/platform/validate"
	"github.com/taibuivan/otakurin/pkg/convert"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the body into target, rejecting unknown fields.
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns a chi URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Query returns a trimmed query value.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

// QueryBool reads a boolean flag such as ?sort_by_format=true.
func QueryBool(request *http.Request, name string) bool {
	return convert.ToBool(request.URL.Query().Get(name))
}

// Claims returns the caller's claims, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims is [Claims] that fails with 401 for anonymous requests.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated user's id.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
