// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/constants"
	"github.com/taibuivan/otakurin/internal/platform/ctxutil"
	"github.com/taibuivan/otakurin/internal/platform/respond"
	"github.com/taibuivan/otakurin/internal/platform/sec"
)

// TokenVerifier validates a bearer token and its session.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate attaches claims for requests carrying a valid bearer token.
// Requests without an Authorization header continue anonymously.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				// A session store outage surfaces as a 500, not as a bad token.
				if apperr.As(err) == nil {
					respond.Error(writer, request, err)
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAuth rejects anonymous requests. Mount it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
