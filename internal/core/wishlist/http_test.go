// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wishlist_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/core/wishlist"
	"github.com/taibuivan/otakurin/internal/platform/ctxutil"
	"github.com/taibuivan/otakurin/internal/platform/sec"
)

func newRouter(f *fixture) chi.Router {
	router := chi.NewRouter()
	wishlist.NewHandler(f.service).RegisterRoutes(router)
	return router
}

func signedIn(request *http.Request, userID string) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID}))
}

func TestHandler_AddAndHas(t *testing.T) {
	f := newFixture(wishlist.Games)
	router := newRouter(f)

	body := `{"media_id":"` + f.mediaID + `","platform":"PC"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, signedIn(httptest.NewRequest(http.MethodPost, "/wishlists", strings.NewReader(body)), f.userID))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, signedIn(httptest.NewRequest(http.MethodGet, "/"+f.mediaID+"/wishlist?platform=PC", nil), f.userID))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			Exists bool `json:"exists"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Exists)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, signedIn(httptest.NewRequest(http.MethodPost, "/wishlists", strings.NewReader(body)), f.userID))
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestHandler_RequiresSignIn(t *testing.T) {
	f := newFixture(wishlist.Books)

	recorder := httptest.NewRecorder()
	newRouter(f).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/wishlists", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
