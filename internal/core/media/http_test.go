// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/platform/clock"
)

func postFetch(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestFetchHandler_RemoteIDDecoding verifies that remote_id is decoded as JSON:
null and missing values are rejected before the catalog is consulted, and
escaped strings are unescaped.
*/
func TestFetchHandler_RemoteIDDecoding(t *testing.T) {
	client := &stubCatalog[string]{records: map[string]*catalog.Summary[string]{
		"s_1396": {RemoteID: "s_1396", Title: "Breaking Bad", Values: map[string]string{catalog.FieldShowType: catalog.ShowTypeSeries}},
	}}
	service := media.NewService(media.Show, newMemoryRepository[string](), client, clock.NewFixed(epoch), slog.New(slog.DiscardHandler))

	router := chi.NewRouter()
	media.NewHandler(service).RegisterRoutes(router)

	for _, body := range []string{`{"remote_id": null}`, `{}`, `{"remote_id": {"id": 1}}`} {
		recorder := postFetch(t, router, body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
	}
	assert.Equal(t, 0, client.Lookups())

	recorder := postFetch(t, router, `{"remote_id": "s_\u0031396"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, 1, client.Lookups())
}

/*
TestFetchHandler_GameAcceptsNumberOrString verifies both JSON forms of an IGDB id.
*/
func TestFetchHandler_GameAcceptsNumberOrString(t *testing.T) {
	f := newGameFixture()
	router := chi.NewRouter()
	media.NewHandler(f.service).RegisterRoutes(router)

	assert.Equal(t, http.StatusOK, postFetch(t, router, `{"remote_id": 1942}`).Code)
	assert.Equal(t, http.StatusOK, postFetch(t, router, `{"remote_id": "1942"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postFetch(t, router, `{"remote_id": 19.5}`).Code)
	assert.Equal(t, http.StatusBadRequest, postFetch(t, router, `{"remote_id": null}`).Code)
}
