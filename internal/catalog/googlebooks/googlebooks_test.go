// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package googlebooks_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/catalog/googlebooks"
	"github.com/taibuivan/otakurin/internal/catalog/httpx"
)

func newClient(t *testing.T, handler http.HandlerFunc) *googlebooks.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport := httpx.New("googlebooks", httpx.Options{RPS: 1000, Burst: 10}, nil, slog.New(slog.DiscardHandler))
	return googlebooks.New(googlebooks.Config{APIKey: "key", BaseURL: server.URL}, transport)
}

func TestSearchByTitle(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "intitle:dune", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"items": [
			{"id": "B1", "volumeInfo": {"title": "Dune", "authors": ["Frank Herbert"], "imageLinks": {"thumbnail": "http://books/b1.jpg"}}}
		]}`)
	})

	results, err := client.SearchByTitle(context.Background(), "dune")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "B1", results[0].RemoteID)
	assert.Equal(t, "https://books/b1.jpg", results[0].CoverImageURL)
	assert.Equal(t, []string{"Frank Herbert"}, results[0].Lists[catalog.FieldAuthors])
}

func TestSearchByTitle_NoItems(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"totalItems": 0}`)
	})

	results, err := client.SearchByTitle(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGetByID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes/B1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"id": "B1", "volumeInfo": {"title": "Dune", "description": "Arrakis", "authors": ["Frank Herbert", ""]}}`)
	})

	summary, err := client.GetByID(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, "Arrakis", summary.Summary)
	assert.Equal(t, []string{"Frank Herbert"}, summary.Lists[catalog.FieldAuthors])

	_, err = client.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
