// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package googlebooks is the book catalog client backed by the Google Books v1 API.
package googlebooks

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/catalog/httpx"
	"github.com/taibuivan/otakurin/pkg/slice"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/books/v1"

	maxResults = "20"
)

// Config holds the API key and endpoint override.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client implements catalog.Client[string].
type Client struct {
	cfg       Config
	transport *httpx.Client
}

var _ catalog.Client[string] = (*Client)(nil)

// New returns a Google Books client.
func New(cfg Config, transport *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg, transport: transport}
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		Description string   `json:"description"`
		ImageLinks  struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

func (v volume) authors() []string {
	return slice.NonEmpty(v.VolumeInfo.Authors)
}

// SearchByTitle runs an intitle: query.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]catalog.BasicSummary[string], error) {
	var page struct {
		Items []volume `json:"items"`
	}
	query := url.Values{"q": {"intitle:" + title}, "maxResults": {maxResults}}
	if err := c.get(ctx, "/volumes", query, &page); err != nil {
		return nil, err
	}

	return slice.Map(page.Items, func(v volume) catalog.BasicSummary[string] {
		return catalog.BasicSummary[string]{
			RemoteID:      v.ID,
			Title:         v.VolumeInfo.Title,
			CoverImageURL: secure(v.VolumeInfo.ImageLinks.Thumbnail),
			Lists:         map[string][]string{catalog.FieldAuthors: v.authors()},
		}
	}), nil
}

// GetByID fetches one volume.
func (c *Client) GetByID(ctx context.Context, id string) (*catalog.Summary[string], error) {
	var v volume
	if err := c.get(ctx, "/volumes/"+url.PathEscape(id), url.Values{}, &v); err != nil {
		return nil, err
	}
	if v.ID == "" {
		return nil, catalog.ErrNotFound
	}

	return &catalog.Summary[string]{
		RemoteID:      v.ID,
		Title:         v.VolumeInfo.Title,
		CoverImageURL: secure(v.VolumeInfo.ImageLinks.Thumbnail),
		Summary:       v.VolumeInfo.Description,
		Lists:         map[string][]string{catalog.FieldAuthors: v.authors()},
	}, nil
}

// secure upgrades the http thumbnail links Google returns.
func secure(link string) string {
	if rest, ok := strings.CutPrefix(link, "http://"); ok {
		return "https://" + rest
	}
	return link
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.cfg.APIKey != "" {
		query.Set("key", c.cfg.APIKey)
	}
	endpoint := c.cfg.BaseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	return c.transport.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, out)
}
