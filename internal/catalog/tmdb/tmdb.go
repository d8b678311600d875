// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tmdb is the show catalog client backed by The Movie Database v3 API.
//
// Movies and series share one id space by prefix: "m_603" is a movie and
// "s_1396" is a series.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/catalog/httpx"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultImageURL = "https://image.tmdb.org/t/p/w500"

	moviePrefix  = "m_"
	seriesPrefix = "s_"
)

// Config holds the API key and endpoint overrides.
type Config struct {
	APIKey   string
	BaseURL  string
	ImageURL string
}

// Client implements catalog.Client[string].
type Client struct {
	cfg       Config
	transport *httpx.Client
}

var _ catalog.Client[string] = (*Client)(nil)

// New returns a TMDB client.
func New(cfg Config, transport *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageURL == "" {
		cfg.ImageURL = DefaultImageURL
	}
	return &Client{cfg: cfg, transport: transport}
}

type result struct {
	ID         int64  `json:"id"`
	MediaType  string `json:"media_type"`
	Title      string `json:"title"`
	Name       string `json:"name"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

// SearchByTitle queries /search/multi and keeps movies and series.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]catalog.BasicSummary[string], error) {
	var page struct {
		Results []result `json:"results"`
	}
	if err := c.get(ctx, "/search/multi", url.Values{"query": {title}}, &page); err != nil {
		return nil, err
	}

	summaries := make([]catalog.BasicSummary[string], 0, len(page.Results))
	for _, r := range page.Results {
		var id, showType, name string
		switch r.MediaType {
		case "movie":
			id, showType, name = moviePrefix+strconv.FormatInt(r.ID, 10), catalog.ShowTypeMovie, r.Title
		case "tv":
			id, showType, name = seriesPrefix+strconv.FormatInt(r.ID, 10), catalog.ShowTypeSeries, r.Name
		default:
			continue
		}

		summaries = append(summaries, catalog.BasicSummary[string]{
			RemoteID:      id,
			Title:         name,
			CoverImageURL: c.poster(r.PosterPath),
			Values:        map[string]string{catalog.FieldShowType: showType},
		})
	}

	return summaries, nil
}

// GetByID resolves a prefixed id. An id with an unknown prefix is reported as not found.
func (c *Client) GetByID(ctx context.Context, id string) (*catalog.Summary[string], error) {
	path, showType, ok := route(id)
	if !ok {
		return nil, catalog.ErrNotFound
	}

	var r result
	if err := c.get(ctx, path, nil, &r); err != nil {
		return nil, err
	}

	title := r.Title
	if showType == catalog.ShowTypeSeries {
		title = r.Name
	}

	return &catalog.Summary[string]{
		RemoteID:      id,
		Title:         title,
		CoverImageURL: c.poster(r.PosterPath),
		Summary:       r.Overview,
		Values:        map[string]string{catalog.FieldShowType: showType},
	}, nil
}

func route(id string) (path, showType string, ok bool) {
	if rest, found := strings.CutPrefix(id, moviePrefix); found && isNumeric(rest) {
		return "/movie/" + rest, catalog.ShowTypeMovie, true
	}
	if rest, found := strings.CutPrefix(id, seriesPrefix); found && isNumeric(rest) {
		return "/tv/" + rest, catalog.ShowTypeSeries, true
	}
	return "", "", false
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func (c *Client) poster(path string) string {
	if path == "" {
		return ""
	}
	return c.cfg.ImageURL + path
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.cfg.APIKey)
	endpoint := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, query.Encode())

	return c.transport.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, out)
}
