// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package igdb is the game catalog client backed by the IGDB v4 API.
package igdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/catalog/httpx"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/pkg/slice"
)

const (
	DefaultBaseURL  = "https://api.igdb.com/v4"
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

	searchLimit = 20

	// tokenSkew renews the app token a little before Twitch expires it.
	tokenSkew = time.Minute
)

// Config holds the Twitch application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
}

// Client implements catalog.Client[int64].
type Client struct {
	cfg       Config
	transport *httpx.Client
	clock     clock.Clock

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

var _ catalog.Client[int64] = (*Client)(nil)

// New returns an IGDB client. Empty URLs default to the public endpoints.
func New(cfg Config, transport *httpx.Client, clk clock.Clock) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	return &Client{cfg: cfg, transport: transport, clock: clk}
}

type image struct {
	URL string `json:"url"`
}

type platform struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type game struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Summary           string     `json:"summary"`
	Cover             *image     `json:"cover"`
	Platforms         []platform `json:"platforms"`
	Screenshots       []image    `json:"screenshots"`
	InvolvedCompanies []struct {
		Company struct {
			Name string `json:"name"`
		} `json:"company"`
	} `json:"involved_companies"`
}

// SearchByTitle runs an IGDB text search. Games without platforms cannot be
// tracked and are left out.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]catalog.BasicSummary[int64], error) {
	query := fmt.Sprintf(`search "%s"; fields name,cover.url,platforms.name,platforms.abbreviation; limit %d;`,
		escape(strings.ToLower(title)), searchLimit)

	var games []game
	if err := c.query(ctx, query, &games); err != nil {
		return nil, err
	}

	results := make([]catalog.BasicSummary[int64], 0, len(games))
	for _, g := range games {
		if len(g.Platforms) == 0 {
			continue
		}
		results = append(results, catalog.BasicSummary[int64]{
			RemoteID:      g.ID,
			Title:         g.Name,
			CoverImageURL: coverURL(g.Cover),
			Lists:         map[string][]string{catalog.FieldPlatforms: platformNames(g.Platforms)},
		})
	}

	return results, nil
}

// GetByID fetches one game with its companies and screenshots.
func (c *Client) GetByID(ctx context.Context, id int64) (*catalog.Summary[int64], error) {
	query := fmt.Sprintf(
		"fields name,summary,cover.url,platforms.name,platforms.abbreviation,involved_companies.company.name,screenshots.url; where id = %d;",
		id)

	var games []game
	if err := c.query(ctx, query, &games); err != nil {
		return nil, err
	}
	if len(games) == 0 || len(games[0].Platforms) == 0 {
		return nil, catalog.ErrNotFound
	}

	g := games[0]
	companies := make([]string, 0, len(g.InvolvedCompanies))
	for _, involved := range g.InvolvedCompanies {
		companies = append(companies, involved.Company.Name)
	}

	screenshots := make([]string, 0, len(g.Screenshots))
	for _, shot := range g.Screenshots {
		if shot.URL == "" {
			continue
		}
		screenshots = append(screenshots, strings.Replace(absolute(shot.URL), "t_thumb", "t_original", 1))
	}

	return &catalog.Summary[int64]{
		RemoteID:      g.ID,
		Title:         g.Name,
		CoverImageURL: coverURL(g.Cover),
		Summary:       g.Summary,
		Lists: map[string][]string{
			catalog.FieldPlatforms:   platformNames(g.Platforms),
			catalog.FieldCompanies:   slice.NonEmpty(companies),
			catalog.FieldScreenshots: screenshots,
		},
	}, nil
}

func (c *Client) query(ctx context.Context, body string, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	return c.transport.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/games", strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Client-ID", c.cfg.ClientID)
		request.Header.Set("Authorization", "Bearer "+token)
		request.Header.Set("Content-Type", "text/plain")
		return request, nil
	}, out)
}

// token returns the cached app access token, fetching a new one when it is
// missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.accessToken != "" && now.Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	err := c.transport.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL+"?"+form.Encode(), nil)
	}, &grant)
	if err != nil {
		return "", fmt.Errorf("igdb: token request failed: %w", err)
	}
	if grant.AccessToken == "" {
		return "", fmt.Errorf("igdb: token response without access_token")
	}

	c.accessToken = grant.AccessToken
	c.expiresAt = now.Add(time.Duration(grant.ExpiresIn)*time.Second - tokenSkew)
	return c.accessToken, nil
}

func platformNames(platforms []platform) []string {
	return slice.NonEmpty(slice.Map(platforms, func(p platform) string {
		if p.Abbreviation != "" {
			return p.Abbreviation
		}
		return p.Name
	}))
}

func coverURL(cover *image) string {
	if cover == nil || cover.URL == "" {
		return ""
	}
	return strings.Replace(absolute(cover.URL), "t_thumb", "t_cover_big", 1)
}

// absolute turns IGDB's protocol-relative image URLs into https URLs.
func absolute(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
