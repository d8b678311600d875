// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/platform/apperr"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/platform/constants"
	"github.com/taibuivan/otakurin/internal/platform/metrics"
	"github.com/taibuivan/otakurin/internal/platform/validate"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

// Option configures a [Service].
type Option func(*options)

type options struct {
	staleAfter time.Duration
	metrics    *metrics.Metrics
}

// WithStaleAfter sets the age past which Get refreshes an item.
func WithStaleAfter(d time.Duration) Option {
	return func(o *options) { o.staleAfter = d }
}

// WithMetrics records lookups and refreshes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Service is the fetch, read and search pipeline for one media kind.
type Service[R catalog.RemoteID] struct {
	kind       Kind[R]
	repository Repository[R]
	catalog    catalog.Client[R]
	clock      clock.Clock
	logger     *slog.Logger
	staleAfter time.Duration
	metrics    *metrics.Metrics
}

// NewService wires a pipeline for kind.
func NewService[R catalog.RemoteID](kind Kind[R], repository Repository[R], client catalog.Client[R], clk clock.Clock, logger *slog.Logger, opts ...Option) *Service[R] {
	settings := options{staleAfter: constants.MediaStaleAfter}
	for _, opt := range opts {
		opt(&settings)
	}

	return &Service[R]{
		kind:       kind,
		repository: repository,
		catalog:    client,
		clock:      clk,
		logger:     logger.With(slog.String("media_type", string(kind.Type))),
		staleAfter: settings.staleAfter,
		metrics:    settings.metrics,
	}
}

// Kind returns the descriptor the service was built for.
func (s *Service[R]) Kind() Kind[R] { return s.kind }

// FetchByRemoteID returns the local id for remoteID, caching the catalog
// record on first sight. A cached remote id costs no catalog call.
func (s *Service[R]) FetchByRemoteID(ctx context.Context, remoteID R) (string, error) {
	if err := validateRemoteID(remoteID); err != nil {
		return "", err
	}

	existing, err := s.repository.FindByRemoteID(ctx, remoteID)
	if err == nil {
		s.metrics.MediaLookup(string(s.kind.Type), true)
		return existing.ID, nil
	}
	if !apperr.IsNotFound(err) {
		return "", fmt.Errorf("media_fetch_lookup_failed: %w", err)
	}
	s.metrics.MediaLookup(string(s.kind.Type), false)

	summary, err := s.catalog.GetByID(ctx, remoteID)
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && summary == nil) {
		return "", apperr.NotFound(string(s.kind.Type))
	}
	if err != nil {
		return "", fmt.Errorf("media_fetch_catalog_failed: %w", err)
	}

	// The catalog echoes the id it was asked for; keep the caller's value as the key.
	summary.RemoteID = remoteID
	item := newItem(s.kind, uuid.New(), summary, s.clock.Now())

	if err := s.repository.Create(ctx, item); err != nil {
		if !apperr.IsConflict(err) {
			return "", fmt.Errorf("media_fetch_create_failed: %w", err)
		}

		// A concurrent fetch stored the same remote id first.
		winner, findErr := s.repository.FindByRemoteID(ctx, remoteID)
		if findErr != nil {
			return "", fmt.Errorf("media_fetch_reread_failed: %w", findErr)
		}
		return winner.ID, nil
	}

	s.logger.InfoContext(ctx, "media_cached",
		slog.String("media_id", item.ID),
		slog.Any("remote_id", remoteID),
	)
	return item.ID, nil
}

// Get returns a cached item, refreshing it first when it is older than the
// staleness window. A failed refresh is logged and counted, and the cached
// copy is returned with Stale set.
func (s *Service[R]) Get(ctx context.Context, id string) (*Content[R], error) {
	if err := new(validate.Validator).Required("id", id).UUID("id", id).Err(); err != nil {
		return nil, err
	}

	item, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if now.Sub(item.UpdatedAt) <= s.staleAfter {
		return toContent(s.kind, item), nil
	}

	refreshErr := s.refresh(ctx, item, now)
	if refreshErr == nil {
		s.metrics.MediaRefresh(string(s.kind.Type), metrics.RefreshSucceeded)
		return toContent(s.kind, item), nil
	}

	var storeErr *storeError
	if errors.As(refreshErr, &storeErr) {
		return nil, storeErr.err
	}

	s.metrics.MediaRefresh(string(s.kind.Type), metrics.RefreshFailed)
	s.logger.WarnContext(ctx, "media_refresh_failed",
		slog.String("media_id", item.ID),
		slog.Any("remote_id", item.RemoteID),
		slog.Time("updated_at", item.UpdatedAt),
		slog.String("error", refreshErr.Error()),
	)

	content := toContent(s.kind, item)
	content.Stale = true
	content.RefreshErr = refreshErr
	return content, nil
}

// storeError marks a refresh failure that came from the repository rather
// than the catalog. Those are not swallowed.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

// refresh overwrites item in place only after the new copy is stored.
func (s *Service[R]) refresh(ctx context.Context, item *Item[R], now time.Time) error {
	summary, err := s.catalog.GetByID(ctx, item.RemoteID)
	if err != nil {
		return err
	}
	if summary == nil {
		return catalog.ErrNotFound
	}

	updated := *item
	apply(s.kind, &updated, summary, now)

	if err := s.repository.Update(ctx, &updated); err != nil {
		return &storeError{err: fmt.Errorf("media_refresh_update_failed: %w", err)}
	}

	*item = updated
	return nil
}

// Search passes the title to the catalog. No results is an empty slice.
func (s *Service[R]) Search(ctx context.Context, title string) ([]catalog.BasicSummary[R], error) {
	title = strings.TrimSpace(title)
	if err := new(validate.Validator).Required("title", title).Err(); err != nil {
		return nil, err
	}

	results, err := s.catalog.SearchByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("media_search_failed: %w", err)
	}
	if results == nil {
		results = []catalog.BasicSummary[R]{}
	}
	return results, nil
}

func validateRemoteID[R catalog.RemoteID](remoteID R) error {
	var zero R
	blank := remoteID == zero
	if s, ok := any(remoteID).(string); ok {
		blank = strings.TrimSpace(s) == ""
	}

	return new(validate.Validator).Custom("remote_id", blank, "Must not be empty").Err()
}
