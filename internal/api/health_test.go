// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/otakurin/internal/api"
)

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		name   string
		deps   api.HealthDependencies
		status int
		body   string
	}{
		{"all healthy", api.HealthDependencies{CheckDatabase: ok, CheckSessions: ok}, http.StatusOK, `"ready"`},
		{"redis down", api.HealthDependencies{CheckDatabase: ok, CheckSessions: down}, http.StatusServiceUnavailable, `"degraded"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tc.deps, logger)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tc.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tc.body)
		})
	}
}

func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
