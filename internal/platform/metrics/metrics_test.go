// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/otakurin/internal/platform/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.MediaLookup("Game", true)
	m.MediaLookup("Game", false)
	m.MediaLookup("Game", false)
	m.MediaRefresh("Book", metrics.RefreshFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaLookups().WithLabelValues("Game", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MediaLookups().WithLabelValues("Game", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaRefreshes().WithLabelValues("Book", metrics.RefreshFailed)))
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.CatalogRequest("igdb", 503)
	m.HTTPRequest(http.MethodGet, 200, 15*time.Millisecond)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `otakurin_catalog_requests_total{provider="igdb",status="5xx"} 1`)
	assert.Contains(t, recorder.Body.String(), "otakurin_http_request_duration_seconds")
}
