// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics defines the Prometheus collectors exported on /metrics.

Collectors are registered on an explicit [prometheus.Registerer] so tests can
use a private registry and read values back with prometheus/testutil.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "otakurin"

// Outcomes of a stale-read refresh.
const (
	RefreshSucceeded = "succeeded"
	RefreshFailed    = "failed"
)

// Metrics holds every collector the API exports.
// Recording methods are no-ops on a nil *Metrics.
type Metrics struct {
	gatherer prometheus.Gatherer

	mediaLookups    *prometheus.CounterVec
	mediaRefreshes  *prometheus.CounterVec
	catalogRequests *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers the collectors on registry.
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		gatherer: registry,
		mediaLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_lookups_total",
			Help:      "Fetch-or-create lookups by media kind and whether the local cache already held the item.",
		}, []string{"kind", "result"}),
		mediaRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_refreshes_total",
			Help:      "Stale-read refresh attempts by media kind and outcome.",
		}, []string{"kind", "outcome"}),
		catalogRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Upstream catalog HTTP attempts by provider and status class.",
		}, []string{"provider", "status"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// MediaLookup counts one fetch-or-create lookup.
func (m *Metrics) MediaLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.mediaLookups.WithLabelValues(kind, result).Inc()
}

// MediaRefresh counts one stale-read refresh attempt.
func (m *Metrics) MediaRefresh(kind, outcome string) {
	if m == nil {
		return
	}
	m.mediaRefreshes.WithLabelValues(kind, outcome).Inc()
}

// MediaRefreshes exposes the refresh counter, mainly for tests.
func (m *Metrics) MediaRefreshes() *prometheus.CounterVec { return m.mediaRefreshes }

// MediaLookups exposes the lookup counter, mainly for tests.
func (m *Metrics) MediaLookups() *prometheus.CounterVec { return m.mediaLookups }

// CatalogRequest counts one upstream attempt. A zero status means a transport error.
func (m *Metrics) CatalogRequest(provider string, status int) {
	if m == nil {
		return
	}
	m.catalogRequests.WithLabelValues(provider, statusClass(status)).Inc()
}

// HTTPRequest records a finished API request.
func (m *Metrics) HTTPRequest(method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
