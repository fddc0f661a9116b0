// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics provides Prometheus metrics for authentication and HTTP traffic.
//
// Every recorder is nil-safe and becomes a no-op when metrics are disabled,
// so domain code can call them unconditionally.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth event outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all Prometheus collectors for the API server.
type Metrics struct {
	enabled  bool
	registry *prometheus.Registry

	authEventsTotal    *prometheus.CounterVec
	gateDecisionsTotal *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	cacheLookupsTotal  *prometheus.CounterVec
}

// New creates and registers the collectors on a private registry.
// If enabled is false, returns a no-op Metrics instance.
func New(enabled bool) *Metrics {
	m := &Metrics{enabled: enabled}

	if !enabled {
		return m
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(m.registry)

	m.authEventsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_auth_events_total",
		Help: "Login, register, refresh and logout attempts by outcome",
	}, []string{"event", "outcome"})

	m.gateDecisionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_gate_decisions_total",
		Help: "Auth gate decisions on protected routes",
	}, []string{"decision"})

	m.httpRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_http_requests_total",
		Help: "Finished HTTP requests by method and status code",
	}, []string{"method", "status"})

	m.cacheLookupsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "taskboard_credential_cache_lookups_total",
		Help: "Credential cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	return m
}

// RecordAuthEvent records the outcome of an auth endpoint call.
func (m *Metrics) RecordAuthEvent(event, outcome string) {
	if m == nil || !m.enabled {
		return
	}
	m.authEventsTotal.WithLabelValues(event, outcome).Inc()
}

// RecordGateDecision records one auth gate decision.
func (m *Metrics) RecordGateDecision(decision string) {
	if m == nil || !m.enabled {
		return
	}
	m.gateDecisionsTotal.WithLabelValues(decision).Inc()
}

// RecordHTTPRequest records a finished request.
func (m *Metrics) RecordHTTPRequest(method string, status int) {
	if m == nil || !m.enabled {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordCacheLookup records a credential cache lookup result.
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil || !m.enabled {
		return
	}
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || !m.enabled {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
