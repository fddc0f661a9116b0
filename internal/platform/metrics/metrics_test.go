// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taskboard/internal/platform/metrics"
)

/*
TestMetrics_Disabled verifies that recorders are no-ops and the handler is hidden.
*/
func TestMetrics_Disabled(t *testing.T) {
	for _, m := range []*metrics.Metrics{metrics.New(false), nil} {
		// These should not panic even though they're noop
		m.RecordAuthEvent("login", metrics.OutcomeSuccess)
		m.RecordGateDecision("stale")
		m.RecordHTTPRequest(http.MethodGet, http.StatusOK)
		m.RecordCacheLookup("hit")

		recorder := httptest.NewRecorder()
		m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	}
}

/*
TestMetrics_Exposition verifies that recorded series appear on the handler.
*/
func TestMetrics_Exposition(t *testing.T) {
	m := metrics.New(true)
	m.RecordAuthEvent("login", metrics.OutcomeFailure)
	m.RecordGateDecision("stale")
	m.RecordHTTPRequest(http.MethodPost, http.StatusForbidden)
	m.RecordCacheLookup("miss")

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := recorder.Body.String()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, body, `taskboard_auth_events_total{event="login",outcome="failure"} 1`)
	assert.Contains(t, body, `taskboard_gate_decisions_total{decision="stale"} 1`)
	assert.Contains(t, body, `taskboard_http_requests_total{method="POST",status="403"} 1`)
	assert.Contains(t, body, `taskboard_credential_cache_lookups_total{result="miss"} 1`)
}
