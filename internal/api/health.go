// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/taskboard/internal/platform/respond"
)

// probeTimeout bounds each readiness check independently.
const probeTimeout = 2 * time.Second

// HealthDependencies are the readiness probes. A nil probe is not configured
// and is left out of the report.
type HealthDependencies struct {
	CheckDatabase func(ctx context.Context) error
	CheckCache    func(ctx context.Context) error
}

type probeResult struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type readinessReport struct {
	Status string        `json:"status"`
	Checks []probeResult `json:"checks"`
}

// NewHealthHandlers returns the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	probes := []struct {
		name  string
		probe func(context.Context) error
	}{
		{"postgres", deps.CheckDatabase},
		{"redis", deps.CheckCache},
	}

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		results := make([]probeResult, len(probes))

		// Probes run concurrently; a failing one never cancels the others.
		var group errgroup.Group
		for i, p := range probes {
			if p.probe == nil {
				continue
			}
			group.Go(func() error {
				probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
				defer cancel()

				started := time.Now()
				err := p.probe(probeCtx)
				results[i] = probeResult{Name: p.name, OK: err == nil, LatencyMS: time.Since(started).Milliseconds()}
				if err != nil {
					results[i].Error = err.Error()
				}
				return nil
			})
		}
		_ = group.Wait()

		report := readinessReport{Status: "ready", Checks: make([]probeResult, 0, len(probes))}
		for i, p := range probes {
			if p.probe == nil {
				continue
			}
			if !results[i].OK {
				report.Status = "degraded"
				logger.ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", p.name), slog.String("error", results[i].Error))
			}
			report.Checks = append(report.Checks, results[i])
		}

		status := http.StatusOK
		if report.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(writer, status, respond.SuccessEnvelope{Data: report})
	}

	return liveness, readiness
}
