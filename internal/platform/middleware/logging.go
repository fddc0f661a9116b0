// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
)

// RequestRecorder counts finished requests. [*metrics.Metrics] satisfies it.
type RequestRecorder interface {
	RecordHTTPRequest(method string, status int)
}

// responseRecorder captures what the handler wrote.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *responseRecorder) WriteHeader(code int) {
	if recorder.status == 0 {
		recorder.status = code
	}
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *responseRecorder) Write(body []byte) (int, error) {
	if recorder.status == 0 {
		recorder.status = http.StatusOK
	}
	n, err := recorder.ResponseWriter.Write(body)
	recorder.bytes += n
	return n, err
}

func (recorder *responseRecorder) Unwrap() http.ResponseWriter { return recorder.ResponseWriter }

func (recorder *responseRecorder) statusCode() int {
	if recorder.status == 0 {
		return http.StatusOK
	}
	return recorder.status
}

// callerSlot is filled in by the auth gate, which runs deeper in the chain,
// so the access line can name the user.
type callerSlot struct{ userID string }

type callerSlotKey struct{}

func noteCaller(ctx context.Context, userID string) {
	if slot, ok := ctx.Value(callerSlotKey{}).(*callerSlot); ok {
		slot.userID = userID
	}
}

// StructuredLogger stores a request-scoped logger on the context and writes
// one http_request_finished line per request: info for 2xx/3xx, warn for 4xx,
// error for 5xx.
func StructuredLogger(logger *slog.Logger, recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			slot := &callerSlot{}
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx = context.WithValue(ctx, callerSlotKey{}, slot)
			response := &responseRecorder{ResponseWriter: writer}

			next.ServeHTTP(response, request.WithContext(ctx))

			status := response.statusCode()
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.Int("status", status),
				slog.Int("bytes", response.bytes),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if slot.userID != "" {
				attrs = append(attrs, slog.String("user_id", slot.userID))
			}
			requestLogger.LogAttrs(ctx, level, "http_request_finished", attrs...)

			if recorder != nil {
				recorder.RecordHTTPRequest(request.Method, status)
			}
		})
	}
}
