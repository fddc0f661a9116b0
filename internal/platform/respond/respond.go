// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every HTTP body the API produces.

Three shapes exist and clients rely on them:

	{"data": ...}                              single resource or message
	{"data": [...], "meta": {...}}             paginated list
	{"error": "...", "code": "...", "details"} failure

Responses carry Cache-Control: no-store because most of them are scoped to the
caller's access token.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// JSON writes payload as-is with the given status.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	header := writer.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("Cache-Control", "no-store")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

// Error writes err as an error envelope.
//
// Errors that are not an [*apperr.AppError] become a generic 500 and their
// text is only logged. Server errors are logged at error level with their
// cause; client errors at debug.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx).With(slog.String("request_id", ctxutil.GetRequestID(ctx)))

	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appErr.Code),
			slog.Any("cause", appErr.Cause),
		)
	} else {
		logger.DebugContext(ctx, "api_client_error",
			slog.Int("status", appErr.HTTPStatus),
			slog.String("code", appErr.Code),
		)
	}

	if appErr.RetryAfter > 0 {
		writer.Header().Set("Retry-After", strconv.Itoa(appErr.RetryAfter))
	}
	JSON(writer, appErr.HTTPStatus, appErr)
}
