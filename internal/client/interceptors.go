// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/taskboard/internal/platform/constants"
)

// BearerToken attaches the session's access token, if any.
func BearerToken(session *Session) RequestInterceptor {
	return func(_ context.Context, _ *Request, httpRequest *http.Request) error {
		if token := session.AccessToken(); token != "" {
			httpRequest.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
		}
		return nil
	}
}

/*
RefreshOnStale renews the access token when the server reports it stale,
then retries the original request once. The retried response replaces
the stale one for the rest of the response chain.

It leaves the response alone when:
  - the status is not 403
  - the request is the refresh call itself
  - the request is already a retry
  - the 403 is a role denial (code FORBIDDEN), which a new token cannot fix
*/
func RefreshOnStale(ctx context.Context, client *Client, request *Request, response *Response) (*Response, error) {
	if response.StatusCode != http.StatusForbidden || request.Retried || request.Path == refreshPath {
		return response, nil
	}

	if decodeAPIError(response).Code == CodeForbidden {
		return response, nil
	}

	if _, err := client.refreshSession(ctx); err != nil {
		return nil, err
	}

	retry := *request
	retry.Retried = true
	client.logger.DebugContext(ctx, "request_retried", slog.String("method", retry.Method), slog.String("path", retry.Path))

	// The remaining interceptors of the chain see the retried response.
	return client.send(ctx, &retry)
}
