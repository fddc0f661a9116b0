// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the Go client for the Taskboard API.

# Session renewal

The access token lives in a [Session]; the refresh token lives only in the
HTTP client's cookie jar, where the server put it. Every request passes
through an ordered interceptor chain:

  - request interceptors run before sending ([BearerToken] attaches the access token)
  - response interceptors run after receiving ([RefreshOnStale] handles 403)

When the server answers 403 with a stale-token code, [RefreshOnStale] calls
the refresh endpoint once and retries the original request once. A rejected
refresh clears the session and surfaces [ErrSessionExpired].

Usage:

	session := client.NewSession()
	api, err := client.New("https://taskboard.example/api", session)
	if err != nil {
	    return err
	}
	if _, err := api.Login(ctx, email, password); err != nil {
	    return err
	}
	tasks, _, err := api.ListTasks(ctx, client.ListOptions{})
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/taskboard/internal/platform/constants"
)

const (
	refreshPath    = "/auth/refresh"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
)

// # Request Model

// Request describes one API call before it is turned into an [http.Request].
// Retried is set on the copy sent after a refresh so it is never retried twice.
type Request struct {
	Method  string
	Path    string
	Body    any
	Header  http.Header
	Retried bool
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RequestInterceptor transforms the outgoing request.
type RequestInterceptor func(ctx context.Context, request *Request, httpRequest *http.Request) error

// ResponseInterceptor may replace a response, typically by retrying through client.
type ResponseInterceptor func(ctx context.Context, client *Client, request *Request, response *Response) (*Response, error)

// # Client

// Client sends requests to the API on behalf of a [Session].
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
	logger     *slog.Logger

	requestChain  []RequestInterceptor
	responseChain []ResponseInterceptor

	coalesceRefresh bool
	refreshGroup    singleflight.Group
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. A cookie jar is added
// when it has none, since the refresh token only travels as a cookie.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// WithLogger attaches a logger for refresh and retry events.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

// WithRequestInterceptor appends a request interceptor after the defaults.
func WithRequestInterceptor(interceptor RequestInterceptor) Option {
	return func(client *Client) { client.requestChain = append(client.requestChain, interceptor) }
}

// WithResponseInterceptor appends a response interceptor after the defaults.
func WithResponseInterceptor(interceptor ResponseInterceptor) Option {
	return func(client *Client) { client.responseChain = append(client.responseChain, interceptor) }
}

// WithRefreshCoalescing makes concurrent refreshes share one server call.
// Without it, every request that hits a stale token refreshes on its own.
func WithRefreshCoalescing() Option {
	return func(client *Client) { client.coalesceRefresh = true }
}

// New creates a client for the API rooted at baseURL (e.g. "https://host/api").
func New(baseURL string, session *Session, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		session:       session,
		requestChain:  []RequestInterceptor{BearerToken(session)},
		responseChain: []ResponseInterceptor{RefreshOnStale},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	if client.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: create cookie jar: %w", err)
		}
		withJar := *client.httpClient
		withJar.Jar = jar
		client.httpClient = &withJar
	}

	return client, nil
}

// Session returns the session the client acts for.
func (client *Client) Session() *Session {
	return client.session
}

// # Transport

// Do sends request through the full interceptor chain.
func (client *Client) Do(ctx context.Context, request *Request) (*Response, error) {
	response, err := client.send(ctx, request)
	if err != nil {
		return nil, err
	}

	for _, interceptor := range client.responseChain {
		response, err = interceptor(ctx, client, request, response)
		if err != nil {
			return nil, err
		}
	}

	return response, nil
}

// send applies the request interceptors and performs one round trip.
func (client *Client) send(ctx context.Context, request *Request) (*Response, error) {
	var body io.Reader
	if request.Body != nil {
		payload, err := json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("client: encode %s %s: %w", request.Method, request.Path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, client.baseURL+request.Path, body)
	if err != nil {
		return nil, fmt.Errorf("client: build %s %s: %w", request.Method, request.Path, err)
	}

	httpRequest.Header.Set("Accept", "application/json")
	if body != nil {
		httpRequest.Header.Set(constants.HeaderContentType, "application/json")
	}
	for key, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}

	for _, interceptor := range client.requestChain {
		if err := interceptor(ctx, request, httpRequest); err != nil {
			return nil, err
		}
	}

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", request.Method, request.Path, err)
	}
	defer httpResponse.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("client: read %s %s: %w", request.Method, request.Path, err)
	}

	return &Response{StatusCode: httpResponse.StatusCode, Header: httpResponse.Header, Body: payload}, nil
}

// # Refresh

// refreshSession exchanges the refresh cookie for a new access token and
// stores it in the session.
func (client *Client) refreshSession(ctx context.Context) (*AuthResult, error) {
	if !client.coalesceRefresh {
		return client.doRefresh(ctx)
	}

	result, err, shared := client.refreshGroup.Do("refresh", func() (any, error) {
		return client.doRefresh(ctx)
	})
	if shared {
		client.logger.DebugContext(ctx, "refresh_coalesced")
	}
	if err != nil {
		return nil, err
	}
	return result.(*AuthResult), nil
}

func (client *Client) doRefresh(ctx context.Context) (*AuthResult, error) {
	result, err := client.exchangeRefresh(ctx)
	if err != nil {
		// Any failed renewal ends the session; only the returned error differs.
		client.session.Clear()
		client.logger.InfoContext(ctx, "refresh_failed", slog.String("error", err.Error()))
		return nil, err
	}

	client.session.Set(result.User, result.AccessToken)
	client.logger.DebugContext(ctx, "refresh_succeeded")
	return result, nil
}

func (client *Client) exchangeRefresh(ctx context.Context) (*AuthResult, error) {
	response, err := client.send(ctx, &Request{Method: http.MethodPost, Path: refreshPath})
	if err != nil {
		return nil, err
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, decodeAPIError(response))
	case response.StatusCode != http.StatusOK:
		return nil, decodeAPIError(response)
	}

	return decodeData[AuthResult](response)
}

// # Decoding

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// decodeData unwraps the {"data": ...} success envelope.
func decodeData[T any](response *Response) (*T, error) {
	var envelope dataEnvelope[T]
	if err := json.Unmarshal(response.Body, &envelope); err != nil {
		return nil, fmt.Errorf("client: decode response: %w", err)
	}
	return &envelope.Data, nil
}
