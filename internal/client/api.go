// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # Payloads

// AuthResult is the body of login, register and refresh.
type AuthResult struct {
	AccessToken string       `json:"accessToken"`
	User        sec.Identity `json:"user"`
}

// Task mirrors the server's task representation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	IsDeleted   bool      `json:"isDeleted"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskInput carries a new task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ListOptions narrows a task listing. Zero values use the server defaults.
type ListOptions struct {
	Page        int
	Limit       int
	Statuses    []string
	HideDeleted bool
}

// PageMeta is the pagination block of a list response.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// DeleteResult reports which deletion phase ran.
type DeleteResult struct {
	Message   string `json:"message"`
	Permanent bool   `json:"permanent"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// # Session Calls

// Login opens a session and stores it.
func (client *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return client.openSession(ctx, "/auth/login", credentials{Email: email, Password: password})
}

// Register creates an account and stores the new session. An empty role means "user".
func (client *Client) Register(ctx context.Context, email, password, role string) (*AuthResult, error) {
	return client.openSession(ctx, "/auth/register", credentials{Email: email, Password: password, Role: role})
}

func (client *Client) openSession(ctx context.Context, path string, body credentials) (*AuthResult, error) {
	result, err := call[AuthResult](ctx, client, &Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return nil, err
	}
	client.session.Set(result.User, result.AccessToken)
	return result, nil
}

// Refresh exchanges the refresh cookie for a new access token.
// Any failure clears the session. A rejection wraps [ErrSessionExpired].
func (client *Client) Refresh(ctx context.Context) (*AuthResult, error) {
	return client.refreshSession(ctx)
}

// Logout clears the server cookies and the local session.
// The local session is cleared even when the server call fails.
func (client *Client) Logout(ctx context.Context) error {
	defer client.session.Clear()
	_, err := client.expectOK(ctx, &Request{Method: http.MethodPost, Path: "/auth/logout"})
	return err
}

// CurrentUser returns the identity the server sees for this session.
func (client *Client) CurrentUser(ctx context.Context) (*sec.Identity, error) {
	return call[sec.Identity](ctx, client, &Request{Method: http.MethodGet, Path: "/auth/user"})
}

/*
Restore silently re-opens a session from the refresh cookie, e.g. on start.

The session reports IsLoading while the refresh runs. A rejected refresh is
not an error: the session simply stays signed out. Transport and server
errors are returned, with the session signed out as well.
*/
func (client *Client) Restore(ctx context.Context) error {
	client.session.setLoading(true)
	defer client.session.setLoading(false)

	_, err := client.refreshSession(ctx)
	if errors.Is(err, ErrSessionExpired) {
		return nil
	}
	return err
}

// # Task Calls

// ListTasks returns one page of tasks visible to the session.
func (client *Client) ListTasks(ctx context.Context, opts ListOptions) ([]Task, PageMeta, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if len(opts.Statuses) > 0 {
		query.Set("status", strings.Join(opts.Statuses, ","))
	}
	if opts.HideDeleted {
		query.Set("hideDeleted", "true")
	}

	path := "/tasks"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	response, err := client.expectOK(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, PageMeta{}, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(response.Body, &envelope); err != nil {
		return nil, PageMeta{}, fmt.Errorf("client: decode task list: %w", err)
	}
	return envelope.Data, envelope.Meta, nil
}

// GetTask returns a single task.
func (client *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	return call[Task](ctx, client, &Request{Method: http.MethodGet, Path: "/tasks/" + url.PathEscape(id)})
}

// CreateTask creates a task owned by the session user.
func (client *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	return call[Task](ctx, client, &Request{Method: http.MethodPost, Path: "/tasks", Body: input})
}

// UpdateTask applies a partial update.
func (client *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error) {
	return call[Task](ctx, client, &Request{Method: http.MethodPut, Path: "/tasks/" + url.PathEscape(id), Body: update})
}

// DeleteTask deletes a task (admin only). The first call soft-deletes.
func (client *Client) DeleteTask(ctx context.Context, id string) (*DeleteResult, error) {
	return call[DeleteResult](ctx, client, &Request{Method: http.MethodDelete, Path: "/tasks/" + url.PathEscape(id)})
}

// # Helpers

// listEnvelope is the paginated body: the data array sits next to meta.
type listEnvelope struct {
	Data []Task   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// expectOK sends request and turns any non-2xx response into an [*APIError].
func (client *Client) expectOK(ctx context.Context, request *Request) (*Response, error) {
	response, err := client.Do(ctx, request)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, decodeAPIError(response)
	}
	return response, nil
}

// call sends request and decodes the data envelope into T.
func call[T any](ctx context.Context, client *Client, request *Request) (*T, error) {
	response, err := client.expectOK(ctx, request)
	if err != nil {
		return nil, err
	}
	return decodeData[T](response)
}
