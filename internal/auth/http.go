// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// Guards are the middlewares the auth routes are mounted behind.
type Guards struct {
	// Authenticate is the auth gate. It protects /logout and /user only.
	Authenticate func(http.Handler) http.Handler

	// CredentialLimit throttles /login and /register. Optional.
	CredentialLimit func(http.Handler) http.Handler
}

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
	guards      Guards
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guards Guards) *Handler {
	return &Handler{authService: service, guards: guards}
}

// Routes returns a [chi.Router] with the auth endpoints.
//
// # Endpoints
//   - POST /register : creates an account and opens a session
//   - POST /login    : opens a session
//   - POST /refresh  : exchanges the refresh cookie for a new access token
//   - POST /logout   : clears both cookies (gate + refresh cookie required)
//   - GET  /user     : returns the caller's identity (gate required)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(public chi.Router) {
		if handler.guards.CredentialLimit != nil {
			public.Use(handler.guards.CredentialLimit)
		}
		public.Post("/register", handler.register)
		public.Post("/login", handler.login)
	})

	// The refresh route must stay outside the gate: it is called precisely
	// when the access token has gone stale.
	router.Post("/refresh", handler.refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(handler.guards.Authenticate, middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
		protected.Get("/user", handler.currentUser)
	})

	return router
}

// # Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the body of login, register and refresh.
type sessionResponse struct {
	AccessToken string       `json:"accessToken"`
	User        sec.Identity `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// # Handlers

// register handles POST /api/auth/register.
//
// Writes 201 with both cookies set, 400 when the user exists or input is invalid.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, RefreshCookie(session.RefreshToken))
	http.SetCookie(writer, AccessCookie(session.AccessToken))
	respond.Created(writer, sessionResponse{AccessToken: session.AccessToken, User: session.User})
}

// login handles POST /api/auth/login.
//
// Writes 200 with both cookies set, 401 for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, RefreshCookie(session.RefreshToken))
	http.SetCookie(writer, AccessCookie(session.AccessToken))
	respond.OK(writer, sessionResponse{AccessToken: session.AccessToken, User: session.User})
}

// refresh handles POST /api/auth/refresh.
//
// The refresh token is read from its HTTP-only cookie only, never from the
// body or a header. Writes 200 with a new access cookie, 401 otherwise.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var refreshToken string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	session, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, AccessCookie(session.AccessToken))
	respond.OK(writer, sessionResponse{AccessToken: session.AccessToken, User: session.User})
}

// logout handles POST /api/auth/logout.
//
// Tokens are stateless, so logout only clears the cookies. A caller without
// a refresh cookie has no session to end and gets 401.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err != nil || cookie.Value == "" {
		err := apperr.Unauthorized("No active session")
		handler.authService.RecordLogout(err)
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, ClearCookie(constants.RefreshTokenCookieName))
	http.SetCookie(writer, ClearCookie(constants.AccessTokenCookieName))
	handler.authService.RecordLogout(nil)
	respond.OK(writer, messageResponse{Message: "Logged out successfully"})
}

// currentUser handles GET /api/auth/user.
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.Caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, caller)
}
