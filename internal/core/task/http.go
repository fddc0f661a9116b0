// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskboard/internal/platform/middleware"
	requestutil "github.com/taibuivan/taskboard/internal/platform/request"
	"github.com/taibuivan/taskboard/internal/platform/respond"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/pkg/convert"
	"github.com/taibuivan/taskboard/pkg/pagination"
	"github.com/taibuivan/taskboard/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for task operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with task endpoints.
//
// The router expects to be mounted behind the auth gate and RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTasks)
	router.Post("/", handler.createTask)
	router.Get("/{id}", handler.getTask)
	router.Put("/{id}", handler.updateTask)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteTask)

	return router
}

// deleteResponse tells the caller which deletion phase ran.
type deleteResponse struct {
	Message   string `json:"message"`
	Permanent bool   `json:"permanent"`
}

// # Task Endpoints

/*
GET /api/tasks.

Request:
  - page, limit: int
  - status: comma-separated statuses (Pending, Completed)
  - hideDeleted: bool

Response:
  - 200: []Task: Paginated list (own tasks, or all tasks for admins)
*/
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.Caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryParams := request.URL.Query()
	filter := Filter{HideDeleted: convert.ToBool(queryParams.Get("hideDeleted"))}
	for _, status := range query.StringSlice(queryParams.Get("status")) {
		filter.Statuses = append(filter.Statuses, Status(status))
	}

	tasks, meta, err := handler.service.List(request.Context(), caller, filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, meta)
}

/*
POST /api/tasks.

Response:
  - 201: Task: Created task owned by the caller
  - 400: Validation failure
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.Caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.Create(request.Context(), caller, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

/*
GET /api/tasks/{id}.

Response:
  - 200: Task
  - 404: Missing, or owned by another user
*/
func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.Caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.Get(request.Context(), caller, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
PUT /api/tasks/{id}.

Absent fields keep their current value.

Response:
  - 200: Task: Updated task
  - 400: Validation failure
  - 404: Missing, or owned by another user
*/
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.Caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.Update(request.Context(), caller, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
DELETE /api/tasks/{id}.

Response:
  - 200: deleteResponse (permanent=false on the first call, true on the second)
  - 403: Caller is not an administrator
  - 404: Missing
*/
func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.Caller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	permanent, err := handler.service.Delete(request.Context(), caller, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleteResponse{Message: "Task deleted successfully", Permanent: permanent})
}
