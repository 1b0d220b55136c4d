// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package thread

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rpotential/workspace/internal/platform/request"
	"github.com/rpotential/workspace/internal/platform/respond"
	"github.com/rpotential/workspace/pkg/pagination"
)

// Handler implements the thread HTTP endpoints.
type Handler struct {
	threadService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{threadService: service}
}

// Routes returns a [chi.Router] with the thread CRUD surface. The caller is
// expected to wrap it with the required-authentication gate.
//
// # Endpoints
//   - GET    /            : Lists the principal's threads (paginated).
//   - POST   /            : Opens a new thread.
//   - GET    /{threadID}  : Fetches one owned thread.
//   - PATCH  /{threadID}  : Updates title / system prompt.
//   - DELETE /{threadID}  : Soft-deletes an owned thread.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{threadID}", handler.get)
	router.Patch("/{threadID}", handler.update)
	router.Delete("/{threadID}", handler.remove)

	return router
}

/*
list returns the principal's threads, newest first.

GET /api/v1/threads?page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	threads, total, err := handler.threadService.ListThreads(request.Context(), ownerID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, threads, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get fetches a single owned thread.

GET /api/v1/threads/{threadID}

Response:
  - 200: Thread
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	thread, err := handler.threadService.GetThread(request.Context(), ownerID, requestutil.ID(request, "threadID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, thread)
}

// createThreadRequest represents the JSON payload for opening a thread.
type createThreadRequest struct {
	Title        string `json:"title"`
	SystemPrompt string `json:"system_prompt"`
}

/*
create opens a new conversation thread.

POST /api/v1/threads

Response:
  - 201: Thread
  - 400: ErrValidation: Missing or oversized fields
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createThreadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	thread, err := handler.threadService.CreateThread(request.Context(), ownerID, CreateThreadInput{
		Title:        input.Title,
		SystemPrompt: input.SystemPrompt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, thread)
}

// updateThreadRequest carries the mutable thread fields.
type updateThreadRequest struct {
	Title        *string `json:"title"`
	SystemPrompt *string `json:"system_prompt"`
}

/*
update mutates an owned thread's title or system prompt.

PATCH /api/v1/threads/{threadID}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateThreadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	thread, err := handler.threadService.UpdateThread(request.Context(), ownerID, requestutil.ID(request, "threadID"), UpdateThreadInput{
		Title:        input.Title,
		SystemPrompt: input.SystemPrompt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, thread)
}

/*
remove soft-deletes an owned thread.

DELETE /api/v1/threads/{threadID}

Response:
  - 204: No Content
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.threadService.DeleteThread(request.Context(), ownerID, requestutil.ID(request, "threadID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
