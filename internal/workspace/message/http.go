// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rpotential/workspace/internal/platform/request"
	"github.com/rpotential/workspace/internal/platform/respond"
	"github.com/rpotential/workspace/pkg/pagination"
)

// Handler implements the message HTTP endpoints, nested under a thread.
type Handler struct {
	messageService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{messageService: service}
}

// Routes returns a [chi.Router] mounted under /threads/{threadID}/messages.
// The caller is expected to wrap it with the required-authentication gate.
//
// # Endpoints
//   - GET    /             : Lists messages chronologically (paginated).
//   - POST   /             : Appends a message to the thread.
//   - GET    /{messageID}  : Fetches one message.
//   - DELETE /{messageID}  : Removes a message.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{messageID}", handler.get)
	router.Delete("/{messageID}", handler.remove)

	return router
}

/*
list returns a thread's messages, oldest first.

GET /api/v1/threads/{threadID}/messages?page=&limit=

Response:
  - 200: Paginated messages
  - 404: ErrNotFound: Thread missing or owned by another user
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	messages, total, err := handler.messageService.ListMessages(
		request.Context(),
		ownerID,
		requestutil.ID(request, "threadID"),
		params.Limit,
		params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get fetches a single message from an owned thread.

GET /api/v1/threads/{threadID}/messages/{messageID}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.messageService.GetMessage(
		request.Context(),
		ownerID,
		requestutil.ID(request, "threadID"),
		requestutil.ID(request, "messageID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message)
}

// createMessageRequest represents the JSON payload for appending a message.
type createMessageRequest struct {
	Role             string `json:"role"`
	Content          string `json:"content"`
	ModelName        string `json:"model_name"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

/*
create appends a message to an owned thread.

POST /api/v1/threads/{threadID}/messages

Response:
  - 201: Message
  - 400: ErrValidation: Missing content or unknown role
  - 404: ErrNotFound: Thread missing or owned by another user
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createMessageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.messageService.CreateMessage(
		request.Context(),
		ownerID,
		requestutil.ID(request, "threadID"),
		CreateMessageInput{
			Role:             input.Role,
			Content:          input.Content,
			ModelName:        input.ModelName,
			PromptTokens:     input.PromptTokens,
			CompletionTokens: input.CompletionTokens,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}

/*
remove permanently deletes a message from an owned thread.

DELETE /api/v1/threads/{threadID}/messages/{messageID}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.messageService.DeleteMessage(
		request.Context(),
		ownerID,
		requestutil.ID(request, "threadID"),
		requestutil.ID(request, "messageID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
