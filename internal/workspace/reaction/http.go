// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package reaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rpotential/workspace/internal/platform/request"
	"github.com/rpotential/workspace/internal/platform/respond"
)

// Handler implements the reaction HTTP endpoints, nested under a message.
type Handler struct {
	reactionService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{reactionService: service}
}

// Routes returns a [chi.Router] mounted under /messages/{messageID}/reactions.
// The caller is expected to wrap it with the required-authentication gate.
//
// # Endpoints
//   - GET    /         : Lists reactions on the message.
//   - POST   /         : Adds the principal's reaction.
//   - DELETE /{emoji}  : Removes the principal's reaction.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Delete("/{emoji}", handler.remove)

	return router
}

/*
list returns all reactions on a visible message, oldest first.

GET /api/v1/messages/{messageID}/reactions

Response:
  - 200: Reactions
  - 404: ErrNotFound: Message missing or in a foreign thread
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reactions, err := handler.reactionService.ListReactions(
		request.Context(),
		ownerID,
		requestutil.ID(request, "messageID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reactions)
}

// addReactionRequest represents the JSON payload for adding a reaction.
type addReactionRequest struct {
	Emoji string `json:"emoji"`
}

/*
add records the principal's emoji reaction.

POST /api/v1/messages/{messageID}/reactions

Response:
  - 201: Reaction
  - 404: ErrNotFound: Message missing or in a foreign thread
  - 409: ErrConflict: Duplicate (message, user, emoji)
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addReactionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reaction, err := handler.reactionService.AddReaction(
		request.Context(),
		ownerID,
		requestutil.ID(request, "messageID"),
		input.Emoji,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, reaction)
}

/*
remove deletes the principal's own reaction.

DELETE /api/v1/messages/{messageID}/reactions/{emoji}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.reactionService.RemoveReaction(
		request.Context(),
		ownerID,
		requestutil.ID(request, "messageID"),
		requestutil.ID(request, "emoji"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
