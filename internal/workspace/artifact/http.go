// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package artifact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rpotential/workspace/internal/platform/request"
	"github.com/rpotential/workspace/internal/platform/respond"
	"github.com/rpotential/workspace/pkg/pagination"
)

// Handler implements the artifact HTTP endpoints.
type Handler struct {
	artifactService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{artifactService: service}
}

// Routes returns a [chi.Router] with the artifact CRUD surface. The caller
// is expected to wrap it with the required-authentication gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{artifactID}", handler.get)
	router.Patch("/{artifactID}", handler.update)
	router.Delete("/{artifactID}", handler.remove)

	return router
}

/*
list returns the principal's artifacts, newest first.

GET /api/v1/artifacts?page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	artifacts, total, err := handler.artifactService.ListArtifacts(request.Context(), ownerID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, artifacts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get fetches a single owned artifact.

GET /api/v1/artifacts/{artifactID}

Response:
  - 200: Artifact
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artifact, err := handler.artifactService.GetArtifact(request.Context(), ownerID, requestutil.ID(request, "artifactID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, artifact)
}

// createArtifactRequest represents the JSON payload for recording an artifact.
type createArtifactRequest struct {
	MessageID string `json:"message_id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Language  string `json:"language"`
}

/*
create records a new artifact at version 1.

POST /api/v1/artifacts

Response:
  - 201: Artifact
  - 400: ErrValidation: Missing fields or unknown kind
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createArtifactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artifact, err := handler.artifactService.CreateArtifact(request.Context(), ownerID, CreateArtifactInput{
		MessageID: input.MessageID,
		Kind:      input.Kind,
		Title:     input.Title,
		Content:   input.Content,
		Language:  input.Language,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, artifact)
}

// updateArtifactRequest carries the mutable artifact fields.
type updateArtifactRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Language *string `json:"language"`
}

/*
update mutates an owned artifact and bumps its version counter.

PATCH /api/v1/artifacts/{artifactID}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateArtifactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artifact, err := handler.artifactService.UpdateArtifact(request.Context(), ownerID, requestutil.ID(request, "artifactID"), UpdateArtifactInput{
		Title:    input.Title,
		Content:  input.Content,
		Language: input.Language,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, artifact)
}

/*
remove permanently deletes an owned artifact.

DELETE /api/v1/artifacts/{artifactID}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.artifactService.DeleteArtifact(request.Context(), ownerID, requestutil.ID(request, "artifactID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
