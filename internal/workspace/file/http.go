// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package file

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rpotential/workspace/internal/platform/request"
	"github.com/rpotential/workspace/internal/platform/respond"
	"github.com/rpotential/workspace/pkg/pagination"
)

// Handler implements the file metadata HTTP endpoints.
type Handler struct {
	fileService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{fileService: service}
}

// Routes returns a [chi.Router] with the file metadata CRUD surface. The
// caller is expected to wrap it with the required-authentication gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{fileID}", handler.get)
	router.Patch("/{fileID}", handler.update)
	router.Delete("/{fileID}", handler.remove)

	return router
}

/*
list returns the principal's file records, newest first.

GET /api/v1/files?page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	files, total, err := handler.fileService.ListFiles(request.Context(), ownerID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, files, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get fetches a single owned file record.

GET /api/v1/files/{fileID}

Response:
  - 200: File
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.fileService.GetFile(request.Context(), ownerID, requestutil.ID(request, "fileID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, file)
}

// createFileRequest represents the JSON payload for registering an upload.
type createFileRequest struct {
	ThreadID  string `json:"thread_id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

/*
create registers upload metadata and returns the derived storage key.

POST /api/v1/files

Response:
  - 201: File
  - 400: ErrValidation: Missing fields or oversized upload
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createFileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.fileService.CreateFile(request.Context(), ownerID, CreateFileInput{
		ThreadID:  input.ThreadID,
		Name:      input.Name,
		MimeType:  input.MimeType,
		SizeBytes: input.SizeBytes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, file)
}

// updateFileRequest carries the mutable file fields.
type updateFileRequest struct {
	Name     *string `json:"name"`
	ThreadID *string `json:"thread_id"`
}

/*
update renames an owned file record or re-links it to a thread.

PATCH /api/v1/files/{fileID}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateFileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.fileService.UpdateFile(request.Context(), ownerID, requestutil.ID(request, "fileID"), UpdateFileInput{
		Name:     input.Name,
		ThreadID: input.ThreadID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, file)
}

/*
remove permanently deletes an owned file record.

DELETE /api/v1/files/{fileID}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.fileService.DeleteFile(request.Context(), ownerID, requestutil.ID(request, "fileID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
