// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package ai proxies completion requests to the upstream model service.
//
// # Design
//
// The workspace never exposes the upstream API key to clients. Authenticated
// requests are forwarded verbatim with the server-side key attached, and the
// upstream JSON response is streamed back without buffering, so large or
// chunked completions flow through with constant memory.
package ai

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/platform/constants"
	"github.com/rpotential/workspace/internal/platform/ctxutil"
	requestutil "github.com/rpotential/workspace/internal/platform/request"
	"github.com/rpotential/workspace/internal/platform/respond"
)

// upstreamTimeout caps a single completion round-trip, generation included.
const upstreamTimeout = 120 * time.Second

// Proxy forwards completion calls to the upstream model service.
type Proxy struct {
	upstreamURL string
	apiKey      string
	client      *http.Client
	logger      *slog.Logger
}

// NewProxy constructs a completion [Proxy] for the given upstream endpoint.
func NewProxy(upstreamURL, apiKey string, logger *slog.Logger) *Proxy {
	return &Proxy{
		upstreamURL: upstreamURL,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: upstreamTimeout},
		logger:      logger,
	}
}

// Routes returns a [chi.Router] with the completion surface. The caller is
// expected to wrap it with the required-authentication gate.
//
// # Endpoints
//   - POST / : Forwards a completion request upstream.
func (proxy *Proxy) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", proxy.complete)

	return router
}

/*
complete forwards a completion request to the upstream service.

POST /api/v1/completions

Description: The request body passes through untouched. The upstream response
(status, content type, body) is relayed verbatim, including streamed chunks.

Response:
  - Upstream status and body on success
  - 502: ErrBadGateway: Upstream unreachable or errored at transport level
*/
func (proxy *Proxy) complete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	upstream, err := http.NewRequestWithContext(request.Context(), http.MethodPost, proxy.upstreamURL, request.Body)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Authorization", constants.BearerPrefix+proxy.apiKey)
	// Propagate the trace so upstream logs correlate with ours.
	upstream.Header.Set(constants.HeaderXCorrelationID, ctxutil.GetCorrelationID(request.Context()))

	response, err := proxy.client.Do(upstream)
	if err != nil {
		proxy.logger.ErrorContext(request.Context(), "completion_upstream_failed",
			slog.String("error", err.Error()),
			slog.String("user_id", principal.ID),
		)
		respond.Error(writer, request, apperr.BadGateway("Completion service is unavailable", err))
		return
	}
	defer response.Body.Close()

	writer.Header().Set("Content-Type", response.Header.Get("Content-Type"))
	writer.WriteHeader(response.StatusCode)

	if _, err := io.Copy(writer, response.Body); err != nil {
		// Headers are already on the wire; all we can do is log the break.
		proxy.logger.WarnContext(request.Context(), "completion_stream_interrupted",
			slog.String("error", err.Error()),
		)
	}
}
