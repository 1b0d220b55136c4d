// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package thread_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/platform/ctxutil"
	"github.com/rpotential/workspace/internal/platform/sec"
	"github.com/rpotential/workspace/internal/workspace/thread"
)

// # Test Fixtures

// stubThreadRepository is an in-memory ThreadRepository keyed by owner.
type stubThreadRepository struct {
	byOwner map[string][]*thread.Thread
}

func newStubThreadRepository() *stubThreadRepository {
	return &stubThreadRepository{byOwner: map[string][]*thread.Thread{}}
}

func (r *stubThreadRepository) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*thread.Thread, int, error) {
	all := r.byOwner[ownerID]
	if offset > len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (r *stubThreadRepository) FindByID(_ context.Context, ownerID, id string) (*thread.Thread, error) {
	for _, t := range r.byOwner[ownerID] {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Thread")
}

func (r *stubThreadRepository) Create(_ context.Context, t *thread.Thread) error {
	r.byOwner[t.OwnerID] = append(r.byOwner[t.OwnerID], t)
	return nil
}

func (r *stubThreadRepository) Update(_ context.Context, ownerID string, t *thread.Thread) error {
	if _, err := r.FindByID(context.Background(), ownerID, t.ID); err != nil {
		return err
	}
	return nil
}

func (r *stubThreadRepository) SoftDelete(_ context.Context, ownerID, id string) error {
	threads := r.byOwner[ownerID]
	for i, t := range threads {
		if t.ID == id {
			r.byOwner[ownerID] = append(threads[:i], threads[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Thread")
}

func (r *stubThreadRepository) IsOwned(_ context.Context, ownerID, id string) (bool, error) {
	_, err := r.FindByID(context.Background(), ownerID, id)
	return err == nil, nil
}

const testOwnerID = "0195a0b1-0000-7000-8000-0000000000aa"

// authedRequest builds a request carrying an authenticated principal.
func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	principal := &sec.Principal{ID: testOwnerID, Domain: "rpotential.ai", Role: sec.RoleUser}
	claims := &sec.Claims{Subject: testOwnerID, Domain: "rpotential.ai", Role: sec.RoleUser}
	return r.WithContext(ctxutil.WithPrincipal(r.Context(), principal, claims))
}

// paginatedEnvelope mirrors the list response wire shape.
type paginatedEnvelope struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	Meta    struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

// # List Endpoint

/*
TestHandler_List verifies the paginated list response, including the meta
block derived from the request's page and limit.
*/
func TestHandler_List(t *testing.T) {
	repo := newStubThreadRepository()
	for i := range 5 {
		repo.byOwner[testOwnerID] = append(repo.byOwner[testOwnerID], &thread.Thread{
			ID:      fmt.Sprintf("thread-%d", i),
			OwnerID: testOwnerID,
			Title:   fmt.Sprintf("Thread %d", i),
		})
	}
	router := thread.NewHandler(thread.NewService(repo, slog.Default())).Routes()

	t.Run("second_page", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/?page=2&limit=2"))

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope paginatedEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

		assert.True(t, envelope.Success)
		assert.Len(t, envelope.Data, 2)
		assert.Equal(t, 2, envelope.Meta.Page)
		assert.Equal(t, 2, envelope.Meta.Limit)
		assert.Equal(t, 5, envelope.Meta.Total)
		assert.Equal(t, 3, envelope.Meta.TotalPages)
	})

	t.Run("default_pagination", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/"))

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope paginatedEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

		assert.Len(t, envelope.Data, 5)
		assert.Equal(t, 1, envelope.Meta.Page)
		assert.Equal(t, 20, envelope.Meta.Limit)
		assert.Equal(t, 1, envelope.Meta.TotalPages)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
