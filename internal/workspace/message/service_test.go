// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package message_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/workspace/message"
)

// # Test Fixtures

// stubThreadGuard answers ownership checks from a fixed owner -> threads map.
type stubThreadGuard struct {
	owned map[string][]string
}

func (g *stubThreadGuard) IsOwned(_ context.Context, ownerID, threadID string) (bool, error) {
	for _, id := range g.owned[ownerID] {
		if id == threadID {
			return true, nil
		}
	}
	return false, nil
}

// stubMessageRepository is an in-memory MessageRepository.
type stubMessageRepository struct {
	messages map[string][]*message.Message // threadID -> messages
}

func newStubMessageRepository() *stubMessageRepository {
	return &stubMessageRepository{messages: map[string][]*message.Message{}}
}

func (r *stubMessageRepository) ListByThread(_ context.Context, threadID string, limit, offset int) ([]*message.Message, int, error) {
	all := r.messages[threadID]
	if offset > len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (r *stubMessageRepository) FindByID(_ context.Context, threadID, id string) (*message.Message, error) {
	for _, m := range r.messages[threadID] {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, apperr.NotFound("Message")
}

func (r *stubMessageRepository) Create(_ context.Context, m *message.Message) error {
	r.messages[m.ThreadID] = append(r.messages[m.ThreadID], m)
	return nil
}

func (r *stubMessageRepository) Delete(_ context.Context, threadID, id string) error {
	for i, m := range r.messages[threadID] {
		if m.ID == id {
			r.messages[threadID] = append(r.messages[threadID][:i], r.messages[threadID][i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Message")
}

const (
	ownerAna  = "owner-ana"
	ownerBert = "owner-bert"
	anaThread = "thread-ana-1"
)

func newMessageService(repo *stubMessageRepository) *message.Service {
	guard := &stubThreadGuard{owned: map[string][]string{
		ownerAna: {anaThread},
	}}
	return message.NewService(repo, guard, slog.Default())
}

// # Ownership Scoping

/*
TestService_ForeignThreadReadsAsMissing verifies that every operation on a
thread the caller does not own reports NotFound, never Forbidden. A 403 here
would confirm the thread exists to someone who should not know that.
*/
func TestService_ForeignThreadReadsAsMissing(t *testing.T) {
	repo := newStubMessageRepository()
	service := newMessageService(repo)
	ctx := context.Background()

	// A real message exists in Ana's thread.
	created, err := service.CreateMessage(ctx, ownerAna, anaThread, message.CreateMessageInput{
		Role:    message.RoleUser,
		Content: "hello",
	})
	require.NoError(t, err)

	assertNotFound := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.Status)
	}

	t.Run("list", func(t *testing.T) {
		_, _, err := service.ListMessages(ctx, ownerBert, anaThread, 20, 0)
		assertNotFound(t, err)
	})

	t.Run("get", func(t *testing.T) {
		_, err := service.GetMessage(ctx, ownerBert, anaThread, created.ID)
		assertNotFound(t, err)
	})

	t.Run("create", func(t *testing.T) {
		_, err := service.CreateMessage(ctx, ownerBert, anaThread, message.CreateMessageInput{
			Role:    message.RoleUser,
			Content: "intruder",
		})
		assertNotFound(t, err)
		assert.Len(t, repo.messages[anaThread], 1)
	})

	t.Run("delete", func(t *testing.T) {
		err := service.DeleteMessage(ctx, ownerBert, anaThread, created.ID)
		assertNotFound(t, err)
		assert.Len(t, repo.messages[anaThread], 1)
	})

	t.Run("nonexistent_thread", func(t *testing.T) {
		_, _, err := service.ListMessages(ctx, ownerAna, "thread-never-created", 20, 0)
		assertNotFound(t, err)
	})
}

// # Message Operations

/*
TestService_CreateMessage verifies validation and persistence for owned threads.
*/
func TestService_CreateMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		service := newMessageService(newStubMessageRepository())

		created, err := service.CreateMessage(ctx, ownerAna, anaThread, message.CreateMessageInput{
			Role:         message.RoleAssistant,
			Content:      "Here is the summary you asked for.",
			ModelName:    "sonnet-large",
			PromptTokens: 412,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, anaThread, created.ThreadID)
		assert.Equal(t, 412, created.PromptTokens)
	})

	t.Run("invalid_role", func(t *testing.T) {
		service := newMessageService(newStubMessageRepository())

		_, err := service.CreateMessage(ctx, ownerAna, anaThread, message.CreateMessageInput{
			Role:    "robot",
			Content: "hello",
		})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "validation_error", ae.Type)
	})

	t.Run("empty_content", func(t *testing.T) {
		service := newMessageService(newStubMessageRepository())

		_, err := service.CreateMessage(ctx, ownerAna, anaThread, message.CreateMessageInput{
			Role: message.RoleUser,
		})

		require.Error(t, err)
		assert.Equal(t, "validation_error", apperr.As(err).Type)
	})
}

/*
TestService_ListMessages verifies chronological listing with pagination.
*/
func TestService_ListMessages(t *testing.T) {
	ctx := context.Background()
	repo := newStubMessageRepository()
	service := newMessageService(repo)

	for _, content := range []string{"first", "second", "third"} {
		_, err := service.CreateMessage(ctx, ownerAna, anaThread, message.CreateMessageInput{
			Role:    message.RoleUser,
			Content: content,
		})
		require.NoError(t, err)
	}

	page, total, err := service.ListMessages(ctx, ownerAna, anaThread, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "first", page[0].Content)
	assert.Equal(t, "second", page[1].Content)
}
