// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package message implements the messages exchanged inside a conversation
// thread.
//
// # Access Model
//
// Messages have no owner column of their own: visibility flows through the
// owning thread. Every operation first proves the principal owns the target
// thread, then treats the message as reachable.
package message

import "time"

// Known author roles for a message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single utterance inside a thread.
type Message struct {
	ID               string    `json:"id"`
	ThreadID         string    `json:"thread_id"`
	Role             string    `json:"role"`
	Content          string    `json:"content"`
	ModelName        string    `json:"model_name,omitempty"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
