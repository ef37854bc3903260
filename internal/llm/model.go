// Package llm abstracts the chat completion backend behind a small interface
// so the agent loop can be tested without network access.
package llm

import (
	"context"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// ToolDef declares one callable tool to the model. Parameters is a JSON
// Schema object.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is one completion turn: a system prompt, the conversation so far,
// and the tools the model may call.
type Request struct {
	System   string
	Messages []domain.Message
	Tools    []ToolDef
}

// ChatModel produces the next assistant message. The returned message carries
// tool calls when the model decided to invoke one.
type ChatModel interface {
	Complete(ctx context.Context, req Request) (*domain.Message, error)
}
