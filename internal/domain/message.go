package domain

import "encoding/json"

// Role identifies who produced a turn message.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleSystem    Role = "system"
)

// ToolCall is a pending tool invocation requested by an assistant message.
type ToolCall struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// Message is one turn in a session. Messages are append-only: once part of a
// checkpoint they are never mutated. Name identifies the agent that produced
// an assistant message (e.g. "product_agent", "sales_team").
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// HasToolCalls reports whether the message carries pending tool-call requests.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}
