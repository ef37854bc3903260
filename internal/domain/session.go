package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusRunning SessionStatus = "running"
	SessionStatusPaused  SessionStatus = "paused"
)

// ChatSession correlates a sequence of turns to one persisted conversation
// checkpoint. A session is either running or paused awaiting an operator
// decision, never both.
type ChatSession struct {
	ID        uuid.UUID     `json:"id"`
	Status    SessionStatus `json:"status"`
	Title     string        `json:"title,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PendingToolCall is the sensitive call the runtime halted on. AgentName
// records which leaf agent requested it so the resumed loop re-enters at the
// right place.
type PendingToolCall struct {
	AgentName string   `json:"agent_name"`
	Call      ToolCall `json:"call"`
}

// Checkpoint is the durable state of one session: the full message history
// plus, when paused, the tool call awaiting an operator decision. A pause
// survives process restarts as long as the checkpoint row does.
type Checkpoint struct {
	SessionID   uuid.UUID        `json:"session_id"`
	Messages    []Message        `json:"messages"`
	PendingCall *PendingToolCall `json:"pending_call,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ChatSessionRepository interface {
	Create(ctx context.Context, s *ChatSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*ChatSession, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status SessionStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CheckpointRepository interface {
	// Save upserts the checkpoint for its session.
	Save(ctx context.Context, cp *Checkpoint) error
	Load(ctx context.Context, sessionID uuid.UUID) (*Checkpoint, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
