package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/sivajik34/aifastcommerce/internal/assistant"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// AssistantController abstracts the conversation lifecycle for handler
// testing. *assistant.Controller satisfies this interface.
type AssistantController interface {
	Chat(ctx context.Context, sessionID uuid.UUID, message string) (*assistant.Result, error)
	Resume(ctx context.Context, sessionID uuid.UUID, decision domain.ResumeDecision) (*assistant.Result, error)
	History(ctx context.Context, sessionID uuid.UUID) ([]domain.Message, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
	PendingInterrupt(ctx context.Context, sessionID uuid.UUID) (*assistant.InterruptCard, error)
}

// AuthService abstracts operator login for handler testing. *auth.Service
// satisfies this interface.
type AuthService interface {
	Login(username, password string) (string, error)
}
