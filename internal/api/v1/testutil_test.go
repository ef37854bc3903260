package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/sivajik34/aifastcommerce/internal/assistant"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock AssistantController
// ---------------------------------------------------------------------------

type mockController struct {
	chatFunc             func(ctx context.Context, sessionID uuid.UUID, message string) (*assistant.Result, error)
	resumeFunc           func(ctx context.Context, sessionID uuid.UUID, decision domain.ResumeDecision) (*assistant.Result, error)
	historyFunc          func(ctx context.Context, sessionID uuid.UUID) ([]domain.Message, error)
	deleteSessionFunc    func(ctx context.Context, sessionID uuid.UUID) error
	pendingInterruptFunc func(ctx context.Context, sessionID uuid.UUID) (*assistant.InterruptCard, error)
}

func (m *mockController) Chat(ctx context.Context, sessionID uuid.UUID, message string) (*assistant.Result, error) {
	return m.chatFunc(ctx, sessionID, message)
}

func (m *mockController) Resume(ctx context.Context, sessionID uuid.UUID, decision domain.ResumeDecision) (*assistant.Result, error) {
	return m.resumeFunc(ctx, sessionID, decision)
}

func (m *mockController) History(ctx context.Context, sessionID uuid.UUID) ([]domain.Message, error) {
	return m.historyFunc(ctx, sessionID)
}

func (m *mockController) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return m.deleteSessionFunc(ctx, sessionID)
}

func (m *mockController) PendingInterrupt(ctx context.Context, sessionID uuid.UUID) (*assistant.InterruptCard, error) {
	return m.pendingInterruptFunc(ctx, sessionID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc func(username, password string) (string, error)
}

func (m *mockAuthService) Login(username, password string) (string, error) {
	return m.loginFunc(username, password)
}
