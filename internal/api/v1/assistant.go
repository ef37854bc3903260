package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/sivajik34/aifastcommerce/internal/assistant"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

type ChatInput struct {
	Body struct {
		SessionID *uuid.UUID `json:"session_id,omitempty" doc:"Existing session ID; omit to start a new session"`
		Message   string     `json:"message" minLength:"1" maxLength:"4000" doc:"User message"`
	}
}

type ChatOutput struct {
	Body struct {
		SessionID uuid.UUID                `json:"session_id"`
		Response  string                   `json:"response,omitempty"`
		Interrupt *assistant.InterruptCard `json:"interrupt,omitempty"`
	}
}

type ResumeInput struct {
	Body struct {
		SessionID uuid.UUID      `json:"session_id" doc:"Paused session ID"`
		Decision  map[string]any `json:"decision" doc:"Operator decision: accept, edit or response"`
	}
}

type HistoryInput struct {
	SessionID uuid.UUID `path:"sessionID" doc:"Session ID"`
}

type HistoryOutput struct {
	Body struct {
		SessionID uuid.UUID        `json:"session_id"`
		Messages  []domain.Message `json:"messages"`
	}
}

type DeleteSessionInput struct {
	SessionID uuid.UUID `path:"sessionID" doc:"Session ID"`
}

type DeleteSessionOutput struct {
	Status int
}

type PendingInterruptInput struct {
	SessionID uuid.UUID `path:"sessionID" doc:"Session ID"`
}

type PendingInterruptOutput struct {
	Body struct {
		SessionID uuid.UUID                `json:"session_id"`
		Interrupt *assistant.InterruptCard `json:"interrupt"`
	}
}

func RegisterAssistantRoutes(api huma.API, controller AssistantController) {
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/assistant/chat",
		Summary:     "Send a chat message to the assistant",
		Tags:        []string{"Assistant"},
	}, func(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
		sessionID := uuid.New()
		if input.Body.SessionID != nil && *input.Body.SessionID != uuid.Nil {
			sessionID = *input.Body.SessionID
		}

		result, err := controller.Chat(ctx, sessionID, input.Body.Message)
		if err != nil {
			if errors.Is(err, domain.ErrInterruptPending) {
				return nil, huma.Error409Conflict("session is paused awaiting an operator decision")
			}
			return nil, huma.Error500InternalServerError("chat failed", err)
		}

		out := &ChatOutput{}
		out.Body.SessionID = sessionID
		out.Body.Response = result.Response
		out.Body.Interrupt = result.Interrupt
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resume",
		Method:      http.MethodPost,
		Path:        "/assistant/resume",
		Summary:     "Resolve a pending interrupt with an operator decision",
		Tags:        []string{"Assistant"},
	}, func(ctx context.Context, input *ResumeInput) (*ChatOutput, error) {
		raw, err := json.Marshal(input.Body.Decision)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid decision payload")
		}

		decision, err := domain.ParseResumeDecision(raw)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid decision payload")
		}

		result, err := controller.Resume(ctx, input.Body.SessionID, *decision)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoInterruptPending):
				return nil, huma.Error409Conflict("no interrupt is pending for this session")
			case errors.Is(err, domain.ErrInterruptPending):
				return nil, huma.Error409Conflict("session is paused awaiting an operator decision")
			default:
				return nil, huma.Error500InternalServerError("resume failed", err)
			}
		}

		out := &ChatOutput{}
		out.Body.SessionID = input.Body.SessionID
		out.Body.Response = result.Response
		out.Body.Interrupt = result.Interrupt
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session-history",
		Method:      http.MethodGet,
		Path:        "/sessions/{sessionID}/history",
		Summary:     "Get the checkpointed transcript of a session",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
		messages, err := controller.History(ctx, input.SessionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("session not found")
			}
			return nil, huma.Error500InternalServerError("failed to load history", err)
		}

		out := &HistoryOutput{}
		out.Body.SessionID = input.SessionID
		out.Body.Messages = messages
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/sessions/{sessionID}",
		Summary:       "Delete a session, its checkpoint and any pending interrupt",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
		if err := controller.DeleteSession(ctx, input.SessionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("session not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete session", err)
		}

		return &DeleteSessionOutput{Status: http.StatusNoContent}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-pending-interrupt",
		Method:      http.MethodGet,
		Path:        "/sessions/{sessionID}/interrupt",
		Summary:     "Get the pending interrupt card for a paused session",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *PendingInterruptInput) (*PendingInterruptOutput, error) {
		card, err := controller.PendingInterrupt(ctx, input.SessionID)
		if err != nil {
			if errors.Is(err, domain.ErrNoInterruptPending) {
				return nil, huma.Error404NotFound("no interrupt is pending for this session")
			}
			return nil, huma.Error500InternalServerError("failed to load interrupt", err)
		}

		out := &PendingInterruptOutput{}
		out.Body.SessionID = input.SessionID
		out.Body.Interrupt = card
		return out, nil
	})
}
