package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InterruptStatus string

const (
	InterruptStatusPending   InterruptStatus = "pending"
	InterruptStatusResolved  InterruptStatus = "resolved"
	InterruptStatusCancelled InterruptStatus = "cancelled"
)

// Interrupt is a runtime-emitted pause signal requesting operator confirmation
// before a sensitive tool runs. At most one pending Interrupt exists per
// session; the repository enforces this.
type Interrupt struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"session_id"`
	Action      string          `json:"action"`
	Args        map[string]any  `json:"args"`
	Description string          `json:"description"`
	Status      InterruptStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
}

type InterruptRepository interface {
	// Create records a pending interrupt. Returns ErrInterruptPending when the
	// session already has one outstanding.
	Create(ctx context.Context, i *Interrupt) error
	GetPending(ctx context.Context, sessionID uuid.UUID) (*Interrupt, error)
	// Resolve marks the pending interrupt consumed by a decision.
	Resolve(ctx context.Context, sessionID uuid.UUID, decision DecisionType) error
	CancelPending(ctx context.Context, sessionID uuid.UUID) error
}

type DecisionType string

const (
	DecisionAccept   DecisionType = "accept"
	DecisionEdit     DecisionType = "edit"
	DecisionResponse DecisionType = "response"
)

// ResumeDecision is the operator's answer to a pending interrupt. Exactly one
// of Args (edit) or Text (response) is meaningful depending on Type. Consumed
// once; the runtime discards it after resuming.
type ResumeDecision struct {
	Type DecisionType
	Args map[string]any
	Text string
}

func AcceptDecision() ResumeDecision {
	return ResumeDecision{Type: DecisionAccept}
}

func EditDecision(args map[string]any) ResumeDecision {
	return ResumeDecision{Type: DecisionEdit, Args: args}
}

func ResponseDecision(text string) ResumeDecision {
	return ResumeDecision{Type: DecisionResponse, Text: text}
}

// MarshalJSON produces the wire shape consumed by the runtime:
//
//	{"type":"accept"}
//	{"type":"edit","args":{"args":{...}}}
//	{"type":"response","args":"<text>"}
//
// The double "args" nesting on edit is part of the runtime contract and must
// be preserved.
func (d ResumeDecision) MarshalJSON() ([]byte, error) {
	switch d.Type {
	case DecisionAccept:
		return json.Marshal(map[string]any{"type": string(DecisionAccept)})
	case DecisionEdit:
		args := d.Args
		if args == nil {
			args = map[string]any{}
		}
		return json.Marshal(map[string]any{
			"type": string(DecisionEdit),
			"args": map[string]any{"args": args},
		})
	case DecisionResponse:
		return json.Marshal(map[string]any{
			"type": string(DecisionResponse),
			"args": d.Text,
		})
	default:
		return nil, fmt.Errorf("domain.ResumeDecision.MarshalJSON: type %q: %w", d.Type, ErrInvalidDecision)
	}
}

// ParseResumeDecision decodes an operator-supplied decision payload. Malformed
// payloads (unknown type, edit without an object args.args, response without a
// string args) return ErrInvalidDecision so the caller can abort the resume
// without mutating session state.
func ParseResumeDecision(raw []byte) (*ResumeDecision, error) {
	var env struct {
		Type DecisionType    `json:"type"`
		Args json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("domain.ParseResumeDecision: %w: %s", ErrInvalidDecision, err)
	}

	switch env.Type {
	case DecisionAccept:
		d := AcceptDecision()
		return &d, nil

	case DecisionEdit:
		var wrapper struct {
			Args map[string]any `json:"args"`
		}
		if len(env.Args) == 0 {
			return nil, fmt.Errorf("domain.ParseResumeDecision: edit requires args: %w", ErrInvalidDecision)
		}
		if err := json.Unmarshal(env.Args, &wrapper); err != nil {
			return nil, fmt.Errorf("domain.ParseResumeDecision: %w: %s", ErrInvalidDecision, err)
		}
		if wrapper.Args == nil {
			return nil, fmt.Errorf("domain.ParseResumeDecision: edit requires args.args mapping: %w", ErrInvalidDecision)
		}
		d := EditDecision(wrapper.Args)
		return &d, nil

	case DecisionResponse:
		var text string
		if err := json.Unmarshal(env.Args, &text); err != nil {
			return nil, fmt.Errorf("domain.ParseResumeDecision: response requires string args: %w", ErrInvalidDecision)
		}
		d := ResponseDecision(text)
		return &d, nil

	default:
		return nil, fmt.Errorf("domain.ParseResumeDecision: type %q: %w", env.Type, ErrInvalidDecision)
	}
}
