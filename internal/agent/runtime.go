// Package agent implements the multi-agent reasoning runtime: a top-level
// router dispatching to team supervisors, which dispatch to leaf agents bound
// to commerce tool sets. Sensitive tool calls pause the run and surface an
// interrupt; a later invocation with a resume decision continues from the
// persisted checkpoint.
package agent

import (
	"context"

	"github.com/google/uuid"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// Input is one invocation: either a fresh user message or a resume decision
// for a paused session. Exactly one field is set.
type Input struct {
	Message string
	Resume  *domain.ResumeDecision
}

// Runtime executes agent turns for a session and streams events back.
// Invocations against the same session ID share one persisted checkpoint, so
// a resume restores the paused state. The returned channel is closed when the
// invocation completes, pauses, or fails.
type Runtime interface {
	Run(ctx context.Context, sessionID uuid.UUID, in Input) (<-chan Event, error)
}
