package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sivajik34/aifastcommerce/internal/agent"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// Notifier fans a new interrupt out to an operator channel. Implementations
// must not block the request path for long; failures are logged, not
// propagated.
type Notifier interface {
	NotifyInterrupt(ctx context.Context, sessionID uuid.UUID, card *InterruptCard) error
}

// Result is the outcome of one chat or resume invocation. Interrupt is set
// when the run paused awaiting an operator decision; Response otherwise.
type Result struct {
	Response  string
	Interrupt *InterruptCard
}

// Controller owns the session state machine around the runtime: Running
// sessions take chat messages, Paused sessions take exactly one resume
// decision. At most one interrupt is outstanding per session.
type Controller struct {
	runtime     agent.Runtime
	sessions    domain.ChatSessionRepository
	checkpoints domain.CheckpointRepository
	interrupts  domain.InterruptRepository
	notifier    Notifier
}

func NewController(
	runtime agent.Runtime,
	sessions domain.ChatSessionRepository,
	checkpoints domain.CheckpointRepository,
	interrupts domain.InterruptRepository,
	notifier Notifier,
) *Controller {
	return &Controller{
		runtime:     runtime,
		sessions:    sessions,
		checkpoints: checkpoints,
		interrupts:  interrupts,
		notifier:    notifier,
	}
}

// Chat runs one user message against a session, creating the session
// implicitly on first contact. Returns ErrInterruptPending while the session
// is paused.
func (c *Controller) Chat(ctx context.Context, sessionID uuid.UUID, message string) (*Result, error) {
	if err := c.ensureRunning(ctx, sessionID, message); err != nil {
		return nil, err
	}
	return c.invoke(ctx, sessionID, agent.Input{Message: message})
}

// Resume consumes the pending interrupt with the operator's decision and
// continues the paused run. Returns ErrNoInterruptPending when nothing is
// paused; a malformed decision never reaches this point (the transport parses
// it first), so arriving here commits the decision.
func (c *Controller) Resume(ctx context.Context, sessionID uuid.UUID, decision domain.ResumeDecision) (*Result, error) {
	pending, err := c.interrupts.GetPending(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoInterruptPending
	}
	if err != nil {
		return nil, fmt.Errorf("assistant.Controller.Resume: %w", err)
	}

	if err := c.interrupts.Resolve(ctx, sessionID, decision.Type); err != nil {
		return nil, fmt.Errorf("assistant.Controller.Resume: %w", err)
	}
	if err := c.sessions.UpdateStatus(ctx, sessionID, domain.SessionStatusRunning); err != nil {
		return nil, fmt.Errorf("assistant.Controller.Resume: %w", err)
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("action", pending.Action).
		Str("decision", string(decision.Type)).
		Msg("interrupt resolved")

	return c.invoke(ctx, sessionID, agent.Input{Resume: &decision})
}

// History returns the session's checkpointed transcript.
func (c *Controller) History(ctx context.Context, sessionID uuid.UUID) ([]domain.Message, error) {
	cp, err := c.checkpoints.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("assistant.Controller.History: %w", err)
	}
	return cp.Messages, nil
}

// DeleteSession removes the session, its checkpoint, and any pending
// interrupt.
func (c *Controller) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := c.interrupts.CancelPending(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("assistant.Controller.DeleteSession: %w", err)
	}
	if err := c.checkpoints.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("assistant.Controller.DeleteSession: %w", err)
	}
	if err := c.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("assistant.Controller.DeleteSession: %w", err)
	}
	return nil
}

// PendingInterrupt returns the operator card for the session's outstanding
// interrupt, or ErrNoInterruptPending.
func (c *Controller) PendingInterrupt(ctx context.Context, sessionID uuid.UUID) (*InterruptCard, error) {
	pending, err := c.interrupts.GetPending(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoInterruptPending
	}
	if err != nil {
		return nil, fmt.Errorf("assistant.Controller.PendingInterrupt: %w", err)
	}
	return &InterruptCard{
		Response: stringify(pending.Args),
		Interruption: Interruption{
			Type:    pending.Action,
			Message: pending.Description,
			Args:    pending.Args,
		},
	}, nil
}

// ensureRunning loads or implicitly creates the session and rejects chat
// while an interrupt is outstanding.
func (c *Controller) ensureRunning(ctx context.Context, sessionID uuid.UUID, firstMessage string) error {
	session, err := c.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		session = &domain.ChatSession{
			ID:     sessionID,
			Status: domain.SessionStatusRunning,
			Title:  sessionTitle(firstMessage),
		}
		if err := c.sessions.Create(ctx, session); err != nil {
			return fmt.Errorf("assistant.Controller: create session: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("assistant.Controller: load session: %w", err)
	}
	if session.Status == domain.SessionStatusPaused {
		return domain.ErrInterruptPending
	}
	return nil
}

// invoke consumes one runtime invocation to completion or pause. The run gets
// its own cancellable context so an early return here cannot strand the run
// goroutine on a full event channel.
func (c *Controller) invoke(ctx context.Context, sessionID uuid.UUID, in agent.Input) (*Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := c.runtime.Run(runCtx, sessionID, in)
	if err != nil {
		return nil, fmt.Errorf("assistant.Controller: start run: %w", err)
	}

	var messages []domain.Message
	for ev := range ch {
		switch {
		case ev.Err != nil:
			return nil, fmt.Errorf("assistant.Controller: run: %w", ev.Err)

		case ev.Message != nil:
			messages = append(messages, *ev.Message)

		case ev.Update != nil:
			card, isInterrupt := ParseInterrupt(ev.Update)
			if !isInterrupt {
				continue
			}
			// Further events for this invocation are discarded; the runtime
			// closes the channel right after pausing.
			if err := c.pause(ctx, sessionID, card); err != nil {
				return nil, err
			}
			return &Result{Interrupt: card}, nil
		}
	}

	return &Result{Response: ExtractFinalResponse(messages)}, nil
}

// pause records the interrupt, flips the session to paused, and notifies the
// operator channel.
func (c *Controller) pause(ctx context.Context, sessionID uuid.UUID, card *InterruptCard) error {
	record := &domain.Interrupt{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Action:      card.Interruption.Type,
		Args:        card.Interruption.Args,
		Description: card.Interruption.Message,
		Status:      domain.InterruptStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.interrupts.Create(ctx, record); err != nil {
		return fmt.Errorf("assistant.Controller: record interrupt: %w", err)
	}
	if err := c.sessions.UpdateStatus(ctx, sessionID, domain.SessionStatusPaused); err != nil {
		return fmt.Errorf("assistant.Controller: pause session: %w", err)
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("action", card.Interruption.Type).
		Msg("session paused awaiting operator decision")

	if c.notifier != nil {
		if err := c.notifier.NotifyInterrupt(ctx, sessionID, card); err != nil {
			log.Error().Err(err).Str("session_id", sessionID.String()).Msg("interrupt notification failed")
		}
	}
	return nil
}

// sessionTitle derives a short session label from the opening message,
// truncating on a rune boundary so multi-byte text stays valid UTF-8.
func sessionTitle(message string) string {
	const maxTitle = 80
	if utf8.RuneCountInString(message) <= maxTitle {
		return message
	}
	return string([]rune(message)[:maxTitle])
}
