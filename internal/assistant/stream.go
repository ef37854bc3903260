package assistant

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sivajik34/aifastcommerce/internal/agent"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// streamErrorFragment is the single terminal fragment emitted when the
// underlying event stream fails; the stream always ends cleanly from the
// transport's point of view.
const streamErrorFragment = "[Error] Something went wrong during streaming."

// ChatStream runs one user message and forwards displayable fragments to
// send as they arrive. Only non-empty, meaningful turns from named leaf
// agents are forwarded; everything else is skipped silently. An interrupt
// terminates the stream after exactly one JSON-serialized card fragment.
//
// send errors abort the stream and are returned so the transport can close;
// runtime errors are logged and collapsed into streamErrorFragment.
func (c *Controller) ChatStream(ctx context.Context, sessionID uuid.UUID, message string, send func(string) error) error {
	if err := c.ensureRunning(ctx, sessionID, message); err != nil {
		return err
	}

	// The run gets its own cancellable context so a client that stops
	// reading (send failing, interrupt short-circuit) releases the run
	// goroutine instead of stranding it on a full event channel.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := c.runtime.Run(runCtx, sessionID, agent.Input{Message: message})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("stream start failed")
		return send(streamErrorFragment)
	}

	for ev := range ch {
		switch {
		case ev.Err != nil:
			log.Error().Err(ev.Err).Str("session_id", sessionID.String()).Msg("stream iteration failed")
			return send(streamErrorFragment)

		case ev.Update != nil:
			card, isInterrupt := ParseInterrupt(ev.Update)
			if !isInterrupt {
				continue
			}
			if err := c.pause(ctx, sessionID, card); err != nil {
				log.Error().Err(err).Str("session_id", sessionID.String()).Msg("stream pause failed")
				return send(streamErrorFragment)
			}
			raw, err := json.Marshal(card)
			if err != nil {
				return send(streamErrorFragment)
			}
			// No further events are read for this invocation.
			return send(string(raw))

		case ev.Message != nil:
			m := *ev.Message
			if m.Role != domain.RoleAssistant || m.Content == "" {
				continue
			}
			if !fromNamedAgent(m) || !isMeaningful(m) {
				continue
			}
			if err := send(m.Content); err != nil {
				return err
			}
		}
	}

	return nil
}
