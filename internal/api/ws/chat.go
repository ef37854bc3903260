package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sivajik34/aifastcommerce/internal/domain"
	redisstore "github.com/sivajik34/aifastcommerce/internal/store/redis"
)

const pausedFragment = `{"error":"session is paused awaiting an operator decision"}`

// ServeChat handles a WebSocket chat connection for one session. Incoming
// text messages are streamed through the assistant; response fragments fan
// out over the session's Redis channel to every attached client.
func (h *Hub) ServeChat(w http.ResponseWriter, r *http.Request) {
	sessionIDStr := chi.URLParam(r, "sessionID")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	channel := redisstore.ChatChannel(sessionID)

	fragments, cleanup, err := h.broker.Subscribe(ctx, channel)
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	// Forward published fragments to this client. The read loop below only
	// reads, so writes are not concurrent. The goroutine exits when cleanup
	// closes the subscription channel.
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
				return
			case msg, ok := <-fragments:
				if !ok {
					_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
					return
				}
				if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
					log.Debug().Err(writeErr).Msg("websocket write")
					return
				}
			}
		}
	}()

	for {
		typ, data, readErr := conn.Read(ctx)
		if readErr != nil {
			return
		}
		if typ != websocket.MessageText || len(data) == 0 {
			continue
		}
		h.stream(ctx, sessionID, channel, string(data))
	}
}

// stream runs one user message through the assistant, publishing each
// fragment to the session channel.
func (h *Hub) stream(ctx context.Context, sessionID uuid.UUID, channel, message string) {
	send := func(fragment string) error {
		return h.broker.Publish(ctx, channel, []byte(fragment))
	}

	if err := h.controller.ChatStream(ctx, sessionID, message, send); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("chat stream failed")
		if errors.Is(err, domain.ErrInterruptPending) {
			_ = h.broker.Publish(ctx, channel, []byte(pausedFragment))
		}
	}
}
