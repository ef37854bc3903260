package ws

import (
	"context"

	"github.com/google/uuid"
)

// StreamController runs one chat turn and forwards displayable fragments to
// the send callback as they arrive. *assistant.Controller satisfies this
// interface.
type StreamController interface {
	ChatStream(ctx context.Context, sessionID uuid.UUID, message string, send func(string) error) error
}

// Broker is the pub/sub fan-out carrying chat fragments between the streaming
// producer and every WebSocket client attached to a session.
// *redis.PubSub satisfies this interface.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Hub manages WebSocket chat connections backed by Redis pub/sub. Fragments
// are published to the session channel, so every client attached to the same
// session observes the same stream.
type Hub struct {
	broker     Broker
	controller StreamController
}

// NewHub creates a new WebSocket hub.
func NewHub(broker Broker, controller StreamController) *Hub {
	return &Hub{broker: broker, controller: controller}
}
