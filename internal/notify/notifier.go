package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/slack-go/slack"

	"github.com/sivajik34/aifastcommerce/internal/assistant"
	redisstore "github.com/sivajik34/aifastcommerce/internal/store/redis"
)

// Publisher pushes payloads to a pub/sub channel. *redis.PubSub satisfies
// this interface.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// SlackPoster posts messages to a Slack channel. *slack.Client satisfies this
// interface.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier fans interrupt cards out to operator channels: the Redis interrupt
// feed and, when configured, a Slack channel. Either sink may be absent.
type Notifier struct {
	publisher Publisher
	slack     SlackPoster
	channelID string
}

// New creates a Notifier. publisher and poster may each be nil to disable
// that sink.
func New(publisher Publisher, poster SlackPoster, slackChannelID string) *Notifier {
	return &Notifier{
		publisher: publisher,
		slack:     poster,
		channelID: slackChannelID,
	}
}

// interruptEnvelope is the wire shape published on the interrupt feed.
type interruptEnvelope struct {
	SessionID uuid.UUID                `json:"session_id"`
	Interrupt *assistant.InterruptCard `json:"interrupt"`
}

// NotifyInterrupt delivers the card to every configured sink. Sinks are
// independent; a failure in one does not stop the others.
func (n *Notifier) NotifyInterrupt(ctx context.Context, sessionID uuid.UUID, card *assistant.InterruptCard) error {
	var errs []error

	if n.publisher != nil {
		payload, err := json.Marshal(interruptEnvelope{SessionID: sessionID, Interrupt: card})
		if err != nil {
			errs = append(errs, fmt.Errorf("notify.Notifier.NotifyInterrupt: marshal: %w", err))
		} else if err := n.publisher.Publish(ctx, redisstore.InterruptChannel(), payload); err != nil {
			errs = append(errs, fmt.Errorf("notify.Notifier.NotifyInterrupt: publish: %w", err))
		}
	}

	if n.slack != nil {
		if err := n.postSlack(ctx, sessionID, card); err != nil {
			errs = append(errs, fmt.Errorf("notify.Notifier.NotifyInterrupt: slack: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (n *Notifier) postSlack(ctx context.Context, sessionID uuid.UUID, card *assistant.InterruptCard) error {
	args, err := json.MarshalIndent(card.Interruption.Args, "", "  ")
	if err != nil {
		args = []byte("{}")
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Confirmation required", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(
			"*Action:* `%s`\n*Session:* `%s`\n%s",
			card.Interruption.Type, sessionID, card.Interruption.Message,
		), false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "```"+string(args)+"```", false, false), nil, nil),
	}

	_, _, err = n.slack.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(fmt.Sprintf("Confirmation required: %s", card.Interruption.Type), false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	return nil
}
