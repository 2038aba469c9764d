package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/spyfall/internal/models"
	"github.com/KirkDiggler/spyfall/internal/services/game"
	"github.com/KirkDiggler/spyfall/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannelPrefix namespaces every channel the adapter uses
const DefaultChannelPrefix = "spyfall"

// CommandChannel is where clients publish command envelopes
func CommandChannel(prefix string) string {
	return prefix + ":commands"
}

// SessionChannel carries the broadcast notifications of one session
func SessionChannel(prefix, code string) string {
	return prefix + ":session:" + code
}

// PlayerChannel carries the private notifications of one player
func PlayerChannel(prefix, code, playerID string) string {
	return SessionChannel(prefix, code) + ":player:" + playerID
}

// ReplyChannel carries the answer to a single request
func ReplyChannel(prefix, requestID string) string {
	return prefix + ":reply:" + requestID
}

// OutboundMessage is the JSON frame of a published notification
type OutboundMessage struct {
	Type    game.EventKind `json:"type"`
	Code    string         `json:"code"`
	Payload game.Event     `json:"payload"`

	// Message is a human readable announcement for some events
	Message string `json:"message,omitempty"`
}

// Reply answers one command on its reply channel
type Reply struct {
	RequestID string      `json:"request_id"`
	Type      CommandType `json:"type"`
	OK        bool        `json:"ok"`

	// Error and Message are set when OK is false
	Error   messaging.ErrorKind `json:"error,omitempty"`
	Message string              `json:"message,omitempty"`

	Data any `json:"data,omitempty"`
}

// Publisher delivers notifications and replies to clients
type Publisher interface {
	Publish(ctx context.Context, notifications []game.Notification) error
	Reply(ctx context.Context, reply *Reply) error
}

// PublisherConfig holds configuration for the Redis publisher
type PublisherConfig struct {
	Client        *redis.Client
	ChannelPrefix string

	// MessagingService annotates phase changes and summaries (optional)
	MessagingService messaging.Service

	Logger *zap.Logger
}

type redisPublisher struct {
	client           *redis.Client
	prefix           string
	messagingService messaging.Service
	logger           *zap.Logger
}

// NewPublisher creates a publisher backed by Redis pub/sub
func NewPublisher(cfg *PublisherConfig) (*redisPublisher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	prefix := cfg.ChannelPrefix
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisPublisher{
		client:           cfg.Client,
		prefix:           prefix,
		messagingService: cfg.MessagingService,
		logger:           logger,
	}, nil
}

// Publish sends the notifications in order within a single pipeline
func (p *redisPublisher) Publish(ctx context.Context, notifications []game.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, n := range notifications {
		data, err := json.Marshal(&OutboundMessage{
			Type:    n.Event.Kind(),
			Code:    n.Code,
			Payload: n.Event,
			Message: p.announce(ctx, n.Event),
		})
		if err != nil {
			return fmt.Errorf("failed to encode %s notification: %w", n.Event.Kind(), err)
		}

		channel := SessionChannel(p.prefix, n.Code)
		if n.IsPrivate() {
			channel = PlayerChannel(p.prefix, n.Code, n.Recipient)
		}
		pipe.Publish(ctx, channel, data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish notifications: %w", err)
	}

	return nil
}

// Reply publishes the answer to a request. Requests without an id get no reply.
func (p *redisPublisher) Reply(ctx context.Context, reply *Reply) error {
	if reply == nil || reply.RequestID == "" {
		return nil
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	if err := p.client.Publish(ctx, ReplyChannel(p.prefix, reply.RequestID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish reply: %w", err)
	}

	return nil
}

func (p *redisPublisher) announce(ctx context.Context, event game.Event) string {
	if p.messagingService == nil {
		return ""
	}

	var (
		message string
		err     error
	)
	switch e := event.(type) {
	case game.RoundStarted:
		message, err = p.phaseMessage(ctx, models.PhaseInforming, e.RoundNumber)
	case game.AccusationStarted:
		message, err = p.phaseMessage(ctx, models.PhaseAccusing, e.RoundNumber)
	case game.SubRoundStarted:
		message, err = p.phaseMessage(ctx, models.PhasePlaying, e.RoundNumber)
	case game.RoundEnded:
		message, err = p.phaseMessage(ctx, models.PhaseWaiting, e.RoundNumber)
	case game.RoundSummarized:
		var out *messaging.GetRoundSummaryMessageOutput
		out, err = p.messagingService.GetRoundSummaryMessage(ctx, &messaging.GetRoundSummaryMessageInput{
			Result: e.Result,
		})
		if err == nil {
			message = out.Title + "\n" + out.Message
		}
	}

	if err != nil {
		p.logger.Warn("failed to build announcement",
			zap.String("event", string(event.Kind())),
			zap.Error(err))
		return ""
	}

	return message
}

func (p *redisPublisher) phaseMessage(ctx context.Context, phase models.Phase, round int) (string, error) {
	out, err := p.messagingService.GetPhaseMessage(ctx, &messaging.GetPhaseMessageInput{
		Phase:       phase,
		RoundNumber: round,
	})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}
