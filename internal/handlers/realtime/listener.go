package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler processes one raw command
type Handler interface {
	Handle(ctx context.Context, data []byte) error
}

// ListenerConfig holds the configuration for the command listener
type ListenerConfig struct {
	Client        *redis.Client
	ChannelPrefix string
	Handler       Handler
	Logger        *zap.Logger
}

// Listener consumes command envelopes from the command channel
type Listener struct {
	client  *redis.Client
	channel string
	handler Handler
	logger  *zap.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a new command listener
func NewListener(cfg *ListenerConfig) (*Listener, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	prefix := cfg.ChannelPrefix
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Listener{
		client:  cfg.Client,
		channel: CommandChannel(prefix),
		handler: cfg.Handler,
		logger:  logger,
	}, nil
}

// Start subscribes to the command channel and returns once the subscription is confirmed.
// Commands are handled one at a time in arrival order.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pubsub != nil {
		return errors.New("listener already started")
	}

	pubsub := l.client.Subscribe(ctx, l.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", l.channel, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	l.pubsub = pubsub
	l.cancel = cancel
	l.done = make(chan struct{})

	go l.run(runCtx, pubsub.Channel(), l.done)

	l.logger.Info("listening for commands", zap.String("channel", l.channel))
	return nil
}

// Stop closes the subscription and waits for the command in flight
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pubsub == nil {
		return nil
	}

	l.cancel()
	err := l.pubsub.Close()
	<-l.done

	l.pubsub = nil
	l.cancel = nil
	l.done = nil

	if err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}
	return nil
}

func (l *Listener) run(ctx context.Context, messages <-chan *redis.Message, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := l.handler.Handle(ctx, []byte(msg.Payload)); err != nil {
				l.logger.Error("failed to handle command", zap.Error(err))
			}
		}
	}
}
