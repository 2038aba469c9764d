package realtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/spyfall/internal/services/game"
	"github.com/KirkDiggler/spyfall/internal/services/messaging"
	"go.uber.org/zap"
)

// RoundScheduler arranges the automatic start of the round after a summary
type RoundScheduler interface {
	Schedule(code string, roundNumber int)
}

// DispatcherConfig holds the dependencies of the dispatcher
type DispatcherConfig struct {
	GameService      game.Service
	MessagingService messaging.Service
	Publisher        Publisher

	// Scheduler is told about every summarized round (optional)
	Scheduler RoundScheduler

	Logger *zap.Logger
}

// Dispatcher turns decoded commands into game service calls and publishes the outcome
type Dispatcher struct {
	gameService      game.Service
	messagingService messaging.Service
	publisher        Publisher
	scheduler        RoundScheduler
	logger           *zap.Logger
}

// JoinReply is the data of a successful join; the secret goes to the joining client only
type JoinReply struct {
	PlayerID   string `json:"player_id"`
	Secret     string `json:"secret"`
	Name       string `json:"name"`
	IsHost     bool   `json:"is_host"`
	IsObserver bool   `json:"is_observer"`
}

// CreateReply is the data of a successful create_session
type CreateReply struct {
	Code string `json:"code"`
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		publisher:        cfg.Publisher,
		scheduler:        cfg.Scheduler,
		logger:           logger,
	}, nil
}

// Handle processes one raw command. Game failures are answered on the reply channel;
// only a failure to reach clients is returned.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) error {
	env, cmd, err := Decode(data)
	if err != nil {
		d.logger.Warn("rejecting malformed command", zap.Error(err))
		if env == nil {
			return nil
		}
		return d.publisher.Reply(ctx, &Reply{
			RequestID: env.RequestID,
			Type:      env.Type,
			Error:     messaging.ErrorKindInvalidInput,
			Message:   err.Error(),
		})
	}

	logger := d.logger.With(
		zap.String("command", string(cmd.Type())),
		zap.String("code", env.Code),
		zap.String("player_id", env.PlayerID),
	)

	if RequiresAuth(cmd) {
		_, err := d.gameService.Authenticate(ctx, &game.AuthenticateInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
			Secret:   env.Secret,
		})
		if err != nil {
			logger.Info("authentication failed", zap.Error(err))
			return d.replyError(ctx, env, err)
		}
	}

	replyData, result, err := d.dispatch(ctx, env, cmd)
	if err != nil {
		logger.Debug("command rejected", zap.Error(err))
		return d.replyError(ctx, env, err)
	}

	if result != nil {
		if err := d.publisher.Publish(ctx, result.Notifications); err != nil {
			return err
		}
		d.scheduleContinuation(result.Notifications)
	}

	return d.publisher.Reply(ctx, &Reply{
		RequestID: env.RequestID,
		Type:      cmd.Type(),
		OK:        true,
		Data:      replyData,
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, env *Envelope, cmd Command) (any, *game.Result, error) {
	switch c := cmd.(type) {
	case CreateSession:
		out, err := d.gameService.CreateSession(ctx, &game.CreateSessionInput{})
		if err != nil {
			return nil, nil, err
		}
		return &CreateReply{Code: out.Code}, nil, nil

	case Join:
		out, err := d.gameService.JoinSession(ctx, &game.JoinSessionInput{
			Code:     env.Code,
			Name:     c.Name,
			Observer: c.Observer,
		})
		if err != nil {
			return nil, nil, err
		}
		return &JoinReply{
			PlayerID:   out.Player.ID,
			Secret:     out.Player.Secret,
			Name:       out.Player.Name,
			IsHost:     out.Player.IsHost,
			IsObserver: out.Player.IsObserver,
		}, &out.Result, nil

	case Leave:
		out, err := d.gameService.LeaveSession(ctx, &game.LeaveSessionInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case Disconnect, Reconnect:
		out, err := d.gameService.SetConnected(ctx, &game.SetConnectedInput{
			Code:      env.Code,
			PlayerID:  env.PlayerID,
			Connected: c.Type() == CommandReconnect,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case StartRound:
		out, err := d.gameService.StartRound(ctx, &game.StartRoundInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case AcknowledgeRole:
		out, err := d.gameService.AcknowledgeRole(ctx, &game.AcknowledgeRoleInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case AdvanceTurn:
		out, err := d.gameService.AdvanceTurn(ctx, &game.AdvanceTurnInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case SubmitGuess:
		out, err := d.gameService.SubmitGuess(ctx, &game.SubmitGuessInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
			Location: c.Location,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case SubmitVote:
		out, err := d.gameService.SubmitVote(ctx, &game.SubmitVoteInput{
			Code:      env.Code,
			PlayerID:  env.PlayerID,
			AccusedID: c.AccusedID,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case EndRound:
		out, err := d.gameService.EndRound(ctx, &game.EndRoundInput{
			Code:     env.Code,
			PlayerID: env.PlayerID,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, &out.Result, nil

	case GetView:
		out, err := d.gameService.GetSessionView(ctx, &game.GetSessionViewInput{
			Code:     env.Code,
			ViewerID: env.PlayerID,
		})
		if err != nil {
			return nil, nil, err
		}
		return out.View, nil, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type())
}

func (d *Dispatcher) replyError(ctx context.Context, env *Envelope, err error) error {
	reply := &Reply{
		RequestID: env.RequestID,
		Type:      env.Type,
		Error:     messaging.Classify(err),
		Message:   err.Error(),
	}

	msg, msgErr := d.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err:           err,
		PreferredTone: messaging.ToneFunny,
	})
	if msgErr != nil {
		d.logger.Warn("failed to build error message", zap.Error(msgErr))
	} else {
		reply.Error = msg.Kind
		reply.Message = msg.Message
	}

	if reply.Error == messaging.ErrorKindInternal {
		d.logger.Error("command failed", zap.String("code", env.Code), zap.Error(err))
	}

	return d.publisher.Reply(ctx, reply)
}

func (d *Dispatcher) scheduleContinuation(notifications []game.Notification) {
	if d.scheduler == nil {
		return
	}

	for _, n := range notifications {
		if summarized, ok := n.Event.(game.RoundSummarized); ok && summarized.Result != nil {
			d.scheduler.Schedule(n.Code, summarized.Result.RoundNumber)
		}
	}
}
