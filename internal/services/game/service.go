package game

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/spyfall/internal/catalog"
	"github.com/KirkDiggler/spyfall/internal/common/clock"
	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/common/uuid"
	"github.com/KirkDiggler/spyfall/internal/models"
	sessionRepo "github.com/KirkDiggler/spyfall/internal/repositories/session"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	maxPlayers int
	minPlayers int

	sessionRepo   sessionRepo.Repository
	catalog       *catalog.Catalog
	random        random.Random
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zap.Logger
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	minPlayers := cfg.MinPlayers
	if minPlayers <= 0 {
		minPlayers = DefaultMinPlayers
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		maxPlayers:    maxPlayers,
		minPlayers:    minPlayers,
		sessionRepo:   cfg.SessionRepo,
		catalog:       cfg.Catalog,
		random:        cfg.Random,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger,
	}, nil
}

// mutation is the working state of one command against one session
type mutation struct {
	session       *models.Session
	now           time.Time
	notifications []Notification
}

func (m *mutation) broadcast(event Event) {
	m.notifications = append(m.notifications, Notification{
		Code:  m.session.Code,
		Event: event,
	})
}

func (m *mutation) send(playerID string, event Event) {
	m.notifications = append(m.notifications, Notification{
		Code:      m.session.Code,
		Recipient: playerID,
		Event:     event,
	})
}

// mutate runs apply with exclusive access to the session. apply must validate before it
// changes anything; a returned error discards the working copy either way.
func (s *service) mutate(ctx context.Context, code string, apply func(m *mutation) error) (*Result, bool, error) {
	if code == "" {
		return nil, false, ErrInvalidInput
	}

	var result *Result
	out, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Code: code,
		Apply: func(session *models.Session) error {
			m := &mutation{
				session: session,
				now:     s.clock.Now(),
			}
			if err := apply(m); err != nil {
				return err
			}

			session.LastActivityAt = m.now
			result = &Result{
				Phase:         session.Phase,
				RoundNumber:   session.RoundNumber,
				Notifications: m.notifications,
			}
			return nil
		},
	})
	if err != nil {
		return nil, false, s.classify(err)
	}

	if out.Deleted {
		result.Notifications = append(result.Notifications, Notification{
			Code:  code,
			Event: SessionClosed{Reason: ReasonEmpty},
		})
		s.logger.Info("session closed", zap.String("code", code), zap.String("reason", ReasonEmpty))
	}

	return result, out.Deleted, nil
}

// classify maps registry errors onto game errors and wraps anything unexpected
func (s *service) classify(err error) error {
	var gameErr GameError
	switch {
	case errors.As(err, &gameErr):
		return gameErr
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		return ErrSessionNotFound
	default:
		return fmt.Errorf("failed to update session: %w", err)
	}
}

func (s *service) getSession(ctx context.Context, code string) (*models.Session, error) {
	if code == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// CreateSession registers a new empty session
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	out, err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created", zap.String("code", out.Session.Code))

	return &CreateSessionOutput{
		Code: out.Session.Code,
	}, nil
}

// JoinSession adds a player to a session. The first player to join becomes host.
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var joined models.Player
	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		if len(session.Players) >= s.maxPlayers {
			return ErrSessionFull
		}

		if session.NameTaken(name) {
			return ErrDuplicateName
		}

		player := &models.Player{
			ID:          s.uuidGenerator.NewUUID(),
			Secret:      s.uuidGenerator.NewUUID(),
			Name:        name,
			IsHost:      session.Host() == nil,
			IsObserver:  input.Observer,
			IsConnected: true,
			JoinedAt:    m.now,
		}
		session.Players = append(session.Players, player)
		joined = *player

		m.broadcast(PlayerJoined{
			PlayerID:   player.ID,
			Name:       player.Name,
			IsHost:     player.IsHost,
			IsObserver: player.IsObserver,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player joined",
		zap.String("code", input.Code),
		zap.String("player_id", joined.ID),
		zap.Bool("host", joined.IsHost),
		zap.Bool("observer", joined.IsObserver),
	)

	return &JoinSessionOutput{
		Result: *result,
		Player: &joined,
	}, nil
}

// LeaveSession removes a player and repairs the round around the gap
func (s *service) LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	result, deleted, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, idx := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		wasActive := idx == session.ActivePlayerIndex
		session.Players = append(session.Players[:idx], session.Players[idx+1:]...)
		switch {
		case idx < session.ActivePlayerIndex:
			session.ActivePlayerIndex--
		case idx == session.ActivePlayerIndex && session.ActivePlayerIndex >= len(session.Players):
			session.ActivePlayerIndex = 0
		}

		m.broadcast(PlayerLeft{
			PlayerID: player.ID,
			Name:     player.Name,
		})

		if len(session.Players) == 0 {
			return nil
		}

		if player.IsHost {
			next := session.Players[0]
			next.IsHost = true
			m.broadcast(HostChanged{
				PlayerID: next.ID,
				Name:     next.Name,
			})
		}

		if !session.Phase.IsActiveRound() {
			return nil
		}

		if player.Role == models.RoleSpy {
			s.abortRound(m, ReasonSpyLeft)
			return nil
		}
		if len(session.RoundMembers()) == 0 {
			s.abortRound(m, ReasonNoPlayers)
			return nil
		}

		switch session.Phase {
		case models.PhaseInforming:
			s.checkAcknowledged(m)
		case models.PhasePlaying:
			s.continueTurns(m, wasActive)
		case models.PhaseAccusing:
			delete(session.Accusation.Votes, player.ID)
			s.tryResolve(m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player left",
		zap.String("code", input.Code),
		zap.String("player_id", input.PlayerID),
		zap.Bool("session_deleted", deleted),
	)

	return &LeaveSessionOutput{
		Result:         *result,
		SessionDeleted: deleted,
	}, nil
}

// SetConnected flips a player's liveness flag. The player keeps their seat either way.
func (s *service) SetConnected(ctx context.Context, input *SetConnectedInput) (*SetConnectedOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, _ := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		if player.IsConnected == input.Connected {
			return ErrAlreadySubmitted
		}

		player.IsConnected = input.Connected
		m.broadcast(ConnectionChanged{
			PlayerID:  player.ID,
			Connected: player.IsConnected,
		})

		switch session.Phase {
		case models.PhaseInforming:
			s.checkAcknowledged(m)
		case models.PhasePlaying:
			s.continueTurns(m, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("connection changed",
		zap.String("code", input.Code),
		zap.String("player_id", input.PlayerID),
		zap.Bool("connected", input.Connected),
	)

	return &SetConnectedOutput{
		Result: *result,
	}, nil
}

// Authenticate compares the secret in constant time
func (s *service) Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error) {
	if input == nil || input.PlayerID == "" || input.Secret == "" {
		return nil, ErrNotAuthorized
	}

	session, err := s.getSession(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	player, _ := session.FindPlayer(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	if subtle.ConstantTimeCompare([]byte(player.Secret), []byte(input.Secret)) != 1 {
		s.logger.Warn("secret mismatch",
			zap.String("code", input.Code),
			zap.String("player_id", input.PlayerID),
		)
		return nil, ErrNotAuthorized
	}

	return &AuthenticateOutput{
		PlayerID: player.ID,
		Name:     player.Name,
		IsHost:   player.IsHost,
	}, nil
}

// GetIdleTime returns the time since the session last changed
func (s *service) GetIdleTime(ctx context.Context, input *GetIdleTimeInput) (*GetIdleTimeOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	return &GetIdleTimeOutput{
		IdleFor: session.IdleFor(s.clock.Now()),
	}, nil
}

// ExpireInactive removes every session idle for longer than MaxAge
func (s *service) ExpireInactive(ctx context.Context, input *ExpireInactiveInput) (*ExpireInactiveOutput, error) {
	if input == nil || input.MaxAge <= 0 {
		return nil, ErrInvalidInput
	}

	out, err := s.sessionRepo.ExpireInactive(ctx, &sessionRepo.ExpireInactiveInput{
		MaxAge: input.MaxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expire sessions: %w", err)
	}

	if out.Count > 0 {
		s.logger.Info("expired inactive sessions",
			zap.Int("count", out.Count),
			zap.Strings("codes", out.Codes),
			zap.Duration("max_age", input.MaxAge),
		)
	}

	return &ExpireInactiveOutput{
		Count: out.Count,
		Codes: out.Codes,
	}, nil
}
