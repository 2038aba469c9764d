package game

import (
	"time"

	"github.com/KirkDiggler/spyfall/internal/catalog"
	"github.com/KirkDiggler/spyfall/internal/common/clock"
	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/common/uuid"
	"github.com/KirkDiggler/spyfall/internal/models"
	sessionRepo "github.com/KirkDiggler/spyfall/internal/repositories/session"
	"go.uber.org/zap"
)

const (
	// DefaultMaxPlayers is the session capacity, observers included
	DefaultMaxPlayers = 12

	// DefaultMinPlayers is the smallest round that can be started
	DefaultMinPlayers = 1

	// SpyWinPoints is awarded to a spy who names the location
	SpyWinPoints = 3

	// CorrectVotePoints is awarded to each civilian who voted for the spy in a civilian win
	CorrectVotePoints = 1
)

// Config holds configuration for the game service
type Config struct {
	// Maximum number of players per session, observers included
	MaxPlayers int

	// Minimum number of connected non-observers needed to start a round
	MinPlayers int

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Catalog       *catalog.Catalog
	Random        random.Random
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// Result is returned by every successful mutation
type Result struct {
	// Phase is the session phase after the mutation
	Phase models.Phase

	// RoundNumber is the round number after the mutation
	RoundNumber int

	// Notifications describe what changed, in the order it happened
	Notifications []Notification
}

type CreateSessionInput struct {
}

type CreateSessionOutput struct {
	Code string
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	Code string

	// Name is the display name, unique within the session ignoring case
	Name string

	// Observer joins as a display that never plays
	Observer bool
}

// JoinSessionOutput contains the joined player
type JoinSessionOutput struct {
	Result

	// Player includes the secret and must only be handed to the joining client
	Player *models.Player
}

type LeaveSessionInput struct {
	Code     string
	PlayerID string
}

type LeaveSessionOutput struct {
	Result

	// SessionDeleted is set when the last player left
	SessionDeleted bool
}

type SetConnectedInput struct {
	Code      string
	PlayerID  string
	Connected bool
}

type SetConnectedOutput struct {
	Result
}

type AuthenticateInput struct {
	Code     string
	PlayerID string
	Secret   string
}

type AuthenticateOutput struct {
	PlayerID string
	Name     string
	IsHost   bool
}

// StartRoundInput contains parameters for starting a round
type StartRoundInput struct {
	Code     string
	PlayerID string

	// Automatic marks a timer-driven continuation out of the summary phase.
	// The host check is skipped, but the round only starts if RoundNumber still
	// equals ExpectedRound.
	Automatic     bool
	ExpectedRound int
}

type StartRoundOutput struct {
	Result
}

type AcknowledgeRoleInput struct {
	Code     string
	PlayerID string
}

type AcknowledgeRoleOutput struct {
	Result
}

type AdvanceTurnInput struct {
	Code     string
	PlayerID string
}

type AdvanceTurnOutput struct {
	Result

	// ActivePlayerID is empty once the accusation phase started
	ActivePlayerID string
}

type SubmitGuessInput struct {
	Code     string
	PlayerID string
	Location string
}

type SubmitGuessOutput struct {
	Result

	// Resolved is set when this submission completed the accusation phase
	Resolved bool
}

type SubmitVoteInput struct {
	Code      string
	PlayerID  string
	AccusedID string
}

type SubmitVoteOutput struct {
	Result

	// Resolved is set when this submission completed the accusation phase
	Resolved bool
}

type EndRoundInput struct {
	Code     string
	PlayerID string
}

type EndRoundOutput struct {
	Result
}

// GetSessionViewInput selects the session and the player it is viewed as.
// An empty ViewerID gives the public view.
type GetSessionViewInput struct {
	Code     string
	ViewerID string
}

type GetSessionViewOutput struct {
	View *SessionView
}

type GetIdleTimeInput struct {
	Code string
}

type GetIdleTimeOutput struct {
	IdleFor time.Duration
}

type ExpireInactiveInput struct {
	MaxAge time.Duration
}

type ExpireInactiveOutput struct {
	Count int
	Codes []string
}
