package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/spyfall/internal/services/game Service

import "context"

// Service defines the interface for game session operations
type Service interface {
	// CreateSession registers a new empty session and returns its code
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a player to a session
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// LeaveSession removes a player, deleting the session when it becomes empty
	LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error)

	// SetConnected records a player's transport connecting or dropping
	SetConnected(ctx context.Context, input *SetConnectedInput) (*SetConnectedOutput, error)

	// Authenticate checks that a secret belongs to a player
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// StartRound deals roles and a location for a new round
	StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error)

	// AcknowledgeRole confirms a player has seen their role
	AcknowledgeRole(ctx context.Context, input *AcknowledgeRoleInput) (*AcknowledgeRoleOutput, error)

	// AdvanceTurn ends the active player's turn
	AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error)

	// SubmitGuess records the spy's location guess
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// SubmitVote records a civilian's accusation
	SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error)

	// EndRound returns the session to the lobby, keeping scores
	EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error)

	// GetSessionView returns the session as one viewer may see it
	GetSessionView(ctx context.Context, input *GetSessionViewInput) (*GetSessionViewOutput, error)

	// GetIdleTime returns how long a session has gone without activity
	GetIdleTime(ctx context.Context, input *GetIdleTimeInput) (*GetIdleTimeOutput, error)

	// ExpireInactive removes sessions idle for longer than a threshold
	ExpireInactive(ctx context.Context, input *ExpireInactiveInput) (*ExpireInactiveOutput, error)
}
