package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/spyfall/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/spyfall/internal/models"
)

// Repository defines the interface for the live session registry
type Repository interface {
	// CreateSession stores a new empty session under a fresh code
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession returns a snapshot of a session by code
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// UpdateSession applies a mutation with exclusive access to one session
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error)

	// ExpireInactive removes every session idle for longer than the given age
	ExpireInactive(ctx context.Context, input *ExpireInactiveInput) (*ExpireInactiveOutput, error)

	// CountSessions returns the number of live sessions
	CountSessions(ctx context.Context) (int, error)
}
