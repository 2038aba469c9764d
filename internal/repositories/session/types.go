package session

import (
	"time"

	"github.com/KirkDiggler/spyfall/internal/models"
)

type CreateSessionInput struct {
}

type CreateSessionOutput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Code string
}

// ApplyFunc mutates a session. Returning an error discards every change it made.
type ApplyFunc func(session *models.Session) error

type UpdateSessionInput struct {
	Code  string
	Apply ApplyFunc
}

type UpdateSessionOutput struct {
	// Deleted is set when the update removed the last player and the session with it
	Deleted bool
}

type ExpireInactiveInput struct {
	MaxAge time.Duration
}

type ExpireInactiveOutput struct {
	Count int
	Codes []string
}
