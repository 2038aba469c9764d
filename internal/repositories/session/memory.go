package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/spyfall/internal/common/clock"
	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the session registries
type Config struct {
	Clock  clock.Clock
	Random random.Random

	// CodeLength defaults to DefaultCodeLength
	CodeLength int

	// CodeAlphabet defaults to DefaultCodeAlphabet
	CodeAlphabet string

	// RedisClient is required by NewRedis and ignored by NewMemory
	RedisClient *redis.Client

	// KeyPrefix namespaces the Redis keys, defaults to DefaultKeyPrefix
	KeyPrefix string
}

// entry guards one session. deleted is set under mu before the entry leaves the map,
// so a caller that fetched the entry earlier sees the removal once it gets the lock.
type entry struct {
	mu      sync.Mutex
	session *models.Session
	deleted bool
}

// memoryRepository implements the Repository interface in process memory
type memoryRepository struct {
	clock        clock.Clock
	random       random.Random
	codeLength   int
	codeAlphabet string

	// mu guards sessions only; it is never held together with an entry lock
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewMemory creates a new in-memory session registry
func NewMemory(cfg *Config) (*memoryRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random cannot be nil")
	}

	codeLength := cfg.CodeLength
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}

	codeAlphabet := cfg.CodeAlphabet
	if codeAlphabet == "" {
		codeAlphabet = DefaultCodeAlphabet
	}

	return &memoryRepository{
		clock:        cfg.Clock,
		random:       cfg.Random,
		codeLength:   codeLength,
		codeAlphabet: codeAlphabet,
		sessions:     make(map[string]*entry),
	}, nil
}

// CreateSession stores a fresh waiting session under an unused code
func (r *memoryRepository) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.generateCode()
	if err != nil {
		return nil, err
	}

	s := &models.Session{
		Code:           code,
		Players:        []*models.Player{},
		Phase:          models.PhaseWaiting,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	r.sessions[code] = &entry{session: s}

	return &CreateSessionOutput{
		Session: s.Clone(),
	}, nil
}

// generateCode must be called with r.mu held for writing
func (r *memoryRepository) generateCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := newCode(r.random, r.codeLength, r.codeAlphabet)
		if _, exists := r.sessions[code]; !exists {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

// GetSession returns a deep copy taken under the session lock
func (r *memoryRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	e := r.lookup(input.Code)
	if e == nil {
		return nil, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted {
		return nil, ErrSessionNotFound
	}

	return e.session.Clone(), nil
}

// UpdateSession runs Apply against a working copy of the session. The copy replaces the
// stored session only when Apply succeeds. A session whose last player was removed is deleted.
func (r *memoryRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	if input.Apply == nil {
		return nil, errors.New("apply function cannot be nil")
	}

	e := r.lookup(input.Code)
	if e == nil {
		return nil, ErrSessionNotFound
	}

	e.mu.Lock()
	if e.deleted {
		e.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	working := e.session.Clone()
	if err := input.Apply(working); err != nil {
		e.mu.Unlock()
		return nil, err
	}

	emptied := len(e.session.Players) > 0 && len(working.Players) == 0
	e.session = working
	if emptied {
		e.deleted = true
	}
	e.mu.Unlock()

	if emptied {
		r.remove(input.Code, e)
	}

	return &UpdateSessionOutput{
		Deleted: emptied,
	}, nil
}

// ExpireInactive removes sessions idle for longer than MaxAge. Each session is checked
// under its own lock, so expiry never interleaves with an update of the same session.
func (r *memoryRepository) ExpireInactive(ctx context.Context, input *ExpireInactiveInput) (*ExpireInactiveOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.MaxAge <= 0 {
		return nil, fmt.Errorf("max age must be positive, got %s", input.MaxAge)
	}

	now := r.clock.Now()

	r.mu.RLock()
	candidates := make(map[string]*entry, len(r.sessions))
	for code, e := range r.sessions {
		candidates[code] = e
	}
	r.mu.RUnlock()

	output := &ExpireInactiveOutput{
		Codes: []string{},
	}
	for code, e := range candidates {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		if !r.expire(e, now, input.MaxAge) {
			continue
		}

		r.remove(code, e)
		output.Codes = append(output.Codes, code)
		output.Count++
	}

	return output, nil
}

func (r *memoryRepository) expire(e *entry, now time.Time, maxAge time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted || e.session.IdleFor(now) <= maxAge {
		return false
	}

	e.deleted = true
	return true
}

// CountSessions returns the number of live sessions
func (r *memoryRepository) CountSessions(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions), nil
}

func (r *memoryRepository) lookup(code string) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[code]
}

// remove deletes the map slot only if it still holds e
func (r *memoryRepository) remove(code string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions[code] == e {
		delete(r.sessions, code)
	}
}
