package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/spyfall/internal/common/clock"
	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/models"
	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces the registry keys
	DefaultKeyPrefix = "spyfall"

	// Key suffixes for Redis
	sessionKeySuffix  = ":session:"
	activityKeySuffix = ":sessions:activity"

	maxUpdateAttempts   = 50
	conflictInitialWait = time.Millisecond
	conflictMaxWait     = 50 * time.Millisecond
)

// ErrUpdateConflict is returned when concurrent writers kept invalidating an update
var ErrUpdateConflict = errors.New("session update conflicted too many times")

// redisRepository implements the Repository interface using Redis. Sessions are stored
// as JSON; a sorted set scored by last activity indexes them for expiry and counting.
type redisRepository struct {
	client       *redis.Client
	clock        clock.Clock
	random       random.Random
	codeLength   int
	codeAlphabet string
	keyPrefix    string
}

// NewRedis creates a new Redis-backed session registry
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	codeLength := cfg.CodeLength
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}

	codeAlphabet := cfg.CodeAlphabet
	if codeAlphabet == "" {
		codeAlphabet = DefaultCodeAlphabet
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	return &redisRepository{
		client:       cfg.RedisClient,
		clock:        cfg.Clock,
		random:       cfg.Random,
		codeLength:   codeLength,
		codeAlphabet: codeAlphabet,
		keyPrefix:    keyPrefix,
	}, nil
}

func (r *redisRepository) sessionKey(code string) string {
	return r.keyPrefix + sessionKeySuffix + code
}

func (r *redisRepository) activityKey() string {
	return r.keyPrefix + activityKeySuffix
}

func activityScore(t time.Time) float64 {
	return float64(t.UnixNano())
}

// CreateSession claims an unused code with SETNX and stores a fresh waiting session
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	now := r.clock.Now()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := newCode(r.random, r.codeLength, r.codeAlphabet)
		s := &models.Session{
			Code:           code,
			Players:        []*models.Player{},
			Phase:          models.PhaseWaiting,
			CreatedAt:      now,
			LastActivityAt: now,
		}

		data, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal session: %w", err)
		}

		created, err := r.client.SetNX(ctx, r.sessionKey(code), data, 0).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		if !created {
			continue
		}

		if err := r.client.ZAdd(ctx, r.activityKey(), redis.Z{
			Score:  activityScore(now),
			Member: code,
		}).Err(); err != nil {
			return nil, fmt.Errorf("failed to index session: %w", err)
		}

		return &CreateSessionOutput{
			Session: s,
		}, nil
	}

	return nil, ErrCodeSpaceExhausted
}

// GetSession loads a session by code
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	data, err := r.client.Get(ctx, r.sessionKey(input.Code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return decodeSession(data)
}

// UpdateSession loads, applies and writes back the session inside a WATCH transaction.
// A concurrent write to the same session retries the whole update, so Apply may run
// more than once but only one run is ever committed.
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	if input.Apply == nil {
		return nil, errors.New("apply function cannot be nil")
	}

	key := r.sessionKey(input.Code)

	var deleted bool
	update := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		s, err := decodeSession(data)
		if err != nil {
			return err
		}

		hadPlayers := len(s.Players) > 0
		if err := input.Apply(s); err != nil {
			return err
		}
		deleted = hadPlayers && len(s.Players) == 0

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if deleted {
				pipe.Del(ctx, key)
				pipe.ZRem(ctx, r.activityKey(), input.Code)
				return nil
			}

			encoded, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("failed to marshal session: %w", err)
			}

			pipe.Set(ctx, key, encoded, 0)
			pipe.ZAdd(ctx, r.activityKey(), redis.Z{
				Score:  activityScore(s.LastActivityAt),
				Member: input.Code,
			})
			return nil
		})
		return err
	}

	out, err := backoff.Retry(ctx, func() (*UpdateSessionOutput, error) {
		err := r.client.Watch(ctx, update, key)
		if errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		return &UpdateSessionOutput{
			Deleted: deleted,
		}, nil
	}, backoff.WithBackOff(conflictBackOff()), backoff.WithMaxTries(maxUpdateAttempts))
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrUpdateConflict
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

// conflictBackOff spaces out retries of a contended session
func conflictBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = conflictInitialWait
	b.MaxInterval = conflictMaxWait
	return b
}

// ExpireInactive removes sessions idle for longer than MaxAge. The activity index only
// nominates candidates; each one is re-checked inside its own WATCH transaction.
func (r *redisRepository) ExpireInactive(ctx context.Context, input *ExpireInactiveInput) (*ExpireInactiveOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.MaxAge <= 0 {
		return nil, fmt.Errorf("max age must be positive, got %s", input.MaxAge)
	}

	now := r.clock.Now()
	cutoff := now.Add(-input.MaxAge)

	codes, err := r.client.ZRangeByScore(ctx, r.activityKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatFloat(activityScore(cutoff), 'f', -1, 64),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list idle sessions: %w", err)
	}

	output := &ExpireInactiveOutput{
		Codes: []string{},
	}
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		expired, err := r.expire(ctx, code, now, input.MaxAge)
		if err != nil {
			return output, err
		}
		if expired {
			output.Codes = append(output.Codes, code)
			output.Count++
		}
	}

	return output, nil
}

func (r *redisRepository) expire(ctx context.Context, code string, now time.Time, maxAge time.Duration) (bool, error) {
	key := r.sessionKey(code)

	var expired bool
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// Stale index entry
			return tx.ZRem(ctx, r.activityKey(), code).Err()
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		s, err := decodeSession(data)
		if err != nil {
			return err
		}
		if s.IdleFor(now) <= maxAge {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, r.activityKey(), code)
			return nil
		})
		expired = err == nil
		return err
	}, key)

	// A concurrent update means the session just saw activity
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to expire session %s: %w", code, err)
	}

	return expired, nil
}

// CountSessions returns the number of indexed sessions
func (r *redisRepository) CountSessions(ctx context.Context) (int, error) {
	count, err := r.client.ZCard(ctx, r.activityKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return int(count), nil
}

func decodeSession(data []byte) (*models.Session, error) {
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if s.Players == nil {
		s.Players = []*models.Player{}
	}

	return &s, nil
}
