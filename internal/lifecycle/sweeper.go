// Package lifecycle runs the timers that act on sessions without a client command:
// expiring idle sessions and starting the next round after a summary.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/spyfall/internal/services/game"
	"go.uber.org/zap"
)

const (
	// DefaultSweepInterval is how often idle sessions are looked for
	DefaultSweepInterval = time.Minute

	// DefaultInactivityThreshold is how long a session may go without activity
	DefaultInactivityThreshold = 30 * time.Minute
)

// SweeperConfig holds configuration for the sweeper
type SweeperConfig struct {
	GameService         game.Service
	Interval            time.Duration
	InactivityThreshold time.Duration
	Logger              *zap.Logger
}

// Sweeper periodically expires idle sessions
type Sweeper struct {
	gameService game.Service
	interval    time.Duration
	threshold   time.Duration
	logger      *zap.Logger
}

// NewSweeper creates a new sweeper
func NewSweeper(cfg *SweeperConfig) (*Sweeper, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	threshold := cfg.InactivityThreshold
	if threshold <= 0 {
		threshold = DefaultInactivityThreshold
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Sweeper{
		gameService: cfg.GameService,
		interval:    interval,
		threshold:   threshold,
		logger:      logger,
	}, nil
}

// Run sweeps on every tick until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep expires idle sessions once and returns how many were removed
func (s *Sweeper) Sweep(ctx context.Context) int {
	out, err := s.gameService.ExpireInactive(ctx, &game.ExpireInactiveInput{
		MaxAge: s.threshold,
	})
	if err != nil {
		s.logger.Error("failed to expire inactive sessions", zap.Error(err))
		return 0
	}

	if out.Count > 0 {
		s.logger.Info("expired inactive sessions",
			zap.Int("count", out.Count),
			zap.Strings("codes", out.Codes))
	}

	return out.Count
}
