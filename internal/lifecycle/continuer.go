package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/spyfall/internal/services/game"
	"go.uber.org/zap"
)

// DefaultSummaryDelay is how long a round summary stays up before the next round starts
const DefaultSummaryDelay = 15 * time.Second

// Publisher delivers the notifications of an automatic round start
type Publisher interface {
	Publish(ctx context.Context, notifications []game.Notification) error
}

// ContinuerConfig holds configuration for the auto continuer
type ContinuerConfig struct {
	GameService game.Service
	Publisher   Publisher

	// Delay after a summary; zero or less disables automatic continuation
	Delay time.Duration

	Logger *zap.Logger
}

// AutoContinuer starts the next round once a summary has been shown long enough.
// At most one timer is pending per session; scheduling again replaces it.
type AutoContinuer struct {
	gameService game.Service
	publisher   Publisher
	delay       time.Duration
	logger      *zap.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// NewAutoContinuer creates a new auto continuer
func NewAutoContinuer(cfg *ContinuerConfig) (*AutoContinuer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.Publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AutoContinuer{
		gameService: cfg.GameService,
		publisher:   cfg.Publisher,
		delay:       cfg.Delay,
		logger:      logger,
		timers:      make(map[string]*time.Timer),
	}, nil
}

// Schedule arranges for the round after roundNumber to start in the session
func (a *AutoContinuer) Schedule(code string, roundNumber int) {
	if a.delay <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	if existing, ok := a.timers[code]; ok && existing.Stop() {
		a.wg.Done()
	}

	a.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(a.delay, func() {
		defer a.wg.Done()

		a.mu.Lock()
		if a.timers[code] == timer {
			delete(a.timers, code)
		}
		a.mu.Unlock()

		a.continueRound(code, roundNumber)
	})
	a.timers[code] = timer
}

// Pending returns the number of scheduled continuations
func (a *AutoContinuer) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.timers)
}

// Stop cancels pending continuations and waits for any that already fired
func (a *AutoContinuer) Stop() {
	a.mu.Lock()
	a.stopped = true
	for code, timer := range a.timers {
		if timer.Stop() {
			a.wg.Done()
		}
		delete(a.timers, code)
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *AutoContinuer) continueRound(code string, roundNumber int) {
	ctx := context.Background()
	logger := a.logger.With(zap.String("code", code), zap.Int("round", roundNumber))

	out, err := a.gameService.StartRound(ctx, &game.StartRoundInput{
		Code:          code,
		Automatic:     true,
		ExpectedRound: roundNumber,
	})
	if err != nil {
		// The session moved on, emptied or expired while the summary was up
		logger.Debug("skipping automatic round start", zap.Error(err))
		return
	}

	if err := a.publisher.Publish(ctx, out.Notifications); err != nil {
		logger.Error("failed to publish automatic round start", zap.Error(err))
		return
	}

	logger.Info("started next round automatically", zap.Int("next_round", out.RoundNumber))
}
