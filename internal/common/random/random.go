// Package random provides the randomness used for game-determining choices:
// location draw, spy selection and starting turn offset.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_random.go github.com/KirkDiggler/spyfall/internal/common/random Random

// Random picks uniformly distributed integers
type Random interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// Config for the default random source
type Config struct {
	// Optional seed for reproducible runs; zero means seed from crypto/rand
	Seed int64
}

// DefaultRandom is a math/rand source safe for concurrent use
type DefaultRandom struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new random source
func New(cfg *Config) *DefaultRandom {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else if s, err := NewSeed(); err == nil {
		seed = s
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultRandom{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a value in [0, n)
func (r *DefaultRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
