package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from SPYFALL_* environment variables
type Config struct {
	// Redis connection used for command and notification channels
	RedisAddr     string `env:"SPYFALL_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"SPYFALL_REDIS_PASSWORD"`
	RedisDB       int    `env:"SPYFALL_REDIS_DB" envDefault:"0"`

	// ChannelPrefix namespaces every pub/sub channel and registry key
	ChannelPrefix string `env:"SPYFALL_CHANNEL_PREFIX" envDefault:"spyfall"`

	// Registry selects where live sessions are kept: memory or redis
	Registry string `env:"SPYFALL_REGISTRY" envDefault:"memory"`

	// Session limits
	MaxPlayers int `env:"SPYFALL_MAX_PLAYERS" envDefault:"12"`
	MinPlayers int `env:"SPYFALL_MIN_PLAYERS" envDefault:"1"`

	// Lifecycle timers
	InactivityThreshold time.Duration `env:"SPYFALL_INACTIVITY_THRESHOLD" envDefault:"30m"`
	SweepInterval       time.Duration `env:"SPYFALL_SWEEP_INTERVAL" envDefault:"1m"`
	SummaryDelay        time.Duration `env:"SPYFALL_SUMMARY_DELAY" envDefault:"15s"`

	// Locations overrides the built-in catalog when set
	Locations []string `env:"SPYFALL_LOCATIONS" envSeparator:","`

	// Logging
	LogLevel    string `env:"SPYFALL_LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"SPYFALL_DEVELOPMENT" envDefault:"false"`

	// RandomSeed makes game draws reproducible; zero seeds from crypto/rand
	RandomSeed int64 `env:"SPYFALL_RANDOM_SEED" envDefault:"0"`
}

// Load reads optional .env files and then parses the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

const (
	RegistryMemory = "memory"
	RegistryRedis  = "redis"
)

// Validate checks the values env tags cannot express
func (c *Config) Validate() error {
	if c.Registry != RegistryMemory && c.Registry != RegistryRedis {
		return fmt.Errorf("unknown registry %q", c.Registry)
	}

	if c.MinPlayers < 1 {
		return errors.New("min players must be at least 1")
	}

	if c.MaxPlayers < c.MinPlayers {
		return fmt.Errorf("max players (%d) must not be less than min players (%d)", c.MaxPlayers, c.MinPlayers)
	}

	if c.InactivityThreshold <= 0 {
		return errors.New("inactivity threshold must be positive")
	}

	if c.SweepInterval <= 0 {
		return errors.New("sweep interval must be positive")
	}

	if c.SummaryDelay < 0 {
		return errors.New("summary delay cannot be negative")
	}

	return nil
}
