package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/spyfall/internal/common/clock Clock

// Clock supplies the timestamps recorded on sessions. Session activity times drive expiry,
// so every registry and the game service must read time from the same Clock.
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time in UTC without a monotonic reading, so values compare
// equal after a JSON round trip through the Redis registry.
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
