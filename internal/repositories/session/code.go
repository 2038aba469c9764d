package session

import (
	"errors"
	"strings"

	"github.com/KirkDiggler/spyfall/internal/common/random"
)

const (
	// DefaultCodeLength is the number of characters in a session code
	DefaultCodeLength = 6

	// DefaultCodeAlphabet leaves out characters that are easy to misread (I, O, 0, 1)
	DefaultCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 100
)

var (
	// ErrSessionNotFound is returned when no live session has the code
	ErrSessionNotFound = errors.New("session not found")

	// ErrCodeSpaceExhausted is returned when no free code could be generated
	ErrCodeSpaceExhausted = errors.New("could not generate a unique session code")
)

// newCode draws one candidate code; callers check it against live sessions
func newCode(rnd random.Random, length int, alphabet string) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(alphabet[rnd.Intn(len(alphabet))])
	}
	return sb.String()
}
