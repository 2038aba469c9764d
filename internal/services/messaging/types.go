package messaging

import (
	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/models"
)

// ErrorKind is the wire name of a failure classification
type ErrorKind string

const (
	ErrorKindSessionNotFound    ErrorKind = "session_not_found"
	ErrorKindPlayerNotFound     ErrorKind = "player_not_found"
	ErrorKindPhaseMismatch      ErrorKind = "phase_mismatch"
	ErrorKindNotAuthorized      ErrorKind = "not_authorized"
	ErrorKindSessionFull        ErrorKind = "session_full"
	ErrorKindDuplicateName      ErrorKind = "duplicate_name"
	ErrorKindInvalidGuessTarget ErrorKind = "invalid_guess_target"
	ErrorKindInvalidVoteTarget  ErrorKind = "invalid_vote_target"
	ErrorKindNotEnoughPlayers   ErrorKind = "not_enough_players"
	ErrorKindAlreadySubmitted   ErrorKind = "already_submitted"
	ErrorKindInvalidInput       ErrorKind = "invalid_input"
	ErrorKindInternal           ErrorKind = "internal"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a plain tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"
)

// Config contains configuration for the messaging service
type Config struct {
	// Random picks among the variants of a message
	Random random.Random
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the error returned by the game service
	Err error

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	// Kind classifies the failure for clients
	Kind ErrorKind

	// Message is the generated message
	Message string

	// Tone is the tone of the message
	Tone MessageTone
}

// GetPhaseMessageInput is the input for GetPhaseMessage
type GetPhaseMessageInput struct {
	Phase       models.Phase
	RoundNumber int
}

// GetPhaseMessageOutput is the output for GetPhaseMessage
type GetPhaseMessageOutput struct {
	Message string
}

// GetRoundSummaryMessageInput is the input for GetRoundSummaryMessage
type GetRoundSummaryMessageInput struct {
	Result *models.RoundResult
}

// GetRoundSummaryMessageOutput is the output for GetRoundSummaryMessage
type GetRoundSummaryMessageOutput struct {
	Title   string
	Message string
}
