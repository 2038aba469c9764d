package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound    GameError = "session not found"
	ErrPlayerNotFound     GameError = "player not found"
	ErrPhaseMismatch      GameError = "operation not allowed in the current phase"
	ErrNotAuthorized      GameError = "player is not allowed to do that"
	ErrSessionFull        GameError = "session is at maximum capacity"
	ErrDuplicateName      GameError = "name is already taken in this session"
	ErrInvalidGuessTarget GameError = "guessed location does not exist"
	ErrInvalidVoteTarget  GameError = "accused player is not in the round"
	ErrNotEnoughPlayers   GameError = "not enough players to start a round"
	ErrAlreadySubmitted   GameError = "already done"
	ErrInvalidInput       GameError = "invalid input"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilSessionRepo     GameError = "session repository cannot be nil"
	ErrNilCatalog         GameError = "catalog cannot be nil"
	ErrNilRandom          GameError = "random cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrNilUUIDGenerator   GameError = "UUID generator cannot be nil"
)
