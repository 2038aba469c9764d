package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CommandType names a command on the wire
type CommandType string

const (
	CommandCreateSession   CommandType = "create_session"
	CommandJoin            CommandType = "join"
	CommandLeave           CommandType = "leave"
	CommandDisconnect      CommandType = "disconnect"
	CommandReconnect       CommandType = "reconnect"
	CommandStartRound      CommandType = "start_round"
	CommandAcknowledgeRole CommandType = "acknowledge_role"
	CommandAdvanceTurn     CommandType = "advance_turn"
	CommandSubmitGuess     CommandType = "submit_guess"
	CommandSubmitVote      CommandType = "submit_vote"
	CommandEndRound        CommandType = "end_round"
	CommandGetView         CommandType = "get_view"
)

var (
	// ErrUnknownCommand is returned for an envelope type outside the command set
	ErrUnknownCommand = errors.New("unknown command type")

	// ErrMissingCode is returned when a session command carries no session code
	ErrMissingCode = errors.New("session code is required")

	// ErrMissingCredentials is returned when an authenticated command has no player id or secret
	ErrMissingCredentials = errors.New("player id and secret are required")
)

// Envelope is the JSON frame of every inbound command
type Envelope struct {
	Type      CommandType `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Code      string      `json:"code,omitempty"`
	PlayerID  string      `json:"player_id,omitempty"`
	Secret    string      `json:"secret,omitempty"`

	// Payload is decoded according to Type
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Command is one of the command variants declared in this file
type Command interface {
	Type() CommandType
	isCommand()
}

type CreateSession struct{}

type Join struct {
	Name     string `json:"name"`
	Observer bool   `json:"observer"`
}

type Leave struct{}

type Disconnect struct{}

type Reconnect struct{}

type StartRound struct{}

type AcknowledgeRole struct{}

type AdvanceTurn struct{}

type SubmitGuess struct {
	Location string `json:"location"`
}

type SubmitVote struct {
	AccusedID string `json:"accused_id"`
}

type EndRound struct{}

// GetView asks for the session as seen by the sending player
type GetView struct{}

func (CreateSession) Type() CommandType   { return CommandCreateSession }
func (Join) Type() CommandType            { return CommandJoin }
func (Leave) Type() CommandType           { return CommandLeave }
func (Disconnect) Type() CommandType      { return CommandDisconnect }
func (Reconnect) Type() CommandType       { return CommandReconnect }
func (StartRound) Type() CommandType      { return CommandStartRound }
func (AcknowledgeRole) Type() CommandType { return CommandAcknowledgeRole }
func (AdvanceTurn) Type() CommandType     { return CommandAdvanceTurn }
func (SubmitGuess) Type() CommandType     { return CommandSubmitGuess }
func (SubmitVote) Type() CommandType      { return CommandSubmitVote }
func (EndRound) Type() CommandType        { return CommandEndRound }
func (GetView) Type() CommandType         { return CommandGetView }

func (CreateSession) isCommand()   {}
func (Join) isCommand()            {}
func (Leave) isCommand()           {}
func (Disconnect) isCommand()      {}
func (Reconnect) isCommand()       {}
func (StartRound) isCommand()      {}
func (AcknowledgeRole) isCommand() {}
func (AdvanceTurn) isCommand()     {}
func (SubmitGuess) isCommand()     {}
func (SubmitVote) isCommand()      {}
func (EndRound) isCommand()        {}
func (GetView) isCommand()         {}

// RequiresAuth reports whether the sender must prove its player id with the secret
func RequiresAuth(cmd Command) bool {
	switch cmd.(type) {
	case CreateSession, Join:
		return false
	default:
		return true
	}
}

// Decode parses an envelope and its typed payload. The envelope is returned whenever
// it could be read, so a failure can still be answered on its reply channel.
func Decode(data []byte) (*Envelope, Command, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("failed to decode envelope: %w", err)
	}

	var cmd Command
	switch env.Type {
	case CommandCreateSession:
		cmd = CreateSession{}
	case CommandJoin:
		var join Join
		if err := decodePayload(env.Payload, &join); err != nil {
			return &env, nil, err
		}
		cmd = join
	case CommandLeave:
		cmd = Leave{}
	case CommandDisconnect:
		cmd = Disconnect{}
	case CommandReconnect:
		cmd = Reconnect{}
	case CommandStartRound:
		cmd = StartRound{}
	case CommandAcknowledgeRole:
		cmd = AcknowledgeRole{}
	case CommandAdvanceTurn:
		cmd = AdvanceTurn{}
	case CommandSubmitGuess:
		var guess SubmitGuess
		if err := decodePayload(env.Payload, &guess); err != nil {
			return &env, nil, err
		}
		cmd = guess
	case CommandSubmitVote:
		var vote SubmitVote
		if err := decodePayload(env.Payload, &vote); err != nil {
			return &env, nil, err
		}
		cmd = vote
	case CommandEndRound:
		cmd = EndRound{}
	case CommandGetView:
		cmd = GetView{}
	default:
		return &env, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
	}

	env.Code = strings.ToUpper(strings.TrimSpace(env.Code))
	if _, ok := cmd.(CreateSession); !ok && env.Code == "" {
		return &env, nil, ErrMissingCode
	}
	if RequiresAuth(cmd) && (env.PlayerID == "" || env.Secret == "") {
		return &env, nil, ErrMissingCredentials
	}

	return &env, cmd, nil
}

// Encode builds the envelope for a command. It is the inverse of Decode.
func Encode(env Envelope, cmd Command) ([]byte, error) {
	env.Type = cmd.Type()
	env.Payload = nil

	switch cmd.(type) {
	case Join, SubmitGuess, SubmitVote:
		payload, err := json.Marshal(cmd)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", cmd.Type(), err)
		}
		env.Payload = payload
	}

	return json.Marshal(env)
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
