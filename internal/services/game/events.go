package game

import "github.com/KirkDiggler/spyfall/internal/models"

// EventKind names a notification variant on the wire
type EventKind string

const (
	EventPlayerJoined      EventKind = "player_joined"
	EventPlayerLeft        EventKind = "player_left"
	EventHostChanged       EventKind = "host_changed"
	EventConnectionChanged EventKind = "connection_changed"
	EventRoundStarted      EventKind = "round_started"
	EventRoleAssigned      EventKind = "role_assigned"
	EventRoleAcknowledged  EventKind = "role_acknowledged"
	EventTurnStarted       EventKind = "turn_started"
	EventAccusationStarted EventKind = "accusation_started"
	EventGuessSubmitted    EventKind = "guess_submitted"
	EventVoteSubmitted     EventKind = "vote_submitted"
	EventSubRoundStarted   EventKind = "sub_round_started"
	EventRoundSummarized   EventKind = "round_summarized"
	EventRoundEnded        EventKind = "round_ended"
	EventSessionClosed     EventKind = "session_closed"
)

// Event is one of the notification variants declared in this file
type Event interface {
	Kind() EventKind
	isEvent()
}

// Notification is an event addressed to a session. An empty Recipient means broadcast;
// otherwise only the player with that ID may receive it.
type Notification struct {
	Code      string
	Recipient string
	Event     Event
}

// IsPrivate reports whether the notification targets a single player
func (n Notification) IsPrivate() bool {
	return n.Recipient != ""
}

type PlayerJoined struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	IsHost     bool   `json:"is_host"`
	IsObserver bool   `json:"is_observer"`
}

type PlayerLeft struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type HostChanged struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type ConnectionChanged struct {
	PlayerID  string `json:"player_id"`
	Connected bool   `json:"connected"`
}

type RoundStarted struct {
	RoundNumber int  `json:"round_number"`
	Members     int  `json:"members"`
	Automatic   bool `json:"automatic"`
}

// RoleAssigned is private to the player it describes
type RoleAssigned struct {
	RoundNumber int         `json:"round_number"`
	Role        models.Role `json:"role"`

	// Location is empty for the spy
	Location string `json:"location,omitempty"`
}

type RoleAcknowledged struct {
	PlayerID     string `json:"player_id"`
	Acknowledged int    `json:"acknowledged"`
	Total        int    `json:"total"`
}

type TurnStarted struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type AccusationStarted struct {
	RoundNumber int `json:"round_number"`
}

// GuessSubmitted carries no guess and no player so the spy stays hidden
type GuessSubmitted struct {
}

// VoteSubmitted carries counts only so voters stay anonymous until the summary
type VoteSubmitted struct {
	VotesCast   int `json:"votes_cast"`
	VotesNeeded int `json:"votes_needed"`
}

type SubRoundStarted struct {
	RoundNumber int `json:"round_number"`
}

type RoundSummarized struct {
	Result *models.RoundResult `json:"result"`
}

type RoundEnded struct {
	RoundNumber int    `json:"round_number"`
	Reason      string `json:"reason"`
}

type SessionClosed struct {
	Reason string `json:"reason"`
}

// Reasons reported by RoundEnded and SessionClosed
const (
	ReasonEndedByHost = "ended_by_host"
	ReasonSpyLeft     = "spy_left"
	ReasonNoPlayers   = "no_players"
	ReasonEmpty       = "empty"
)

func (PlayerJoined) Kind() EventKind      { return EventPlayerJoined }
func (PlayerLeft) Kind() EventKind        { return EventPlayerLeft }
func (HostChanged) Kind() EventKind       { return EventHostChanged }
func (ConnectionChanged) Kind() EventKind { return EventConnectionChanged }
func (RoundStarted) Kind() EventKind      { return EventRoundStarted }
func (RoleAssigned) Kind() EventKind      { return EventRoleAssigned }
func (RoleAcknowledged) Kind() EventKind  { return EventRoleAcknowledged }
func (TurnStarted) Kind() EventKind       { return EventTurnStarted }
func (AccusationStarted) Kind() EventKind { return EventAccusationStarted }
func (GuessSubmitted) Kind() EventKind    { return EventGuessSubmitted }
func (VoteSubmitted) Kind() EventKind     { return EventVoteSubmitted }
func (SubRoundStarted) Kind() EventKind   { return EventSubRoundStarted }
func (RoundSummarized) Kind() EventKind   { return EventRoundSummarized }
func (RoundEnded) Kind() EventKind        { return EventRoundEnded }
func (SessionClosed) Kind() EventKind     { return EventSessionClosed }

func (PlayerJoined) isEvent()      {}
func (PlayerLeft) isEvent()        {}
func (HostChanged) isEvent()       {}
func (ConnectionChanged) isEvent() {}
func (RoundStarted) isEvent()      {}
func (RoleAssigned) isEvent()      {}
func (RoleAcknowledged) isEvent()  {}
func (TurnStarted) isEvent()       {}
func (AccusationStarted) isEvent() {}
func (GuessSubmitted) isEvent()    {}
func (VoteSubmitted) isEvent()     {}
func (SubRoundStarted) isEvent()   {}
func (RoundSummarized) isEvent()   {}
func (RoundEnded) isEvent()        {}
func (SessionClosed) isEvent()     {}
