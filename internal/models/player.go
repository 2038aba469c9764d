package models

import (
	"time"
)

// Role represents a player's secret role in a round
type Role string

const (
	// RoleNone is held outside a round, by observers and by players who joined mid-round
	RoleNone Role = ""

	// RoleSpy is held by exactly one player per round
	RoleSpy Role = "spy"

	// RoleCivilian is held by every other round member
	RoleCivilian Role = "civilian"
)

// Player represents a participant in a session
type Player struct {
	// ID is the opaque identifier of the player, stable across reconnects
	ID string

	// Secret proves ownership of ID and is only ever handed to the player itself
	Secret string

	// Name is the display name, unique within the session ignoring case
	Name string

	// IsHost marks the single player allowed to start and end rounds
	IsHost bool

	// IsObserver marks a display-only member that never plays or scores
	IsObserver bool

	// IsConnected is the liveness flag; disconnecting never removes the player
	IsConnected bool

	// Role is the player's role in the current round
	Role Role

	// Location is the secret location known to the player, empty for the spy
	Location string

	// HasAcknowledgedRole is set once the player confirmed their role this round
	HasAcknowledgedRole bool

	// HasAskedQuestion is set once the player took their turn this round
	HasAskedQuestion bool

	// Score is cumulative across rounds
	Score int

	// JoinedAt is when the player joined the session
	JoinedAt time.Time
}

// InRound reports whether the player holds a role in the current round
func (p *Player) InRound() bool {
	return p.Role != RoleNone
}

// ClearRound drops the role, location and per-round flags, keeping the score
func (p *Player) ClearRound() {
	p.Role = RoleNone
	p.Location = ""
	p.HasAcknowledgedRole = false
	p.HasAskedQuestion = false
}
