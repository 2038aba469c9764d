package models

import (
	"strings"
	"time"
)

// Phase represents the current stage of a game session
type Phase string

const (
	// PhaseWaiting indicates the session is in its lobby between rounds
	PhaseWaiting Phase = "waiting"

	// PhaseInforming indicates roles were dealt and players are acknowledging them
	PhaseInforming Phase = "informing"

	// PhasePlaying indicates players are taking turns asking questions
	PhasePlaying Phase = "playing"

	// PhaseAccusing indicates the spy is guessing and civilians are voting
	PhaseAccusing Phase = "accusing"

	// PhaseSummary indicates a round was won and its result is on display
	PhaseSummary Phase = "summary"
)

// IsActiveRound reports whether roles are dealt in this phase
func (p Phase) IsActiveRound() bool {
	return p == PhaseInforming || p == PhasePlaying || p == PhaseAccusing
}

// AccusationState holds the submissions of the accusation phase
type AccusationState struct {
	// HasGuessed is set once the spy submitted a location guess
	HasGuessed bool

	// Guess is the spy's latest location guess
	Guess string

	// Votes maps a civilian's player ID to the ID of the player they accuse
	Votes map[string]string
}

// Session represents one live game instance
type Session struct {
	// Code is the short human-enterable identifier of the session
	Code string

	// Players is the roster; its order is the turn order within a round
	Players []*Player

	// ActivePlayerIndex indexes Players; meaningful only while playing
	ActivePlayerIndex int

	// RoundNumber counts the rounds started in this session
	RoundNumber int

	// Phase is the current stage of the session
	Phase Phase

	// SecretLocation is the location of the current round, empty outside a round
	SecretLocation string

	// Accusation is non-nil only while accusing
	Accusation *AccusationState

	// LastRoundResult is non-nil only during the summary phase
	LastRoundResult *RoundResult

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// LastActivityAt is when the session was last mutated
	LastActivityAt time.Time
}

// FindPlayer returns the player with the given ID and its roster index, or nil and -1
func (s *Session) FindPlayer(id string) (*Player, int) {
	for i, p := range s.Players {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

// NameTaken reports whether a player already uses the name, ignoring case
func (s *Session) NameTaken(name string) bool {
	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// Host returns the host player, or nil for an empty session
func (s *Session) Host() *Player {
	for _, p := range s.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// ActivePlayer returns the player whose turn it is, or nil when the index is out of range
func (s *Session) ActivePlayer() *Player {
	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.ActivePlayerIndex]
}

// Participants returns the non-observer players in roster order
func (s *Session) Participants() []*Player {
	participants := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.IsObserver {
			participants = append(participants, p)
		}
	}
	return participants
}

// RoundMembers returns the players holding a role in the current round, in roster order
func (s *Session) RoundMembers() []*Player {
	members := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.InRound() {
			members = append(members, p)
		}
	}
	return members
}

// Spy returns the spy of the current round, or nil outside a round
func (s *Session) Spy() *Player {
	for _, p := range s.Players {
		if p.Role == RoleSpy {
			return p
		}
	}
	return nil
}

// Civilians returns the civilians of the current round in roster order
func (s *Session) Civilians() []*Player {
	civilians := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Role == RoleCivilian {
			civilians = append(civilians, p)
		}
	}
	return civilians
}

// IdleFor returns the time elapsed since the last activity
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActivityAt)
}

// Clone returns a deep copy that shares no mutable state with the session
func (s *Session) Clone() *Session {
	clone := *s

	clone.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		pc := *p
		clone.Players[i] = &pc
	}

	if s.Accusation != nil {
		acc := *s.Accusation
		acc.Votes = make(map[string]string, len(s.Accusation.Votes))
		for voter, accused := range s.Accusation.Votes {
			acc.Votes[voter] = accused
		}
		clone.Accusation = &acc
	}

	if s.LastRoundResult != nil {
		clone.LastRoundResult = s.LastRoundResult.Clone()
	}

	return &clone
}
