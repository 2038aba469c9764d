package models

import (
	"sort"
)

// Standing is one row of a session scoreboard
type Standing struct {
	// PlayerID is the unique identifier of the player
	PlayerID string `json:"player_id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Score is the player's cumulative score
	Score int `json:"score"`
}

// Scoreboard returns the standings of every non-observer player, highest score first
func (s *Session) Scoreboard() []Standing {
	standings := make([]Standing, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsObserver {
			continue
		}
		standings = append(standings, Standing{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].Name < standings[j].Name
	})

	return standings
}
