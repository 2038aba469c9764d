package game

import (
	"context"
	"time"

	"github.com/KirkDiggler/spyfall/internal/models"
)

// SessionView is a read-only projection of a session for one viewer. It never carries a
// secret, and role and location only ever appear on the viewer's own entry.
type SessionView struct {
	Code           string          `json:"code"`
	Phase          models.Phase    `json:"phase"`
	RoundNumber    int             `json:"round_number"`
	ActivePlayerID string          `json:"active_player_id,omitempty"`
	Players        []*PlayerView   `json:"players"`
	Accusation     *AccusationView `json:"accusation,omitempty"`

	// LastRoundResult is set during the summary phase and reveals the spy
	LastRoundResult *models.RoundResult `json:"last_round_result,omitempty"`

	Scoreboard     []models.Standing `json:"scoreboard"`
	CreatedAt      time.Time         `json:"created_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
}

// PlayerView is a redacted player
type PlayerView struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IsHost              bool   `json:"is_host"`
	IsObserver          bool   `json:"is_observer"`
	IsConnected         bool   `json:"is_connected"`
	InRound             bool   `json:"in_round"`
	HasAcknowledgedRole bool   `json:"has_acknowledged_role"`
	HasAskedQuestion    bool   `json:"has_asked_question"`
	Score               int    `json:"score"`

	// IsViewer marks the entry of the player the view was built for
	IsViewer bool `json:"is_viewer"`

	// Role and Location are only set when IsViewer is true
	Role     models.Role `json:"role,omitempty"`
	Location string      `json:"location,omitempty"`
}

// AccusationView shows progress without guesses or vote targets
type AccusationView struct {
	HasGuessed  bool `json:"has_guessed"`
	VotesCast   int  `json:"votes_cast"`
	VotesNeeded int  `json:"votes_needed"`
}

// GetSessionView builds the projection from a snapshot; the session is not touched
func (s *service) GetSessionView(ctx context.Context, input *GetSessionViewInput) (*GetSessionViewOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if input.ViewerID != "" {
		if viewer, _ := session.FindPlayer(input.ViewerID); viewer == nil {
			return nil, ErrPlayerNotFound
		}
	}

	return &GetSessionViewOutput{
		View: buildView(session, input.ViewerID),
	}, nil
}

func buildView(session *models.Session, viewerID string) *SessionView {
	view := &SessionView{
		Code:            session.Code,
		Phase:           session.Phase,
		RoundNumber:     session.RoundNumber,
		Players:         make([]*PlayerView, 0, len(session.Players)),
		LastRoundResult: session.LastRoundResult,
		Scoreboard:      session.Scoreboard(),
		CreatedAt:       session.CreatedAt,
		LastActivityAt:  session.LastActivityAt,
	}

	if session.Phase == models.PhasePlaying {
		if active := session.ActivePlayer(); active != nil {
			view.ActivePlayerID = active.ID
		}
	}

	for _, p := range session.Players {
		pv := &PlayerView{
			ID:                  p.ID,
			Name:                p.Name,
			IsHost:              p.IsHost,
			IsObserver:          p.IsObserver,
			IsConnected:         p.IsConnected,
			InRound:             p.InRound(),
			HasAcknowledgedRole: p.HasAcknowledgedRole,
			HasAskedQuestion:    p.HasAskedQuestion,
			Score:               p.Score,
		}
		if viewerID != "" && p.ID == viewerID {
			pv.IsViewer = true
			pv.Role = p.Role
			pv.Location = p.Location
		}
		view.Players = append(view.Players, pv)
	}

	if acc := session.Accusation; acc != nil {
		view.Accusation = &AccusationView{
			HasGuessed:  acc.HasGuessed,
			VotesCast:   len(acc.Votes),
			VotesNeeded: len(session.Civilians()),
		}
	}

	return view
}
