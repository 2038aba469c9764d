package game

import (
	"context"

	"github.com/KirkDiggler/spyfall/internal/models"
	"go.uber.org/zap"
)

// StartRound deals a new round: one spy, one location shared by the civilians and a
// random first player. Only connected non-observers are dealt in.
func (s *service) StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		if input.Automatic {
			// A timer scheduled for an earlier summary must not restart a newer round
			if session.Phase != models.PhaseSummary || session.RoundNumber != input.ExpectedRound {
				return ErrPhaseMismatch
			}
		} else {
			player, _ := session.FindPlayer(input.PlayerID)
			if player == nil {
				return ErrPlayerNotFound
			}

			if !player.IsHost {
				return ErrNotAuthorized
			}

			if session.Phase != models.PhaseWaiting && session.Phase != models.PhaseSummary {
				return ErrPhaseMismatch
			}
		}

		return s.dealRound(m, input.Automatic)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("round started",
		zap.String("code", input.Code),
		zap.Int("round", result.RoundNumber),
		zap.Bool("automatic", input.Automatic),
	)

	return &StartRoundOutput{
		Result: *result,
	}, nil
}

func (s *service) dealRound(m *mutation, automatic bool) error {
	session := m.session

	members := make([]*models.Player, 0, len(session.Players))
	for _, p := range session.Players {
		if !p.IsObserver && p.IsConnected {
			members = append(members, p)
		}
	}
	if len(members) == 0 || len(members) < s.minPlayers {
		return ErrNotEnoughPlayers
	}

	// Draw order is location, spy, first player
	location := s.catalog.Pick(s.random)
	spy := members[s.random.Intn(len(members))]
	first := members[s.random.Intn(len(members))]

	for _, p := range session.Players {
		p.ClearRound()
	}
	for _, p := range members {
		if p == spy {
			p.Role = models.RoleSpy
			continue
		}
		p.Role = models.RoleCivilian
		p.Location = location
	}

	session.RoundNumber++
	session.Phase = models.PhaseInforming
	session.SecretLocation = location
	session.Accusation = nil
	session.LastRoundResult = nil
	_, session.ActivePlayerIndex = session.FindPlayer(first.ID)

	m.broadcast(RoundStarted{
		RoundNumber: session.RoundNumber,
		Members:     len(members),
		Automatic:   automatic,
	})
	for _, p := range members {
		m.send(p.ID, RoleAssigned{
			RoundNumber: session.RoundNumber,
			Role:        p.Role,
			Location:    p.Location,
		})
	}

	return nil
}

// AcknowledgeRole marks the player as ready. The last connected member to acknowledge
// moves the session into the playing phase.
func (s *service) AcknowledgeRole(ctx context.Context, input *AcknowledgeRoleInput) (*AcknowledgeRoleOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, _ := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		if session.Phase != models.PhaseInforming {
			return ErrPhaseMismatch
		}

		if !player.InRound() {
			return ErrNotAuthorized
		}

		if player.HasAcknowledgedRole {
			return ErrAlreadySubmitted
		}

		player.HasAcknowledgedRole = true

		members := session.RoundMembers()
		acknowledged := 0
		for _, p := range members {
			if p.HasAcknowledgedRole {
				acknowledged++
			}
		}
		m.broadcast(RoleAcknowledged{
			PlayerID:     player.ID,
			Acknowledged: acknowledged,
			Total:        len(members),
		})

		s.checkAcknowledged(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AcknowledgeRoleOutput{
		Result: *result,
	}, nil
}

// checkAcknowledged starts play once every connected member has acknowledged
func (s *service) checkAcknowledged(m *mutation) {
	connected := 0
	for _, p := range m.session.RoundMembers() {
		if !p.IsConnected {
			continue
		}
		if !p.HasAcknowledgedRole {
			return
		}
		connected++
	}

	if connected == 0 {
		return
	}

	m.session.Phase = models.PhasePlaying
	s.continueTurns(m, true)
}

// AdvanceTurn ends the active player's turn and passes it to the next eligible member
func (s *service) AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	var activeID string
	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, _ := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		if session.Phase != models.PhasePlaying {
			return ErrPhaseMismatch
		}

		active := session.ActivePlayer()
		if active == nil || active.ID != player.ID {
			return ErrNotAuthorized
		}

		active.HasAskedQuestion = true
		s.continueTurns(m, false)

		if session.Phase == models.PhasePlaying {
			activeID = session.ActivePlayer().ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AdvanceTurnOutput{
		Result:         *result,
		ActivePlayerID: activeID,
	}, nil
}

// continueTurns keeps the turn on an eligible member or starts the accusation phase
// when nobody is left to ask. announce forces a TurnStarted even if the turn stays put.
func (s *service) continueTurns(m *mutation, announce bool) {
	session := m.session

	allAsked := true
	for _, p := range session.RoundMembers() {
		if !p.HasAskedQuestion {
			allAsked = false
			break
		}
	}
	if allAsked {
		s.startAccusation(m)
		return
	}

	idx, ok := nextEligible(session, session.ActivePlayerIndex)
	if !ok {
		s.startAccusation(m)
		return
	}

	if idx == session.ActivePlayerIndex && !announce {
		return
	}

	session.ActivePlayerIndex = idx
	next := session.Players[idx]
	m.broadcast(TurnStarted{
		PlayerID: next.ID,
		Name:     next.Name,
	})
}

// nextEligible scans the roster from start, wrapping, for at most one lap
func nextEligible(session *models.Session, start int) (int, bool) {
	n := len(session.Players)
	if n == 0 {
		return -1, false
	}

	if start < 0 {
		start = 0
	}

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		p := session.Players[idx]
		if p.InRound() && p.IsConnected && !p.HasAskedQuestion {
			return idx, true
		}
	}

	return -1, false
}

func (s *service) startAccusation(m *mutation) {
	session := m.session

	session.Phase = models.PhaseAccusing
	session.Accusation = &models.AccusationState{
		Votes: make(map[string]string),
	}

	m.broadcast(AccusationStarted{
		RoundNumber: session.RoundNumber,
	})
}

// EndRound sends the session back to the lobby. Scores are kept.
func (s *service) EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, _ := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		if !player.IsHost {
			return ErrNotAuthorized
		}

		if session.Phase == models.PhaseWaiting {
			return ErrPhaseMismatch
		}

		s.abortRound(m, ReasonEndedByHost)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("round ended",
		zap.String("code", input.Code),
		zap.Int("round", result.RoundNumber),
	)

	return &EndRoundOutput{
		Result: *result,
	}, nil
}

func (s *service) abortRound(m *mutation, reason string) {
	session := m.session

	session.Phase = models.PhaseWaiting
	session.SecretLocation = ""
	session.Accusation = nil
	session.LastRoundResult = nil
	session.ActivePlayerIndex = 0
	for _, p := range session.Players {
		p.ClearRound()
	}

	m.broadcast(RoundEnded{
		RoundNumber: session.RoundNumber,
		Reason:      reason,
	})
}
