package game

import (
	"context"

	"github.com/KirkDiggler/spyfall/internal/models"
	"go.uber.org/zap"
)

// SubmitGuess records the spy's guess. A later guess replaces an earlier one.
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	var resolved bool
	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, _ := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		if session.Phase != models.PhaseAccusing {
			return ErrPhaseMismatch
		}

		if player.Role != models.RoleSpy {
			return ErrNotAuthorized
		}

		if !s.catalog.Contains(input.Location) {
			return ErrInvalidGuessTarget
		}

		session.Accusation.HasGuessed = true
		session.Accusation.Guess = input.Location
		m.broadcast(GuessSubmitted{})

		resolved = s.tryResolve(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmitGuessOutput{
		Result:   *result,
		Resolved: resolved,
	}, nil
}

// SubmitVote records a civilian's accusation. A later vote replaces an earlier one.
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	var resolved bool
	result, _, err := s.mutate(ctx, input.Code, func(m *mutation) error {
		session := m.session

		player, _ := session.FindPlayer(input.PlayerID)
		if player == nil {
			return ErrPlayerNotFound
		}

		if session.Phase != models.PhaseAccusing {
			return ErrPhaseMismatch
		}

		if player.Role != models.RoleCivilian {
			return ErrNotAuthorized
		}

		accused, _ := session.FindPlayer(input.AccusedID)
		if accused == nil || !accused.InRound() || accused.ID == player.ID {
			return ErrInvalidVoteTarget
		}

		session.Accusation.Votes[player.ID] = accused.ID
		m.broadcast(VoteSubmitted{
			VotesCast:   len(session.Accusation.Votes),
			VotesNeeded: len(session.Civilians()),
		})

		resolved = s.tryResolve(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmitVoteOutput{
		Result:   *result,
		Resolved: resolved,
	}, nil
}

// tryResolve settles the round once the spy has guessed and every civilian has voted.
// It reports whether the accusation phase ended.
func (s *service) tryResolve(m *mutation) bool {
	session := m.session
	acc := session.Accusation

	spy := session.Spy()
	if acc == nil || spy == nil || !acc.HasGuessed {
		return false
	}

	civilians := session.Civilians()
	for _, c := range civilians {
		if _, ok := acc.Votes[c.ID]; !ok {
			return false
		}
	}

	counts := make(map[string]int)
	for _, c := range civilians {
		counts[acc.Votes[c.ID]]++
	}

	spyWon := acc.Guess == session.SecretLocation
	threshold := (len(civilians) + 1) / 2
	civiliansWon := mostAccused(counts) == spy.ID && counts[spy.ID] >= threshold

	if !spyWon && !civiliansWon {
		s.startSubRound(m)
		return true
	}

	s.summarize(m, spy, civilians, counts, spyWon, civiliansWon)
	return true
}

// mostAccused returns the ID with the strictly highest count, or "" on a tie
func mostAccused(counts map[string]int) string {
	best, bestCount, tied := "", 0, false
	for id, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, tied = id, n, false
		case n == bestCount:
			tied = true
		}
	}

	if tied {
		return ""
	}
	return best
}

// startSubRound keeps the spy and location and restarts questioning from a random member
func (s *service) startSubRound(m *mutation) {
	session := m.session

	members := session.RoundMembers()
	for _, p := range members {
		p.HasAskedQuestion = false
	}

	first := members[s.random.Intn(len(members))]
	_, session.ActivePlayerIndex = session.FindPlayer(first.ID)
	session.Accusation = nil
	session.LastRoundResult = nil
	session.Phase = models.PhasePlaying

	m.broadcast(SubRoundStarted{
		RoundNumber: session.RoundNumber,
	})
	s.continueTurns(m, true)
}

// summarize awards points and moves to the summary phase. A spy who names the location
// wins the round even when the civilians identified them; the civilians then score nothing.
func (s *service) summarize(m *mutation, spy *models.Player, civilians []*models.Player, counts map[string]int, spyWon, civiliansWon bool) {
	session := m.session
	acc := session.Accusation

	result := &models.RoundResult{
		RoundNumber:         session.RoundNumber,
		Winner:              models.WinnerCivilians,
		SpyGuessedCorrectly: spyWon,
		CiviliansWon:        civiliansWon,
		SpyID:               spy.ID,
		SpyName:             spy.Name,
		SpyGuess:            acc.Guess,
		CorrectLocation:     session.SecretLocation,
		PointsAwarded:       make(map[string]int),
		VoteCounts:          counts,
		CorrectVoterIDs:     []string{},
		CorrectVoterNames:   []string{},
		TotalCivilians:      len(civilians),
	}
	if spyWon {
		result.Winner = models.WinnerSpy
	}

	result.PointsAwarded[spy.ID] = 0
	if spyWon {
		spy.Score += SpyWinPoints
		result.PointsAwarded[spy.ID] = SpyWinPoints
	}

	for _, c := range civilians {
		result.PointsAwarded[c.ID] = 0
		if acc.Votes[c.ID] != spy.ID {
			continue
		}

		result.CorrectVoterIDs = append(result.CorrectVoterIDs, c.ID)
		result.CorrectVoterNames = append(result.CorrectVoterNames, c.Name)
		if civiliansWon && !spyWon {
			c.Score += CorrectVotePoints
			result.PointsAwarded[c.ID] = CorrectVotePoints
		}
	}
	result.CorrectVotersCount = len(result.CorrectVoterIDs)

	session.Phase = models.PhaseSummary
	session.LastRoundResult = result
	session.Accusation = nil
	session.SecretLocation = ""
	session.ActivePlayerIndex = 0
	for _, p := range session.Players {
		p.ClearRound()
	}

	m.broadcast(RoundSummarized{
		Result: result.Clone(),
	})

	s.logger.Info("round summarized",
		zap.String("code", session.Code),
		zap.Int("round", session.RoundNumber),
		zap.String("winner", string(result.Winner)),
		zap.Bool("civilians_won", civiliansWon),
	)
}
