package game

import (
	"github.com/KirkDiggler/spyfall/internal/models"
)

func (s *GameServiceTestSuite) scores(code string) map[string]int {
	out := make(map[string]int)
	for _, p := range s.snapshot(code).Players {
		out[p.ID] = p.Score
	}
	return out
}

func (s *GameServiceTestSuite) TestEndToEnd_CiviliansCatchTheSpy() {
	code, players := s.lobby("A", "B", "C")
	a, b, c := players[0], players[1], players[2]

	s.startRound(code, a, 3, 0, 1, 0)
	session := s.snapshot(code)
	s.Equal(models.RoleSpy, session.Players[1].Role)
	s.Equal(session.Players[0].Location, session.Players[2].Location)
	s.NotEmpty(session.Players[0].Location)

	s.acknowledgeAll(code, players)
	s.askAll(code)
	s.Equal(models.PhaseAccusing, s.snapshot(code).Phase)

	out := s.guess(code, b, "Casino")
	s.False(out.Resolved)
	s.vote(code, a, b)
	final := s.vote(code, c, b)
	s.True(final.Resolved)
	s.Equal(models.PhaseSummary, final.Phase)

	session = s.snapshot(code)
	s.Equal(map[string]int{a.ID: 1, b.ID: 0, c.ID: 1}, s.scores(code))

	result := session.LastRoundResult
	s.Require().NotNil(result)
	s.Equal(2, result.CorrectVotersCount)
	s.Equal(models.WinnerCivilians, result.Winner)
	s.True(result.CiviliansWon)
	s.False(result.SpyGuessedCorrectly)
	s.Equal(b.ID, result.SpyID)
	s.Equal("B", result.SpyName)
	s.Equal("Casino", result.SpyGuess)
	s.Equal("Bank", result.CorrectLocation)
	s.Equal(2, result.TotalCivilians)
	s.Equal([]string{a.ID, c.ID}, result.CorrectVoterIDs)
	s.Equal([]string{"A", "C"}, result.CorrectVoterNames)
	s.Equal(map[string]int{b.ID: 2}, result.VoteCounts)
	s.Equal(map[string]int{a.ID: 1, b.ID: 0, c.ID: 1}, result.PointsAwarded)

	s.Nil(session.Accusation)
	s.Empty(session.SecretLocation)
	for _, p := range session.Players {
		s.Equal(models.RoleNone, p.Role)
	}

	last := final.Notifications[len(final.Notifications)-1]
	summarized, ok := last.Event.(RoundSummarized)
	s.Require().True(ok)
	s.Equal(result, summarized.Result)
}

func (s *GameServiceTestSuite) TestEndToEnd_SpyNamesTheLocation() {
	code, players := s.lobby("A", "B", "C")
	a, b, c := players[0], players[1], players[2]
	s.toAccusing(code, players, 0, 1, 0)

	s.guess(code, b, "Bank")
	s.vote(code, a, c)
	out := s.vote(code, c, a)
	s.Equal(models.PhaseSummary, out.Phase)

	s.Equal(map[string]int{a.ID: 0, b.ID: 3, c.ID: 0}, s.scores(code))
	result := s.snapshot(code).LastRoundResult
	s.Equal(models.WinnerSpy, result.Winner)
	s.True(result.SpyGuessedCorrectly)
	s.False(result.CiviliansWon)
	s.Zero(result.CorrectVotersCount)
}

func (s *GameServiceTestSuite) TestSpyWinsWhileIdentified() {
	code, players := s.lobby("A", "B", "C")
	a, b, c := players[0], players[1], players[2]
	s.toAccusing(code, players, 0, 1, 0)

	s.vote(code, a, b)
	s.vote(code, c, b)
	s.guess(code, b, "Bank")

	s.Equal(map[string]int{a.ID: 0, b.ID: 3, c.ID: 0}, s.scores(code))
	result := s.snapshot(code).LastRoundResult
	s.True(result.SpyGuessedCorrectly)
	s.True(result.CiviliansWon)
	s.Equal(models.WinnerSpy, result.Winner)
	s.Equal(2, result.CorrectVotersCount)
	s.Equal(map[string]int{a.ID: 0, b.ID: 3, c.ID: 0}, result.PointsAwarded)
}

func (s *GameServiceTestSuite) TestMajority_TwoCiviliansNeedBothVotes() {
	code, players := s.lobby("Spy", "Civ1", "Civ2")
	spy, civ1, civ2 := players[0], players[1], players[2]
	s.toAccusing(code, players, 0, 0, 0)

	s.guess(code, spy, "Beach")
	s.vote(code, civ1, spy)
	s.mockRandom.EXPECT().Intn(3).Return(1)
	out := s.vote(code, civ2, civ1)
	s.True(out.Resolved)
	s.Equal(models.PhasePlaying, out.Phase, "one correct vote of two is not a majority")

	s.askAll(code)
	s.guess(code, spy, "Beach")
	s.vote(code, civ1, spy)
	out = s.vote(code, civ2, spy)
	s.Equal(models.PhaseSummary, out.Phase)
	s.Equal(map[string]int{spy.ID: 0, civ1.ID: 1, civ2.ID: 1}, s.scores(code))
}

func (s *GameServiceTestSuite) TestMajority_ThreeCiviliansNeedTwoVotes() {
	code, players := s.lobby("Spy", "Civ1", "Civ2", "Civ3")
	spy, civ1, civ2, civ3 := players[0], players[1], players[2], players[3]
	s.toAccusing(code, players, 0, 0, 0)

	s.guess(code, spy, "Beach")
	s.vote(code, civ1, spy)
	s.vote(code, civ2, civ3)
	s.mockRandom.EXPECT().Intn(4).Return(0)
	out := s.vote(code, civ3, civ2)
	s.Equal(models.PhasePlaying, out.Phase, "one correct vote of three is not a majority")

	s.askAll(code)
	s.guess(code, spy, "Beach")
	s.vote(code, civ1, spy)
	s.vote(code, civ2, spy)
	out = s.vote(code, civ3, civ1)
	s.Equal(models.PhaseSummary, out.Phase)
	s.Equal(map[string]int{spy.ID: 0, civ1.ID: 1, civ2.ID: 1, civ3.ID: 0}, s.scores(code))
	s.Equal(2, s.snapshot(code).LastRoundResult.CorrectVotersCount)
}

func (s *GameServiceTestSuite) TestNoWinner_StartsSubRound() {
	code, players := s.lobby("A", "B", "C", "D")
	a, b, c, d := players[0], players[1], players[2], players[3]
	s.toAccusing(code, players, 2, 1, 0)
	before := s.snapshot(code)

	s.guess(code, b, "Bank")
	s.vote(code, a, c)
	s.vote(code, c, d)
	s.mockRandom.EXPECT().Intn(4).Return(3)
	out := s.vote(code, d, a)

	s.True(out.Resolved)
	s.Equal(models.PhasePlaying, out.Phase)
	s.Equal([]EventKind{EventVoteSubmitted, EventSubRoundStarted, EventTurnStarted}, kinds(out.Notifications))

	session := s.snapshot(code)
	s.Equal(before.RoundNumber, session.RoundNumber)
	s.Equal("Casino", session.SecretLocation)
	s.Equal(b.ID, session.Spy().ID)
	s.Equal(d.ID, session.ActivePlayer().ID)
	s.Nil(session.Accusation)
	s.Nil(session.LastRoundResult)
	for _, p := range session.Players {
		s.False(p.HasAskedQuestion)
		s.Zero(p.Score)
		if p.Role == models.RoleCivilian {
			s.Equal("Casino", p.Location)
		}
	}
}

func (s *GameServiceTestSuite) TestSubmitGuess_Failures() {
	code, players := s.lobby("A", "B")
	spy, civ := players[0], players[1]

	_, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		Code:     code,
		PlayerID: spy.ID,
		Location: "Bank",
	})
	s.ErrorIs(err, ErrPhaseMismatch)

	s.toAccusing(code, players, 0, 0, 0)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		Code:     code,
		PlayerID: civ.ID,
		Location: "Bank",
	})
	s.ErrorIs(err, ErrNotAuthorized)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		Code:     code,
		PlayerID: spy.ID,
		Location: "Moon Base",
	})
	s.ErrorIs(err, ErrInvalidGuessTarget)

	session := s.snapshot(code)
	s.False(session.Accusation.HasGuessed)
}

func (s *GameServiceTestSuite) TestSubmitGuess_LaterGuessOverwrites() {
	code, players := s.lobby("A", "B", "C")
	spy := players[0]
	s.toAccusing(code, players, 0, 0, 0)

	s.guess(code, spy, "Beach")
	out := s.guess(code, spy, "Casino")
	s.False(out.Resolved)

	acc := s.snapshot(code).Accusation
	s.True(acc.HasGuessed)
	s.Equal("Casino", acc.Guess)
}

func (s *GameServiceTestSuite) TestSubmitVote_Failures() {
	code, players := s.lobby("A", "B", "C")
	spy, civ1, civ2 := players[0], players[1], players[2]
	s.toAccusing(code, players, 0, 0, 0)

	_, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  spy.ID,
		AccusedID: civ1.ID,
	})
	s.ErrorIs(err, ErrNotAuthorized, "the spy never votes")

	_, err = s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  civ1.ID,
		AccusedID: civ1.ID,
	})
	s.ErrorIs(err, ErrInvalidVoteTarget)

	_, err = s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  civ1.ID,
		AccusedID: "ghost",
	})
	s.ErrorIs(err, ErrInvalidVoteTarget)

	_, err = s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  "ghost",
		AccusedID: spy.ID,
	})
	s.ErrorIs(err, ErrPlayerNotFound)

	s.Empty(s.snapshot(code).Accusation.Votes)

	out := s.vote(code, civ1, civ2)
	s.Equal(VoteSubmitted{VotesCast: 1, VotesNeeded: 2}, out.Notifications[0].Event)
	s.vote(code, civ1, spy)
	s.Equal(map[string]string{civ1.ID: spy.ID}, s.snapshot(code).Accusation.Votes)
}

func (s *GameServiceTestSuite) TestSubmitVote_ObserverIsNotATarget() {
	code := s.newSession()
	a := s.join(code, "A")
	tv := s.joinObserver(code, "TV")
	b := s.join(code, "B")
	c := s.join(code, "C")
	members := []*models.Player{a, b, c}

	s.startRound(code, a, 3, 0, 0, 0)
	s.acknowledgeAll(code, members)
	s.askAll(code)

	_, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  b.ID,
		AccusedID: tv.ID,
	})
	s.ErrorIs(err, ErrInvalidVoteTarget)

	_, err = s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  tv.ID,
		AccusedID: a.ID,
	})
	s.ErrorIs(err, ErrNotAuthorized)

	s.guess(code, a, "Beach")
	s.vote(code, b, a)
	s.vote(code, c, a)

	session := s.snapshot(code)
	s.Equal(models.PhaseSummary, session.Phase)
	observer, _ := session.FindPlayer(tv.ID)
	s.Zero(observer.Score)
	s.NotContains(session.LastRoundResult.PointsAwarded, tv.ID)
}

func (s *GameServiceTestSuite) TestMostAccused() {
	s.Equal("", mostAccused(map[string]int{}))
	s.Equal("a", mostAccused(map[string]int{"a": 2, "b": 1}))
	s.Equal("", mostAccused(map[string]int{"a": 2, "b": 2}))
	s.Equal("c", mostAccused(map[string]int{"a": 1, "b": 1, "c": 3}))
}
