package game

import (
	"time"

	"github.com/KirkDiggler/spyfall/internal/models"
)

func (s *GameServiceTestSuite) view(code, viewerID string) *SessionView {
	out, err := s.gameService.GetSessionView(s.ctx, &GetSessionViewInput{
		Code:     code,
		ViewerID: viewerID,
	})
	s.Require().NoError(err)
	return out.View
}

func (s *GameServiceTestSuite) TestGetSessionView_ShowsOnlyOwnRole() {
	code, players := s.lobby("A", "B", "C")
	s.startRound(code, players[0], 3, 1, 2, 0)

	view := s.view(code, players[0].ID)
	s.Equal(models.PhaseInforming, view.Phase)
	s.Require().Len(view.Players, 3)

	own := view.Players[0]
	s.True(own.IsViewer)
	s.Equal(models.RoleCivilian, own.Role)
	s.Equal("Beach", own.Location)

	for _, p := range view.Players[1:] {
		s.False(p.IsViewer)
		s.Equal(models.RoleNone, p.Role)
		s.Empty(p.Location)
		s.True(p.InRound)
	}

	spyView := s.view(code, players[2].ID)
	s.Equal(models.RoleSpy, spyView.Players[2].Role)
	s.Empty(spyView.Players[2].Location)
}

func (s *GameServiceTestSuite) TestGetSessionView_PublicViewHasNoRoles() {
	code, players := s.lobby("A", "B")
	s.startRound(code, players[0], 2, 0, 0, 1)
	s.acknowledgeAll(code, players)

	view := s.view(code, "")
	s.Equal(players[1].ID, view.ActivePlayerID)
	for _, p := range view.Players {
		s.False(p.IsViewer)
		s.Equal(models.RoleNone, p.Role)
		s.Empty(p.Location)
	}

	_, err := s.gameService.GetSessionView(s.ctx, &GetSessionViewInput{
		Code:     code,
		ViewerID: "ghost",
	})
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *GameServiceTestSuite) TestGetSessionView_AccusationShowsCountsOnly() {
	code, players := s.lobby("A", "B", "C")
	s.toAccusing(code, players, 0, 0, 0)
	s.vote(code, players[1], players[0])

	view := s.view(code, players[2].ID)
	s.Require().NotNil(view.Accusation)
	s.Equal(AccusationView{HasGuessed: false, VotesCast: 1, VotesNeeded: 2}, *view.Accusation)
	s.Empty(view.ActivePlayerID)
	s.Nil(view.LastRoundResult)
}

func (s *GameServiceTestSuite) TestGetSessionView_SummaryRevealsResult() {
	code, players := s.lobby("A", "B", "C")
	s.toAccusing(code, players, 0, 0, 0)
	s.guess(code, players[0], "Bank")
	s.vote(code, players[1], players[2])
	s.vote(code, players[2], players[1])

	view := s.view(code, "")
	s.Equal(models.PhaseSummary, view.Phase)
	s.Require().NotNil(view.LastRoundResult)
	s.Equal(players[0].ID, view.LastRoundResult.SpyID)
	s.Nil(view.Accusation)

	s.Require().Len(view.Scoreboard, 3)
	s.Equal(models.Standing{PlayerID: players[0].ID, Name: "A", Score: 3}, view.Scoreboard[0])
}

func (s *GameServiceTestSuite) TestGetSessionView_DoesNotTouchActivity() {
	code, players := s.lobby("A")
	before := s.snapshot(code).LastActivityAt

	s.now = s.now.Add(time.Minute)
	s.view(code, players[0].ID)

	s.Equal(before, s.snapshot(code).LastActivityAt)
}

func (s *GameServiceTestSuite) TestFailedCommandLeavesSessionUntouched() {
	code, players := s.lobby("A", "B", "C")
	s.toAccusing(code, players, 0, 0, 0)
	s.vote(code, players[1], players[0])
	before := s.snapshot(code)

	s.now = s.now.Add(time.Minute)
	_, err := s.gameService.SubmitVote(s.ctx, &SubmitVoteInput{
		Code:      code,
		PlayerID:  players[2].ID,
		AccusedID: players[2].ID,
	})
	s.Require().ErrorIs(err, ErrInvalidVoteTarget)

	s.Equal(before, s.snapshot(code))
}
