package game

import (
	"github.com/KirkDiggler/spyfall/internal/models"
)

func (s *GameServiceTestSuite) TestStartRound_DealsOneSpyAndASharedLocation() {
	code, players := s.lobby("Alice", "Bob", "Cara", "Dave")

	out := s.startRound(code, players[0], 4, 2, 1, 3)
	s.Equal(models.PhaseInforming, out.Phase)
	s.Equal(1, out.RoundNumber)

	session := s.snapshot(code)
	s.Equal("Casino", session.SecretLocation)
	s.Equal(3, session.ActivePlayerIndex)

	spies := 0
	for _, p := range session.Players {
		switch p.Role {
		case models.RoleSpy:
			spies++
			s.Equal(players[1].ID, p.ID)
			s.Empty(p.Location)
		case models.RoleCivilian:
			s.Equal("Casino", p.Location)
		default:
			s.Failf("player without a role", "player %s", p.Name)
		}
		s.False(p.HasAcknowledgedRole)
		s.False(p.HasAskedQuestion)
	}
	s.Equal(1, spies)

	s.Require().Len(out.Notifications, 5)
	s.Equal(RoundStarted{RoundNumber: 1, Members: 4}, out.Notifications[0].Event)
	for i, n := range out.Notifications[1:] {
		s.True(n.IsPrivate())
		s.Equal(players[i].ID, n.Recipient)
		assigned, ok := n.Event.(RoleAssigned)
		s.Require().True(ok)
		if players[i].ID == players[1].ID {
			s.Equal(RoleAssigned{RoundNumber: 1, Role: models.RoleSpy}, assigned)
		} else {
			s.Equal(RoleAssigned{RoundNumber: 1, Role: models.RoleCivilian, Location: "Casino"}, assigned)
		}
	}
}

func (s *GameServiceTestSuite) TestStartRound_SinglePlayer() {
	code, players := s.lobby("Alice")

	s.startRound(code, players[0], 1, 0, 0, 0)

	session := s.snapshot(code)
	s.Equal(models.RoleSpy, session.Players[0].Role)
	s.Empty(session.Civilians())
}

func (s *GameServiceTestSuite) TestStartRound_OnlyHost() {
	code, players := s.lobby("Alice", "Bob")

	_, err := s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:     code,
		PlayerID: players[1].ID,
	})
	s.ErrorIs(err, ErrNotAuthorized)

	_, err = s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:     code,
		PlayerID: "ghost",
	})
	s.ErrorIs(err, ErrPlayerNotFound)

	s.Equal(models.PhaseWaiting, s.snapshot(code).Phase)
}

func (s *GameServiceTestSuite) TestStartRound_WrongPhase() {
	code, players := s.lobby("Alice", "Bob")
	s.startRound(code, players[0], 2, 0, 0, 0)

	_, err := s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.ErrorIs(err, ErrPhaseMismatch)
	s.Equal(1, s.snapshot(code).RoundNumber)
}

func (s *GameServiceTestSuite) TestStartRound_NotEnoughPlayers() {
	code := s.newSession()
	host := s.joinObserver(code, "Living Room")

	_, err := s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:     code,
		PlayerID: host.ID,
	})
	s.ErrorIs(err, ErrNotEnoughPlayers)
	s.Equal(models.PhaseWaiting, s.snapshot(code).Phase)
}

func (s *GameServiceTestSuite) TestStartRound_ObserverIsNotDealtIn() {
	code := s.newSession()
	alice := s.join(code, "Alice")
	tv := s.joinObserver(code, "Living Room")
	bob := s.join(code, "Bob")

	s.startRound(code, alice, 2, 0, 1, 0)

	session := s.snapshot(code)
	observer, _ := session.FindPlayer(tv.ID)
	s.Equal(models.RoleNone, observer.Role)
	s.Empty(observer.Location)
	spy, _ := session.FindPlayer(bob.ID)
	s.Equal(models.RoleSpy, spy.Role)

	_, err := s.gameService.AcknowledgeRole(s.ctx, &AcknowledgeRoleInput{
		Code:     code,
		PlayerID: tv.ID,
	})
	s.ErrorIs(err, ErrNotAuthorized)

	s.acknowledgeAll(code, []*models.Player{alice, bob})
	s.Equal(models.PhasePlaying, s.snapshot(code).Phase)
}

func (s *GameServiceTestSuite) TestStartRound_DisconnectedPlayerSitsOut() {
	code, players := s.lobby("Alice", "Bob", "Cara")
	_, err := s.gameService.SetConnected(s.ctx, &SetConnectedInput{
		Code:      code,
		PlayerID:  players[2].ID,
		Connected: false,
	})
	s.Require().NoError(err)

	s.startRound(code, players[0], 2, 0, 0, 0)

	session := s.snapshot(code)
	s.Equal(models.RoleNone, session.Players[2].Role)
	s.Len(session.RoundMembers(), 2)
}

func (s *GameServiceTestSuite) TestAutomaticStartRound() {
	code, players := s.lobby("Alice", "Bob", "Cara")

	_, err := s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:      code,
		Automatic: true,
	})
	s.ErrorIs(err, ErrPhaseMismatch, "automatic start only continues out of a summary")

	s.toAccusing(code, players, 0, 0, 0)
	s.guess(code, players[0], "Bank")
	s.vote(code, players[1], players[2])
	s.vote(code, players[2], players[1])
	s.Require().Equal(models.PhaseSummary, s.snapshot(code).Phase)

	_, err = s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:          code,
		Automatic:     true,
		ExpectedRound: 0,
	})
	s.ErrorIs(err, ErrPhaseMismatch, "a stale timer must not start a round")

	s.expectRound(3, 1, 2, 0)
	out, err := s.gameService.StartRound(s.ctx, &StartRoundInput{
		Code:          code,
		Automatic:     true,
		ExpectedRound: 1,
	})
	s.Require().NoError(err)
	s.Equal(2, out.RoundNumber)
	s.Equal(RoundStarted{RoundNumber: 2, Members: 3, Automatic: true}, out.Notifications[0].Event)

	session := s.snapshot(code)
	s.Nil(session.LastRoundResult)
	s.Equal("Beach", session.SecretLocation)
	s.Equal(3, session.Players[0].Score)
}

func (s *GameServiceTestSuite) TestAcknowledgeRole_LastAcknowledgementStartsPlay() {
	code, players := s.lobby("Alice", "Bob", "Cara")
	s.startRound(code, players[0], 3, 0, 0, 2)

	for _, p := range players[:2] {
		out, err := s.gameService.AcknowledgeRole(s.ctx, &AcknowledgeRoleInput{
			Code:     code,
			PlayerID: p.ID,
		})
		s.Require().NoError(err)
		s.Equal(models.PhaseInforming, out.Phase)
	}

	out, err := s.gameService.AcknowledgeRole(s.ctx, &AcknowledgeRoleInput{
		Code:     code,
		PlayerID: players[2].ID,
	})
	s.Require().NoError(err)
	s.Equal(models.PhasePlaying, out.Phase)
	s.Equal([]EventKind{EventRoleAcknowledged, EventTurnStarted}, kinds(out.Notifications))
	s.Equal(RoleAcknowledged{PlayerID: players[2].ID, Acknowledged: 3, Total: 3}, out.Notifications[0].Event)
	s.Equal(TurnStarted{PlayerID: players[2].ID, Name: "Cara"}, out.Notifications[1].Event)
}

func (s *GameServiceTestSuite) TestAcknowledgeRole_Failures() {
	code, players := s.lobby("Alice", "Bob")

	_, err := s.gameService.AcknowledgeRole(s.ctx, &AcknowledgeRoleInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.ErrorIs(err, ErrPhaseMismatch)

	s.startRound(code, players[0], 2, 0, 0, 0)

	_, err = s.gameService.AcknowledgeRole(s.ctx, &AcknowledgeRoleInput{
		Code:     code,
		PlayerID: "ghost",
	})
	s.ErrorIs(err, ErrPlayerNotFound)

	s.acknowledgeAll(code, players[:1])
	_, err = s.gameService.AcknowledgeRole(s.ctx, &AcknowledgeRoleInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.ErrorIs(err, ErrAlreadySubmitted)
	s.Equal(models.PhaseInforming, s.snapshot(code).Phase)
}

func (s *GameServiceTestSuite) TestAcknowledgeRole_DisconnectedPlayerNotAwaited() {
	code, players := s.lobby("Alice", "Bob", "Cara")
	s.startRound(code, players[0], 3, 0, 0, 2)
	s.acknowledgeAll(code, players[:2])

	out, err := s.gameService.SetConnected(s.ctx, &SetConnectedInput{
		Code:      code,
		PlayerID:  players[2].ID,
		Connected: false,
	})
	s.Require().NoError(err)
	s.Equal(models.PhasePlaying, out.Phase)

	session := s.snapshot(code)
	s.Equal(players[0].ID, session.ActivePlayer().ID, "disconnected first player is skipped")
}

func (s *GameServiceTestSuite) TestAdvanceTurn_FollowsRosterFromStart() {
	code, players := s.lobby("Alice", "Bob", "Cara", "Dave")
	s.startRound(code, players[0], 4, 0, 0, 2)
	s.acknowledgeAll(code, players)

	order := []*models.Player{players[2], players[3], players[0], players[1]}
	for i, p := range order {
		session := s.snapshot(code)
		s.Require().Equal(models.PhasePlaying, session.Phase)
		s.Require().Equal(p.ID, session.ActivePlayer().ID)

		wrong := order[(i+1)%len(order)]
		_, err := s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
			Code:     code,
			PlayerID: wrong.ID,
		})
		s.ErrorIs(err, ErrNotAuthorized)
		s.Equal(session.ActivePlayerIndex, s.snapshot(code).ActivePlayerIndex)

		out, err := s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
			Code:     code,
			PlayerID: p.ID,
		})
		s.Require().NoError(err)

		if i < len(order)-1 {
			s.Equal(order[i+1].ID, out.ActivePlayerID)

			_, err = s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
				Code:     code,
				PlayerID: p.ID,
			})
			s.ErrorIs(err, ErrNotAuthorized, "a player cannot advance twice")
		} else {
			s.Empty(out.ActivePlayerID)
			s.Equal(models.PhaseAccusing, out.Phase)
			s.Equal([]EventKind{EventAccusationStarted}, kinds(out.Notifications))
		}
	}

	session := s.snapshot(code)
	s.Require().NotNil(session.Accusation)
	s.Empty(session.Accusation.Votes)
	s.False(session.Accusation.HasGuessed)
}

func (s *GameServiceTestSuite) TestAdvanceTurn_SkipsDisconnectedPlayers() {
	code, players := s.lobby("Alice", "Bob", "Cara", "Dave")
	s.startRound(code, players[0], 4, 0, 0, 0)
	s.acknowledgeAll(code, players)

	_, err := s.gameService.SetConnected(s.ctx, &SetConnectedInput{
		Code:      code,
		PlayerID:  players[1].ID,
		Connected: false,
	})
	s.Require().NoError(err)

	out, err := s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.Require().NoError(err)
	s.Equal(players[2].ID, out.ActivePlayerID)

	out, err = s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
		Code:     code,
		PlayerID: players[2].ID,
	})
	s.Require().NoError(err)
	s.Equal(players[3].ID, out.ActivePlayerID)

	// Only the disconnected player is left; the one-lap scan gives up and accusations start
	out, err = s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
		Code:     code,
		PlayerID: players[3].ID,
	})
	s.Require().NoError(err)
	s.Equal(models.PhaseAccusing, out.Phase)
}

func (s *GameServiceTestSuite) TestAdvanceTurn_WrongPhase() {
	code, players := s.lobby("Alice", "Bob")
	s.startRound(code, players[0], 2, 0, 0, 0)

	_, err := s.gameService.AdvanceTurn(s.ctx, &AdvanceTurnInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.ErrorIs(err, ErrPhaseMismatch)
}

func (s *GameServiceTestSuite) TestEndRound_KeepsScores() {
	code, players := s.lobby("Alice", "Bob", "Cara")
	s.toAccusing(code, players, 0, 0, 0)
	s.guess(code, players[0], "Bank")
	s.vote(code, players[1], players[2])
	s.vote(code, players[2], players[1])

	_, err := s.gameService.EndRound(s.ctx, &EndRoundInput{
		Code:     code,
		PlayerID: players[1].ID,
	})
	s.ErrorIs(err, ErrNotAuthorized)

	out, err := s.gameService.EndRound(s.ctx, &EndRoundInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.Require().NoError(err)
	s.Equal(models.PhaseWaiting, out.Phase)
	s.Equal(RoundEnded{RoundNumber: 1, Reason: ReasonEndedByHost}, out.Notifications[0].Event)

	session := s.snapshot(code)
	s.Nil(session.LastRoundResult)
	s.Nil(session.Accusation)
	s.Empty(session.SecretLocation)
	s.Equal(0, session.ActivePlayerIndex)
	s.Equal(3, session.Players[0].Score)

	_, err = s.gameService.EndRound(s.ctx, &EndRoundInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.ErrorIs(err, ErrPhaseMismatch)
}

func (s *GameServiceTestSuite) TestEndRound_MidRound() {
	code, players := s.lobby("Alice", "Bob")
	s.startRound(code, players[0], 2, 0, 1, 0)
	s.acknowledgeAll(code, players)

	_, err := s.gameService.EndRound(s.ctx, &EndRoundInput{
		Code:     code,
		PlayerID: players[0].ID,
	})
	s.Require().NoError(err)

	session := s.snapshot(code)
	for _, p := range session.Players {
		s.Equal(models.RoleNone, p.Role)
		s.Empty(p.Location)
		s.False(p.HasAskedQuestion)
	}
}
