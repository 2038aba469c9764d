package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/spyfall/internal/common/clock/mocks"
	"github.com/KirkDiggler/spyfall/internal/common/random"
	randomMocks "github.com/KirkDiggler/spyfall/internal/common/random/mocks"
	"github.com/KirkDiggler/spyfall/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	repo      Repository
	ctx       context.Context
	now       time.Time
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()

	repo, err := NewMemory(&Config{
		Clock:  s.mockClock,
		Random: random.New(&random.Config{Seed: 7}),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) createSession() string {
	out, err := s.repo.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	return out.Session.Code
}

func (s *MemoryRepositoryTestSuite) addPlayer(code, id string) {
	_, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code: code,
		Apply: func(session *models.Session) error {
			session.Players = append(session.Players, &models.Player{ID: id, Name: id})
			return nil
		},
	})
	s.Require().NoError(err)
}

func (s *MemoryRepositoryTestSuite) TestNewMemory_Validation() {
	_, err := NewMemory(nil)
	s.Error(err)

	_, err = NewMemory(&Config{Random: random.New(nil)})
	s.Error(err)

	_, err = NewMemory(&Config{Clock: s.mockClock})
	s.Error(err)
}

func (s *MemoryRepositoryTestSuite) TestCreateSession() {
	out, err := s.repo.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)

	session := out.Session
	s.Len(session.Code, DefaultCodeLength)
	for _, c := range session.Code {
		s.True(strings.ContainsRune(DefaultCodeAlphabet, c), "unexpected character %q", c)
	}
	s.Equal(models.PhaseWaiting, session.Phase)
	s.Empty(session.Players)
	s.Equal(s.now, session.CreatedAt)
	s.Equal(s.now, session.LastActivityAt)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: session.Code})
	s.Require().NoError(err)
	s.Equal(session.Code, stored.Code)
}

func (s *MemoryRepositoryTestSuite) TestCreateSession_RegeneratesOnCollision() {
	mockRandom := randomMocks.NewMockRandom(s.mockCtrl)
	repo, err := NewMemory(&Config{
		Clock:  s.mockClock,
		Random: mockRandom,
	})
	s.Require().NoError(err)

	alphabetLen := len(DefaultCodeAlphabet)
	gomock.InOrder(
		mockRandom.EXPECT().Intn(alphabetLen).Return(0).Times(DefaultCodeLength),
		mockRandom.EXPECT().Intn(alphabetLen).Return(0).Times(DefaultCodeLength),
		mockRandom.EXPECT().Intn(alphabetLen).Return(1).Times(DefaultCodeLength),
	)

	first, err := repo.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	s.Equal("AAAAAA", first.Session.Code)

	second, err := repo.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	s.Equal("BBBBBB", second.Session.Code)
}

func (s *MemoryRepositoryTestSuite) TestCreateSession_UniqueCodes() {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := s.createSession()
		s.False(seen[code], "duplicate code %s", code)
		seen[code] = true
	}

	count, err := s.repo.CountSessions(s.ctx)
	s.Require().NoError(err)
	s.Equal(200, count)
}

func (s *MemoryRepositoryTestSuite) TestGetSession_NotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: "ZZZZZZ"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestGetSession_ReturnsCopy() {
	code := s.createSession()
	s.addPlayer(code, "p1")

	snapshot, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: code})
	s.Require().NoError(err)
	snapshot.Players[0].Score = 10
	snapshot.Phase = models.PhaseAccusing

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: code})
	s.Require().NoError(err)
	s.Equal(0, stored.Players[0].Score)
	s.Equal(models.PhaseWaiting, stored.Phase)
}

func (s *MemoryRepositoryTestSuite) TestUpdateSession_FailedApplyDiscardsChanges() {
	code := s.createSession()
	s.addPlayer(code, "p1")

	applyErr := errors.New("rejected")
	_, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code: code,
		Apply: func(session *models.Session) error {
			session.Players[0].Score = 5
			session.Phase = models.PhasePlaying
			return applyErr
		},
	})
	s.ErrorIs(err, applyErr)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: code})
	s.Require().NoError(err)
	s.Equal(0, stored.Players[0].Score)
	s.Equal(models.PhaseWaiting, stored.Phase)
}

func (s *MemoryRepositoryTestSuite) TestUpdateSession_RemovingLastPlayerDeletes() {
	code := s.createSession()
	s.addPlayer(code, "p1")

	out, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code: code,
		Apply: func(session *models.Session) error {
			session.Players = session.Players[:0]
			return nil
		},
	})
	s.Require().NoError(err)
	s.True(out.Deleted)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{Code: code})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code:  code,
		Apply: func(*models.Session) error { return nil },
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestUpdateSession_EmptyNewSessionIsKept() {
	code := s.createSession()

	out, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code:  code,
		Apply: func(*models.Session) error { return nil },
	})
	s.Require().NoError(err)
	s.False(out.Deleted)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{Code: code})
	s.NoError(err)
}

func (s *MemoryRepositoryTestSuite) TestUpdateSession_Validation() {
	_, err := s.repo.UpdateSession(s.ctx, nil)
	s.Error(err)

	_, err = s.repo.UpdateSession(s.ctx, &UpdateSessionInput{Code: "AAAAAA"})
	s.Error(err)

	_, err = s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code:  "AAAAAA",
		Apply: func(*models.Session) error { return nil },
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestUpdateSession_ConcurrentUpdatesSerialize() {
	code := s.createSession()
	s.addPlayer(code, "p1")

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
				Code: code,
				Apply: func(session *models.Session) error {
					session.Players[0].Score++
					return nil
				},
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: code})
	s.Require().NoError(err)
	s.Equal(workers, stored.Players[0].Score)
}

func (s *MemoryRepositoryTestSuite) TestExpireInactive() {
	stale := s.createSession()
	s.addPlayer(stale, "p1")

	s.now = s.now.Add(90 * time.Minute)
	fresh := s.createSession()

	s.now = s.now.Add(45 * time.Minute)
	out, err := s.repo.ExpireInactive(s.ctx, &ExpireInactiveInput{MaxAge: 2 * time.Hour})
	s.Require().NoError(err)
	s.Equal(1, out.Count)
	s.Equal([]string{stale}, out.Codes)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{Code: stale})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{Code: fresh})
	s.NoError(err)
}

func (s *MemoryRepositoryTestSuite) TestExpireInactive_ActivityKeepsSessionAlive() {
	code := s.createSession()

	s.now = s.now.Add(time.Hour)
	_, err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Code: code,
		Apply: func(session *models.Session) error {
			session.LastActivityAt = s.now
			return nil
		},
	})
	s.Require().NoError(err)

	s.now = s.now.Add(90 * time.Minute)
	out, err := s.repo.ExpireInactive(s.ctx, &ExpireInactiveInput{MaxAge: 2 * time.Hour})
	s.Require().NoError(err)
	s.Zero(out.Count)
}

func (s *MemoryRepositoryTestSuite) TestExpireInactive_RejectsNonPositiveAge() {
	_, err := s.repo.ExpireInactive(s.ctx, &ExpireInactiveInput{})
	s.Error(err)
}
