package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/models"
	"github.com/KirkDiggler/spyfall/internal/services/game"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	random random.Random
}

// NewService creates a new messaging service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random cannot be nil")
	}

	return &service{
		random: cfg.Random,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.random.Intn(len(messages))]
}

// Classify maps an error from the game service onto its wire kind
func Classify(err error) ErrorKind {
	var gameErr game.GameError
	if !errors.As(err, &gameErr) {
		return ErrorKindInternal
	}

	switch gameErr {
	case game.ErrSessionNotFound:
		return ErrorKindSessionNotFound
	case game.ErrPlayerNotFound:
		return ErrorKindPlayerNotFound
	case game.ErrPhaseMismatch:
		return ErrorKindPhaseMismatch
	case game.ErrNotAuthorized:
		return ErrorKindNotAuthorized
	case game.ErrSessionFull:
		return ErrorKindSessionFull
	case game.ErrDuplicateName:
		return ErrorKindDuplicateName
	case game.ErrInvalidGuessTarget:
		return ErrorKindInvalidGuessTarget
	case game.ErrInvalidVoteTarget:
		return ErrorKindInvalidVoteTarget
	case game.ErrNotEnoughPlayers:
		return ErrorKindNotEnoughPlayers
	case game.ErrAlreadySubmitted:
		return ErrorKindAlreadySubmitted
	case game.ErrInvalidInput:
		return ErrorKindInvalidInput
	default:
		return ErrorKindInternal
	}
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	kind := Classify(input.Err)

	var messages []string
	switch kind {
	case ErrorKindSessionNotFound:
		messages = []string{
			"That session code doesn't ring a bell. Double-check it and try again.",
			"No game here. Either the code is wrong or everyone went home.",
			"This session has gone dark. Start a new one?",
		}
	case ErrorKindPlayerNotFound:
		messages = []string{
			"We can't find you in this session. Try joining again.",
			"You're not on the guest list for this one.",
		}
	case ErrorKindPhaseMismatch:
		messages = []string{
			"Not now! The game isn't at that stage.",
			"Hold that thought, the round has moved on.",
			"Wrong moment for that move. Watch the table.",
		}
	case ErrorKindNotAuthorized:
		messages = []string{
			"That's not yours to do.",
			"Nice try, agent. Access denied.",
			"Only the right player can do that right now.",
		}
	case ErrorKindSessionFull:
		messages = []string{
			"This session is packed! Try again when someone leaves.",
			"No more seats at this table.",
		}
	case ErrorKindDuplicateName:
		messages = []string{
			"Someone already goes by that name. Pick another alias.",
			"Two agents can't share a codename. Choose a different one.",
		}
	case ErrorKindInvalidGuessTarget:
		messages = []string{
			"That place isn't on the map. Pick one of the listed locations.",
			"Never heard of it. Guess one of the known locations.",
		}
	case ErrorKindInvalidVoteTarget:
		messages = []string{
			"You can only accuse someone else who is playing this round.",
			"That player isn't a suspect this round.",
		}
	case ErrorKindNotEnoughPlayers:
		messages = []string{
			"You need more agents before the mission can start.",
			"Not enough players yet. Invite some friends!",
		}
	case ErrorKindAlreadySubmitted:
		messages = []string{
			"Already done! No need to do it twice.",
			"We heard you the first time.",
		}
	case ErrorKindInvalidInput:
		messages = []string{
			"That request doesn't look right. Check it and try again.",
		}
	default:
		messages = []string{
			"Something went wrong! Try again in a moment.",
			"Our field office is having trouble. Try again shortly.",
		}
	}

	if tone == ToneNeutral {
		messages = messages[:1]
	}

	return &GetErrorMessageOutput{
		Kind:    kind,
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetPhaseMessage returns a dynamic message based on the session phase
func (s *service) GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.Phase {
	case models.PhaseWaiting:
		messages = []string{
			"Waiting in the lobby. The host can start a round at any time.",
			"Agents are assembling. Start the round when everyone is here.",
		}
	case models.PhaseInforming:
		messages = []string{
			fmt.Sprintf("Round %d! Check your role and confirm when you're ready.", input.RoundNumber),
			fmt.Sprintf("Round %d is dealt. One of you is the spy...", input.RoundNumber),
		}
	case models.PhasePlaying:
		messages = []string{
			"Questions time. Ask carefully, the spy is listening.",
			"Take turns asking questions. Don't give the location away!",
		}
	case models.PhaseAccusing:
		messages = []string{
			"Time to accuse! Civilians vote, the spy names the location.",
			"Point your fingers. The spy gets one last chance to guess.",
		}
	case models.PhaseSummary:
		messages = []string{
			"The round is over. Check the results!",
		}
	default:
		return nil, fmt.Errorf("unknown phase %q", input.Phase)
	}

	return &GetPhaseMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetRoundSummaryMessage describes who won and who scored
func (s *service) GetRoundSummaryMessage(ctx context.Context, input *GetRoundSummaryMessageInput) (*GetRoundSummaryMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input and result cannot be nil")
	}

	result := input.Result

	var title string
	var lines []string
	switch {
	case result.SpyGuessedCorrectly && result.CiviliansWon:
		title = "The spy escapes!"
		lines = append(lines, fmt.Sprintf("%s was caught red-handed but still named the %s.", result.SpyName, result.CorrectLocation))
	case result.SpyGuessedCorrectly:
		title = "The spy wins!"
		lines = append(lines, fmt.Sprintf("%s was the spy and knew it was the %s all along.", result.SpyName, result.CorrectLocation))
	default:
		title = "Civilians win!"
		lines = append(lines, fmt.Sprintf("%s was the spy and guessed %q. The location was the %s.", result.SpyName, result.SpyGuess, result.CorrectLocation))
	}

	lines = append(lines, fmt.Sprintf("%d of %d civilians voted for the spy.", result.CorrectVotersCount, result.TotalCivilians))
	if len(result.CorrectVoterNames) > 0 {
		lines = append(lines, "Sharp eyes: "+strings.Join(result.CorrectVoterNames, ", ")+".")
	}

	return &GetRoundSummaryMessageOutput{
		Title:   title,
		Message: strings.Join(lines, "\n"),
	}, nil
}
