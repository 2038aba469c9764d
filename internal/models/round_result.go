package models

// Winner identifies the side that won a round
type Winner string

const (
	// WinnerSpy indicates the spy guessed the location, whether or not they were identified
	WinnerSpy Winner = "spy"

	// WinnerCivilians indicates the civilians identified the spy and the spy guessed wrong
	WinnerCivilians Winner = "civilians"
)

// RoundResult is the immutable outcome of a won round
type RoundResult struct {
	// RoundNumber is the round this result belongs to
	RoundNumber int `json:"round_number"`

	// Winner is the side reported as the winner
	Winner Winner `json:"winner"`

	// SpyGuessedCorrectly is true when the spy's guess matched the location
	SpyGuessedCorrectly bool `json:"spy_guessed_correctly"`

	// CiviliansWon is true when a civilian majority named the spy
	CiviliansWon bool `json:"civilians_won"`

	// SpyID and SpyName identify the spy of the round
	SpyID   string `json:"spy_id"`
	SpyName string `json:"spy_name"`

	// SpyGuess is the location the spy guessed
	SpyGuess string `json:"spy_guess"`

	// CorrectLocation is the secret location of the round
	CorrectLocation string `json:"correct_location"`

	// PointsAwarded maps player ID to the points gained this round
	PointsAwarded map[string]int `json:"points_awarded"`

	// VoteCounts maps an accused player ID to the votes it received
	VoteCounts map[string]int `json:"vote_counts"`

	// CorrectVoterIDs and CorrectVoterNames list the civilians who voted for the spy, in roster order
	CorrectVoterIDs   []string `json:"correct_voter_ids"`
	CorrectVoterNames []string `json:"correct_voter_names"`

	// CorrectVotersCount is len(CorrectVoterIDs)
	CorrectVotersCount int `json:"correct_voters_count"`

	// TotalCivilians is the number of civilians in the round
	TotalCivilians int `json:"total_civilians"`
}

// Clone returns a deep copy of the result
func (r *RoundResult) Clone() *RoundResult {
	clone := *r

	clone.PointsAwarded = make(map[string]int, len(r.PointsAwarded))
	for id, pts := range r.PointsAwarded {
		clone.PointsAwarded[id] = pts
	}

	clone.VoteCounts = make(map[string]int, len(r.VoteCounts))
	for id, n := range r.VoteCounts {
		clone.VoteCounts[id] = n
	}

	if r.CorrectVoterIDs != nil {
		clone.CorrectVoterIDs = make([]string, len(r.CorrectVoterIDs))
		copy(clone.CorrectVoterIDs, r.CorrectVoterIDs)
	}

	if r.CorrectVoterNames != nil {
		clone.CorrectVoterNames = make([]string, len(r.CorrectVoterNames))
		copy(clone.CorrectVoterNames, r.CorrectVoterNames)
	}

	return &clone
}
