package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

// Outcome is the result of resolving one voting round.
type Outcome struct {
	// Eliminated is the player voted out, or nil when no votes were cast.
	Eliminated *models.Player
	// Winner is set when the elimination ended the game.
	Winner models.Winner
	// NextStatus is the phase the room settles into: StatusSelecting for
	// another round, StatusEnded when a side has won.
	NextStatus models.Status
}

// tallyVotes resolves the current voting round against the full roster.
//
// The target is the first player in roster order whose vote count exceeds
// the running maximum (first-seen max wins ties). With no votes cast,
// nobody is eliminated and play returns to selecting. Eliminating the
// special role ends the game for the citizens; dropping the living count
// to 2 or fewer ends it for the special side. Vote state is reset in
// every branch so the next round starts clean.
func tallyVotes(players []*models.Player) (*Outcome, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: tally with empty roster", ErrDataIntegrity)
	}

	target, maxVotes := models.MostVoted(players)

	if target == nil || maxVotes <= 0 {
		resetVotes(players)
		return &Outcome{NextStatus: models.StatusSelecting}, nil
	}

	target.Alive = false

	out := &Outcome{Eliminated: target}
	switch {
	case target.Role.IsSpecial():
		out.Winner = models.WinnerCitizens
		out.NextStatus = models.StatusEnded
	case len(models.AlivePlayers(players)) <= 2:
		out.Winner = models.WinnerSpecial
		out.NextStatus = models.StatusEnded
	default:
		out.NextStatus = models.StatusSelecting
	}

	resetVotes(players)
	return out, nil
}

func resetVotes(players []*models.Player) {
	for _, p := range players {
		p.Votes = 0
		p.VotedFor = uuid.Nil
	}
}
