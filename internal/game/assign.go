package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
	"github.com/DeadCoder-N/Shadow-Signal/internal/words"
)

// MinPlayers is the smallest roster a round can start with.
const MinPlayers = 3

// optionCount is the size of the multiple-choice clue set, half drawn
// from the common word's domain and half from a decoy domain.
const (
	optionCount     = 4
	relatedPerRound = 2
	decoysPerRound  = 2
)

// Assignment is the outcome of one role/word assignment pass. Apply it
// to the roster with apply; nothing is mutated until then.
type Assignment struct {
	CommonWord  string
	SpecialWord string
	SpecialID   uuid.UUID
	FirstTurnID uuid.UUID
	Options     []string
}

// assignRoles partitions the roster into one special player and the rest,
// picks this game's words from the bank, and builds the option set for
// the first selecting phase. The roster itself is left untouched.
func assignRoles(rng *rand.Rand, bank *words.Bank, players []*models.Player, mode models.Mode) (*Assignment, error) {
	if len(players) < MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d players, have %d", ErrInvalidState, MinPlayers, len(players))
	}
	if bank.Empty() {
		return nil, fmt.Errorf("%w: word bank is empty", ErrDataIntegrity)
	}

	shuffled := make([]*models.Player, len(players))
	copy(shuffled, players)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	special := shuffled[rng.Intn(len(shuffled))]

	domain, entry := bank.PickWord(rng)

	a := &Assignment{
		CommonWord:  entry.Word,
		SpecialID:   special.ID,
		FirstTurnID: shuffled[0].ID,
	}
	if mode == models.ModeSpy {
		if len(entry.Similar) == 0 {
			return nil, fmt.Errorf("%w: word %q has no similar decoys", ErrDataIntegrity, entry.Word)
		}
		a.SpecialWord = entry.Similar[rng.Intn(len(entry.Similar))]
	}

	a.Options = buildOptions(rng, bank, domain, entry.Word)
	return a, nil
}

// buildOptions mixes related words from the common word's domain with
// decoys from another domain and shuffles the result. Short domains may
// yield fewer than optionCount entries; that degenerate case is accepted.
func buildOptions(rng *rand.Rand, bank *words.Bank, domain words.Domain, common string) []string {
	opts := make([]string, 0, optionCount)
	opts = append(opts, domain.Related(rng, common, relatedPerRound)...)
	opts = append(opts, bank.Decoys(rng, domain.Name, decoysPerRound)...)
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

// apply writes the assignment onto the roster: every player gets a role
// and word per the mode, and clue/vote state is cleared for the new game.
func (a *Assignment) apply(players []*models.Player, mode models.Mode) {
	for _, p := range players {
		isSpecial := p.ID == a.SpecialID
		switch {
		case mode == models.ModeInfiltrator && isSpecial:
			p.Role = models.RoleInfiltrator
			p.Word = ""
		case mode == models.ModeInfiltrator:
			p.Role = models.RoleCitizen
			p.Word = a.CommonWord
		case isSpecial: // spy mode
			p.Role = models.RoleSpy
			p.Word = a.SpecialWord
		default:
			p.Role = models.RoleAgent
			p.Word = a.CommonWord
		}
		p.Clue = ""
		p.Votes = 0
		p.VotedFor = uuid.Nil
	}
}
