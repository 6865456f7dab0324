package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/DeadCoder-N/Shadow-Signal/internal/cache"
	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
)

// StartGame moves a lobby-phase room into its first selecting phase:
// roles and words are dealt, the option set is generated, and the turn
// marker points at the head of the shuffled order.
func (s *Service) StartGame(ctx context.Context, code string) (*models.Room, []*models.Player, error) {
	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if room.Status != models.StatusLobby {
		return nil, nil, fmt.Errorf("%w: cannot start game in %s phase", ErrInvalidState, room.Status)
	}

	s.mu.Lock()
	assignment, err := assignRoles(s.rng, s.bank, players, room.Mode)
	s.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}
	assignment.apply(players, room.Mode)

	room.Status = models.StatusSelecting
	room.CurrentTurnPlayerID = assignment.FirstTurnID
	room.Options = assignment.Options
	room.Winner = ""
	room.LobbyStartedAt = nil
	s.stampPhase(room)

	if err := s.persistAggregate(ctx, room, players); err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"room":    room.Code,
		"mode":    room.Mode,
		"players": len(players),
	}).Info("game started")
	s.publish(ctx, room, cache.EventGameStarted, map[string]interface{}{"players": len(players)})
	return room, players, nil
}

// SubmitClue records a living player's one-word clue for the current
// round. Once every living player has a clue on record the room advances
// to voting on its own.
//
// A clue written by a concurrent request may not be visible to this
// check; the missed transition is benign, since the next submit or a
// forced advance closes the phase.
func (s *Service) SubmitClue(ctx context.Context, code string, playerID uuid.UUID, clue string) (*models.Room, error) {
	clue = strings.TrimSpace(clue)
	if clue == "" {
		return nil, fmt.Errorf("%w: clue must not be empty", ErrValidation)
	}

	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != models.StatusSelecting {
		return nil, fmt.Errorf("%w: clues are only accepted in the selecting phase", ErrInvalidState)
	}

	player := models.FindPlayer(players, playerID)
	if player == nil {
		return nil, fmt.Errorf("%w: player %s not in room %s", ErrNotFound, playerID, room.Code)
	}
	if !player.Alive {
		return nil, fmt.Errorf("%w: eliminated players cannot submit clues", ErrInvalidState)
	}

	player.Clue = clue
	if err := s.store.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("submit clue in room %s: %w", room.Code, err)
	}

	if models.AllCluesSubmitted(players) {
		room.Status = models.StatusVoting
		s.stampPhase(room)
		if err := s.store.UpdateRoom(ctx, room); err != nil {
			return nil, fmt.Errorf("advance room %s to voting: %w", room.Code, err)
		}
		s.log.WithFields(logrus.Fields{"room": room.Code}).Info("all clues in, voting begins")
	}

	s.publish(ctx, room, cache.EventClueSubmitted, map[string]interface{}{"player_id": playerID.String()})
	return room, nil
}

// CastVote registers one living player's vote against another. Each
// voter holds a single vote per round; voting again moves the vote to
// the new target.
func (s *Service) CastVote(ctx context.Context, code string, voterID, targetID uuid.UUID) (*models.Room, error) {
	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != models.StatusVoting {
		return nil, fmt.Errorf("%w: votes are only accepted in the voting phase", ErrInvalidState)
	}

	voter := models.FindPlayer(players, voterID)
	if voter == nil {
		return nil, fmt.Errorf("%w: voter %s not in room %s", ErrNotFound, voterID, room.Code)
	}
	target := models.FindPlayer(players, targetID)
	if target == nil {
		return nil, fmt.Errorf("%w: target %s not in room %s", ErrNotFound, targetID, room.Code)
	}
	if !voter.Alive {
		return nil, fmt.Errorf("%w: eliminated players cannot vote", ErrInvalidState)
	}
	if !target.Alive {
		return nil, fmt.Errorf("%w: cannot vote for an eliminated player", ErrInvalidState)
	}
	if voterID == targetID {
		return nil, fmt.Errorf("%w: players cannot vote for themselves", ErrValidation)
	}

	if voter.VotedFor == targetID {
		return room, nil
	}

	changed := []*models.Player{voter, target}
	if voter.VotedFor != uuid.Nil {
		if prev := models.FindPlayer(players, voter.VotedFor); prev != nil {
			prev.Votes--
			changed = append(changed, prev)
		}
	}
	voter.VotedFor = targetID
	target.Votes++

	if err := s.store.UpdatePlayers(ctx, changed); err != nil {
		return nil, fmt.Errorf("cast vote in room %s: %w", room.Code, err)
	}

	s.publish(ctx, room, cache.EventVoteCast, map[string]interface{}{
		"voter_id":  voterID.String(),
		"target_id": targetID.String(),
	})
	return room, nil
}

// Eliminate concludes the voting phase: the highest-voted player is
// removed, win conditions are evaluated, and the room either ends or
// rolls into the next round.
func (s *Service) Eliminate(ctx context.Context, code string) (*Outcome, *models.Room, []*models.Player, error) {
	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, nil, nil, err
	}
	if room.Status != models.StatusVoting {
		return nil, nil, nil, fmt.Errorf("%w: elimination is only possible in the voting phase", ErrInvalidState)
	}

	out, err := s.resolveVoting(ctx, room, players)
	if err != nil {
		return nil, nil, nil, err
	}
	return out, room, players, nil
}

// ForceAdvance pushes the room out of its current phase regardless of
// completion: selecting skips straight to voting, voting resolves as an
// elimination. Host-only by convention; the engine does not enforce it.
func (s *Service) ForceAdvance(ctx context.Context, code string) (*Outcome, *models.Room, error) {
	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	switch room.Status {
	case models.StatusSelecting:
		room.Status = models.StatusVoting
		s.stampPhase(room)
		if err := s.store.UpdateRoom(ctx, room); err != nil {
			return nil, nil, fmt.Errorf("advance room %s: %w", room.Code, err)
		}
		s.log.WithFields(logrus.Fields{"room": room.Code}).Info("selection phase forced to voting")
		s.publish(ctx, room, cache.EventPhaseAdvanced, map[string]interface{}{"status": string(room.Status)})
		return nil, room, nil

	case models.StatusVoting:
		out, err := s.resolveVoting(ctx, room, players)
		if err != nil {
			return nil, nil, err
		}
		return out, room, nil

	default:
		return nil, nil, fmt.Errorf("%w: cannot advance from %s phase", ErrInvalidState, room.Status)
	}
}

// RestartGame resets an ended room back to the lobby with the same
// roster: everyone alive again, roles, words, clues and votes cleared,
// winner and options unset.
func (s *Service) RestartGame(ctx context.Context, code string) (*models.Room, []*models.Player, error) {
	room, players, err := s.loadAggregate(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if room.Status != models.StatusEnded {
		return nil, nil, fmt.Errorf("%w: only an ended game can be restarted", ErrInvalidState)
	}

	for _, p := range players {
		p.Alive = true
		p.Votes = 0
		p.VotedFor = uuid.Nil
		p.Role = models.RoleNone
		p.Word = ""
		p.Clue = ""
	}
	room.Status = models.StatusLobby
	room.Winner = ""
	room.Options = nil
	room.CurrentTurnPlayerID = uuid.Nil
	room.PhaseStartedAt = nil
	room.LobbyStartedAt = nil

	if err := s.persistAggregate(ctx, room, players); err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{"room": room.Code}).Info("game restarted")
	s.publish(ctx, room, cache.EventGameRestarted, nil)
	return room, players, nil
}

// resolveVoting runs the tally, applies the outcome to the aggregate,
// and persists it. Shared by Eliminate and ForceAdvance.
func (s *Service) resolveVoting(ctx context.Context, room *models.Room, players []*models.Player) (*Outcome, error) {
	out, err := tallyVotes(players)
	if err != nil {
		return nil, err
	}

	if out.NextStatus == models.StatusEnded {
		room.Status = models.StatusEnded
		room.Winner = out.Winner
		s.stampPhase(room)
	} else {
		s.beginNextRound(room, players)
	}

	if err := s.persistAggregate(ctx, room, players); err != nil {
		return nil, err
	}

	fields := logrus.Fields{"room": room.Code, "status": room.Status}
	payload := map[string]interface{}{"status": string(room.Status)}
	if out.Eliminated != nil {
		fields["eliminated"] = out.Eliminated.Name
		payload["eliminated_id"] = out.Eliminated.ID.String()
	}
	if out.Winner != "" {
		fields["winner"] = out.Winner
		payload["winner"] = string(out.Winner)
		s.log.WithFields(fields).Info("game ended")
		s.publish(ctx, room, cache.EventGameEnded, payload)
	} else {
		s.log.WithFields(fields).Info("voting resolved")
		s.publish(ctx, room, cache.EventPlayerEliminated, payload)
	}
	return out, nil
}

// beginNextRound rolls a surviving game into another selecting phase.
// Roles and words are sticky for the whole game; only clues reset and a
// fresh option set is generated from the common word's domain.
func (s *Service) beginNextRound(room *models.Room, players []*models.Player) {
	for _, p := range players {
		p.Clue = ""
	}

	if common := commonWord(players); common != "" {
		if domain, ok := s.bank.DomainOf(common); ok {
			s.mu.Lock()
			room.Options = buildOptions(s.rng, s.bank, domain, common)
			s.mu.Unlock()
		} else {
			// Bank no longer knows the word (custom bank swapped out
			// mid-game); the stale option set is better than none.
			s.log.WithFields(logrus.Fields{"room": room.Code, "word": common}).
				Debug("common word missing from bank, keeping previous options")
		}
	}

	room.Status = models.StatusSelecting
	s.stampPhase(room)
}

// commonWord recovers the shared word from the roster: any living
// ordinary-role player carries it.
func commonWord(players []*models.Player) string {
	for _, p := range players {
		if p.Alive && !p.Role.IsSpecial() && p.Word != "" {
			return p.Word
		}
	}
	return ""
}

// persistAggregate writes the roster then the room. Player batches are
// atomic where the store supports it; the room row lands last so pollers
// never observe a phase change before its player state.
func (s *Service) persistAggregate(ctx context.Context, room *models.Room, players []*models.Player) error {
	if err := s.store.UpdatePlayers(ctx, players); err != nil {
		return fmt.Errorf("persist players for room %s: %w", room.Code, err)
	}
	if err := s.store.UpdateRoom(ctx, room); err != nil {
		return fmt.Errorf("persist room %s: %w", room.Code, err)
	}
	return nil
}

func (s *Service) stampPhase(room *models.Room) {
	t := s.now()
	room.PhaseStartedAt = &t
}
