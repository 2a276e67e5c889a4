package room

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/sim"
)

// SubmitSquad records one team's starting eleven for the simulation. The
// submission must pass roster-membership and composition checks; a
// resubmission before the tournament runs replaces the earlier one. Once
// every claimed team has a squad in, the tournament runs immediately.
func (r *Room) SubmitSquad(identity string, sq models.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseSquads {
		return nil
	}
	t := r.teamByKey(sq.TeamKey)
	if t == nil {
		return ErrTeamNotFound
	}
	if !t.Claimed || t.OwnerIdentity != identity {
		return ErrNotOwner
	}
	if err := validateSquad(t, sq); err != nil {
		return err
	}

	r.squads[sq.TeamKey] = sq
	r.record(identity, "squad_submitted", map[string]interface{}{"team": t.Key.String()})
	r.sendTo(identity, Event{"type": "squad_accepted", "team_key": t.Key.String()})
	r.broadcast(Event{
		"type":             "squad_progress",
		"squads_submitted": len(r.squads),
		"squads_expected":  r.claimedCount(),
	})

	if len(r.squads) >= r.claimedCount() {
		return r.runSimulationLocked()
	}
	return nil
}

// RequestSimulation runs the tournament with whatever squads are in,
// skipping teams that never submitted. Admin only.
func (r *Room) RequestSimulation(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.admin {
		return ErrNotAdmin
	}
	if r.phase != PhaseSquads {
		return nil
	}
	return r.runSimulationLocked()
}

// runSimulationLocked invokes the tournament engine exactly once and
// completes the room. A failed run (too few squads) leaves the phase
// untouched so a later submission can still trigger it.
func (r *Room) runSimulationLocked() error {
	if r.simulated {
		return nil
	}

	var entries []sim.Entry
	for _, t := range r.teams {
		sq, ok := r.squads[t.Key]
		if !ok {
			continue
		}
		entries = append(entries, r.entryFor(t, sq))
	}

	res, err := r.engine.Run(entries)
	if err != nil {
		return err
	}

	r.simulated = true
	r.result = res
	r.phase = PhaseComplete
	r.log.WithField("champion", res.Champion).Info("tournament complete")
	r.record("", "tournament_complete", map[string]interface{}{"champion": res.Champion})
	r.broadcast(Event{"type": "tournament_result", "result": res})
	return nil
}

// entryFor resolves a validated squad's lot IDs against the roster.
func (r *Room) entryFor(t *models.Team, sq models.Squad) sim.Entry {
	player := func(id uuid.UUID) sim.Player {
		lot, _ := t.RosterLot(id)
		return sim.Player{
			ID:       lot.ID,
			Name:     lot.Name,
			Role:     lot.Role,
			Skill:    lot.Skill,
			Overseas: lot.Overseas,
		}
	}

	e := sim.Entry{TeamKey: t.Key, Name: t.Name, Captain: sq.Captain, Reserve: player(sq.Reserve)}
	for _, id := range sq.Starters {
		e.XI = append(e.XI, player(id))
	}
	return e
}

// validateSquad enforces the composition rules: eleven distinct starters
// from the roster, a roster reserve outside the eleven, a captain inside it,
// at least one wicket-keeper, at least three bowling options and no more
// than four overseas players in the eleven.
func validateSquad(t *models.Team, sq models.Squad) error {
	if len(sq.Starters) != models.SquadSize {
		return fmt.Errorf("%w: need exactly %d starters, got %d", ErrBadSquad, models.SquadSize, len(sq.Starters))
	}

	seen := make(map[uuid.UUID]bool, models.SquadSize)
	keepers, bowlers, overseas := 0, 0, 0
	for _, id := range sq.Starters {
		if seen[id] {
			return fmt.Errorf("%w: duplicate starter", ErrBadSquad)
		}
		seen[id] = true
		lot, ok := t.RosterLot(id)
		if !ok {
			return fmt.Errorf("%w: starter not on the roster", ErrBadSquad)
		}
		if lot.Role == models.RoleKeeper {
			keepers++
		}
		if lot.Role.CanBowl() {
			bowlers++
		}
		if lot.Overseas {
			overseas++
		}
	}

	if keepers < 1 {
		return fmt.Errorf("%w: need a wicket-keeper", ErrBadSquad)
	}
	if bowlers < models.MinBowlingOptions {
		return fmt.Errorf("%w: need at least %d bowling options", ErrBadSquad, models.MinBowlingOptions)
	}
	if overseas > models.MaxOverseas {
		return fmt.Errorf("%w: at most %d overseas players", ErrBadSquad, models.MaxOverseas)
	}

	if sq.Reserve == uuid.Nil {
		return fmt.Errorf("%w: reserve not named", ErrBadSquad)
	}
	if seen[sq.Reserve] {
		return fmt.Errorf("%w: reserve cannot start", ErrBadSquad)
	}
	if _, ok := t.RosterLot(sq.Reserve); !ok {
		return fmt.Errorf("%w: reserve not on the roster", ErrBadSquad)
	}
	if !seen[sq.Captain] {
		return fmt.Errorf("%w: captain must be a starter", ErrBadSquad)
	}
	return nil
}
