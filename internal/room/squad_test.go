package room

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/sim"
)

// stockRoster fills a team's roster with a legal thirteen: a keeper, six
// batters (two overseas), two all-rounders and four bowlers.
func stockRoster(team *models.Team) {
	add := func(name string, role models.Role, overseas bool) {
		lot := models.Lot{
			ID:       uuid.New(),
			Name:     name,
			Role:     role,
			Overseas: overseas,
			Status:   models.LotSold,
			Skill:    models.Skill{Batting: 60, Bowling: 55, Luck: 50},
		}
		team.Roster = append(team.Roster, models.Purchase{Lot: lot, Price: 10})
	}

	add(team.Name+" keeper", models.RoleKeeper, false)
	for i := 0; i < 6; i++ {
		add(fmt.Sprintf("%s bat %d", team.Name, i), models.RoleBatter, i < 2)
	}
	add(team.Name+" ar 1", models.RoleAllRounder, false)
	add(team.Name+" ar 2", models.RoleAllRounder, false)
	for i := 0; i < 4; i++ {
		add(fmt.Sprintf("%s bowl %d", team.Name, i), models.RoleBowler, false)
	}
}

// legalSquad names the first eleven roster entries with the second
// all-rounder as reserve and the keeper as captain.
func legalSquad(team *models.Team) models.Squad {
	sq := models.Squad{TeamKey: team.Key}
	for _, p := range team.Roster {
		switch {
		case p.Lot.Name == team.Name+" ar 2":
			sq.Reserve = p.Lot.ID
		case len(sq.Starters) < models.SquadSize:
			sq.Starters = append(sq.Starters, p.Lot.ID)
		}
	}
	sq.Captain = sq.Starters[0]
	return sq
}

// setupSquadRoom puts a room straight into squad selection with n claimed,
// fully stocked teams owned by "owner0", "owner1", ...
func setupSquadRoom(t *testing.T, n int) (*Room, *mockBroadcaster) {
	t.Helper()
	r, mb := setupRoom(t, n, 1000)
	for i := 0; i < n; i++ {
		owner := fmt.Sprintf("owner%d", i)
		r.Join(owner, fmt.Sprintf("10.1.0.%d", i+1))
		require.NoError(t, r.ClaimTeam(owner, r.teams[i].Key))
		stockRoster(r.teams[i])
	}
	require.NoError(t, r.StartAuction("admin", nil)) // empty queue: straight to squads
	require.Equal(t, PhaseSquads, r.phaseNow())
	mb.clear()
	return r, mb
}

func TestSquadValidation(t *testing.T) {
	r, _ := setupSquadRoom(t, 2)
	team := r.teams[0]

	t.Run("wrong starter count", func(t *testing.T) {
		sq := legalSquad(team)
		sq.Starters = sq.Starters[:10]
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("duplicate starter", func(t *testing.T) {
		sq := legalSquad(team)
		sq.Starters[1] = sq.Starters[0]
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("starter off the roster", func(t *testing.T) {
		sq := legalSquad(team)
		sq.Starters[5] = uuid.New()
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("no wicket-keeper", func(t *testing.T) {
		sq := legalSquad(team)
		// Swap the keeper (index 0) out for the reserve all-rounder.
		keeper := sq.Starters[0]
		sq.Starters[0] = sq.Reserve
		sq.Reserve = keeper
		sq.Captain = sq.Starters[1]
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("reserve also starting", func(t *testing.T) {
		sq := legalSquad(team)
		sq.Reserve = sq.Starters[3]
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("reserve unnamed", func(t *testing.T) {
		sq := legalSquad(team)
		sq.Reserve = uuid.Nil
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("captain not starting", func(t *testing.T) {
		sq := legalSquad(team)
		sq.Captain = sq.Reserve
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
	})

	t.Run("not the owner", func(t *testing.T) {
		sq := legalSquad(team)
		assert.ErrorIs(t, r.SubmitSquad("owner1", sq), ErrNotOwner)
	})

	t.Run("unknown team", func(t *testing.T) {
		sq := legalSquad(team)
		sq.TeamKey = uuid.New()
		assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrTeamNotFound)
	})
}

func TestSquadOverseasCap(t *testing.T) {
	r, _ := setupSquadRoom(t, 2)
	team := r.teams[0]

	// Flip enough starters to overseas to breach the cap.
	flipped := 0
	for i := range team.Roster {
		if !team.Roster[i].Lot.Overseas && flipped < 3 {
			team.Roster[i].Lot.Overseas = true
			flipped++
		}
	}
	sq := legalSquad(team)
	assert.ErrorIs(t, r.SubmitSquad("owner0", sq), ErrBadSquad)
}

func TestSubmissionGateRunsTournamentOnce(t *testing.T) {
	r, mb := setupSquadRoom(t, 2)

	require.NoError(t, r.SubmitSquad("owner0", legalSquad(r.teams[0])))
	require.Len(t, mb.sentTo("owner0", "squad_accepted"), 1)
	progress := mb.lastOfType("squad_progress")
	require.NotNil(t, progress)
	assert.Equal(t, 1, progress["squads_submitted"])
	assert.Equal(t, 2, progress["squads_expected"])
	assert.Empty(t, mb.eventsOfType("tournament_result"))

	// Resubmission before the gate replaces, it does not double-count.
	require.NoError(t, r.SubmitSquad("owner0", legalSquad(r.teams[0])))
	progress = mb.lastOfType("squad_progress")
	assert.Equal(t, 1, progress["squads_submitted"])

	require.NoError(t, r.SubmitSquad("owner1", legalSquad(r.teams[1])))
	assert.Equal(t, PhaseComplete, r.phaseNow())

	results := mb.eventsOfType("tournament_result")
	require.Len(t, results, 1)
	res, ok := results[0]["result"].(*sim.TournamentResult)
	require.True(t, ok)
	assert.NotEmpty(t, res.Champion)
	assert.NotEqual(t, res.Champion, res.RunnerUp)

	// Late submissions after completion are dropped.
	require.NoError(t, r.SubmitSquad("owner0", legalSquad(r.teams[0])))
	assert.Len(t, mb.eventsOfType("tournament_result"), 1)
}

func TestRequestSimulationOverride(t *testing.T) {
	r, mb := setupSquadRoom(t, 3)

	require.NoError(t, r.SubmitSquad("owner0", legalSquad(r.teams[0])))

	// One squad cannot make a tournament.
	assert.ErrorIs(t, r.RequestSimulation("admin"), sim.ErrTooFewTeams)
	assert.Equal(t, PhaseSquads, r.phaseNow())

	require.NoError(t, r.SubmitSquad("owner1", legalSquad(r.teams[1])))
	assert.Equal(t, PhaseSquads, r.phaseNow(), "gate waits for the third claimed team")

	assert.ErrorIs(t, r.RequestSimulation("owner0"), ErrNotAdmin)
	require.NoError(t, r.RequestSimulation("admin"))

	assert.Equal(t, PhaseComplete, r.phaseNow())
	require.Len(t, mb.eventsOfType("tournament_result"), 1)
	res := mb.eventsOfType("tournament_result")[0]["result"].(*sim.TournamentResult)
	assert.Len(t, res.League, 2, "only the two submitted teams play")
}
