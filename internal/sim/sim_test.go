package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

// buildEntry fabricates a legal eleven: six batters, one keeper, four
// bowlers, plus an all-rounder reserve.
func buildEntry(name string, seed int64) Entry {
	rng := rand.New(rand.NewSource(seed))
	skill := func() models.Skill {
		return models.Skill{
			Batting: 30 + rng.Intn(60),
			Bowling: 30 + rng.Intn(60),
			Luck:    rng.Intn(100),
		}
	}

	e := Entry{TeamKey: uuid.New(), Name: name}
	for i := 0; i < 6; i++ {
		e.XI = append(e.XI, Player{ID: uuid.New(), Name: fmt.Sprintf("%s bat %d", name, i), Role: models.RoleBatter, Skill: skill()})
	}
	e.XI = append(e.XI, Player{ID: uuid.New(), Name: name + " keeper", Role: models.RoleKeeper, Skill: skill()})
	for i := 0; i < 4; i++ {
		e.XI = append(e.XI, Player{ID: uuid.New(), Name: fmt.Sprintf("%s bowl %d", name, i), Role: models.RoleBowler, Skill: skill()})
	}
	e.Reserve = Player{ID: uuid.New(), Name: name + " reserve", Role: models.RoleAllRounder, Skill: skill()}
	e.Captain = e.XI[0].ID
	return e
}

func TestInningsRespectsDeliveryCaps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bat := buildEntry("Strikers", 1)
	bowl := buildEntry("Royals", 2)

	for trial := 0; trial < 20; trial++ {
		in := simulateInnings(rng, bat, bowl, -1, rollPitch(rng))

		assert.LessOrEqual(t, in.LegalBalls, MaxLegalBalls)
		assert.LessOrEqual(t, in.Wickets, 10)

		perBowler := map[uuid.UUID]int{}
		for _, b := range in.Log {
			if b.Outcome != OutWide && b.Outcome != OutNoBall {
				perBowler[b.BowlID]++
			}
		}
		for id, balls := range perBowler {
			assert.LessOrEqual(t, balls, BowlerQuota, "bowler %s exceeded quota", id)
		}
	}
}

func TestInningsScoreMatchesBallLog(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in := simulateInnings(rng, buildEntry("Kings", 3), buildEntry("Giants", 4), -1, 0)

	logged := 0
	for _, b := range in.Log {
		logged += b.Runs
	}
	assert.Equal(t, in.Runs, logged, "innings total must equal the sum of the ball log")

	carded := in.Extras
	for _, line := range in.Batting {
		carded += line.Runs
	}
	assert.Equal(t, in.Runs, carded, "innings total must equal batting card plus extras")
}

func TestChaseEndsWhenTargetPassed(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	bat := buildEntry("Chasers", 5)
	bowl := buildEntry("Defenders", 6)

	target := 40 // low target so the chase finishes early
	in := simulateInnings(rng, bat, bowl, target, 0)

	require.Greater(t, in.Runs, target, "low chase should be completed")
	assert.Less(t, in.LegalBalls, MaxLegalBalls, "chase should not need the full innings")
	assert.LessOrEqual(t, in.Runs, target+7, "innings must stop at the winning stroke")
}

func TestLeagueFixturesAreDoubleRoundRobin(t *testing.T) {
	entries := []Entry{buildEntry("A", 1), buildEntry("B", 2), buildEntry("C", 3), buildEntry("D", 4)}
	fixtures := leagueFixtures(entries)
	assert.Len(t, fixtures, 12, "4 teams: every ordered pair plays once")

	seen := map[[2]int]bool{}
	for _, fx := range fixtures {
		assert.NotEqual(t, fx[0], fx[1])
		assert.False(t, seen[fx], "duplicate fixture %v", fx)
		seen[fx] = true
	}
}

func TestStandingsOrderedByPointsThenNetRate(t *testing.T) {
	keyA, keyB, keyC := uuid.New(), uuid.New(), uuid.New()
	table := map[uuid.UUID]*Standing{
		keyA: {TeamKey: keyA, Name: "A", Points: 4, runsFor: 400, ballsFaced: 240, runsAgainst: 352, ballsBowled: 240},
		keyB: {TeamKey: keyB, Name: "B", Points: 4, runsFor: 372, ballsFaced: 240, runsAgainst: 360, ballsBowled: 240},
		keyC: {TeamKey: keyC, Name: "C", Points: 6, runsFor: 300, ballsFaced: 240, runsAgainst: 330, ballsBowled: 240},
	}

	rows := rankStandings(table)
	require.Len(t, rows, 3)
	assert.Equal(t, "C", rows[0].Name, "more points outranks any net rate")
	assert.Equal(t, "A", rows[1].Name, "equal points: better net rate first")
	assert.Equal(t, "B", rows[2].Name)
	assert.Greater(t, rows[1].NetRate, rows[2].NetRate)
}

func TestFourTeamTournamentBracket(t *testing.T) {
	entries := []Entry{
		buildEntry("Strikers", 1),
		buildEntry("Royals", 2),
		buildEntry("Kings", 3),
		buildEntry("Giants", 4),
	}

	res, err := NewEngineWithSource(rand.New(rand.NewSource(99))).Run(entries)
	require.NoError(t, err)

	assert.Len(t, res.League, 12)
	require.Len(t, res.PlayOffs, 4, "Q1, Eliminator, Q2, Final")
	assert.Equal(t, "qualifier1", res.PlayOffs[0].Stage)
	assert.Equal(t, "eliminator", res.PlayOffs[1].Stage)
	assert.Equal(t, "qualifier2", res.PlayOffs[2].Stage)
	assert.Equal(t, "final", res.PlayOffs[3].Stage)

	assert.NotEmpty(t, res.Champion)
	assert.NotEmpty(t, res.RunnerUp)
	assert.NotEqual(t, res.Champion, res.RunnerUp)

	final := res.PlayOffs[3]
	assert.Equal(t, final.WinnerName, res.Champion)
}

func TestTwoTeamTournamentIsSingleFinal(t *testing.T) {
	entries := []Entry{buildEntry("Strikers", 1), buildEntry("Royals", 2)}

	res, err := NewEngineWithSource(rand.New(rand.NewSource(5))).Run(entries)
	require.NoError(t, err)

	assert.Len(t, res.League, 2, "home-and-away league")
	require.Len(t, res.PlayOffs, 1)
	assert.Equal(t, "final", res.PlayOffs[0].Stage)
	assert.NotEqual(t, res.Champion, res.RunnerUp)
}

func TestTournamentRejectsSingleTeam(t *testing.T) {
	_, err := NewEngine().Run([]Entry{buildEntry("Lonely", 1)})
	assert.ErrorIs(t, err, ErrTooFewTeams)
}

func TestFixedSeedReplaysTournament(t *testing.T) {
	build := func() []Entry {
		// Deterministic keys so both runs see identical inputs.
		var entries []Entry
		for i, name := range []string{"A", "B", "C", "D"} {
			e := buildEntry(name, int64(i+1))
			entries = append(entries, e)
		}
		return entries
	}

	entries := build()
	a, err := NewEngineWithSource(rand.New(rand.NewSource(42))).Run(entries)
	require.NoError(t, err)
	b, err := NewEngineWithSource(rand.New(rand.NewSource(42))).Run(entries)
	require.NoError(t, err)

	assert.Equal(t, a.Champion, b.Champion)
	assert.Equal(t, a.RunnerUp, b.RunnerUp)
	require.Equal(t, len(a.League), len(b.League))
	for i := range a.League {
		assert.Equal(t, a.League[i].First.Runs, b.League[i].First.Runs)
		assert.Equal(t, a.League[i].Second.Runs, b.League[i].Second.Runs)
		assert.Equal(t, a.League[i].WinnerName, b.League[i].WinnerName)
	}
	assert.Equal(t, a.Awards, b.Awards)
}

func TestAwardsAccumulateAcrossMatches(t *testing.T) {
	entries := []Entry{buildEntry("A", 1), buildEntry("B", 2), buildEntry("C", 3), buildEntry("D", 4)}
	res, err := NewEngineWithSource(rand.New(rand.NewSource(17))).Run(entries)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Awards.TopScorer.Player)
	assert.Greater(t, res.Awards.TopScorer.Runs, 0)
	assert.NotEmpty(t, res.Awards.TopWicketTaker.Player)
	assert.Greater(t, res.Awards.TopWicketTaker.Wickets, 0)
	assert.NotEmpty(t, res.Awards.MostValuable.Player)
	assert.GreaterOrEqual(t, res.Awards.MostValuable.MVPScore(), res.Awards.TopScorer.Runs)
}
