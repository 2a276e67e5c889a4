package sim

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ErrTooFewTeams is returned when fewer than two entries are supplied.
var ErrTooFewTeams = errors.New("tournament needs at least two teams")

// Engine runs tournaments. It holds only the random source, so a fixed seed
// replays the whole tournament ball for ball.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine seeded from the ambient clock.
func NewEngine() *Engine {
	return NewEngineWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithSource returns an engine driven by the given random source.
func NewEngineWithSource(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Run simulates the full tournament: double round-robin league, standings
// with the net-rate tiebreak, play-offs seeded by finishing position, and
// tournament awards. Pure with respect to its inputs; entries are not
// mutated.
func (e *Engine) Run(entries []Entry) (*TournamentResult, error) {
	if len(entries) < 2 {
		return nil, ErrTooFewTeams
	}

	result := &TournamentResult{}
	acc := newAccumulator()

	table := make(map[uuid.UUID]*Standing, len(entries))
	for _, en := range entries {
		table[en.TeamKey] = &Standing{TeamKey: en.TeamKey, Name: en.Name}
	}

	for _, fx := range leagueFixtures(entries) {
		m := simulateMatch(e.rng, "league", entries[fx[0]], entries[fx[1]])
		tally(table, m)
		acc.addMatch(m)
		result.League = append(result.League, m)
	}

	result.Standings = rankStandings(table)

	byKey := make(map[uuid.UUID]Entry, len(entries))
	for _, en := range entries {
		byKey[en.TeamKey] = en
	}
	seed := func(i int) Entry { return byKey[result.Standings[i].TeamKey] }

	if planPlayOffs(len(entries)).fourTeam {
		// Qualifier 1: first vs second, winner straight to the final.
		q1 := simulateMatch(e.rng, "qualifier1", seed(0), seed(1))
		// Eliminator: third vs fourth, loser is out.
		elim := simulateMatch(e.rng, "eliminator", seed(2), seed(3))
		// Qualifier 2: Q1 loser vs eliminator winner.
		q2 := simulateMatch(e.rng, "qualifier2", byKey[loserOf(q1)], byKey[elim.WinnerKey])
		final := simulateMatch(e.rng, "final", byKey[q1.WinnerKey], byKey[q2.WinnerKey])

		result.PlayOffs = []MatchResult{q1, elim, q2, final}
		result.Champion = final.WinnerName
		result.RunnerUp = byKey[loserOf(final)].Name
		for _, m := range result.PlayOffs {
			acc.addMatch(m)
		}
	} else {
		final := simulateMatch(e.rng, "final", seed(0), seed(1))
		result.PlayOffs = []MatchResult{final}
		result.Champion = final.WinnerName
		result.RunnerUp = byKey[loserOf(final)].Name
		acc.addMatch(final)
	}

	result.Awards = acc.awards()
	return result, nil
}

func loserOf(m MatchResult) uuid.UUID {
	if m.WinnerKey == m.HomeKey {
		return m.AwayKey
	}
	return m.HomeKey
}
