package sim

import (
	"sort"

	"github.com/google/uuid"
)

// leagueFixtures builds the double round-robin: every ordered pair of teams
// meets once, so each unordered pair plays home-and-away.
func leagueFixtures(entries []Entry) [][2]int {
	var fixtures [][2]int
	for i := range entries {
		for j := range entries {
			if i != j {
				fixtures = append(fixtures, [2]int{i, j})
			}
		}
	}
	return fixtures
}

// tally folds a finished league match into the standings table.
func tally(table map[uuid.UUID]*Standing, m MatchResult) {
	home, away := table[m.HomeKey], table[m.AwayKey]

	home.Played++
	away.Played++

	home.runsFor += m.First.Runs
	home.ballsFaced += m.First.LegalBalls
	home.runsAgainst += m.Second.Runs
	home.ballsBowled += m.Second.LegalBalls

	away.runsFor += m.Second.Runs
	away.ballsFaced += m.Second.LegalBalls
	away.runsAgainst += m.First.Runs
	away.ballsBowled += m.First.LegalBalls

	if m.WinnerKey == m.HomeKey {
		home.Wins++
		home.Points += 2
		away.Losses++
	} else {
		away.Wins++
		away.Points += 2
		home.Losses++
	}
}

// rankStandings computes net rates and orders the table by points then
// net-rate differential, yielding a total order.
func rankStandings(table map[uuid.UUID]*Standing) []Standing {
	var rows []Standing
	for _, s := range table {
		s.NetRate = netRate(s)
		rows = append(rows, *s)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].NetRate != rows[j].NetRate {
			return rows[i].NetRate > rows[j].NetRate
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// netRate is (runs scored / overs faced) - (runs conceded / overs bowled),
// accumulated across all league matches.
func netRate(s *Standing) float64 {
	var nrr float64
	if s.ballsFaced > 0 {
		nrr += float64(s.runsFor) / (float64(s.ballsFaced) / 6)
	}
	if s.ballsBowled > 0 {
		nrr -= float64(s.runsAgainst) / (float64(s.ballsBowled) / 6)
	}
	return nrr
}

// playOffPlan names the bracket matches for the given seed count: the
// standard four-team ladder when at least four sides qualify, otherwise a
// single final between the top two.
type playOffPlan struct {
	fourTeam bool
}

func planPlayOffs(teamCount int) playOffPlan {
	return playOffPlan{fourTeam: teamCount >= 4}
}
