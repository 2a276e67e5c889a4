package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// simulateMatch plays two innings on a freshly rolled pitch. The home side
// bats first. A level league match is awarded to the side batting first; this
// mirrors the established tie rule rather than a super over.
func simulateMatch(rng *rand.Rand, stage string, home, away Entry) MatchResult {
	p := rollPitch(rng)

	first := simulateInnings(rng, home, away, -1, p)
	second := simulateInnings(rng, away, home, first.Runs, p)

	res := MatchResult{
		ID:       uuid.New(),
		Stage:    stage,
		HomeKey:  home.TeamKey,
		AwayKey:  away.TeamKey,
		HomeName: home.Name,
		AwayName: away.Name,
		First:    first,
		Second:   second,
	}

	switch {
	case second.Runs > first.Runs:
		res.WinnerKey = away.TeamKey
		res.WinnerName = away.Name
		res.Margin = fmt.Sprintf("%d wickets", 10-second.Wickets)
	case first.Runs > second.Runs:
		res.WinnerKey = home.TeamKey
		res.WinnerName = home.Name
		res.Margin = fmt.Sprintf("%d runs", first.Runs-second.Runs)
	default:
		res.Tied = true
		res.WinnerKey = home.TeamKey
		res.WinnerName = home.Name
		res.Margin = "tie, batted first"
	}
	return res
}
