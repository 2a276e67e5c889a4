package sim

import (
	"sort"

	"github.com/google/uuid"
)

// accumulator folds per-innings lines into tournament-wide player totals.
type accumulator struct {
	totals map[uuid.UUID]*PlayerTotals
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[uuid.UUID]*PlayerTotals)}
}

func (a *accumulator) get(id uuid.UUID, name string, teamKey uuid.UUID) *PlayerTotals {
	t, ok := a.totals[id]
	if !ok {
		t = &PlayerTotals{Player: name, TeamKey: teamKey}
		a.totals[id] = t
	}
	return t
}

// addMatch walks both innings of a match. Team keys come from the match
// orientation: home bats first.
func (a *accumulator) addMatch(m MatchResult) {
	a.addInnings(m.First, m.HomeKey, m.AwayKey)
	a.addInnings(m.Second, m.AwayKey, m.HomeKey)
}

func (a *accumulator) addInnings(in Innings, battingKey, bowlingKey uuid.UUID) {
	// Ball log carries stable player IDs; scorecard rows only carry names.
	perBat := map[uuid.UUID]*BattingLine{}
	perBowl := map[uuid.UUID]*BowlingLine{}
	for _, b := range in.Log {
		bat := perBat[b.BatID]
		if bat == nil {
			bat = &BattingLine{Player: b.Batter}
			perBat[b.BatID] = bat
		}
		bowl := perBowl[b.BowlID]
		if bowl == nil {
			bowl = &BowlingLine{Player: b.Bowler}
			perBowl[b.BowlID] = bowl
		}
		switch b.Outcome {
		case OutWide, OutNoBall:
			// extras: neither batter balls nor batter runs
		case OutWicket:
			bat.Balls++
			bowl.Wickets++
		case OutFour:
			bat.Balls++
			bat.Runs += 4
			bat.Fours++
		case OutSix:
			bat.Balls++
			bat.Runs += 6
			bat.Sixes++
		default:
			bat.Balls++
			bat.Runs += b.Runs
		}
	}

	for id, line := range perBat {
		t := a.get(id, line.Player, battingKey)
		t.Runs += line.Runs
		t.Balls += line.Balls
		t.Fours += line.Fours
		t.Sixes += line.Sixes
	}
	for id, line := range perBowl {
		t := a.get(id, line.Player, bowlingKey)
		t.Wickets += line.Wickets
	}
}

// awards picks the three award holders from the accumulated totals. Totals
// are walked in a stable order so award ties resolve the same way every run.
func (a *accumulator) awards() Awards {
	rows := make([]PlayerTotals, 0, len(a.totals))
	for _, t := range a.totals {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Player < rows[j].Player })

	var out Awards
	for _, t := range rows {
		if t.Runs > out.TopScorer.Runs {
			out.TopScorer = t
		}
		if t.Wickets > out.TopWicketTaker.Wickets {
			out.TopWicketTaker = t
		}
		if t.MVPScore() > out.MostValuable.MVPScore() {
			out.MostValuable = t
		}
	}
	return out
}
