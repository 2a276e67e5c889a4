package sim

import (
	"math/rand"

	"github.com/google/uuid"
)

const (
	// MaxLegalBalls is the delivery cap per innings (twenty overs).
	MaxLegalBalls = 120
	// BowlerQuota is the per-innings delivery quota per bowler (four overs).
	BowlerQuota = 24

	powerplayOvers = 6
	middleOversEnd = 15
)

// pitch is a per-match surface profile applied to every delivery of both
// innings: positive favors the bat, negative the ball.
type pitch float64

func rollPitch(rng *rand.Rand) pitch {
	return pitch((rng.Float64() - 0.5) * 0.08)
}

// inningsState carries the mutable scorecard while an innings is bowled.
type inningsState struct {
	innings Innings

	order     []Player
	batting   map[uuid.UUID]*BattingLine
	bowling   map[uuid.UUID]*BowlingLine
	striker   int
	nonStrike int
	nextIn    int
}

// simulateInnings bowls one full innings. target < 0 means setting a total;
// otherwise the innings ends as soon as the chase passes target.
func simulateInnings(rng *rand.Rand, batting Entry, bowling Entry, target int, p pitch) Innings {
	st := &inningsState{
		innings: Innings{BattingTeam: batting.Name},
		order:   batting.XI,
		batting: make(map[uuid.UUID]*BattingLine),
		bowling: make(map[uuid.UUID]*BowlingLine),
	}
	st.striker, st.nonStrike, st.nextIn = 0, 1, 2
	for _, pl := range batting.XI {
		st.batting[pl.ID] = &BattingLine{Player: pl.Name}
	}

	rot := newBowlerRotation(bowling)
	freeHit := false

	for st.innings.LegalBalls < MaxLegalBalls && st.innings.Wickets < 10 {
		if target >= 0 && st.innings.Runs > target {
			break
		}

		over := st.innings.LegalBalls / 6
		bowler := rot.bowlerFor(over)
		bw := st.bowlingLine(bowler, rot.usingImpact(bowler))

		// Bowl out the over; wides and no-balls are re-bowled and do not
		// count against the quota or the over.
		for ballInOver := st.innings.LegalBalls % 6; ballInOver < 6; {
			if st.innings.LegalBalls >= MaxLegalBalls || st.innings.Wickets >= 10 {
				return st.finish()
			}
			if target >= 0 && st.innings.Runs > target {
				return st.finish()
			}

			striker := st.order[st.striker]
			outcome := resolveBall(rng, striker, bowler, over, p, pressure(target, st.innings.Runs, st.innings.LegalBalls))

			ball := Ball{
				Over:    over,
				BallNum: ballInOver + 1,
				Batter:  striker.Name,
				Bowler:  bowler.Name,
				Outcome: outcome,
				FreeHit: freeHit,
				BatID:   striker.ID,
				BowlID:  bowler.ID,
			}

			switch outcome {
			case OutWide:
				st.innings.Runs++
				st.innings.Extras++
				bw.Runs++
				bw.Wides++
				ball.Runs = 1
			case OutNoBall:
				st.innings.Runs++
				st.innings.Extras++
				bw.Runs++
				bw.NoBalls++
				ball.Runs = 1
				freeHit = true
			case OutWicket:
				bl := st.batting[striker.ID]
				bl.Balls++
				if freeHit {
					// Free hit: the wicket is voided, the delivery still counts.
					ball.Outcome = OutDot
				} else {
					bl.Out = true
					bw.Wickets++
					st.innings.Wickets++
					if st.nextIn < len(st.order) {
						st.striker = st.nextInBatter()
					}
				}
				freeHit = false
				bw.Balls++
				st.innings.LegalBalls++
				ballInOver++
			default:
				runs := outcomeRuns(outcome)
				bl := st.batting[striker.ID]
				bl.Balls++
				bl.Runs += runs
				if outcome == OutFour {
					bl.Fours++
				}
				if outcome == OutSix {
					bl.Sixes++
				}
				st.innings.Runs += runs
				bw.Runs += runs
				ball.Runs = runs
				if runs%2 == 1 {
					st.striker, st.nonStrike = st.nonStrike, st.striker
				}
				freeHit = false
				bw.Balls++
				st.innings.LegalBalls++
				ballInOver++
			}

			st.innings.Log = append(st.innings.Log, ball)
		}

		// Change of ends at the over break.
		st.striker, st.nonStrike = st.nonStrike, st.striker
	}

	return st.finish()
}

// nextInBatter seats the next batter in the vacated striker slot and returns
// the new striker index within the order.
func (st *inningsState) nextInBatter() int {
	idx := st.nextIn
	st.nextIn++
	return idx
}

func (st *inningsState) bowlingLine(b Player, impact bool) *BowlingLine {
	line, ok := st.bowling[b.ID]
	if !ok {
		line = &BowlingLine{Player: b.Name, IsImpact: impact}
		st.bowling[b.ID] = line
	}
	return line
}

func (st *inningsState) finish() Innings {
	for _, pl := range st.order {
		st.innings.Batting = append(st.innings.Batting, *st.batting[pl.ID])
	}
	// Bowling figures in first-bowled order.
	seen := map[uuid.UUID]bool{}
	for _, b := range st.innings.Log {
		if !seen[b.BowlID] {
			seen[b.BowlID] = true
			if line, ok := st.bowling[b.BowlID]; ok {
				st.innings.Bowling = append(st.innings.Bowling, *line)
			}
		}
	}
	return st.innings
}

func outcomeRuns(o Outcome) int {
	switch o {
	case OutSingle:
		return 1
	case OutTwo:
		return 2
	case OutThree:
		return 3
	case OutFour:
		return 4
	case OutSix:
		return 6
	default:
		return 0
	}
}

// pressure returns the late-chase modifier: a chasing side behind the
// required rate swings harder, shifting outcomes toward the extremes.
func pressure(target, runs, legalBalls int) float64 {
	if target < 0 || legalBalls == 0 {
		return 0
	}
	ballsLeft := MaxLegalBalls - legalBalls
	if ballsLeft <= 0 {
		return 0
	}
	required := float64(target+1-runs) * 6 / float64(ballsLeft)
	if required > 9 {
		return 0.035
	}
	return 0
}

// resolveBall draws a uniform factor, adjusts it by the contextual modifiers
// and maps it through the ordered outcome thresholds.
func resolveBall(rng *rand.Rand, batter, bowler Player, over int, p pitch, chase float64) Outcome {
	v := rng.Float64()

	// Batting strength pushes up, bowling strength pulls down.
	v += float64(batter.Skill.Batting-50) / 500
	v -= float64(bowlerTier(bowler)) * 0.02
	v += float64(batter.Skill.Luck-50) / 1000
	v += float64(p)
	v += chase

	// Innings phase: fielding restrictions up front, slog at the death.
	switch {
	case over < powerplayOvers:
		v += 0.025
	case over >= middleOversEnd:
		v += 0.045
	}

	if v < 0 {
		v = 0
	}
	if v >= 1 {
		v = 0.9999
	}

	switch {
	case v < 0.055:
		return OutWicket
	case v < 0.38:
		return OutDot
	case v < 0.60:
		return OutSingle
	case v < 0.70:
		return OutTwo
	case v < 0.72:
		return OutThree
	case v < 0.85:
		return OutFour
	case v < 0.93:
		return OutSix
	case v < 0.975:
		return OutWide
	default:
		return OutNoBall
	}
}

// bowlerTier buckets bowling skill into 0..2; higher tiers depress scoring.
func bowlerTier(b Player) int {
	switch {
	case b.Skill.Bowling >= 75:
		return 2
	case b.Skill.Bowling >= 50:
		return 1
	default:
		return 0
	}
}

// bowlerRotation tracks quota usage and hands out the bowler for each over.
type bowlerRotation struct {
	eligible []Player // bowling-capable starters, in order
	anyone   []Player // full XI, quota fallback
	reserve  Player
	balls    map[uuid.UUID]int
	impact   map[uuid.UUID]bool
	cursor   int
}

func newBowlerRotation(bowling Entry) *bowlerRotation {
	rot := &bowlerRotation{
		balls:   make(map[uuid.UUID]int),
		impact:  make(map[uuid.UUID]bool),
		reserve: bowling.Reserve,
	}
	for _, pl := range bowling.XI {
		rot.anyone = append(rot.anyone, pl)
		if pl.Role.CanBowl() {
			rot.eligible = append(rot.eligible, pl)
		}
	}
	return rot
}

// bowlerFor picks the next bowler with quota left, skipping exhausted bowlers
// in rotation. When every starter is spent the reserve is pressed into
// service; if even the reserve is out of deliveries the least-used starter
// bowls on (the innings must be completed by someone).
func (rot *bowlerRotation) bowlerFor(over int) Player {
	_ = over
	for i := 0; i < len(rot.eligible); i++ {
		cand := rot.eligible[rot.cursor%len(rot.eligible)]
		rot.cursor++
		if rot.balls[cand.ID]+6 <= BowlerQuota {
			rot.balls[cand.ID] += 6
			return cand
		}
	}
	for _, cand := range rot.anyone {
		if rot.balls[cand.ID]+6 <= BowlerQuota {
			rot.balls[cand.ID] += 6
			return cand
		}
	}
	if rot.reserve.ID != uuid.Nil && rot.balls[rot.reserve.ID]+6 <= BowlerQuota {
		rot.balls[rot.reserve.ID] += 6
		rot.impact[rot.reserve.ID] = true
		return rot.reserve
	}
	// Everyone is spent; hand the ball to whoever has bowled least.
	least := rot.anyone[0]
	for _, cand := range rot.anyone[1:] {
		if rot.balls[cand.ID] < rot.balls[least.ID] {
			least = cand
		}
	}
	rot.balls[least.ID] += 6
	return least
}

func (rot *bowlerRotation) usingImpact(b Player) bool {
	return rot.impact[b.ID]
}
