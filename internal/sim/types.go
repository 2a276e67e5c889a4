package sim

import (
	"github.com/google/uuid"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

// Player is one starter in a simulated eleven.
type Player struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Role     models.Role  `json:"role"`
	Skill    models.Skill `json:"skill"`
	Overseas bool         `json:"overseas"`
}

/// Entry is one team's input to the tournament: the submitted squad resolved
// against the roster. The reserve only enters play as a bowling fallback once
// every starter has exhausted the per-innings quota.
type Entry struct {
	TeamKey uuid.UUID `json:"team_key"`
	Name    string    `json:"name"`
	XI      []Player  `json:"xi"` // batting order
	Reserve Player    `json:"reserve"`
	Captain uuid.UUID `json:"captain"`
}

// Outcome is the resolved result of one delivery.
type Outcome string

const (
	OutWicket Outcome = "wicket"
	OutDot    Outcome = "dot"
	OutSingle Outcome = "single"
	OutTwo    Outcome = "two"
	OutThree  Outcome = "three"
	OutFour   Outcome = "four"
	OutSix    Outcome = "six"
	OutWide   Outcome = "wide"
	OutNoBall Outcome = "no_ball"
)

// Ball is one entry in an innings ball log.
type Ball struct {
	Over    int       `json:"over"` // zero-based, counts legal deliveries
	BallNum int       `json:"ball"` // 1-6 within the over
	Batter  string    `json:"batter"`
	Bowler  string    `json:"bowler"`
	Outcome Outcome   `json:"outcome"`
	Runs    int       `json:"runs"` // team runs off this delivery, extras included
	FreeHit bool      `json:"free_hit,omitempty"`
	BatID   uuid.UUID `json:"-"`
	BowlID  uuid.UUID `json:"-"`
}

// BattingLine is one batter's scorecard row.
type BattingLine struct {
	Player string `json:"player"`
	Runs   int    `json:"runs"`
	Balls  int    `json:"balls"`
	Fours  int    `json:"fours"`
	Sixes  int    `json:"sixes"`
	Out    bool   `json:"out"`
}

// BowlingLine is one bowler's figures.
type BowlingLine struct {
	Player   string `json:"player"`
	Balls    int    `json:"balls"` // legal deliveries bowled
	Runs     int    `json:"runs"`  // conceded
	Wickets  int    `json:"wickets"`
	Wides    int    `json:"wides"`
	NoBalls  int    `json:"no_balls"`
	IsImpact bool   `json:"is_impact,omitempty"` // reserve pressed into service
}

// Innings is one side's completed batting turn.
type Innings struct {
	BattingTeam string        `json:"batting_team"`
	Runs        int           `json:"runs"`
	Wickets     int           `json:"wickets"`
	LegalBalls  int           `json:"legal_balls"`
	Extras      int           `json:"extras"`
	Batting     []BattingLine `json:"batting"`
	Bowling     []BowlingLine `json:"bowling"`
	Log         []Ball        `json:"log"`
}

// MatchResult is the immutable outcome of one simulated match.
type MatchResult struct {
	ID         uuid.UUID `json:"id"`
	Stage      string    `json:"stage"` // "league", "qualifier1", "eliminator", "qualifier2", "final"
	HomeKey    uuid.UUID `json:"home_key"`
	AwayKey    uuid.UUID `json:"away_key"`
	HomeName   string    `json:"home_name"`
	AwayName   string    `json:"away_name"`
	First      Innings   `json:"first"`
	Second     Innings   `json:"second"`
	WinnerKey  uuid.UUID `json:"winner_key"`
	WinnerName string    `json:"winner_name"`
	Margin     string    `json:"margin"` // "12 runs" or "4 wickets"
	Tied       bool      `json:"tied"`   // league tie awarded to the side batting first
}

// Standing is one row of the league table.
type Standing struct {
	TeamKey uuid.UUID `json:"team_key"`
	Name    string    `json:"name"`
	Played  int       `json:"played"`
	Wins    int       `json:"wins"`
	Losses  int       `json:"losses"`
	Points  int       `json:"points"`
	NetRate float64   `json:"net_rate"`

	runsFor     int
	ballsFaced  int
	runsAgainst int
	ballsBowled int
}

// PlayerTotals accumulates one player's contribution across the tournament.
type PlayerTotals struct {
	Player  string    `json:"player"`
	TeamKey uuid.UUID `json:"team_key"`
	Runs    int       `json:"runs"`
	Balls   int       `json:"balls"`
	Fours   int       `json:"fours"`
	Sixes   int       `json:"sixes"`
	Wickets int       `json:"wickets"`
}

// MVPScore is the composite award metric.
func (p PlayerTotals) MVPScore() int {
	return p.Runs + p.Fours + 2*p.Sixes + 25*p.Wickets
}

// Awards holds the tournament award winners.
type Awards struct {
	TopScorer      PlayerTotals `json:"top_scorer"`
	TopWicketTaker PlayerTotals `json:"top_wicket_taker"`
	MostValuable   PlayerTotals `json:"most_valuable"`
}

// TournamentResult is the full computed tournament: never mutated once built.
type TournamentResult struct {
	League    []MatchResult `json:"league"`
	Standings []Standing    `json:"standings"`
	PlayOffs  []MatchResult `json:"play_offs"`
	Champion  string        `json:"champion"`
	RunnerUp  string        `json:"runner_up"`
	Awards    Awards        `json:"awards"`
}
