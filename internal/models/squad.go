package models

import "github.com/google/uuid"

// SquadSize is the number of starters a squad must name.
const SquadSize = 11

// MaxOverseas caps foreign players in the starting eleven.
const MaxOverseas = 4

// MinBowlingOptions is the minimum number of starters able to bowl.
const MinBowlingOptions = 3

// Squad is a team's submission for the simulation: eleven ordered starters,
// one reserve ("impact") substitute and a captain, all drawn from the roster.
type Squad struct {
	TeamKey  uuid.UUID   `json:"team_key"`
	Starters []uuid.UUID `json:"starters"` // batting order
	Reserve  uuid.UUID   `json:"reserve"`
	Captain  uuid.UUID   `json:"captain"`
}
