package models

// RoomConfig is the per-room auction configuration supplied at creation.
type RoomConfig struct {
	TeamCount int `json:"team_count"`
	Budget    int `json:"budget"` // starting purse per team
}

// Normalize clamps a client-supplied config to sane party-scale bounds.
func (c RoomConfig) Normalize() RoomConfig {
	if c.TeamCount < 2 {
		c.TeamCount = 2
	}
	if c.TeamCount > 10 {
		c.TeamCount = 10
	}
	if c.Budget <= 0 {
		c.Budget = 10000
	}
	return c
}
