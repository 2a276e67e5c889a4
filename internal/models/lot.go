package models

import "github.com/google/uuid"

// LotStatus is assigned exactly once when a lot is resolved and never reverted.
type LotStatus string

const (
	LotPending LotStatus = "pending"
	LotSold    LotStatus = "sold"
	LotUnsold  LotStatus = "unsold"
)

// Role tags an athlete's playing role, used for squad composition rules
// and bowler eligibility in the simulation.
type Role string

const (
	RoleBatter     Role = "batter"
	RoleBowler     Role = "bowler"
	RoleAllRounder Role = "all_rounder"
	RoleKeeper     Role = "wicket_keeper"
)

// CanBowl reports whether a player with this role may be given an over.
func (r Role) CanBowl() bool {
	return r == RoleBowler || r == RoleAllRounder
}

// Skill holds the 0-100 ratings used by the simulation engine.
type Skill struct {
	Batting int `json:"batting"`
	Bowling int `json:"bowling"`
	Luck    int `json:"luck"`
}

// Lot is one athlete up for bid in the auction queue.
type Lot struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Overseas  bool      `json:"overseas"`
	BasePrice int       `json:"base_price"`
	Step      int       `json:"step"` // minimum bid increment
	Skill     Skill     `json:"skill"`
	Status    LotStatus `json:"status"`
}
