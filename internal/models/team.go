package models

import "github.com/google/uuid"

// Purchase is one roster entry: a won lot with its final hammer price.
// Entries are immutable once appended.
type Purchase struct {
	Lot   Lot `json:"lot"`
	Price int `json:"price"`
}

// Team is a franchise slot within a room, claimed by one participant identity.
type Team struct {
	Key     uuid.UUID `json:"key"`
	Name    string    `json:"name"`
	Budget  int       `json:"budget"`
	Claimed bool      `json:"claimed"`

	// OwnerIdentity is the stable participant identity that claimed the team.
	// It survives disconnects; the live connection handle is tracked by the
	// room and cleared/restored on disconnect/reconnect.
	OwnerIdentity string `json:"-"`

	Roster []Purchase `json:"roster"`
}

// Spent returns the sum of roster purchase prices.
func (t *Team) Spent() int {
	total := 0
	for _, p := range t.Roster {
		total += p.Price
	}
	return total
}

// RosterLot looks up a roster entry by lot ID.
func (t *Team) RosterLot(id uuid.UUID) (Lot, bool) {
	for _, p := range t.Roster {
		if p.Lot.ID == id {
			return p.Lot, true
		}
	}
	return Lot{}, false
}
