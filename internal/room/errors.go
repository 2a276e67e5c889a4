package room

import "errors"

// Authorization failures.
var (
	ErrNotAdmin = errors.New("only the room admin may do that")
	ErrNotOwner = errors.New("you do not control that team")
)

// Validation failures.
var (
	ErrBidTooLow          = errors.New("bid does not beat the current price")
	ErrInsufficientBudget = errors.New("bid exceeds remaining budget")
	ErrTeamClaimed        = errors.New("team is already claimed")
	ErrOwnsTeam           = errors.New("you already control a team")
	ErrBadSquad           = errors.New("invalid squad submission")
)

// Lookup failures.
var (
	ErrRoomExists   = errors.New("room code is already in use")
	ErrRoomNotFound = errors.New("no such room")
	ErrBadSecret    = errors.New("wrong room secret")
	ErrTeamNotFound = errors.New("no such team")
)
