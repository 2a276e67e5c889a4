package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/history"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/sim"
)

// Phase is the room lifecycle tag. Events that do not match the current
// phase are ignored or rejected; they never force a transition.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseAuction  Phase = "auction"
	PhaseSquads   Phase = "squads"
	PhaseComplete Phase = "complete"
)

// Event is one outbound message payload; "type" carries the event name.
type Event map[string]interface{}

// Participant is one connected identity in the room.
type Participant struct {
	Identity    string
	Fingerprint string
}

var defaultTeamNames = []string{
	"Chennai Super Kings",
	"Mumbai Indians",
	"Royal Challengers Bengaluru",
	"Kolkata Knight Riders",
	"Sunrisers Hyderabad",
	"Rajasthan Royals",
	"Delhi Capitals",
	"Punjab Kings",
	"Gujarat Titans",
	"Lucknow Super Giants",
}

// Room is one isolated auction session. All state mutations run under mu, so
// inbound events and timer callbacks for the same room never interleave.
type Room struct {
	Code   string
	Config models.RoomConfig

	// BroadcastFn fans an event out to every connected participant.
	// BroadcastToFn targets a single identity (error notices, state sync).
	// Installed by the transport layer; nil hooks make the room inert,
	// which is what tests want.
	BroadcastFn   func(ev Event)
	BroadcastToFn func(identity string, ev Event)

	// OnEmpty fires after the last participant drops while no auction is
	// active. Assigned by the store so the room can delete itself.
	OnEmpty func(code string)

	// BidWindow is the countdown restarted on every accepted bid; Cooldown
	// is the pause between a sale and the next lot. Tests shorten both.
	BidWindow time.Duration
	Cooldown  time.Duration

	mu         sync.Mutex
	log        *logrus.Entry
	clk        clockwork.Clock
	secretHash string

	phase   Phase
	admin   string // participant identity holding admin authority
	adminFp string // network-origin fallback for admin recovery

	participants map[string]*Participant
	teams        []*models.Team
	ownerFp      map[uuid.UUID]string // claim-time fingerprint per team

	queue   []*models.Lot
	lotIdx  int
	bid     int
	bidder  uuid.UUID
	hasBid  bool
	selling bool

	clock    *AuctionClock
	cooldown clockwork.Timer

	squads    map[uuid.UUID]models.Squad
	engine    *sim.Engine
	simulated bool
	result    *sim.TournamentResult

	seq int
}

// New builds a lobby-phase room with its franchise slots pre-created. The
// creator holds admin authority until a reconnection transfers it.
func New(code, secretHash string, cfg models.RoomConfig, creator, creatorFp string, logger *logrus.Logger, clk clockwork.Clock) *Room {
	cfg = cfg.Normalize()
	r := &Room{
		Code:         code,
		Config:       cfg,
		BidWindow:    DefaultBidWindow,
		Cooldown:     SaleCooldown,
		secretHash:   secretHash,
		log:          logger.WithField("room", code),
		clk:          clk,
		phase:        PhaseLobby,
		admin:        creator,
		adminFp:      creatorFp,
		participants: make(map[string]*Participant),
		ownerFp:      make(map[uuid.UUID]string),
		squads:       make(map[uuid.UUID]models.Squad),
		engine:       sim.NewEngine(),
	}
	for i := 0; i < cfg.TeamCount; i++ {
		r.teams = append(r.teams, &models.Team{
			Key:    uuid.New(),
			Name:   defaultTeamNames[i],
			Budget: cfg.Budget,
		})
	}
	r.clock = NewAuctionClock(clk, r.BidWindow, r.handleTick, r.handleExpiry)
	return r
}

// Join registers a participant. A reconnecting admin is recognized by
// identity first; if the admin identity is gone, a matching network
// fingerprint recovers the authority (best-effort, never a security
// boundary). At most one identity holds admin at a time.
func (r *Room) Join(identity, fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participants[identity] = &Participant{Identity: identity, Fingerprint: fingerprint}

	if identity == r.admin {
		if fingerprint != "" {
			r.adminFp = fingerprint
		}
	} else if _, adminHere := r.participants[r.admin]; !adminHere && fingerprint != "" && fingerprint == r.adminFp {
		r.log.WithField("identity", identity).Info("admin authority recovered by origin match")
		r.admin = identity
	}

	r.log.WithField("identity", identity).Info("participant joined")
	r.broadcast(r.lobbyUpdate())
}

// Drop removes a participant's live presence. Team ownership survives the
// drop; only the connection goes away. An empty room with no auction running
// reports itself via OnEmpty.
func (r *Room) Drop(identity string) {
	r.mu.Lock()
	delete(r.participants, identity)
	empty := len(r.participants) == 0 && r.phase != PhaseAuction
	onEmpty := r.OnEmpty
	if !empty {
		r.broadcast(r.lobbyUpdate())
	}
	r.mu.Unlock()

	if empty && onEmpty != nil {
		onEmpty(r.Code)
	}
}

// Teardown cancels all scheduled work. Must run on every path that destroys
// the room so no timer fires against freed state.
func (r *Room) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock.Stop()
	if r.cooldown != nil {
		r.cooldown.Stop()
		r.cooldown = nil
	}
}

// SetBroadcast installs the transport fan-out hooks under the room lock.
// Safe to call again on reconnects; the hooks are idempotent to replace.
func (r *Room) SetBroadcast(all func(Event), to func(string, Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BroadcastFn = all
	r.BroadcastToFn = to
}

// SecretHash exposes the stored access-secret hash for join verification.
func (r *Room) SecretHash() string { return r.secretHash }

// IsAdmin reports whether the identity currently holds admin authority.
func (r *Room) IsAdmin(identity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return identity == r.admin
}

// ClaimTeam binds an unclaimed franchise slot to the caller's identity.
func (r *Room) ClaimTeam(identity string, key uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.teamOwnedBy(identity) != nil {
		return ErrOwnsTeam
	}
	t := r.teamByKey(key)
	if t == nil {
		return ErrTeamNotFound
	}
	if t.Claimed {
		return ErrTeamClaimed
	}

	t.Claimed = true
	t.OwnerIdentity = identity
	if p := r.participants[identity]; p != nil {
		r.ownerFp[key] = p.Fingerprint
	}
	r.log.WithFields(logrus.Fields{"identity": identity, "team": t.Name}).Info("team claimed")
	r.broadcast(r.lobbyUpdate())
	return nil
}

// ReclaimTeam restores ownership of a claimed team after a reconnection.
// Identity match wins outright; a network-origin match is accepted only
// while the recorded owner is disconnected.
func (r *Room) ReclaimTeam(identity string, key uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.teamByKey(key)
	if t == nil {
		return ErrTeamNotFound
	}
	if !t.Claimed {
		return ErrNotOwner
	}
	if t.OwnerIdentity != identity {
		_, ownerHere := r.participants[t.OwnerIdentity]
		p := r.participants[identity]
		if ownerHere || p == nil || p.Fingerprint == "" || p.Fingerprint != r.ownerFp[key] {
			return ErrNotOwner
		}
		r.log.WithFields(logrus.Fields{"identity": identity, "team": t.Name}).Info("team ownership recovered by origin match")
		t.OwnerIdentity = identity
	}
	r.broadcast(r.lobbyUpdate())
	return nil
}

// RenameTeam changes a franchise display name. Admin only.
func (r *Room) RenameTeam(identity string, key uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.admin {
		return ErrNotAdmin
	}
	t := r.teamByKey(key)
	if t == nil {
		return ErrTeamNotFound
	}
	if name != "" {
		t.Name = name
	}
	r.broadcast(r.lobbyUpdate())
	return nil
}

// StateSync builds a full per-identity snapshot: everything a client needs
// to redraw after a reconnect.
func (r *Room) StateSync(identity string) Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(identity)
}

func (r *Room) snapshot(identity string) Event {
	ev := Event{
		"type":         "room_state",
		"room_code":    r.Code,
		"phase":        string(r.phase),
		"config":       r.Config,
		"teams":        r.teamList(),
		"participants": len(r.participants),
	}
	ev["you_are_admin"] = identity == r.admin
	if t := r.teamOwnedBy(identity); t != nil {
		ev["your_team_key"] = t.Key.String()
	}
	if r.phase == PhaseAuction {
		if lot := r.currentLot(); lot != nil {
			ev["lot"] = lot
			ev["lot_number"] = r.lotIdx + 1
			ev["bid"] = r.bid
			if r.hasBid {
				ev["bid_team_key"] = r.bidder.String()
			}
			ev["seconds_remaining"] = r.clock.Remaining()
			ev["paused"] = r.clock.Paused()
		}
	}
	if r.phase == PhaseSquads {
		ev["squads_submitted"] = len(r.squads)
		ev["squads_expected"] = r.claimedCount()
	}
	if r.result != nil {
		ev["result"] = r.result
	}
	return ev
}

// lobbyUpdate is broadcast on every join, drop, claim and rename.
func (r *Room) lobbyUpdate() Event {
	return Event{
		"type":         "lobby_update",
		"phase":        string(r.phase),
		"teams":        r.teamList(),
		"participants": len(r.participants),
	}
}

func (r *Room) teamList() []models.Team {
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *t)
	}
	return out
}

func (r *Room) teamByKey(key uuid.UUID) *models.Team {
	for _, t := range r.teams {
		if t.Key == key {
			return t
		}
	}
	return nil
}

func (r *Room) teamOwnedBy(identity string) *models.Team {
	for _, t := range r.teams {
		if t.Claimed && t.OwnerIdentity == identity {
			return t
		}
	}
	return nil
}

func (r *Room) claimedCount() int {
	n := 0
	for _, t := range r.teams {
		if t.Claimed {
			n++
		}
	}
	return n
}

func (r *Room) currentLot() *models.Lot {
	if r.lotIdx < 0 || r.lotIdx >= len(r.queue) {
		return nil
	}
	return r.queue[r.lotIdx]
}

// broadcast fans an event out through the installed hook. Callers hold the
// room lock; the hook must not block (the transport uses buffered channels
// with non-blocking writes).
func (r *Room) broadcast(ev Event) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}

func (r *Room) sendTo(identity string, ev Event) {
	if r.BroadcastToFn != nil {
		r.BroadcastToFn(identity, ev)
	}
}

// record queues an audit entry for the external historian. Best-effort.
func (r *Room) record(actor, eventType string, payload map[string]interface{}) {
	r.seq++
	rec := history.Record{
		RoomCode: r.Code,
		Seq:      r.seq,
		Actor:    actor,
		Type:     eventType,
		Payload:  payload,
		Ts:       time.Now().Unix(),
	}
	if err := history.Publish(context.Background(), rec); err != nil {
		r.log.WithError(err).Debug("historian publish failed")
	}
}

func (r *Room) handleTick(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast(Event{"type": "timer_tick", "seconds_remaining": remaining})
}

func (r *Room) handleExpiry() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseAuction {
		return
	}
	r.broadcast(Event{"type": "timer_ended"})
	r.finalizeCurrentLocked()
}

func describeLot(l *models.Lot) string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Role)
}
