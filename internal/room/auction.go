package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

// SaleCooldown is the pause between a hammer falling and the next lot
// opening, giving clients time to show the result.
const SaleCooldown = 3 * time.Second

// StartAuction snapshots the claimed teams and the supplied lot queue and
// opens bidding on the first unresolved lot. Admin only. The server's own
// claimed-team set is authoritative; any team list a client sends along is
// ignored. Lots already resolved (status set) are skipped, so resuming a
// session never replays settled lots. An empty or fully resolved queue goes
// straight to squad selection.
func (r *Room) StartAuction(identity string, lots []models.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.admin {
		return ErrNotAdmin
	}
	if r.phase != PhaseLobby {
		// Duplicate start from a racing client. Expected, not an error.
		return nil
	}

	r.queue = r.queue[:0]
	for _, lot := range lots {
		l := lot
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		if l.Status == "" {
			l.Status = models.LotPending
		}
		if l.Step <= 0 {
			l.Step = 10
		}
		r.queue = append(r.queue, &l)
	}

	r.phase = PhaseAuction
	r.clock = NewAuctionClock(r.clk, r.BidWindow, r.handleTick, r.handleExpiry)
	r.log.WithField("lots", len(r.queue)).Info("auction started")
	r.record(identity, "auction_started", map[string]interface{}{"lots": len(r.queue)})
	r.advanceLocked(0)
	return nil
}

// advanceLocked opens bidding on the next pending lot at or after index
// from, or moves the room to squad selection when none remain.
func (r *Room) advanceLocked(from int) {
	for i := from; i < len(r.queue); i++ {
		if r.queue[i].Status != models.LotPending {
			continue
		}
		r.lotIdx = i
		r.bid = r.queue[i].BasePrice
		r.bidder = uuid.Nil
		r.hasBid = false
		r.broadcast(Event{
			"type":              "lot_update",
			"lot":               r.queue[i],
			"lot_number":        i + 1,
			"lot_count":         len(r.queue),
			"bid":               r.bid,
			"seconds_remaining": int(r.BidWindow / time.Second),
		})
		r.clock.Start()
		return
	}
	r.lotIdx = len(r.queue)
	r.enterSquadsLocked()
}

// PlaceBid validates and applies one bid. Wrong-phase, paused-clock and
// mid-sale attempts are expected races against the server's truth and are
// dropped silently; ownership and amount problems come back as errors for
// the requester alone. An accepted bid restarts the countdown in full.
func (r *Room) PlaceBid(identity string, teamKey uuid.UUID, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lot := r.currentLot()
	if r.phase != PhaseAuction || r.selling || lot == nil || r.clock.Paused() {
		return nil
	}

	t := r.teamByKey(teamKey)
	if t == nil {
		return ErrTeamNotFound
	}
	if !t.Claimed || t.OwnerIdentity != identity {
		return ErrNotOwner
	}
	if r.hasBid && r.bidder == teamKey {
		// Already the high bidder; self-overbids only burn budget.
		return nil
	}
	if r.hasBid {
		if amount <= r.bid {
			return ErrBidTooLow
		}
	} else if amount < lot.BasePrice {
		return ErrBidTooLow
	}
	if amount > t.Budget {
		return ErrInsufficientBudget
	}

	r.bid = amount
	r.bidder = teamKey
	r.hasBid = true
	r.clock.Reset()

	r.log.WithFields(logrus.Fields{"team": t.Name, "amount": amount, "lot": describeLot(lot)}).Info("bid accepted")
	r.record(identity, "bid_accepted", map[string]interface{}{
		"team":   t.Key.String(),
		"amount": amount,
		"lot":    lot.ID.String(),
	})
	r.broadcast(Event{
		"type":              "bid_update",
		"bid":               amount,
		"team_key":          t.Key.String(),
		"team_name":         t.Name,
		"seconds_remaining": int(r.BidWindow / time.Second),
	})
	return nil
}

// ToggleTimer flips the countdown pause flag. Admin only. The deadline
// shifts with the pause span, so no time is lost or gained on resume.
func (r *Room) ToggleTimer(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.admin {
		return ErrNotAdmin
	}
	if r.phase != PhaseAuction || r.selling || r.currentLot() == nil {
		return nil
	}
	paused := r.clock.Toggle()
	r.broadcast(Event{"type": "timer_status", "paused": paused, "seconds_remaining": r.clock.Remaining()})
	return nil
}

// FinalizeSale resolves the current lot immediately instead of waiting for
// the clock. Admin only.
func (r *Room) FinalizeSale(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.admin {
		return ErrNotAdmin
	}
	r.finalizeCurrentLocked()
	return nil
}

// finalizeCurrentLocked resolves the current lot exactly once. The selling
// flag guards the clock-expiry path racing an explicit finalize; the second
// entrant sees the flag and leaves. Outcome is computed purely from the
// room's recorded high bid.
func (r *Room) finalizeCurrentLocked() {
	if r.phase != PhaseAuction || r.selling {
		return
	}
	lot := r.currentLot()
	if lot == nil || lot.Status != models.LotPending {
		return
	}

	r.selling = true
	r.clock.Stop()

	ev := Event{"type": "sale_finalized", "lot": lot}
	if r.hasBid {
		buyer := r.teamByKey(r.bidder)
		lot.Status = models.LotSold
		buyer.Budget -= r.bid
		buyer.Roster = append(buyer.Roster, models.Purchase{Lot: *lot, Price: r.bid})
		ev["sold"] = true
		ev["buyer_key"] = buyer.Key.String()
		ev["buyer_name"] = buyer.Name
		ev["price"] = r.bid
		r.log.WithFields(logrus.Fields{"lot": describeLot(lot), "team": buyer.Name, "price": r.bid}).Info("lot sold")
		r.record("", "lot_sold", map[string]interface{}{"lot": lot.ID.String(), "team": buyer.Key.String(), "price": r.bid})
	} else {
		lot.Status = models.LotUnsold
		ev["sold"] = false
		r.log.WithField("lot", describeLot(lot)).Info("lot unsold")
		r.record("", "lot_unsold", map[string]interface{}{"lot": lot.ID.String()})
	}
	ev["teams"] = r.teamList()
	r.broadcast(ev)

	r.cooldown = r.clk.AfterFunc(r.Cooldown, r.advanceAfterSale)
}

// advanceAfterSale is the deferred post-sale hop to the next lot. It
// re-checks its guards under the lock: the room may have been ended or torn
// down during the cooldown.
func (r *Room) advanceAfterSale() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseAuction || !r.selling {
		return
	}
	r.selling = false
	r.cooldown = nil
	r.advanceLocked(r.lotIdx + 1)
}

// EndAuction abandons the remaining queue and opens squad selection.
// Admin only.
func (r *Room) EndAuction(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity != r.admin {
		return ErrNotAdmin
	}
	if r.phase != PhaseAuction {
		return nil
	}
	r.record(identity, "auction_ended", nil)
	r.enterSquadsLocked()
	return nil
}

// enterSquadsLocked is the single transition out of bidding: every path that
// leaves the auction phase runs through here, so the clock and cooldown are
// always cancelled.
func (r *Room) enterSquadsLocked() {
	r.phase = PhaseSquads
	r.selling = false
	r.clock.Stop()
	if r.cooldown != nil {
		r.cooldown.Stop()
		r.cooldown = nil
	}
	r.log.Info("squad selection opened")
	r.broadcast(Event{
		"type":            "squad_selection_open",
		"teams":           r.teamList(),
		"squads_expected": r.claimedCount(),
	})
}
