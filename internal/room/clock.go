package room

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultBidWindow is the countdown restarted on every accepted bid.
const DefaultBidWindow = 15 * time.Second

const tickInterval = time.Second

// AuctionClock is the per-room countdown. Remaining time is always computed
// from an absolute deadline, never accumulated by fixed decrements, so a slow
// tick cannot drift the clock. Pausing records the pause instant; resuming
// shifts the deadline by the paused span, leaving remaining time untouched.
//
// Callbacks fire on the clock's own goroutine with no internal lock held, so
// they may safely take the room lock.
type AuctionClock struct {
	clk      clockwork.Clock
	duration time.Duration

	onTick   func(remaining int)
	onExpire func()

	mu       sync.Mutex
	deadline time.Time
	paused   bool
	pausedAt time.Time
	running  bool
	gen      int // invalidates callbacks from superseded schedules
	timer    clockwork.Timer
}

// NewAuctionClock builds a stopped clock. onTick receives whole seconds
// remaining once per interval; onExpire fires exactly once per Start/Reset
// cycle when the deadline is crossed.
func NewAuctionClock(clk clockwork.Clock, duration time.Duration, onTick func(int), onExpire func()) *AuctionClock {
	return &AuctionClock{
		clk:      clk,
		duration: duration,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start arms the clock for a full window.
func (c *AuctionClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = c.clk.Now().Add(c.duration)
	c.paused = false
	c.running = true
	c.scheduleLocked()
}

// Reset restarts the full window. Used when a bid is accepted.
func (c *AuctionClock) Reset() {
	c.Start()
}

// Stop disarms the clock. Safe to call repeatedly and from any state; any
// in-flight tick becomes a no-op via the generation guard.
func (c *AuctionClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *AuctionClock) stopLocked() {
	c.running = false
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Toggle flips the pause flag and returns the new paused state. Toggling a
// stopped clock reports paused without arming anything.
func (c *AuctionClock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return true
	}
	if c.paused {
		c.deadline = c.deadline.Add(c.clk.Now().Sub(c.pausedAt))
		c.paused = false
		c.scheduleLocked()
	} else {
		c.paused = true
		c.pausedAt = c.clk.Now()
		c.gen++
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
	}
	return c.paused
}

// Paused reports the pause flag.
func (c *AuctionClock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Remaining returns whole seconds left, rounded up so a freshly started
// clock reports its full window.
func (c *AuctionClock) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked()
}

func (c *AuctionClock) remainingLocked() int {
	if !c.running {
		return 0
	}
	now := c.clk.Now()
	if c.paused {
		now = c.pausedAt
	}
	left := c.deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + tickInterval - 1) / tickInterval)
}

func (c *AuctionClock) scheduleLocked() {
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clk.AfterFunc(tickInterval, func() { c.fire(gen) })
}

func (c *AuctionClock) fire(gen int) {
	c.mu.Lock()
	if gen != c.gen || !c.running || c.paused {
		c.mu.Unlock()
		return
	}
	remaining := c.remainingLocked()
	if remaining <= 0 {
		c.stopLocked()
		c.mu.Unlock()
		if c.onExpire != nil {
			c.onExpire()
		}
		return
	}
	c.scheduleLocked()
	c.mu.Unlock()
	if c.onTick != nil {
		c.onTick(remaining)
	}
}
