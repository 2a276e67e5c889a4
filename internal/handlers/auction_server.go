package handlers

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/catalog"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/room"
)

// AuctionServer ties the room registry to the websocket transport: it owns
// the per-room subscriber lists and installs each room's broadcast hooks.
type AuctionServer struct {
	Log     *logrus.Logger
	Rooms   *room.Store
	Catalog catalog.Source

	mu   sync.Mutex
	subs map[string]map[*client]struct{} // room code -> connections
}

// NewAuctionServer wires a server around an existing registry. The catalog
// supplies the default lot queue when an admin starts without one.
func NewAuctionServer(log *logrus.Logger, rooms *room.Store, cat catalog.Source) *AuctionServer {
	return &AuctionServer{
		Log:     log,
		Rooms:   rooms,
		Catalog: cat,
		subs:    make(map[string]map[*client]struct{}),
	}
}

// attach subscribes a connection to a room and (re)installs the room's
// broadcast hooks over the current subscriber set.
func (s *AuctionServer) attach(r *room.Room, c *client) {
	s.mu.Lock()
	if s.subs[r.Code] == nil {
		s.subs[r.Code] = make(map[*client]struct{})
	}
	s.subs[r.Code][c] = struct{}{}
	s.mu.Unlock()

	code := r.Code
	r.SetBroadcast(
		func(ev room.Event) { s.fanOut(code, "", ev) },
		func(identity string, ev room.Event) { s.fanOut(code, identity, ev) },
	)
}

// detach drops a connection's subscription. The room itself learns of the
// departure via Room.Drop, which the caller is responsible for.
func (s *AuctionServer) detach(code string, c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.subs[code]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(s.subs, code)
		}
	}
}

// fanOut delivers an event to every subscriber of the room, or to the
// connections of a single identity when one is named. Writes are
// non-blocking; a wedged client drops events rather than stalling the room.
func (s *AuctionServer) fanOut(code, identity string, ev room.Event) {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.subs[code]))
	for c := range s.subs[code] {
		if identity == "" || c.identity == identity {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		c.write(ev)
	}
}
