package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/identity"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/room"
)

// client is one participant's live websocket presence.
type client struct {
	identity string
	fp       string
	out      chan room.Event
	cancel   func()

	mu  sync.Mutex
	rm  *room.Room
}

// write pushes an event onto the out channel non-blockingly. A full channel
// means a wedged client; dropping beats stalling the room.
func (c *client) write(ev room.Event) {
	select {
	case c.out <- ev:
	default:
	}
}

func (c *client) writeError(msg string) {
	c.write(room.Event{"type": "error", "message": msg})
}

func (c *client) currentRoom() *room.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rm
}

func (c *client) setRoom(r *room.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rm = r
}

// AuctionWSHandler is the single event channel: create/join travel in-band
// on the same connection as everything else, so one socket per participant
// covers the whole session.
func AuctionWSHandler(logger *logrus.Logger, s *AuctionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Resolve before Accept: minting a guest identity sets a cookie,
		// which must go out with the upgrade response headers.
		id, err := identity.Resolve(w, r)
		if err != nil {
			logger.Warnf("identity resolution failed: %v", err)
			http.Error(w, "identity resolution failed", http.StatusInternalServerError)
			return
		}
		fp := identity.OriginFingerprint(r)

		ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"auction"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer ws.Close(websocket.StatusInternalError, "handler finished")

		if ws.Subprotocol() != "auction" {
			ws.Close(BadSubprotocolError, "client must speak the auction subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		c := &client{
			identity: id,
			fp:       fp,
			out:      make(chan room.Event, 32),
			cancel:   cancel,
		}

		logger.Infof("participant %s connected from %s", id, fp)

		go writePump(ctx, ws, c, logger)
		readPump(ctx, ws, s, c, logger)

		// readPump exited: tear the presence down.
		if rm := c.currentRoom(); rm != nil {
			s.detach(rm.Code, c)
			rm.Drop(c.identity)
		}
		cancel()
		logger.Infof("participant %s disconnected", id)
	}
}

// readPump decodes inbound events and routes them until the connection
// drops. Every handler runs to completion against the room before the next
// message is read, which is what keeps one participant's events ordered.
func readPump(ctx context.Context, ws *websocket.Conn, s *AuctionServer, c *client, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		typ, msg, err := ws.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus != websocket.StatusNormalClosure &&
				closeStatus != websocket.StatusGoingAway &&
				!strings.Contains(err.Error(), "context canceled") {
				logger.Warnf("read error for %s: %v", c.identity, err)
			}
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var packet map[string]interface{}
		if err := json.Unmarshal(msg, &packet); err != nil {
			c.writeError("invalid JSON")
			continue
		}

		handleAuctionMessage(ctx, s, c, packet, logger)
	}
}

// handleAuctionMessage dispatches one inbound event. Room methods validate
// everything themselves; any returned error becomes a notice to this
// requester only and never touches room state.
func handleAuctionMessage(ctx context.Context, s *AuctionServer, c *client, packet map[string]interface{}, logger *logrus.Logger) {
	action, _ := packet["type"].(string)
	rm := c.currentRoom()

	// Room-scoped events need a joined room.
	if rm == nil && action != "create_room" && action != "join_room" {
		c.writeError("join a room first")
		return
	}

	switch action {
	case "create_room":
		if rm != nil {
			c.writeError("already in a room")
			return
		}
		code, _ := packet["code"].(string)
		secret, _ := packet["secret"].(string)
		var cfg models.RoomConfig
		decodeField(packet, "config", &cfg)

		r, err := s.Rooms.Create(code, secret, cfg, c.identity, c.fp)
		if err != nil {
			c.writeError(err.Error())
			return
		}
		s.attach(r, c)
		c.setRoom(r)
		r.Join(c.identity, c.fp)
		c.write(room.Event{"type": "room_created", "room_code": r.Code})
		c.write(snapshotAs(r, c.identity, "room_joined"))

	case "join_room":
		if rm != nil {
			c.writeError("already in a room")
			return
		}
		code, _ := packet["code"].(string)
		secret, _ := packet["secret"].(string)

		r, err := s.Rooms.Join(code, secret)
		if err != nil {
			c.writeError(err.Error())
			return
		}
		s.attach(r, c)
		c.setRoom(r)
		r.Join(c.identity, c.fp)
		c.write(snapshotAs(r, c.identity, "room_joined"))

	case "request_state_sync":
		c.write(rm.StateSync(c.identity))

	case "claim_team":
		key, err := parseKey(packet, "team_key")
		if err != nil {
			c.writeError(err.Error())
			return
		}
		reportIfError(c, rm.ClaimTeam(c.identity, key))

	case "reclaim_team":
		key, err := parseKey(packet, "team_key")
		if err != nil {
			c.writeError(err.Error())
			return
		}
		reportIfError(c, rm.ReclaimTeam(c.identity, key))

	case "rename_team":
		key, err := parseKey(packet, "team_key")
		if err != nil {
			c.writeError(err.Error())
			return
		}
		name, _ := packet["name"].(string)
		reportIfError(c, rm.RenameTeam(c.identity, key, name))

	case "start_auction":
		var lots []models.Lot
		decodeField(packet, "lots", &lots)
		if len(lots) == 0 && s.Catalog != nil {
			loaded, err := s.Catalog.Lots(ctx)
			if err != nil {
				logger.Warnf("catalog load failed: %v", err)
				c.writeError("athlete catalog unavailable")
				return
			}
			lots = loaded
		}
		reportIfError(c, rm.StartAuction(c.identity, lots))

	case "place_bid":
		key, err := parseKey(packet, "team_key")
		if err != nil {
			c.writeError(err.Error())
			return
		}
		amount, ok := packet["amount"].(float64)
		if !ok {
			c.writeError("amount must be a number")
			return
		}
		reportIfError(c, rm.PlaceBid(c.identity, key, int(amount)))

	case "toggle_timer":
		reportIfError(c, rm.ToggleTimer(c.identity))

	case "finalize_sale":
		reportIfError(c, rm.FinalizeSale(c.identity))

	case "end_auction":
		reportIfError(c, rm.EndAuction(c.identity))

	case "submit_squad":
		var sq models.Squad
		if err := decodePacket(packet, &sq); err != nil {
			c.writeError("malformed squad")
			return
		}
		reportIfError(c, rm.SubmitSquad(c.identity, sq))

	case "request_simulation":
		reportIfError(c, rm.RequestSimulation(c.identity))

	default:
		c.writeError("unknown event type: " + action)
	}
}

func reportIfError(c *client, err error) {
	if err != nil {
		c.writeError(err.Error())
	}
}

// snapshotAs retags a state snapshot, e.g. as the room_joined reply.
func snapshotAs(r *room.Room, identity, evType string) room.Event {
	ev := r.StateSync(identity)
	ev["type"] = evType
	return ev
}

// decodeField round-trips one packet field through JSON into a typed value.
// Missing or malformed fields leave the target zero-valued.
func decodeField(packet map[string]interface{}, field string, target interface{}) {
	raw, ok := packet[field]
	if !ok {
		return
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, target)
}

// decodePacket round-trips the whole packet into a typed value.
func decodePacket(packet map[string]interface{}, target interface{}) error {
	data, err := json.Marshal(packet)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func parseKey(packet map[string]interface{}, field string) (uuid.UUID, error) {
	raw, _ := packet[field].(string)
	return uuid.Parse(raw)
}

// writePump drains the out channel onto the socket and keeps the connection
// alive with periodic pings.
func writePump(ctx context.Context, ws *websocket.Conn, c *client, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.out:
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal outgoing event for %s: %v", c.identity, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = ws.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := ws.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
