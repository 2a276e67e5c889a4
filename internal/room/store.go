package room

import (
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/auth"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

// Store is the process-wide room registry: room code to live Room. Its mutex
// guards only the map; each Room serializes its own state.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room

	log *logrus.Logger
	clk clockwork.Clock
}

// NewStore builds an empty registry. The clock is shared by every room's
// countdown; tests pass a fake one.
func NewStore(log *logrus.Logger, clk clockwork.Clock) *Store {
	return &Store{
		rooms: make(map[string]*Room),
		log:   log,
		clk:   clk,
	}
}

// Create registers a new room under the given code, with the creator holding
// admin authority. The secret is stored only as an argon2id hash. Codes are
// case-insensitive and unique while the room is live.
func (s *Store) Create(code, secret string, cfg models.RoomConfig, creator, creatorFp string) (*Room, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, ErrRoomNotFound
	}
	hash, err := auth.HashSecret(secret)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[code]; exists {
		return nil, ErrRoomExists
	}

	r := New(code, hash, cfg, creator, creatorFp, s.log, s.clk)
	r.OnEmpty = func(code string) { s.Remove(code) }
	s.rooms[code] = r
	s.log.WithField("room", code).Info("room created")
	return r, nil
}

// Join looks up a room and verifies the access secret.
func (s *Store) Join(code, secret string) (*Room, error) {
	s.mu.Lock()
	r, ok := s.rooms[normalizeCode(code)]
	s.mu.Unlock()
	if !ok {
		return nil, ErrRoomNotFound
	}

	match, err := auth.CompareSecret(secret, r.SecretHash())
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrBadSecret
	}
	return r, nil
}

// Get returns a live room without checking the secret. Used for requests on
// an already-joined connection.
func (s *Store) Get(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[normalizeCode(code)]
	return r, ok
}

// Remove tears the room down and deletes it from the registry. Typically
// reached via the room's OnEmpty callback.
func (s *Store) Remove(code string) {
	s.mu.Lock()
	r, ok := s.rooms[normalizeCode(code)]
	if ok {
		delete(s.rooms, normalizeCode(code))
	}
	s.mu.Unlock()

	if ok {
		r.Teardown()
		s.log.WithField("room", code).Info("room removed")
	}
}

// Count reports how many rooms are live.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
