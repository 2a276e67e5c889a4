package room

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

func newTestStore() *Store {
	return NewStore(testLogger(), clockwork.NewRealClock())
}

func TestStoreCreateAndJoin(t *testing.T) {
	s := newTestStore()

	r, err := s.Create("party1", "hunter2", models.RoomConfig{TeamCount: 4, Budget: 500}, "admin", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "PARTY1", r.Code, "codes are case-insensitive")
	assert.Equal(t, 1, s.Count())

	_, err = s.Create("Party1", "other", models.RoomConfig{}, "someone", "")
	assert.ErrorIs(t, err, ErrRoomExists)

	joined, err := s.Join("PARTY1", "hunter2")
	require.NoError(t, err)
	assert.Same(t, r, joined)

	_, err = s.Join("party1", "wrong")
	assert.ErrorIs(t, err, ErrBadSecret)

	_, err = s.Join("nope", "hunter2")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStoreSecretIsHashed(t *testing.T) {
	s := newTestStore()
	r, err := s.Create("vault", "s3cret", models.RoomConfig{}, "admin", "")
	require.NoError(t, err)
	assert.NotContains(t, r.SecretHash(), "s3cret")
	assert.Contains(t, r.SecretHash(), "$argon2id$")
}

func TestStoreRemovesEmptyRoom(t *testing.T) {
	s := newTestStore()
	r, err := s.Create("brief", "pw", models.RoomConfig{TeamCount: 2}, "admin", "10.0.0.1")
	require.NoError(t, err)

	r.Join("admin", "10.0.0.1")
	r.Join("guest", "10.0.0.2")
	require.Equal(t, 1, s.Count())

	r.Drop("guest")
	assert.Equal(t, 1, s.Count(), "room survives while anyone remains")

	r.Drop("admin")
	assert.Equal(t, 0, s.Count(), "last drop in the lobby reclaims the room")

	_, ok := s.Get("brief")
	assert.False(t, ok)
}

func TestStoreNormalizesConfig(t *testing.T) {
	s := newTestStore()
	r, err := s.Create("norm", "pw", models.RoomConfig{TeamCount: 99, Budget: -5}, "admin", "")
	require.NoError(t, err)
	assert.Equal(t, 10, r.Config.TeamCount)
	assert.Equal(t, 10000, r.Config.Budget)
	assert.Len(t, r.teams, 10)
}
