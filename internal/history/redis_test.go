package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rooms must keep running when Redis was never connected.
func TestPublishWithoutClientIsNoOp(t *testing.T) {
	prev := Rdb
	Rdb = nil
	defer func() { Rdb = prev }()

	err := Publish(context.Background(), Record{
		RoomCode: "NOREDIS",
		Seq:      1,
		Type:     "bid_update",
	})
	assert.NoError(t, err)
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("HISTORIAN_QUEUE_NAME", "")
	assert.Equal(t, DefaultQueueName, getEnv("HISTORIAN_QUEUE_NAME", DefaultQueueName))

	t.Setenv("REDIS_DB", "not-a-number")
	assert.Equal(t, 0, getEnvInt("REDIS_DB", 0))

	t.Setenv("REDIS_DB", "3")
	require.Equal(t, 3, getEnvInt("REDIS_DB", 0))
}
