package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

func TestStaticPoolCanFieldLegalSquads(t *testing.T) {
	lots, err := Static{}.Lots(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, lots)

	keepers, bowlingOptions, domestic := 0, 0, 0
	for _, l := range lots {
		assert.Equal(t, models.LotPending, l.Status)
		assert.Greater(t, l.BasePrice, 0)
		assert.Greater(t, l.Step, 0)
		if l.Role == models.RoleKeeper {
			keepers++
		}
		if l.Role.CanBowl() {
			bowlingOptions++
		}
		if !l.Overseas {
			domestic++
		}
	}

	// Two full squads must be buildable from the slate: keepers, bowling
	// options and domestic players all need headroom over the minimums.
	assert.GreaterOrEqual(t, keepers, 2)
	assert.GreaterOrEqual(t, bowlingOptions, 2*models.MinBowlingOptions)
	assert.GreaterOrEqual(t, domestic, 2*(models.SquadSize-models.MaxOverseas))
}

func TestStaticPoolReturnsFreshCopies(t *testing.T) {
	a, err := Static{}.Lots(context.Background())
	require.NoError(t, err)
	b, err := Static{}.Lots(context.Background())
	require.NoError(t, err)

	a[0].Status = models.LotSold
	assert.Equal(t, models.LotPending, b[0].Status, "one room's auction must not dirty another's pool")
}
