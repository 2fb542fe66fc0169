package settlement

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pokerd/pokerd"
	"github.com/pokerd/pokerd/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	o, err := Open(ctx, Driver_None, "")
	require.NoError(t, err)
	assert.NoError(t, o.SettleHand(ctx, &pokerd.HandOutcome{}))
	assert.NoError(t, o.Close())

	_, err = Open(ctx, "mysql", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = Open(ctx, Driver_SQLite, " ")
	assert.ErrorIs(t, err, ErrEmptyDSN)

	_, err = Open(ctx, Driver_Postgres, "")
	assert.ErrorIs(t, err, ErrEmptyDSN)
}

func TestSQLiteOutbox(t *testing.T) {
	ctx := context.Background()
	o, err := NewSQLiteOutbox(ctx, filepath.Join(t.TempDir(), "data", "outbox.db"))
	require.NoError(t, err)
	defer o.Close()

	outcome := &pokerd.HandOutcome{
		TableID:        "table-1",
		HandCount:      3,
		Payouts:        map[int]int64{1: 40},
		PlayerPayouts:  map[string]int64{"Chuck": 40},
		CommunityCards: deck.MustParseCards("Ks Qs 9h 5c 3d"),
	}
	require.NoError(t, o.SettleHand(ctx, outcome))

	// a second write of the same hand is ignored
	duplicated := *outcome
	duplicated.Payouts = map[int]int64{0: 40}
	require.NoError(t, o.SettleHand(ctx, &duplicated))

	outcomes, err := o.HandOutcomes(ctx, "table-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, map[int]int64{1: 40}, outcomes[0].Payouts)
	assert.Equal(t, outcome.CommunityCards, outcomes[0].CommunityCards)

	require.NoError(t, o.SettleExit(ctx, &pokerd.ExitPayout{TableID: "table-1", PlayerID: "Chuck", Seat: 1, Chips: 140}))
	require.NoError(t, o.SettleExit(ctx, &pokerd.ExitPayout{TableID: "table-2", PlayerID: "Chuck", Seat: 4, Chips: 60}))

	total, err := o.ExitPayouts(ctx, "Chuck")
	require.NoError(t, err)
	assert.Equal(t, int64(200), total)

	total, err = o.ExitPayouts(ctx, "Fred")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSQLiteOutbox_Engine(t *testing.T) {
	ctx := context.Background()
	o, err := NewSQLiteOutbox(ctx, ":memory:")
	require.NoError(t, err)
	defer o.Close()

	options := pokerd.NewTableEngineOptions()
	options.ActionTimeout = 0
	options.Settler = o
	tableEngine := pokerd.NewTableEngine(options)

	table, err := tableEngine.CreateTable(pokerd.NewDefaultTableSetting())
	require.NoError(t, err)
	_, err = tableEngine.PlayerJoin("Jeffrey", 100, 0)
	require.NoError(t, err)
	_, err = tableEngine.PlayerJoin("Chuck", 100, 1)
	require.NoError(t, err)
	require.NoError(t, tableEngine.StartHand())

	_, err = tableEngine.SubmitAction(pokerd.PlayerAction{PlayerID: "Jeffrey", Type: pokerd.ActionType_Fold, Sequence: 1})
	require.NoError(t, err)
	require.NoError(t, tableEngine.CloseTable())
	tableEngine.WaitSettled()

	outcomes, err := o.HandOutcomes(ctx, table.ID)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].IsUncontested)

	total, err := o.ExitPayouts(ctx, "Chuck")
	require.NoError(t, err)
	assert.Equal(t, int64(101), total)
}

func TestPostgresOutbox(t *testing.T) {
	dsn := os.Getenv("POKERD_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POKERD_TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	o, err := NewPostgresOutbox(ctx, dsn)
	require.NoError(t, err)
	defer o.Close()

	outcome := &pokerd.HandOutcome{
		TableID:       "pg-table",
		HandCount:     1,
		Payouts:       map[int]int64{0: 3},
		PlayerPayouts: map[string]int64{"Jeffrey": 3},
		IsUncontested: true,
	}
	require.NoError(t, o.SettleHand(ctx, outcome))
	require.NoError(t, o.SettleHand(ctx, outcome))

	back, err := o.HandOutcome(ctx, "pg-table", 1)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, outcome.Payouts, back.Payouts)

	missing, err := o.HandOutcome(ctx, "pg-table", 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.NoError(t, o.SettleExit(ctx, &pokerd.ExitPayout{TableID: "pg-table", PlayerID: "Jeffrey", Seat: 0, Chips: 103}))
}
