package pokerd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_TableLifecycle(t *testing.T) {
	manager := NewManager()

	table, err := manager.CreateTable(newTestOptions(headsUpDeck), nil, NewDefaultTableSetting())
	require.NoError(t, err)
	assert.NotEmpty(t, table.ID)
	assert.Equal(t, []string{table.ID}, manager.ListTableIDs())

	_, err = manager.JoinTable(table.ID, "Jeffrey", 100, 0)
	require.NoError(t, err)
	_, err = manager.JoinTable(table.ID, "Chuck", 100, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, manager.RemoveTable(table.ID), ErrTableNotRemovable)

	require.NoError(t, manager.StartHand(table.ID))
	cards, err := manager.GetHoleCards(table.ID, "Chuck")
	require.NoError(t, err)
	assert.Len(t, cards, HoleCardCount)

	next, err := manager.SubmitAction(table.ID, PlayerAction{PlayerID: "Jeffrey", Type: ActionType_Fold, Sequence: 1})
	require.NoError(t, err)
	assert.Equal(t, Phase_HandComplete, next.State.Phase)

	require.NoError(t, manager.LeaveTable(table.ID, "Jeffrey"))
	require.NoError(t, manager.LeaveTable(table.ID, "Chuck"))
	require.NoError(t, manager.RemoveTable(table.ID))

	_, err = manager.GetTableEngine(table.ID)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestManager_TableNotFound(t *testing.T) {
	manager := NewManager()

	_, err := manager.JoinTable("missing", "Jeffrey", 100, UnsetValue)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, manager.LeaveTable("missing", "Jeffrey"), ErrTableNotFound)
	assert.ErrorIs(t, manager.PlayerReady("missing", "Jeffrey"), ErrTableNotFound)
	assert.ErrorIs(t, manager.StartHand("missing"), ErrTableNotFound)
	assert.ErrorIs(t, manager.CloseTable("missing"), ErrTableNotFound)
	assert.ErrorIs(t, manager.RemoveTable("missing"), ErrTableNotFound)
	_, err = manager.SubmitAction("missing", PlayerAction{})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestManager_CloseTable(t *testing.T) {
	var payouts []*ExitPayout
	callbacks := NewTableEngineCallbacks()
	callbacks.OnExitPayout = func(payout *ExitPayout) {
		payouts = append(payouts, payout)
	}

	manager := NewManager()
	setting := NewDefaultTableSetting()
	setting.TableID = "table-1"
	table, err := manager.CreateTable(newTestOptions(headsUpDeck), callbacks, setting)
	require.NoError(t, err)
	assert.Equal(t, "table-1", table.ID)

	_, err = manager.CreateTable(nil, nil, setting)
	assert.ErrorIs(t, err, ErrInvalidSetting)

	_, err = manager.JoinTable(table.ID, "Jeffrey", 100, UnsetValue)
	require.NoError(t, err)

	require.NoError(t, manager.CloseTable(table.ID))
	assert.Empty(t, manager.ListTableIDs())
	require.Len(t, payouts, 1)
	assert.Equal(t, int64(100), payouts[0].Chips)
}

func TestManager_ConcurrentTables(t *testing.T) {
	var wg sync.WaitGroup
	manager := NewManager()

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			table, err := manager.CreateTable(newTestOptions(headsUpDeck), nil, NewDefaultTableSetting())
			if !assert.NoError(t, err) {
				return
			}
			_, err = manager.JoinTable(table.ID, "Jeffrey", 100, 0)
			assert.NoError(t, err)
			_, err = manager.JoinTable(table.ID, "Chuck", 100, 1)
			assert.NoError(t, err)
			assert.NoError(t, manager.StartHand(table.ID))
		}()
	}
	wg.Wait()

	assert.Len(t, manager.ListTableIDs(), 8)

	manager.Reset()
	assert.Empty(t, manager.ListTableIDs())
}
