package actor

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pokerd/pokerd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_BotRunner_Soak(t *testing.T) {
	const (
		handLimit = 30
		buyIn     = int64(200)
	)

	var (
		engine    pokerd.TableEngine
		actors    []Actor
		closeOnce sync.Once
		mu        sync.Mutex
		exitTotal int64
		fatal     []*pokerd.EngineError
		done      = make(chan struct{})
	)

	closeTable := func() {
		closeOnce.Do(func() {
			go func() {
				assert.NoError(t, engine.CloseTable())
			}()
		})
	}

	options := pokerd.NewTableEngineOptions()
	options.ActionTimeout = time.Second
	options.NextHandTimeout = 1
	options.AutoStartHands = true

	callbacks := pokerd.NewTableEngineCallbacks()
	callbacks.OnTableUpdated = func(table *pokerd.Table) {
		Broadcast(actors, table)
	}
	callbacks.OnTableStateUpdated = func(event string, update *pokerd.TableStateUpdate) {
		switch event {
		case pokerd.TableStateEvent_HandComplete:
			if update.HandCount >= handLimit {
				closeTable()
			}
		case pokerd.TableStateEvent_Waiting:
			if update.HandCount > 0 {
				closeTable()
			}
		case pokerd.TableStateEvent_Closed:
			close(done)
		}
	}
	callbacks.OnExitPayout = func(payout *pokerd.ExitPayout) {
		mu.Lock()
		defer mu.Unlock()
		exitTotal += payout.Chips
	}
	callbacks.OnEngineError = func(e *pokerd.EngineError) {
		if pokerd.IsFatalKind(e.Kind) {
			mu.Lock()
			defer mu.Unlock()
			fatal = append(fatal, e)
		}
	}

	manager := pokerd.NewManager()
	setting := pokerd.NewDefaultTableSetting()
	setting.SmallBlind = 5
	setting.BigBlind = 10
	table, err := manager.CreateTable(options, callbacks, setting)
	require.NoError(t, err)

	engine, err = manager.GetTableEngine(table.ID)
	require.NoError(t, err)

	// observer
	observer := NewObserverRunner()
	o := NewActor()
	o.SetAdapter(NewTableEngineAdapter(engine, table))
	o.SetRunner(observer)
	actors = append(actors, o)

	// bots
	playerIDs := []string{"Jeffrey", "Chuck", "Fred", "Lottie"}
	for idx, playerID := range playerIDs {
		a := NewActor()
		a.SetAdapter(NewTableEngineAdapter(engine, table))

		bot := NewBotRunner(playerID)
		bot.Seed(int64(idx + 1))
		a.SetRunner(bot)

		actors = append(actors, a)
	}

	for _, playerID := range playerIDs {
		_, err := engine.PlayerJoin(playerID, buyIn, pokerd.UnsetValue)
		require.NoError(t, err, fmt.Sprintf("%s join error", playerID))
	}

	require.NoError(t, engine.StartHand())

	select {
	case <-done:
	case <-time.After(60 * time.Second):
		t.Fatal(pokerd.DebugString(*engine.GetTable()))
	}

	mu.Lock()
	defer mu.Unlock()

	assert.Empty(t, fatal)
	assert.Empty(t, observer.Violations())
	assert.Greater(t, observer.HandsObserved(), 0)
	assert.Equal(t, buyIn*int64(len(playerIDs)), exitTotal)
}

func TestActor_BotRunner_CalcAction(t *testing.T) {
	bot := NewBotRunner("Jeffrey")
	bot.Seed(42)

	for i := 0; i < 100; i++ {
		action := bot.calcAction([]string{pokerd.ActionType_Fold, pokerd.ActionType_Check, pokerd.ActionType_Bet, pokerd.ActionType_AllIn})
		assert.NotEqual(t, pokerd.ActionType_Fold, action)
		assert.Contains(t, []string{pokerd.ActionType_Check, pokerd.ActionType_Bet, pokerd.ActionType_AllIn}, action)
	}

	assert.Equal(t, pokerd.ActionType_Call, bot.calcAction([]string{pokerd.ActionType_Call}))

	probabilities := bot.calcActionProbabilities([]string{pokerd.ActionType_Fold, pokerd.ActionType_Call})
	assert.InDelta(t, 1.0, probabilities[pokerd.ActionType_Call], 1e-9)
	assert.InDelta(t, 0.15/0.45, probabilities[pokerd.ActionType_Fold], 1e-9)
}

func TestActor_BotRunner_IgnoresStaleUpdates(t *testing.T) {
	var submitted []string

	manager := pokerd.NewManager()
	options := pokerd.NewTableEngineOptions()
	options.ActionTimeout = 0
	table, err := manager.CreateTable(options, nil, pokerd.NewDefaultTableSetting())
	require.NoError(t, err)
	engine, err := manager.GetTableEngine(table.ID)
	require.NoError(t, err)

	bot := NewBotRunner("Jeffrey")
	bot.OnActionSubmitted(func(tableID string, handCount int, phase pokerd.Phase, action string, chips int64) {
		submitted = append(submitted, action)
	})
	a := NewActor()
	a.SetAdapter(NewTableEngineAdapter(engine, table))
	a.SetRunner(bot)

	table.UpdateSerial = 5
	assert.NoError(t, bot.UpdateTableState(table))
	table.UpdateSerial = 4
	assert.NoError(t, bot.UpdateTableState(table))
	assert.Equal(t, int64(5), bot.lastSerial)
	assert.Empty(t, submitted)
}
