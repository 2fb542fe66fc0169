package testcases

import (
	"sync"
	"testing"

	"github.com/pokerd/pokerd"
	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/evaluator"
	"github.com/stretchr/testify/require"
)

type JoinPlayer struct {
	PlayerID string
	BuyIn    int64
	Seat     int
}

func NewStackedOptions(top string) *pokerd.TableEngineOptions {
	options := pokerd.NewTableEngineOptions()
	options.ActionTimeout = 0
	options.DeckSource = func(seed []byte) (*deck.Deck, error) {
		return deck.NewStacked(deck.MustParseCards(top)), nil
	}
	return options
}

func NewSeededOptions(seed string) *pokerd.TableEngineOptions {
	options := pokerd.NewTableEngineOptions()
	options.ActionTimeout = 0
	options.SeedSource = func() ([]byte, error) {
		return []byte(seed), nil
	}
	return options
}

func NewTable(t *testing.T, options *pokerd.TableEngineOptions, players ...JoinPlayer) pokerd.TableEngine {
	t.Helper()

	tableEngine := pokerd.NewTableEngine(options)
	_, err := tableEngine.CreateTable(pokerd.NewDefaultTableSetting())
	require.NoError(t, err)

	for _, p := range players {
		seat, err := tableEngine.PlayerJoin(p.PlayerID, p.BuyIn, p.Seat)
		require.NoError(t, err, "%s join error", p.PlayerID)
		if p.Seat != pokerd.UnsetValue {
			require.Equal(t, p.Seat, seat)
		}
	}

	return tableEngine
}

func FindCurrentPlayerID(table *pokerd.Table) string {
	actor := table.State.CurrentActor
	if actor == pokerd.UnsetValue {
		return ""
	}
	return table.State.Seats[actor].PlayerID
}

// Act submits an action for the current actor with the current sequence token.
func Act(t *testing.T, tableEngine pokerd.TableEngine, playerID string, actionType string, amount int64) *pokerd.Table {
	t.Helper()

	table := tableEngine.GetTable()
	require.Equal(t, playerID, FindCurrentPlayerID(table), pokerd.DebugString(*table))

	next, err := tableEngine.SubmitAction(pokerd.PlayerAction{
		PlayerID: playerID,
		Type:     actionType,
		Amount:   amount,
		Sequence: table.State.NextSequence,
	})
	require.NoError(t, err, "%s %s %d\n%s", playerID, actionType, amount, pokerd.DebugString(*table))
	return next
}

func LogTable(t *testing.T, msg string, table *pokerd.Table) {
	t.Logf("\n===== [%s] =====\n%s", msg, pokerd.DebugString(*table))
}

// countingEvaluator records how many hands were evaluated.
type countingEvaluator struct {
	mu    sync.Mutex
	inner evaluator.HandEvaluator
	count int
}

func newCountingEvaluator() *countingEvaluator {
	return &countingEvaluator{
		inner: evaluator.NewPokerEvaluator(),
	}
}

func (e *countingEvaluator) Evaluate(cards []deck.Card) (evaluator.HandValue, error) {
	e.mu.Lock()
	e.count++
	e.mu.Unlock()
	return e.inner.Evaluate(cards)
}

func (e *countingEvaluator) Describe(cards []deck.Card) (string, error) {
	return e.inner.Describe(cards)
}

func (e *countingEvaluator) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}
