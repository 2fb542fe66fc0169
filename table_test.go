package pokerd

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/pot_manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleTable() *Table {
	seats := NewTableSeats(4)
	seats[1].PlayerID = "Jeffrey"
	seats[1].Stack = 80
	seats[1].StreetCommitted = 10
	seats[1].Status = SeatStatus_Active
	seats[3].PlayerID = "Fred"
	seats[3].Stack = 95
	seats[3].StreetCommitted = 5
	seats[3].Status = SeatStatus_Folded

	return &Table{
		ID:   "table",
		Meta: NewDefaultTableSetting(),
		State: &TableState{
			Phase:          Phase_Flop,
			Seats:          seats,
			CommunityCards: deck.MustParseCards("Ks Qs 9h"),
			Pots:           []pot_manager.Pot{{Amount: 10, EligibleSeats: []int{1, 3}}},
			CurrentActor:   1,
		},
	}
}

func Test_TableJSON(t *testing.T) {
	table := newSampleTable()
	jsonStr, err := table.GetJSON()
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"community_cards":["Ks","Qs","9h"]`)

	var back Table
	assert.Nil(t, json.Unmarshal([]byte(jsonStr), &back))
	assert.Equal(t, *table, back)
}

func Test_TableClone(t *testing.T) {
	table := newSampleTable()
	cloneTable, err := table.Clone()
	require.NoError(t, err)

	cloneTable.State.Seats[1].Stack = 0
	cloneTable.State.CommunityCards[0] = deck.MustParseCards("2c")[0]
	cloneTable.State.Pots[0].EligibleSeats[0] = 2

	assert.Equal(t, int64(80), table.State.Seats[1].Stack)
	assert.Equal(t, "Ks", table.State.CommunityCards[0].String())
	assert.Equal(t, []int{1, 3}, table.State.Pots[0].EligibleSeats)
}

func Test_TableSeats(t *testing.T) {
	table := newSampleTable()

	assert.Equal(t, 1, table.FindSeat("Jeffrey"))
	assert.Equal(t, 3, table.FindSeat("Fred"))
	assert.Equal(t, UnsetValue, table.FindSeat("Chuck"))
	assert.Len(t, table.SeatedPlayers(), 2)
	assert.Equal(t, []int{1}, table.ContenderSeats())
	assert.Equal(t, int64(200), table.ChipTotal())
}

func Test_TableIsRemovable(t *testing.T) {
	table := newSampleTable()
	assert.False(t, table.IsRemovable())

	table.State.Phase = Phase_HandComplete
	assert.False(t, table.IsRemovable())

	table.State.Seats = NewTableSeats(4)
	assert.True(t, table.IsRemovable())
}

func Test_TableSettingBuyIn(t *testing.T) {
	setting := NewDefaultTableSetting()
	assert.Nil(t, setting.Validate())
	assert.True(t, setting.IsValidBuyIn(1))
	assert.False(t, setting.IsValidBuyIn(0))

	setting.MinBuyIn = 40
	setting.MaxBuyIn = 200
	assert.False(t, setting.IsValidBuyIn(39))
	assert.True(t, setting.IsValidBuyIn(200))
	assert.False(t, setting.IsValidBuyIn(201))
}

func Test_KindOf(t *testing.T) {
	assert.Equal(t, ErrorKind_OutOfTurn, KindOf(ErrOutOfTurn))
	assert.Equal(t, ErrorKind_InvariantViolation, KindOf(fmt.Errorf("%w: pot shrank", ErrInvariantViolation)))
	assert.Equal(t, ErrorKind_DeckExhausted, KindOf(deck.ErrDeckExhausted))
	assert.Equal(t, ErrorKind_Unknown, KindOf(errors.New("boom")))

	assert.True(t, IsFatal(ErrTableFrozen))
	assert.False(t, IsFatal(ErrBelowMinRaise))
}

func Test_PhaseCommunityCards(t *testing.T) {
	assert.Equal(t, 0, Phase_PreFlop.CommunityCards())
	assert.Equal(t, 3, Phase_Flop.CommunityCards())
	assert.Equal(t, 4, Phase_Turn.CommunityCards())
	assert.Equal(t, 5, Phase_River.CommunityCards())
	assert.True(t, Phase_River.IsBetting())
	assert.False(t, Phase_Showdown.IsBetting())
	assert.False(t, Phase_HandComplete.IsBetting())
}

func Test_DebugString(t *testing.T) {
	out := DebugString(*newSampleTable())
	assert.Contains(t, out, "Jeffrey")
	assert.Contains(t, out, "Ks Qs 9h")
	assert.Contains(t, out, "pot[0]: 10")
}

func Test_TableLegalActions(t *testing.T) {
	table := newSampleTable()
	table.State.CurrentBet = 10
	table.State.MinRaise = 10

	assert.Equal(t, []string{ActionType_Fold, ActionType_Check, ActionType_Raise, ActionType_AllIn}, table.LegalActions("Jeffrey"))
	assert.Empty(t, table.LegalActions("Fred"))
	assert.Empty(t, table.LegalActions("Chuck"))

	table.State.Phase = Phase_HandComplete
	assert.Empty(t, table.LegalActions("Jeffrey"))
}
