package pot_manager

import (
	"testing"

	"github.com/pokerd/pokerd/evaluator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitAll(t *testing.T, pm PotManager, chips map[int]int64) {
	for seat, c := range chips {
		require.NoError(t, pm.Commit(seat, c))
	}
}

func TestPotManager_Reset(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	assert.Equal(t, int64(0), pm.Total())
	assert.Empty(t, pm.Pots())
	assert.ErrorIs(t, pm.Commit(5, 10), ErrSeatNotInHand)
	assert.ErrorIs(t, pm.Commit(0, -1), ErrInvalidChips)
}

func TestPotManager_StreetContributions(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1})

	commitAll(t, pm, map[int]int64{0: 1, 1: 2})
	assert.Equal(t, int64(2), pm.CurrentBet())
	assert.Equal(t, int64(3), pm.StreetTotal())

	require.NoError(t, pm.Commit(0, 1))
	refunds := pm.CloseStreet()
	assert.Empty(t, refunds)

	assert.Equal(t, int64(0), pm.StreetContribution(0))
	assert.Equal(t, int64(2), pm.TotalContribution(0))
	assert.Equal(t, []Pot{{Amount: 4, EligibleSeats: []int{0, 1}}}, pm.Pots())
	assert.Equal(t, int64(4), pm.Total())
}

func TestPotManager_SidePotAtAllInLevel(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	// seat 0 is all-in for 50, the others call
	commitAll(t, pm, map[int]int64{0: 50, 1: 50, 2: 50})
	require.NoError(t, pm.AllIn(0))
	pm.CloseStreet()
	assert.Equal(t, []Pot{{Amount: 150, EligibleSeats: []int{0, 1, 2}}}, pm.Pots())

	// seats 1 and 2 keep betting
	commitAll(t, pm, map[int]int64{1: 30, 2: 30})
	pm.CloseStreet()
	assert.Equal(t, []Pot{
		{Amount: 150, EligibleSeats: []int{0, 1, 2}},
		{Amount: 60, EligibleSeats: []int{1, 2}},
	}, pm.Pots())
}

func TestPotManager_MultipleAllInLevels(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2, 3})

	commitAll(t, pm, map[int]int64{0: 20, 1: 60, 2: 100, 3: 100})
	require.NoError(t, pm.AllIn(0))
	require.NoError(t, pm.AllIn(1))
	pm.CloseStreet()

	assert.Equal(t, []Pot{
		{Amount: 80, EligibleSeats: []int{0, 1, 2, 3}},
		{Amount: 120, EligibleSeats: []int{1, 2, 3}},
		{Amount: 80, EligibleSeats: []int{2, 3}},
	}, pm.Pots())
	assert.Equal(t, int64(280), pm.Total())
}

func TestPotManager_FoldedChipsStayInPot(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	commitAll(t, pm, map[int]int64{0: 10, 1: 40, 2: 40})
	require.NoError(t, pm.Fold(0))
	pm.CloseStreet()

	assert.Equal(t, []Pot{{Amount: 90, EligibleSeats: []int{1, 2}}}, pm.Pots())
}

func TestPotManager_FoldShrinksEligibility(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	commitAll(t, pm, map[int]int64{0: 10, 1: 10, 2: 10})
	pm.CloseStreet()
	require.NoError(t, pm.Fold(1))

	assert.Equal(t, []Pot{{Amount: 30, EligibleSeats: []int{0, 2}}}, pm.Pots())
}

func TestPotManager_RefundUncalled(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	// seat 1 shoves 300, seat 2 can only call 120 all-in, seat 0 folded 10
	commitAll(t, pm, map[int]int64{0: 10, 1: 300, 2: 120})
	require.NoError(t, pm.Fold(0))
	require.NoError(t, pm.AllIn(1))
	require.NoError(t, pm.AllIn(2))

	refunds := pm.CloseStreet()
	assert.Equal(t, map[int]int64{1: 180}, refunds)
	assert.Equal(t, int64(120), pm.TotalContribution(1))
	assert.Equal(t, []Pot{{Amount: 250, EligibleSeats: []int{1, 2}}}, pm.Pots())
}

func TestPotManager_Settle(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	commitAll(t, pm, map[int]int64{0: 50, 1: 100, 2: 100})
	require.NoError(t, pm.AllIn(0))
	pm.CloseStreet()

	// short stack has the best hand, seat 2 beats seat 1
	results := map[int]evaluator.HandValue{0: 300, 1: 100, 2: 200}
	s, err := pm.Settle(results, []int{1, 2, 0})
	require.NoError(t, err)

	assert.Equal(t, map[int]int64{0: 150, 2: 100}, s.Payouts)
	assert.Len(t, s.Awards, 2)
	assert.Equal(t, []int{0}, s.Awards[0].Winners)
	assert.Equal(t, []int{2}, s.Awards[1].Winners)
	assert.Equal(t, int64(0), pm.Total())
}

func TestPotManager_SettleOddChips(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2, 3})

	// 4 folded chips + 3x10 called = 34 split by three winners
	commitAll(t, pm, map[int]int64{0: 4, 1: 10, 2: 10, 3: 10})
	require.NoError(t, pm.Fold(0))
	pm.CloseStreet()

	results := map[int]evaluator.HandValue{1: 7, 2: 7, 3: 7}

	// button on seat 2: clockwise order starts at seat 3
	s, err := pm.Settle(results, []int{3, 0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, map[int]int64{3: 12, 1: 11, 2: 11}, s.Payouts)
	assert.Equal(t, []int{3, 1, 2}, s.Awards[0].Winners)
}

func TestPotManager_SettleTieAcrossLayers(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2, 3})

	commitAll(t, pm, map[int]int64{0: 40, 1: 100, 2: 100, 3: 100})
	require.NoError(t, pm.AllIn(0))
	pm.CloseStreet()
	require.Len(t, pm.Pots(), 2)

	// seat 0 ties seat 2 in the main pot, the side pot goes to seat 2 alone
	results := map[int]evaluator.HandValue{0: 500, 1: 100, 2: 500, 3: 300}
	s, err := pm.Settle(results, []int{1, 2, 3, 0})
	require.NoError(t, err)

	assert.Equal(t, map[int]int64{0: 80, 2: 260}, s.Payouts)
	assert.Equal(t, []int{2, 0}, s.Awards[0].Winners)
	assert.Equal(t, int64(160), s.Awards[0].Amount)
	assert.Equal(t, []int{2}, s.Awards[1].Winners)
	assert.Equal(t, int64(180), s.Awards[1].Amount)
}

func TestPotManager_PotWinners(t *testing.T) {
	pm := &potManager{}
	pot := Pot{Amount: 30, EligibleSeats: []int{1, 3, 4}}

	winners, err := pm.potWinners(pot, map[int]evaluator.HandValue{4: 900, 1: 900, 3: 12})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, winners)

	winners, err = pm.potWinners(pot, map[int]evaluator.HandValue{1: 1, 3: 2, 4: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, winners)

	_, err = pm.potWinners(pot, map[int]evaluator.HandValue{1: 1, 3: 2})
	assert.ErrorIs(t, err, ErrNoEligibleResults)

	winners, err = pm.potWinners(Pot{Amount: 5, EligibleSeats: []int{2}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, winners)
}

func TestPotManager_SettleRequiresClosedStreet(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1})
	commitAll(t, pm, map[int]int64{0: 5, 1: 5})

	_, err := pm.Settle(map[int]evaluator.HandValue{0: 1, 1: 2}, []int{0, 1})
	assert.ErrorIs(t, err, ErrStreetNotClosed)
}

func TestPotManager_SettleMissingResult(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1})
	commitAll(t, pm, map[int]int64{0: 5, 1: 5})
	pm.CloseStreet()

	_, err := pm.Settle(map[int]evaluator.HandValue{0: 1}, []int{0, 1})
	assert.ErrorIs(t, err, ErrNoEligibleResults)
}

func TestPotManager_AwardAll(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	commitAll(t, pm, map[int]int64{0: 10, 1: 10, 2: 10})
	pm.CloseStreet()
	commitAll(t, pm, map[int]int64{1: 20})

	s, err := pm.AwardAll(1)
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{1: 50}, s.Payouts)
	assert.Equal(t, int64(0), pm.Total())
}

func TestPotManager_SplitEvenly(t *testing.T) {
	pm := NewPotManager()
	pm.Reset([]int{0, 1, 2})

	commitAll(t, pm, map[int]int64{0: 10, 1: 11, 2: 11})
	require.NoError(t, pm.Fold(0))

	s, err := pm.SplitEvenly([]int{1, 2}, []int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{1: 16, 2: 16}, s.Payouts)

	pm.Reset([]int{0, 1})
	commitAll(t, pm, map[int]int64{0: 2, 1: 1})
	s, err = pm.SplitEvenly([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{1: 2, 0: 1}, s.Payouts)

	_, err = pm.SplitEvenly(nil, nil)
	assert.ErrorIs(t, err, ErrNoContenders)
}
