package pot_manager

import (
	"github.com/pokerd/pokerd/evaluator"
)

func (pm *potManager) Reset(seats []int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.contributions = make(map[int]*contribution, len(seats))
	for _, seat := range seats {
		pm.contributions[seat] = &contribution{}
	}
	pm.pots = make([]Pot, 0)
}

func (pm *potManager) Commit(seat int, chips int64) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if chips < 0 {
		return ErrInvalidChips
	}

	c, exist := pm.contributions[seat]
	if !exist {
		return ErrSeatNotInHand
	}

	c.Street += chips
	c.Total += chips
	return nil
}

func (pm *potManager) Fold(seat int) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	c, exist := pm.contributions[seat]
	if !exist {
		return ErrSeatNotInHand
	}
	c.IsFolded = true

	// a folded seat leaves every pot it was eligible for
	for i := range pm.pots {
		pm.pots[i].EligibleSeats = removeSeat(pm.pots[i].EligibleSeats, seat)
	}
	return nil
}

func (pm *potManager) AllIn(seat int) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	c, exist := pm.contributions[seat]
	if !exist {
		return ErrSeatNotInHand
	}
	c.IsAllIn = true
	return nil
}

/*
CloseStreet 將本街注額併入底池
  - 最高注額超出次高注額的部分退回 (uncalled bet)
  - 依 all-in 玩家累計注額分層建立主池與邊池
  - @return refunds, key: seat, value: chips returned to the stack
*/
func (pm *potManager) CloseStreet() map[int]int64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	refunds := pm.refundUncalled()
	pm.pots = pm.buildPots()
	for _, c := range pm.contributions {
		c.Street = 0
	}

	return refunds
}

func (pm *potManager) Settle(results map[int]evaluator.HandValue, order []int) (*Settlement, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	for _, c := range pm.contributions {
		if c.Street > 0 {
			return nil, ErrStreetNotClosed
		}
	}

	settlement := newSettlement()
	for potIdx, pot := range pm.pots {
		if pot.Amount == 0 {
			continue
		}

		winners, err := pm.potWinners(pot, results)
		if err != nil {
			return nil, err
		}

		pm.distribute(settlement, potIdx, pot.Amount, winners, order)
	}

	pm.consume()
	return settlement, nil
}

func (pm *potManager) AwardAll(seat int) (*Settlement, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, exist := pm.contributions[seat]; !exist {
		return nil, ErrSeatNotInHand
	}

	total := pm.total()
	settlement := newSettlement()
	settlement.Payouts[seat] = total
	settlement.Awards = append(settlement.Awards, PotAward{
		PotIndex: 0,
		Amount:   total,
		Winners:  []int{seat},
	})

	pm.consume()
	return settlement, nil
}

func (pm *potManager) SplitEvenly(seats []int, order []int) (*Settlement, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(seats) == 0 {
		return nil, ErrNoContenders
	}
	for _, seat := range seats {
		if _, exist := pm.contributions[seat]; !exist {
			return nil, ErrSeatNotInHand
		}
	}

	settlement := newSettlement()
	pm.distribute(settlement, 0, pm.total(), seats, order)

	pm.consume()
	return settlement, nil
}

func (pm *potManager) StreetContribution(seat int) int64 {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if c, exist := pm.contributions[seat]; exist {
		return c.Street
	}
	return 0
}

func (pm *potManager) TotalContribution(seat int) int64 {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if c, exist := pm.contributions[seat]; exist {
		return c.Total
	}
	return 0
}

func (pm *potManager) CurrentBet() int64 {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	bet := int64(0)
	for _, c := range pm.contributions {
		if c.Street > bet {
			bet = c.Street
		}
	}
	return bet
}

func (pm *potManager) StreetTotal() int64 {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return pm.streetTotal()
}

func (pm *potManager) Pots() []Pot {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	pots := make([]Pot, 0, len(pm.pots))
	for _, pot := range pm.pots {
		eligible := make([]int, len(pot.EligibleSeats))
		copy(eligible, pot.EligibleSeats)
		pots = append(pots, Pot{
			Amount:        pot.Amount,
			EligibleSeats: eligible,
		})
	}
	return pots
}

func (pm *potManager) Total() int64 {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return pm.total()
}
