package pot_manager

import (
	"sort"

	"github.com/pokerd/pokerd/evaluator"
	"github.com/thoas/go-funk"
	"github.com/weedbox/pokerface/settlement"
)

func newSettlement() *Settlement {
	return &Settlement{
		Payouts: make(map[int]int64),
		Awards:  make([]PotAward, 0),
	}
}

func (pm *potManager) refundUncalled() map[int]int64 {
	refunds := make(map[int]int64)

	topSeat := -1
	top, second := int64(0), int64(0)
	for seat, c := range pm.contributions {
		switch {
		case c.Street > top:
			second = top
			top = c.Street
			topSeat = seat
		case c.Street == top:
			// tie at the top, nothing is uncalled
			second = top
		case c.Street > second:
			second = c.Street
		}
	}

	if topSeat == -1 || top <= second {
		return refunds
	}

	c := pm.contributions[topSeat]
	excess := top - second
	c.Street -= excess
	c.Total -= excess
	c.IsAllIn = false
	refunds[topSeat] = excess

	return refunds
}

/*
buildPots 依累計注額分層
  - 分層點為 all-in 玩家的累計注額，以及所有玩家中最高的累計注額
  - 每層資格為未棄牌且累計注額達到該層的玩家
*/
func (pm *potManager) buildPots() []Pot {
	levels := make([]int64, 0)
	top := int64(0)
	for _, c := range pm.contributions {
		if c.Total > top {
			top = c.Total
		}
		if c.IsAllIn && !c.IsFolded && c.Total > 0 && !funk.ContainsInt64(levels, c.Total) {
			levels = append(levels, c.Total)
		}
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i] < levels[j]
	})
	if len(levels) == 0 || levels[len(levels)-1] < top {
		levels = append(levels, top)
	}

	pots := make([]Pot, 0, len(levels))
	prev := int64(0)
	for _, level := range levels {
		amount := int64(0)
		eligible := make([]int, 0)
		for seat, c := range pm.contributions {
			amount += clamp(c.Total, prev, level) - prev
			if !c.IsFolded && c.Total >= level {
				eligible = append(eligible, seat)
			}
		}
		prev = level

		if amount == 0 {
			continue
		}

		if len(eligible) == 0 && len(pots) > 0 {
			// only folded money above the last contender level
			pots[len(pots)-1].Amount += amount
			continue
		}

		sort.Ints(eligible)
		pots = append(pots, Pot{
			Amount:        amount,
			EligibleSeats: eligible,
		})
	}

	return pots
}

// potWinners ranks the eligible seats of a pot; every seat tied at the top wins.
func (pm *potManager) potWinners(pot Pot, results map[int]evaluator.HandValue) ([]int, error) {
	if len(pot.EligibleSeats) == 1 {
		return pot.EligibleSeats, nil
	}

	rank := settlement.NewPotRank()
	for _, seat := range pot.EligibleSeats {
		value, exist := results[seat]
		if !exist {
			return nil, ErrNoEligibleResults
		}
		rank.AddContributor(int(value), seat)
	}
	rank.Calculate()

	winners := append(make([]int, 0), rank.GetWinners()...)
	if len(winners) == 0 {
		return nil, ErrNoEligibleResults
	}

	sort.Ints(winners)
	return winners, nil
}

// distribute splits amount evenly; odd chips go one at a time following order.
func (pm *potManager) distribute(result *Settlement, potIdx int, amount int64, winners []int, order []int) {
	ordered := orderSeats(winners, order)

	share := amount / int64(len(ordered))
	remainder := amount % int64(len(ordered))
	for i, seat := range ordered {
		chips := share
		if int64(i) < remainder {
			chips++
		}
		result.Payouts[seat] += chips
	}

	result.Awards = append(result.Awards, PotAward{
		PotIndex: potIdx,
		Amount:   amount,
		Winners:  ordered,
	})
}

func (pm *potManager) consume() {
	for _, c := range pm.contributions {
		c.Street = 0
	}
	pm.pots = make([]Pot, 0)
}

func (pm *potManager) streetTotal() int64 {
	total := int64(0)
	for _, c := range pm.contributions {
		total += c.Street
	}
	return total
}

func (pm *potManager) total() int64 {
	total := pm.streetTotal()
	for _, pot := range pm.pots {
		total += pot.Amount
	}
	return total
}

// orderSeats returns seats sorted by their position in order; unknown seats go last.
func orderSeats(seats []int, order []int) []int {
	ordered := make([]int, 0, len(seats))
	for _, seat := range order {
		if funk.ContainsInt(seats, seat) && !funk.ContainsInt(ordered, seat) {
			ordered = append(ordered, seat)
		}
	}

	rest := make([]int, 0)
	for _, seat := range seats {
		if !funk.ContainsInt(ordered, seat) {
			rest = append(rest, seat)
		}
	}
	sort.Ints(rest)

	return append(ordered, rest...)
}

func removeSeat(seats []int, seat int) []int {
	return funk.FilterInt(seats, func(s int) bool {
		return s != seat
	})
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
