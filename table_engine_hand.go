package pokerd

import (
	"fmt"
	"sort"

	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/evaluator"
	"github.com/pokerd/pokerd/pot_manager"
	"github.com/pokerd/pokerd/seat_manager"
	"github.com/thoas/go-funk"
)

/*
startHand 開始新的一手
  - 輪轉 Dealer/SB/BB
  - 下盲注 (籌碼不足則 all-in)
  - 從 Dealer 左手邊開始逐張發手牌
*/
func (te *tableEngine) startHand() error {
	if err := te.validateTable(); err != nil {
		return err
	}

	if te.isHandInProgress() {
		return ErrHandInProgress
	}

	te.ogm.Stop()
	state := te.table.State

	// sync seat states
	for _, s := range state.Seats {
		if s.Status == SeatStatus_Empty {
			continue
		}
		_ = te.sm.UpdatePlayerHasChips(s.PlayerID, s.Stack > 0)
		_ = te.sm.UpdatePlayerIsIn(s.PlayerID, !s.IsLeaving)
	}

	activeSeatIDs := te.sm.ActiveSeatIDs()
	if len(activeSeatIDs) < 2 {
		te.enterWaiting()
		return ErrNotEnoughPlayers
	}

	seed, err := te.options.SeedSource()
	if err != nil {
		return err
	}

	d, err := te.options.DeckSource(seed)
	if err != nil {
		return err
	}

	if err := te.sm.RotatePositions(); err != nil {
		return ErrNotEnoughPlayers
	}
	seat_manager.LogSeats(te.logger, "rotate positions", te.sm)

	// reset hand
	te.deck = d
	te.holeCards = make(map[int][]deck.Card)
	te.prevPots = nil
	te.pm.Reset(activeSeatIDs)

	for _, s := range state.Seats {
		s.StreetCommitted = 0
		s.TotalCommitted = 0
		s.Acted = false
		s.Positions = make([]string, 0)

		if s.Status == SeatStatus_Empty {
			continue
		}

		if funk.ContainsInt(activeSeatIDs, s.Seat) {
			s.Status = SeatStatus_Active
			s.Positions = te.sm.Positions(s.Seat)
		} else {
			s.Status = SeatStatus_SittingOut
		}
	}

	state.HandCount++
	state.Phase = Phase_PreFlop
	state.ButtonSeat = te.sm.CurrentDealerSeatID()
	state.SBSeat = te.sm.CurrentSBSeatID()
	state.BBSeat = te.sm.CurrentBBSeatID()
	state.CommunityCards = make([]deck.Card, 0)
	state.Pots = make([]pot_manager.Pot, 0)
	state.LastAction = nil
	state.CurrentBet = 0
	state.MinRaise = te.table.Meta.BigBlind
	state.CurrentActor = UnsetValue
	state.ActionDeadline = UnsetValue
	state.HandChipTotal = te.table.ChipTotal()

	// blinds
	if err := te.postBlind(state.SBSeat, te.table.Meta.SmallBlind); err != nil {
		return te.handleError("StartHand", "", err)
	}

	if err := te.postBlind(state.BBSeat, te.table.Meta.BigBlind); err != nil {
		return te.handleError("StartHand", "", err)
	}
	state.CurrentBet = te.pm.CurrentBet()

	// a short all-in big blind does not lower the price to enter the pot
	if state.CurrentBet < te.table.Meta.BigBlind && te.countSeats(SeatStatus_Active) >= 2 {
		state.CurrentBet = te.table.Meta.BigBlind
	}

	if err := te.dealHoleCards(activeSeatIDs); err != nil {
		return te.handleError("StartHand", "", err)
	}

	te.logger.Info().
		Str("table", te.table.ID).
		Int("hand", state.HandCount).
		Int("button", state.ButtonSeat).
		Ints("seats", activeSeatIDs).
		Msg("hand started")

	// first to act sits left of the big blind
	if next := te.nextActor(state.BBSeat); next != UnsetValue {
		state.CurrentActor = next
		te.armActionTimer()
		te.emitEvent("StartHand", "")
		te.emitTableStateEvent(TableStateEvent_HandStarted)
	} else {
		te.emitEvent("StartHand", "")
		te.emitTableStateEvent(TableStateEvent_HandStarted)
		if err := te.closeStreet(); err != nil {
			return te.handleError("StartHand", "", err)
		}
	}

	if err := te.checkInvariants(); err != nil {
		return te.handleError("StartHand", "", err)
	}

	return nil
}

func (te *tableEngine) postBlind(seat int, blind int64) error {
	s := te.table.State.Seats[seat]

	chips := blind
	if chips > s.Stack {
		chips = s.Stack
	}

	return te.commit(s, chips)
}

func (te *tableEngine) dealHoleCards(seats []int) error {
	order := make([]int, 0, len(seats))
	for _, seat := range te.sm.ClockwiseSeatIDs(te.table.State.ButtonSeat) {
		if funk.ContainsInt(seats, seat) {
			order = append(order, seat)
		}
	}

	for round := 0; round < HoleCardCount; round++ {
		for _, seat := range order {
			cards, err := te.deck.Draw(1)
			if err != nil {
				return err
			}
			te.holeCards[seat] = append(te.holeCards[seat], cards[0])
		}
	}

	return nil
}

/*
progress 推進本手
  - 只剩一位玩家爭奪底池: 直接結算
  - 還有人需要行動: 換下一位
  - 否則結束本街
*/
func (te *tableEngine) progress() error {
	state := te.table.State

	contenders := te.table.ContenderSeats()
	switch len(contenders) {
	case 0:
		return fmt.Errorf("%w: no contenders left", ErrInvariantViolation)
	case 1:
		return te.finishUncontested(contenders[0])
	}

	if state.CurrentActor != UnsetValue && te.needsToAct(state.Seats[state.CurrentActor]) {
		te.emitEvent("Progress", "")
		te.emitTableStateEvent(TableStateEvent_ActionApplied)
		return nil
	}

	if next := te.nextActor(state.CurrentActor); next != UnsetValue {
		state.CurrentActor = next
		te.armActionTimer()
		te.emitEvent("Progress", "")
		te.emitTableStateEvent(TableStateEvent_ActionApplied)
		return nil
	}

	return te.closeStreet()
}

/*
closeStreet 結束本街
  - 退還無人跟注的籌碼
  - 收集本街下注進底池
  - 發下一街公牌，或在河牌後攤牌
  - 沒有人能行動時持續發牌直到攤牌
*/
func (te *tableEngine) closeStreet() error {
	state := te.table.State

	for {
		te.tc.Disarm()

		refunds := te.pm.CloseStreet()
		for seat, chips := range refunds {
			s := state.Seats[seat]
			s.Stack += chips
			s.TotalCommitted -= chips
			if s.Status == SeatStatus_AllIn && s.Stack > 0 {
				s.Status = SeatStatus_Active
			}
		}

		for _, s := range state.Seats {
			s.StreetCommitted = 0
			s.Acted = false
		}

		state.Pots = te.pm.Pots()
		state.CurrentBet = 0
		state.MinRaise = te.table.Meta.BigBlind
		state.CurrentActor = UnsetValue
		state.ActionDeadline = UnsetValue

		if err := te.checkPots(); err != nil {
			return err
		}

		if state.Phase == Phase_River {
			return te.showdown()
		}

		if err := te.dealStreet(); err != nil {
			return err
		}

		te.logger.Debug().
			Str("table", te.table.ID).
			Int("hand", state.HandCount).
			Str("phase", string(state.Phase)).
			Str("board", deck.CardsString(state.CommunityCards)).
			Msg("street dealt")

		if next := te.nextActor(state.ButtonSeat); next != UnsetValue {
			state.CurrentActor = next
			te.armActionTimer()
			te.emitEvent("StreetDealt", "")
			te.emitTableStateEvent(TableStateEvent_StreetDealt)
			return nil
		}

		te.emitEvent("StreetDealt", "")
		te.emitTableStateEvent(TableStateEvent_StreetDealt)
	}
}

func (te *tableEngine) dealStreet() error {
	state := te.table.State

	var count int
	var next Phase
	switch state.Phase {
	case Phase_PreFlop:
		count, next = 3, Phase_Flop
	case Phase_Flop:
		count, next = 1, Phase_Turn
	case Phase_Turn:
		count, next = 1, Phase_River
	default:
		return fmt.Errorf("%w: cannot deal after %s", ErrInvariantViolation, state.Phase)
	}

	cards, err := te.deck.Draw(count)
	if err != nil {
		return err
	}

	state.CommunityCards = append(state.CommunityCards, cards...)
	state.Phase = next
	return nil
}

func (te *tableEngine) showdown() error {
	state := te.table.State
	state.Phase = Phase_Showdown

	results := make(map[int]evaluator.HandValue)
	hands := make(map[int]WinningHand)
	for _, seat := range te.table.ContenderSeats() {
		cards := append(append([]deck.Card{}, te.holeCards[seat]...), state.CommunityCards...)

		value, err := te.options.Evaluator.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("%w: evaluate seat %d: %v", ErrInvariantViolation, seat, err)
		}

		description, _ := te.options.Evaluator.Describe(cards)
		results[seat] = value
		hands[seat] = WinningHand{
			Seat:        seat,
			PlayerID:    state.Seats[seat].PlayerID,
			HoleCards:   append([]deck.Card{}, te.holeCards[seat]...),
			Value:       value,
			Description: description,
		}
	}

	te.emitEvent("Showdown", "")
	te.emitTableStateEvent(TableStateEvent_Showdown)

	settlement, err := te.pm.Settle(results, te.payoutOrder())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	outcome := te.newHandOutcome(settlement)

	winners := make(map[int]bool)
	for _, award := range settlement.Awards {
		for _, seat := range award.Winners {
			winners[seat] = true
		}
	}
	seats := funk.Keys(winners).([]int)
	sort.Ints(seats)
	for _, seat := range seats {
		outcome.WinningHands = append(outcome.WinningHands, hands[seat])
	}

	return te.finishHand(outcome)
}

func (te *tableEngine) finishUncontested(seat int) error {
	te.tc.Disarm()

	settlement, err := te.pm.AwardAll(seat)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	outcome := te.newHandOutcome(settlement)
	outcome.IsUncontested = true
	return te.finishHand(outcome)
}

// cancelHand splits every pot evenly between the remaining contenders.
func (te *tableEngine) cancelHand() error {
	te.tc.Disarm()

	settlement, err := te.pm.SplitEvenly(te.table.ContenderSeats(), te.payoutOrder())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	outcome := te.newHandOutcome(settlement)
	outcome.IsCancelled = true
	return te.finishHand(outcome)
}

/*
finishHand 本手結束
  - 派彩
  - 離桌中的玩家離桌結算
  - 沒有籌碼的玩家坐下觀戰
*/
func (te *tableEngine) finishHand(outcome *HandOutcome) error {
	state := te.table.State

	for seat, chips := range outcome.Payouts {
		state.Seats[seat].Stack += chips
	}

	for _, s := range state.Seats {
		s.StreetCommitted = 0
		s.Acted = false
	}

	state.Pots = make([]pot_manager.Pot, 0)
	state.Phase = Phase_HandComplete
	state.CurrentActor = UnsetValue
	state.ActionDeadline = UnsetValue
	state.CurrentBet = 0
	te.prevPots = nil
	te.tc.Disarm()

	if total := te.table.ChipTotal(); total != state.HandChipTotal {
		return fmt.Errorf("%w: chip total %d after payout, expected %d", ErrInvariantViolation, total, state.HandChipTotal)
	}

	te.emitHandOutcome(outcome)

	for _, s := range state.Seats {
		if s.Status == SeatStatus_Empty {
			continue
		}

		if s.IsLeaving {
			te.removePlayer(s)
			continue
		}

		if s.Stack > 0 {
			s.Status = SeatStatus_Active
		} else {
			s.Status = SeatStatus_SittingOut
		}
		_ = te.sm.UpdatePlayerHasChips(s.PlayerID, s.Stack > 0)
	}
	state.HandChipTotal = te.table.ChipTotal()

	te.emitEvent("HandComplete", "")
	te.emitTableStateEvent(TableStateEvent_HandComplete)

	if te.options.AutoStartHands && !state.IsClosed {
		te.openNextHandGate()
	}

	return nil
}
