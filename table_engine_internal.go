package pokerd

import (
	"errors"
	"fmt"

	"github.com/pokerd/pokerd/action_validator"
	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/pot_manager"
	"github.com/pokerd/pokerd/seat_manager"
)

func (te *tableEngine) validateTable() error {
	if te.table == nil {
		return ErrTableNotFound
	}

	if te.table.State.IsClosed {
		return ErrTableClosed
	}

	if te.table.State.IsFrozen {
		return ErrTableFrozen
	}

	return nil
}

func (te *tableEngine) isHandInProgress() bool {
	phase := te.table.State.Phase
	return phase.IsBetting() || phase == Phase_Showdown
}

// handleError freezes the table on fatal errors and reports everything else.
func (te *tableEngine) handleError(eventName string, playerID string, err error) error {
	if causesFreeze(err) {
		te.freeze(err)
		return err
	}

	te.emitErrorEvent(eventName, playerID, err)
	return err
}

func causesFreeze(err error) bool {
	return errors.Is(err, ErrInvariantViolation) || errors.Is(err, ErrDeckExhausted)
}

func (te *tableEngine) playerJoin(playerID string, buyIn int64, seat int) (int, error) {
	if err := te.validateTable(); err != nil {
		return UnsetValue, err
	}

	if te.table.FindSeat(playerID) != UnsetValue {
		return UnsetValue, ErrAlreadySeated
	}

	if !te.table.Meta.IsValidBuyIn(buyIn) {
		return UnsetValue, ErrInvalidBuyIn
	}

	if te.sm.OccupiedSeatCount() >= te.sm.MaxSeat() {
		return UnsetValue, ErrTableFull
	}

	if seat < UnsetValue || seat >= te.sm.MaxSeat() {
		return UnsetValue, ErrSeatUnavailable
	}

	seatID, err := te.sm.AssignSeat(playerID, seat)
	switch {
	case errors.Is(err, seat_manager.ErrNotEnoughSeats):
		return UnsetValue, ErrTableFull
	case errors.Is(err, seat_manager.ErrSeatAlreadyIsTaken), errors.Is(err, seat_manager.ErrUnavailableSeat):
		return UnsetValue, ErrSeatUnavailable
	case errors.Is(err, seat_manager.ErrPlayerIsAlreadyExist):
		return UnsetValue, ErrAlreadySeated
	case err != nil:
		return UnsetValue, err
	}

	if err := te.sm.UpdatePlayerHasChips(playerID, true); err != nil {
		return UnsetValue, err
	}

	s := te.table.State.Seats[seatID]
	s.PlayerID = playerID
	s.Stack = buyIn
	s.StreetCommitted = 0
	s.TotalCommitted = 0
	s.Acted = false
	s.IsLeaving = false
	s.Positions = make([]string, 0)

	if te.isHandInProgress() {
		// 手牌進行中入桌，下一手才參與
		s.Status = SeatStatus_SittingOut
		te.table.State.HandChipTotal += buyIn
	} else {
		s.Status = SeatStatus_Active
	}

	te.emitEvent("PlayerJoin", playerID)
	te.emitTableStateEvent(TableStateEvent_PlayerJoined)

	if te.options.AutoStartHands && !te.isHandInProgress() {
		te.openNextHandGate()
	}

	return seatID, nil
}

func (te *tableEngine) playerLeave(playerID string) error {
	if err := te.validateTable(); err != nil {
		return err
	}

	seat := te.table.FindSeat(playerID)
	if seat == UnsetValue {
		return ErrPlayerNotSeated
	}
	s := te.table.State.Seats[seat]

	if !te.isHandInProgress() {
		te.removePlayer(s)
		te.emitEvent("PlayerLeave", playerID)
		te.emitTableStateEvent(TableStateEvent_PlayerLeft)

		if te.options.AutoStartHands {
			te.openNextHandGate()
		}
		return nil
	}

	if s.IsLeaving {
		return nil
	}

	s.IsLeaving = true
	if err := te.sm.UpdatePlayerIsIn(playerID, false); err != nil {
		return err
	}

	te.emitEvent("PlayerLeave", playerID)

	// all-in seats stay in the hand, they have nothing left to decide
	if s.Status != SeatStatus_Active {
		te.emitTableStateEvent(TableStateEvent_PlayerLeft)
		return nil
	}

	if te.table.State.CurrentActor == seat {
		te.tc.Disarm()
	}

	if err := te.fold(s); err != nil {
		return te.handleError("PlayerLeave", playerID, err)
	}

	if err := te.progress(); err != nil {
		return te.handleError("PlayerLeave", playerID, err)
	}

	if err := te.checkInvariants(); err != nil {
		return te.handleError("PlayerLeave", playerID, err)
	}

	return nil
}

// removePlayer pays out the stack and empties the seat.
func (te *tableEngine) removePlayer(s *TableSeat) {
	payout := &ExitPayout{
		TableID:  te.table.ID,
		PlayerID: s.PlayerID,
		Seat:     s.Seat,
		Chips:    s.Stack,
	}

	if err := te.sm.RemoveSeat(s.PlayerID); err != nil {
		te.logger.Warn().Str("table", te.table.ID).Str("player", s.PlayerID).Err(err).Msg("remove seat")
	}
	delete(te.holeCards, s.Seat)
	te.table.State.Seats[s.Seat] = newEmptySeat(s.Seat)

	te.emitExitPayout(payout)
}

func (te *tableEngine) submitAction(action PlayerAction, isTimeout bool) error {
	if te.table == nil {
		return ErrTableNotFound
	}

	if te.table.State.IsFrozen {
		return te.handleError("SubmitAction", action.PlayerID, ErrTableFrozen)
	}

	seat := te.table.FindSeat(action.PlayerID)
	if seat == UnsetValue {
		return te.handleError("SubmitAction", action.PlayerID, ErrPlayerNotSeated)
	}
	s := te.table.State.Seats[seat]

	a, err := action_validator.Validate(te.validatorContext(), validatorSeat(s), action_validator.Request{
		Type:     action.Type,
		Amount:   action.Amount,
		Sequence: action.Sequence,
	})
	if err != nil {
		return te.handleError("SubmitAction", action.PlayerID, err)
	}

	te.tc.Disarm()

	if err := te.applyAction(s, a, isTimeout); err != nil {
		return te.handleError("SubmitAction", action.PlayerID, err)
	}

	if err := te.progress(); err != nil {
		return te.handleError("SubmitAction", action.PlayerID, err)
	}

	if err := te.checkInvariants(); err != nil {
		return te.handleError("SubmitAction", action.PlayerID, err)
	}

	return nil
}

/*
applyAction 套用已驗證的動作
  - 完整加注會重新開放其他玩家的行動
  - 不足額的 all-in 加注只提高跟注額
*/
func (te *tableEngine) applyAction(s *TableSeat, a action_validator.Action, isTimeout bool) error {
	state := te.table.State

	switch a.Type {
	case action_validator.ActionType_Fold:
		if err := te.fold(s); err != nil {
			return err
		}
	case action_validator.ActionType_Check:
	default:
		if err := te.commit(s, a.Chips); err != nil {
			return err
		}
	}

	if a.To > state.CurrentBet {
		if a.IsFullRaise {
			if raise := a.To - state.CurrentBet; raise > state.MinRaise {
				state.MinRaise = raise
			}
			for _, other := range state.Seats {
				if other.Seat != s.Seat && other.Status == SeatStatus_Active {
					other.Acted = false
				}
			}
		}
		state.CurrentBet = a.To
	}

	s.Acted = true
	state.LastAction = &TableAction{
		PlayerID:    s.PlayerID,
		Seat:        s.Seat,
		Type:        a.Type,
		Chips:       a.Chips,
		To:          a.To,
		Sequence:    state.NextSequence,
		IsTimeout:   isTimeout,
		IsFullRaise: a.IsFullRaise,
	}
	state.NextSequence++

	return nil
}

func (te *tableEngine) commit(s *TableSeat, chips int64) error {
	if chips < 0 || chips > s.Stack {
		return fmt.Errorf("%w: seat %d commits %d with stack %d", ErrInvariantViolation, s.Seat, chips, s.Stack)
	}

	if err := te.pm.Commit(s.Seat, chips); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	s.Stack -= chips
	s.StreetCommitted += chips
	s.TotalCommitted += chips

	if s.Stack == 0 {
		s.Status = SeatStatus_AllIn
		if err := te.pm.AllIn(s.Seat); err != nil {
			return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}
	}

	return nil
}

func (te *tableEngine) fold(s *TableSeat) error {
	if err := te.pm.Fold(s.Seat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	s.Status = SeatStatus_Folded
	te.table.State.Pots = te.pm.Pots()
	return nil
}

/*
needsToAct 判斷玩家本街是否還需要行動
  - 只有 active 玩家需要行動
  - 上一次完整加注後尚未行動，或尚未跟上最高注額
  - 唯一一位沒有 all-in 的玩家且不需補注時不需行動
*/
func (te *tableEngine) needsToAct(s *TableSeat) bool {
	if s.Status != SeatStatus_Active {
		return false
	}

	owes := s.StreetCommitted < te.table.State.CurrentBet
	if !owes && te.countSeats(SeatStatus_Active) == 1 {
		return false
	}

	return !s.Acted || owes
}

// nextActor finds the first seat clockwise after from that needs to act.
func (te *tableEngine) nextActor(from int) int {
	for _, seat := range te.sm.ClockwiseSeatIDs(from) {
		if te.needsToAct(te.table.State.Seats[seat]) {
			return seat
		}
	}
	return UnsetValue
}

func (te *tableEngine) countSeats(status SeatStatus) int {
	count := 0
	for _, s := range te.table.State.Seats {
		if s.Status == status {
			count++
		}
	}
	return count
}

// payoutOrder lists seats clockwise starting left of the button.
func (te *tableEngine) payoutOrder() []int {
	return te.sm.ClockwiseSeatIDs(te.table.State.ButtonSeat)
}

func (te *tableEngine) newHandOutcome(settlement *pot_manager.Settlement) *HandOutcome {
	state := te.table.State

	payouts := make(map[int]int64, len(settlement.Payouts))
	playerPayouts := make(map[string]int64, len(settlement.Payouts))
	for seat, chips := range settlement.Payouts {
		payouts[seat] = chips
		playerPayouts[state.Seats[seat].PlayerID] += chips
	}

	return &HandOutcome{
		TableID:        te.table.ID,
		HandCount:      state.HandCount,
		Payouts:        payouts,
		PlayerPayouts:  playerPayouts,
		Awards:         settlement.Awards,
		CommunityCards: append([]deck.Card{}, state.CommunityCards...),
		WinningHands:   make([]WinningHand, 0),
	}
}
