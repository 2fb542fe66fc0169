package pokerd

import (
	"fmt"

	"github.com/pokerd/pokerd/pot_manager"
	"github.com/thoas/go-funk"
)

/*
checkInvariants 檢查桌次不變量，只在手牌進行中檢查
  - 籌碼守恆
  - 行動玩家必須是 active
  - 公牌數量與階段一致
  - 本街下注與底池管理器一致
*/
func (te *tableEngine) checkInvariants() error {
	state := te.table.State
	if !state.Phase.IsBetting() {
		return nil
	}

	if total := te.table.ChipTotal(); total != state.HandChipTotal {
		return fmt.Errorf("%w: chip total %d, expected %d", ErrInvariantViolation, total, state.HandChipTotal)
	}

	stacks := int64(0)
	for _, s := range state.Seats {
		stacks += s.Stack
	}
	if stacks+te.pm.Total() != state.HandChipTotal {
		return fmt.Errorf("%w: stacks %d and pots %d do not add up to %d", ErrInvariantViolation, stacks, te.pm.Total(), state.HandChipTotal)
	}

	if state.CurrentActor == UnsetValue {
		return fmt.Errorf("%w: no current actor in %s", ErrInvariantViolation, state.Phase)
	}
	if actor := state.Seats[state.CurrentActor]; actor.Status != SeatStatus_Active {
		return fmt.Errorf("%w: actor seat %d is %s", ErrInvariantViolation, actor.Seat, actor.Status)
	}

	if len(state.CommunityCards) != state.Phase.CommunityCards() {
		return fmt.Errorf("%w: %d community cards in %s", ErrInvariantViolation, len(state.CommunityCards), state.Phase)
	}

	for _, s := range state.Seats {
		if s.StreetCommitted != te.pm.StreetContribution(s.Seat) {
			return fmt.Errorf("%w: seat %d street commitment %d, pot manager has %d", ErrInvariantViolation, s.Seat, s.StreetCommitted, te.pm.StreetContribution(s.Seat))
		}
	}

	return nil
}

// checkPots verifies closed pots only grow and eligibility only shrinks.
func (te *tableEngine) checkPots() error {
	pots := te.table.State.Pots
	if len(pots) < len(te.prevPots) {
		return fmt.Errorf("%w: pot count dropped from %d to %d", ErrInvariantViolation, len(te.prevPots), len(pots))
	}

	for i, prev := range te.prevPots {
		pot := pots[i]
		if pot.Amount < prev.Amount {
			return fmt.Errorf("%w: pot %d shrank from %d to %d", ErrInvariantViolation, i, prev.Amount, pot.Amount)
		}

		for _, seat := range pot.EligibleSeats {
			if !funk.ContainsInt(prev.EligibleSeats, seat) {
				return fmt.Errorf("%w: seat %d became eligible for pot %d", ErrInvariantViolation, seat, i)
			}
		}
	}

	te.prevPots = make([]pot_manager.Pot, 0, len(pots))
	for _, pot := range pots {
		te.prevPots = append(te.prevPots, pot_manager.Pot{
			Amount:        pot.Amount,
			EligibleSeats: append([]int{}, pot.EligibleSeats...),
		})
	}

	return nil
}

/*
freeze 凍結桌次
  - 停止計時器與下一手的準備流程
  - 之後所有動作都會回傳 ErrTableFrozen
*/
func (te *tableEngine) freeze(err error) {
	state := te.table.State
	if state.IsFrozen {
		return
	}

	state.IsFrozen = true
	state.FrozenReason = err.Error()
	state.ActionDeadline = UnsetValue
	te.tc.Disarm()
	te.ogm.Stop()

	te.logger.Error().
		Str("table", te.table.ID).
		Int("hand", state.HandCount).
		Str("phase", string(state.Phase)).
		Err(err).
		Msg("table frozen")

	te.onEngineError(&EngineError{
		Kind:    ErrorKind_InvariantViolation,
		TableID: te.table.ID,
		Message: err.Error(),
	})

	te.emitEvent("Freeze", "")
	te.emitTableStateEvent(TableStateEvent_Frozen)
}
