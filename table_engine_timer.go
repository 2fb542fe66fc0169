package pokerd

import (
	"errors"

	"github.com/pokerd/pokerd/action_validator"
	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/timeout_controller"
)

func (te *tableEngine) armActionTimer() {
	state := te.table.State
	if te.options.ActionTimeout <= 0 || state.CurrentActor == UnsetValue {
		state.ActionDeadline = UnsetValue
		return
	}

	token := timeout_controller.Token{
		HandCount: state.HandCount,
		Sequence:  state.NextSequence,
		Seat:      state.CurrentActor,
	}
	if err := te.tc.Arm(token, te.options.ActionTimeout); err != nil {
		te.logger.Warn().Str("table", te.table.ID).Err(err).Msg("arm action timer")
		state.ActionDeadline = UnsetValue
		return
	}

	state.ActionDeadline = deadlineAfter(te.options.ActionTimeout)
}

// handleActionTimeout applies the default action for a decision that is still pending.
func (te *tableEngine) handleActionTimeout(token timeout_controller.Token) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return
	}

	state := te.table.State
	if state.IsFrozen || state.IsClosed || !state.Phase.IsBetting() {
		return
	}

	// stale timer
	if token.HandCount != state.HandCount || token.Sequence != state.NextSequence || token.Seat != state.CurrentActor {
		return
	}

	s := state.Seats[token.Seat]
	actionType := action_validator.DefaultAction(te.validatorContext(), validatorSeat(s))

	te.logger.Info().
		Str("table", te.table.ID).
		Int("hand", state.HandCount).
		Int("seat", s.Seat).
		Str("player", s.PlayerID).
		Str("action", actionType).
		Msg("action timeout")

	_ = te.submitAction(PlayerAction{
		PlayerID: s.PlayerID,
		Type:     actionType,
		Sequence: state.NextSequence,
	}, true)
}

// openNextHandGate waits for every eligible player to be ready for the next hand.
func (te *tableEngine) openNextHandGate() {
	participants := make(map[string]int)
	for _, s := range te.table.State.Seats {
		if s.Status == SeatStatus_Active && s.Stack > 0 && !s.IsLeaving {
			participants[s.PlayerID] = s.Seat
		}
	}

	if len(participants) < 2 {
		te.ogm.Stop()
		te.enterWaiting()
		return
	}

	te.ogm.Setup(te.table.State.HandCount, participants)
}

func (te *tableEngine) handleNextHandReady(handCount int) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return
	}

	state := te.table.State
	if state.IsClosed || state.IsFrozen || te.isHandInProgress() || state.HandCount != handCount {
		return
	}

	err := te.startHand()
	if err != nil && !errors.Is(err, ErrNotEnoughPlayers) && !causesFreeze(err) {
		te.emitErrorEvent("StartHand", "", err)
	}
}

func (te *tableEngine) enterWaiting() {
	state := te.table.State
	if state.Phase == Phase_WaitingForPlayers {
		return
	}

	state.Phase = Phase_WaitingForPlayers
	state.CommunityCards = make([]deck.Card, 0)
	state.CurrentActor = UnsetValue
	state.ActionDeadline = UnsetValue

	te.emitEvent("Waiting", "")
	te.emitTableStateEvent(TableStateEvent_Waiting)
}
