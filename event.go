package pokerd

import (
	"context"
	"fmt"
	"time"

	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/evaluator"
	"github.com/pokerd/pokerd/pot_manager"
)

const (
	TableStateEvent_Created       = "Created"
	TableStateEvent_PlayerJoined  = "PlayerJoined"
	TableStateEvent_PlayerLeft    = "PlayerLeft"
	TableStateEvent_HandStarted   = "HandStarted"
	TableStateEvent_ActionApplied = "ActionApplied"
	TableStateEvent_StreetDealt   = "StreetDealt"
	TableStateEvent_Showdown      = "Showdown"
	TableStateEvent_HandComplete  = "HandComplete"
	TableStateEvent_Waiting       = "Waiting"
	TableStateEvent_Frozen        = "Frozen"
	TableStateEvent_Closed        = "Closed"
)

type TableStateUpdate struct {
	TableID        string            `json:"table_id"`
	Phase          Phase             `json:"phase"`
	CommunityCards []deck.Card       `json:"community_cards"`
	Pots           []pot_manager.Pot `json:"pots"`
	CurrentActor   int               `json:"current_actor"`
	Seats          []TableSeat       `json:"seats"`
	ActionDeadline int64             `json:"action_deadline"`
	ButtonSeat     int               `json:"button_seat"`
	NextSequence   int64             `json:"next_sequence"`
	HandCount      int               `json:"hand_count"`
	LastAction     *TableAction      `json:"last_action"`
}

type HandOutcome struct {
	TableID        string                 `json:"table_id"`
	HandCount      int                    `json:"hand_count"`
	Payouts        map[int]int64          `json:"payouts"`        // key: seat, value: chips
	PlayerPayouts  map[string]int64       `json:"player_payouts"` // key: player_id, value: chips
	Awards         []pot_manager.PotAward `json:"awards"`
	CommunityCards []deck.Card            `json:"community_cards"`
	WinningHands   []WinningHand          `json:"winning_hands"`
	IsUncontested  bool                   `json:"is_uncontested"`
	IsCancelled    bool                   `json:"is_cancelled"`
}

type WinningHand struct {
	Seat        int                 `json:"seat"`
	PlayerID    string              `json:"player_id"`
	HoleCards   []deck.Card         `json:"hole_cards"`
	Value       evaluator.HandValue `json:"value"`
	Description string              `json:"description"`
}

type EngineError struct {
	Kind     ErrorKind `json:"kind"`
	TableID  string    `json:"table_id"`
	PlayerID string    `json:"player_id,omitempty"`
	Message  string    `json:"message"`
}

type ExitPayout struct {
	TableID  string `json:"table_id"`
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
	Chips    int64  `json:"chips"`
}

func (te *tableEngine) emitEvent(eventName string, playerID string) {
	// refresh table
	te.table.RefreshUpdateAt()

	// emit event
	te.logger.Debug().
		Str("table", te.table.ID).
		Int64("serial", te.table.UpdateSerial).
		Int("hand", te.table.State.HandCount).
		Str("player", playerID).
		Msg(eventName)
	te.onTableUpdated(te.table)
}

func (te *tableEngine) emitErrorEvent(eventName string, playerID string, err error) {
	kind := KindOf(err)
	te.logger.Warn().
		Str("table", te.table.ID).
		Int64("serial", te.table.UpdateSerial).
		Int("hand", te.table.State.HandCount).
		Str("player", playerID).
		Str("kind", string(kind)).
		Err(err).
		Msg(eventName)

	te.onEngineError(&EngineError{
		Kind:     kind,
		TableID:  te.table.ID,
		PlayerID: playerID,
		Message:  err.Error(),
	})
}

func (te *tableEngine) emitTableStateEvent(eventName string) {
	te.onTableStateUpdated(eventName, te.newTableStateUpdate())
}

func (te *tableEngine) emitHandOutcome(outcome *HandOutcome) {
	te.logger.Info().
		Str("table", te.table.ID).
		Int("hand", outcome.HandCount).
		Interface("payouts", outcome.PlayerPayouts).
		Bool("uncontested", outcome.IsUncontested).
		Bool("cancelled", outcome.IsCancelled).
		Msg("hand outcome")
	te.onHandOutcome(outcome)

	tableID := te.table.ID
	te.sq.Push(func(ctx context.Context, settler Settler) error {
		if err := settler.SettleHand(ctx, outcome); err != nil {
			return fmt.Errorf("table %s hand %d: %w", tableID, outcome.HandCount, err)
		}
		return nil
	})
}

func (te *tableEngine) emitExitPayout(payout *ExitPayout) {
	te.logger.Info().
		Str("table", payout.TableID).
		Str("player", payout.PlayerID).
		Int("seat", payout.Seat).
		Int64("chips", payout.Chips).
		Msg("exit payout")
	te.onExitPayout(payout)

	te.sq.Push(func(ctx context.Context, settler Settler) error {
		if err := settler.SettleExit(ctx, payout); err != nil {
			return fmt.Errorf("table %s exit of %s: %w", payout.TableID, payout.PlayerID, err)
		}
		return nil
	})
}

func (te *tableEngine) newTableStateUpdate() *TableStateUpdate {
	state := te.table.State

	seats := make([]TableSeat, 0, len(state.Seats))
	for _, s := range state.Seats {
		seat := *s
		seat.Positions = append([]string{}, s.Positions...)
		seats = append(seats, seat)
	}

	pots := make([]pot_manager.Pot, 0, len(state.Pots))
	for _, pot := range state.Pots {
		pots = append(pots, pot_manager.Pot{
			Amount:        pot.Amount,
			EligibleSeats: append([]int{}, pot.EligibleSeats...),
		})
	}

	var lastAction *TableAction
	if state.LastAction != nil {
		a := *state.LastAction
		lastAction = &a
	}

	return &TableStateUpdate{
		TableID:        te.table.ID,
		Phase:          state.Phase,
		CommunityCards: append([]deck.Card{}, state.CommunityCards...),
		Pots:           pots,
		CurrentActor:   state.CurrentActor,
		Seats:          seats,
		ActionDeadline: state.ActionDeadline,
		ButtonSeat:     state.ButtonSeat,
		NextSequence:   state.NextSequence,
		HandCount:      state.HandCount,
		LastAction:     lastAction,
	}
}

func deadlineAfter(d time.Duration) int64 {
	return time.Now().Add(d).UnixMilli()
}
