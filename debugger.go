package pokerd

import (
	"fmt"
	"strings"

	"github.com/pokerd/pokerd/deck"
)

// DebugString renders the table in a human readable layout.
func DebugString(table Table) string {
	boolToString := func(value bool) string {
		if value {
			return "O"
		} else {
			return "X"
		}
	}

	seatString := func(seat int) string {
		if seat == UnsetValue {
			return "X"
		}
		return fmt.Sprintf("%d", seat)
	}

	var sb strings.Builder
	state := table.State

	fmt.Fprintf(&sb, "---------- [%s] 第 (%d) 手 ----------\n", table.ID, state.HandCount)
	fmt.Fprintf(&sb, "[Phase] %s, frozen: %s, closed: %s\n", state.Phase, boolToString(state.IsFrozen), boolToString(state.IsClosed))
	fmt.Fprintf(&sb, "[Dealer] %s, [SB] %s, [BB] %s\n", seatString(state.ButtonSeat), seatString(state.SBSeat), seatString(state.BBSeat))
	fmt.Fprintf(&sb, "[Board] %s\n", deck.CardsString(state.CommunityCards))
	fmt.Fprintf(&sb, "[Bet] current: %d, min raise: %d, actor: %s, next sequence: %d\n", state.CurrentBet, state.MinRaise, seatString(state.CurrentActor), state.NextSequence)

	fmt.Fprintln(&sb, "[Seats]")
	for _, s := range state.Seats {
		if s.Status == SeatStatus_Empty {
			fmt.Fprintf(&sb, "seat: %d, X\n", s.Seat)
			continue
		}
		fmt.Fprintf(&sb, "seat: %d [%v], player: %s, status: %s, stack: %d, street: %d, total: %d, acted: %s, leaving: %s\n",
			s.Seat, s.Positions, s.PlayerID, s.Status, s.Stack, s.StreetCommitted, s.TotalCommitted, boolToString(s.Acted), boolToString(s.IsLeaving))
	}

	fmt.Fprintln(&sb, "[Pots]")
	for idx, pot := range state.Pots {
		fmt.Fprintf(&sb, "pot[%d]: %d, eligible: %v\n", idx, pot.Amount, pot.EligibleSeats)
	}

	if state.LastAction != nil {
		a := state.LastAction
		fmt.Fprintf(&sb, "[Last Action] #%d seat %d (%s) %s %d -> %d, timeout: %s\n",
			a.Sequence, a.Seat, a.PlayerID, a.Type, a.Chips, a.To, boolToString(a.IsTimeout))
	}

	return sb.String()
}
