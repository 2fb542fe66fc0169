package seat_manager

import (
	"github.com/rs/zerolog"
)

// LogSeats writes the seat layout at debug level.
func LogSeats(logger zerolog.Logger, msg string, sm SeatManager) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	seats := sm.Seats()
	arr := zerolog.Arr()
	for i := 0; i < len(seats); i++ {
		seatPlayer := seats[i]
		if seatPlayer == nil {
			arr.Str("-")
			continue
		}
		arr.Dict(zerolog.Dict().
			Int("seat", i).
			Str("player", seatPlayer.ID).
			Bool("is_in", seatPlayer.IsIn).
			Bool("has_chips", seatPlayer.HasChips).
			Bool("active", seatPlayer.Active()))
	}

	logger.Debug().
		Int("dealer", sm.CurrentDealerSeatID()).
		Int("sb", sm.CurrentSBSeatID()).
		Int("bb", sm.CurrentBBSeatID()).
		Array("seats", arr).
		Msg(msg)
}
