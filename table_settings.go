package pokerd

import (
	"github.com/pokerd/pokerd/seat_manager"
)

const (
	DefaultSmallBlind   = 1
	DefaultBigBlind     = 2
	DefaultSeatCapacity = 5
)

type TableSetting struct {
	TableID      string `json:"table_id"`
	Name         string `json:"name"`
	SmallBlind   int64  `json:"small_blind"`
	BigBlind     int64  `json:"big_blind"`
	SeatCapacity int    `json:"seat_capacity"`
	MinBuyIn     int64  `json:"min_buy_in"` // 0: no lower bound
	MaxBuyIn     int64  `json:"max_buy_in"` // 0: no upper bound
}

func NewDefaultTableSetting() TableSetting {
	return TableSetting{
		SmallBlind:   DefaultSmallBlind,
		BigBlind:     DefaultBigBlind,
		SeatCapacity: DefaultSeatCapacity,
	}
}

func (s TableSetting) Validate() error {
	if s.SmallBlind <= 0 || s.BigBlind <= 0 || s.SmallBlind > s.BigBlind {
		return ErrInvalidSetting
	}

	if s.SeatCapacity < seat_manager.MinSeatCount || s.SeatCapacity > seat_manager.MaxSeatCount {
		return ErrInvalidSetting
	}

	if s.MinBuyIn < 0 || s.MaxBuyIn < 0 {
		return ErrInvalidSetting
	}

	if s.MinBuyIn > 0 && s.MaxBuyIn > 0 && s.MinBuyIn > s.MaxBuyIn {
		return ErrInvalidSetting
	}

	return nil
}

func (s TableSetting) IsValidBuyIn(buyIn int64) bool {
	if buyIn <= 0 {
		return false
	}
	if s.MinBuyIn > 0 && buyIn < s.MinBuyIn {
		return false
	}
	if s.MaxBuyIn > 0 && buyIn > s.MaxBuyIn {
		return false
	}
	return true
}
