package seat_manager

import (
	"errors"
)

var (
	ErrNotEnoughSeats          = errors.New("seat manager: no enough seats")
	ErrInvalidSeatCount        = errors.New("seat manager: invalid seat count")
	ErrPlayerNotFound          = errors.New("seat manager: player not found")
	ErrPlayerIsAlreadyExist    = errors.New("seat manager: player is already exist")
	ErrUnavailableSeat         = errors.New("seat manager: seat is not available")
	ErrSeatAlreadyIsTaken      = errors.New("seat manager: seat is already taken")
	ErrUnableToRotatePositions = errors.New("seat manager: unable to rotate positions")
)

type SeatManager interface {
	GetSeatID(playerID string) (int, error)
	AssignSeat(playerID string, seatID int) (int, error)
	RemoveSeat(playerID string) error
	UpdatePlayerHasChips(playerID string, hasChips bool) error
	UpdatePlayerIsIn(playerID string, isIn bool) error
	RotatePositions() error

	MaxSeat() int
	Seats() map[int]*SeatPlayer
	OccupiedSeatCount() int
	CurrentDealerSeatID() int
	CurrentSBSeatID() int
	CurrentBBSeatID() int
	IsInitPositions() bool
	IsPlayerActive(playerID string) (bool, error)
	ActiveSeatIDs() []int
	ClockwiseSeatIDs(startSeatID int) []int
	Positions(seatID int) []string
}

// SeatPlayer is a seated player. A player takes part in the next hand only when Active.
type SeatPlayer struct {
	ID       string `json:"id"`
	IsIn     bool   `json:"is_in"`
	HasChips bool   `json:"has_chips"`
}

func (sp *SeatPlayer) Active() bool {
	return sp.IsIn && sp.HasChips
}

func NewSeatManager(maxSeats int) (SeatManager, error) {
	if maxSeats < MinSeatCount || maxSeats > MaxSeatCount {
		return nil, ErrInvalidSeatCount
	}

	seats := make(map[int]*SeatPlayer)
	for i := 0; i < maxSeats; i++ {
		seats[i] = nil
	}

	return &seatManager{
		maxSeat:      maxSeats,
		seats:        seats,
		dealerSeatID: UnsetSeatID,
		sbSeatID:     UnsetSeatID,
		bbSeatID:     UnsetSeatID,
		positions:    make(map[int][]string),
	}, nil
}
