package pot_manager

import (
	"errors"
	"sync"

	"github.com/pokerd/pokerd/evaluator"
)

var (
	ErrSeatNotInHand     = errors.New("pot manager: seat is not in hand")
	ErrInvalidChips      = errors.New("pot manager: invalid chips")
	ErrStreetNotClosed   = errors.New("pot manager: street is not closed")
	ErrNoEligibleResults = errors.New("pot manager: no hand result for an eligible seat")
	ErrNoContenders      = errors.New("pot manager: no contenders")
)

type PotManager interface {
	Reset(seats []int)
	Commit(seat int, chips int64) error
	Fold(seat int) error
	AllIn(seat int) error
	CloseStreet() map[int]int64
	Settle(results map[int]evaluator.HandValue, order []int) (*Settlement, error)
	AwardAll(seat int) (*Settlement, error)
	SplitEvenly(seats []int, order []int) (*Settlement, error)

	StreetContribution(seat int) int64
	TotalContribution(seat int) int64
	CurrentBet() int64
	StreetTotal() int64
	Pots() []Pot
	Total() int64
}

type Pot struct {
	Amount        int64 `json:"amount"`
	EligibleSeats []int `json:"eligible_seats"`
}

type PotAward struct {
	PotIndex int   `json:"pot_index"`
	Amount   int64 `json:"amount"`
	Winners  []int `json:"winners"`
}

type Settlement struct {
	Payouts map[int]int64 `json:"payouts"` // key: seat, value: chips
	Awards  []PotAward    `json:"awards"`
}

type contribution struct {
	Street   int64
	Total    int64
	IsFolded bool
	IsAllIn  bool
}

type potManager struct {
	contributions map[int]*contribution // key: seat
	pots          []Pot
	mu            sync.RWMutex
}

func NewPotManager() PotManager {
	return &potManager{
		contributions: make(map[int]*contribution),
		pots:          make([]Pot, 0),
	}
}
