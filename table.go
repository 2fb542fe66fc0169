package pokerd

import (
	"encoding/json"
	"time"

	"github.com/pokerd/pokerd/action_validator"
	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/pot_manager"
	"github.com/thoas/go-funk"
)

type Table struct {
	ID           string       `json:"id"`
	Meta         TableSetting `json:"meta"`
	State        *TableState  `json:"state"`
	UpdateAt     int64        `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial int64        `json:"update_serial"` // 更新序列號 (數字越大越晚發生)
}

type TableState struct {
	Phase          Phase             `json:"phase"`           // 當前階段
	Seats          []*TableSeat      `json:"seats"`           // 座位，index 即座位編號
	ButtonSeat     int               `json:"button_seat"`     // Dealer 座位編號
	SBSeat         int               `json:"sb_seat"`         // SB 座位編號
	BBSeat         int               `json:"bb_seat"`         // BB 座位編號
	CommunityCards []deck.Card       `json:"community_cards"` // 公牌
	Pots           []pot_manager.Pot `json:"pots"`            // 已關閉的底池
	CurrentBet     int64             `json:"current_bet"`     // 本街最高注額
	MinRaise       int64             `json:"min_raise"`       // 最小加注量
	CurrentActor   int               `json:"current_actor"`   // 當前行動座位 (-1: none)
	ActionDeadline int64             `json:"action_deadline"` // 行動期限 (Milliseconds, -1: none)
	NextSequence   int64             `json:"next_sequence"`   // 下一個動作的序列號
	HandCount      int               `json:"hand_count"`      // 執行手數
	HandChipTotal  int64             `json:"hand_chip_total"` // 本手開始時桌上籌碼總量
	LastAction     *TableAction      `json:"last_action"`     // 最後一個套用的動作
	IsFrozen       bool              `json:"is_frozen"`
	FrozenReason   string            `json:"frozen_reason"`
	IsClosed       bool              `json:"is_closed"`
}

type TableSeat struct {
	Seat            int        `json:"seat"`
	PlayerID        string     `json:"player_id"`
	Stack           int64      `json:"stack"`            // 玩家身上籌碼
	StreetCommitted int64      `json:"street_committed"` // 本街下注量
	TotalCommitted  int64      `json:"total_committed"`  // 本手下注總量
	Status          SeatStatus `json:"status"`
	Acted           bool       `json:"acted"`      // 上一次完整加注後是否已行動
	Positions       []string   `json:"positions"`  // 場上位置
	IsLeaving       bool       `json:"is_leaving"` // 本手結束後離桌
}

// TableAction is an applied, normalized action.
type TableAction struct {
	PlayerID    string `json:"player_id"`
	Seat        int    `json:"seat"`
	Type        string `json:"type"`
	Chips       int64  `json:"chips"`
	To          int64  `json:"to"`
	Sequence    int64  `json:"sequence"`
	IsTimeout   bool   `json:"is_timeout"`
	IsFullRaise bool   `json:"is_full_raise"`
}

// PlayerAction is an inbound action request.
type PlayerAction struct {
	PlayerID string `json:"player_id"`
	Type     string `json:"type"`
	Amount   int64  `json:"amount"` // bet: chips put in, raise: raise-to street level
	Sequence int64  `json:"sequence"`
}

func NewTableSeats(capacity int) []*TableSeat {
	seats := make([]*TableSeat, capacity)
	for i := 0; i < capacity; i++ {
		seats[i] = newEmptySeat(i)
	}
	return seats
}

func newEmptySeat(seat int) *TableSeat {
	return &TableSeat{
		Seat:      seat,
		Status:    SeatStatus_Empty,
		Positions: make([]string, 0),
	}
}

// Setters
func (t *Table) RefreshUpdateAt() {
	t.UpdateAt = time.Now().Unix()
	t.UpdateSerial++
}

// Getters
func (t Table) Clone() (*Table, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var cloneTable Table
	if err := json.Unmarshal(encoded, &cloneTable); err != nil {
		return nil, err
	}

	return &cloneTable, nil
}

func (t Table) GetJSON() (string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (t Table) FindSeat(playerID string) int {
	for _, s := range t.State.Seats {
		if s.Status != SeatStatus_Empty && s.PlayerID == playerID {
			return s.Seat
		}
	}
	return UnsetValue
}

func (t Table) SeatedPlayers() []*TableSeat {
	return funk.Filter(t.State.Seats, func(s *TableSeat) bool {
		return s.Status != SeatStatus_Empty
	}).([]*TableSeat)
}

// ContenderSeats lists seats that can still win chips this hand.
func (t Table) ContenderSeats() []int {
	seats := make([]int, 0)
	for _, s := range t.State.Seats {
		if s.Status.IsContending() {
			seats = append(seats, s.Seat)
		}
	}
	return seats
}

func (t Table) ChipTotal() int64 {
	total := int64(0)
	for _, s := range t.State.Seats {
		total += s.Stack + s.StreetCommitted
	}
	for _, pot := range t.State.Pots {
		total += pot.Amount
	}
	return total
}

func (t Table) IsRemovable() bool {
	if t.State.Phase != Phase_WaitingForPlayers && t.State.Phase != Phase_HandComplete {
		return false
	}
	return len(t.SeatedPlayers()) == 0
}

// LegalActions lists the action types the player may submit right now.
func (t Table) LegalActions(playerID string) []string {
	seat := t.FindSeat(playerID)
	if seat == UnsetValue {
		return []string{}
	}
	return action_validator.LegalActions(t.actionContext(), validatorSeat(t.State.Seats[seat]))
}

func (t Table) actionContext() action_validator.Context {
	state := t.State
	return action_validator.Context{
		IsFrozen:      state.IsFrozen,
		IsBettingOpen: state.Phase.IsBetting() && !state.IsClosed,
		NextSequence:  state.NextSequence,
		CurrentActor:  state.CurrentActor,
		CurrentBet:    state.CurrentBet,
		MinRaise:      state.MinRaise,
	}
}
