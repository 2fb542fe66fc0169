package pokerd

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pokerd/pokerd/action_validator"
	"github.com/pokerd/pokerd/deck"
	"github.com/pokerd/pokerd/open_game_manager"
	"github.com/pokerd/pokerd/pot_manager"
	"github.com/pokerd/pokerd/seat_manager"
	"github.com/pokerd/pokerd/timeout_controller"
	"github.com/rs/zerolog"
)

type TableEngineOpt func(*tableEngine)

/*
TableEngine 單桌狀態機
  - 所有狀態變更都在 lock 內完成
  - 事件監聽器在 lock 內被呼叫，不可同步呼叫回 TableEngine
*/
type TableEngine interface {
	// Events
	OnTableUpdated(fn func(*Table))                         // 桌次更新事件監聽器
	OnTableStateUpdated(fn func(string, *TableStateUpdate)) // 桌次狀態監聽器
	OnHandOutcome(fn func(*HandOutcome))                    // 本手結算監聽器
	OnEngineError(fn func(*EngineError))                    // 錯誤事件監聽器
	OnExitPayout(fn func(*ExitPayout))                      // 玩家離桌結算監聽器

	// Table Actions
	GetTable() *Table                                      // 取得桌次 (複本)
	CreateTable(tableSetting TableSetting) (*Table, error) // 建立桌
	StartHand() error                                      // 開始新的一手
	CloseTable() error                                     // 關閉桌

	// Player Actions
	PlayerJoin(playerID string, buyIn int64, seat int) (int, error) // 玩家入桌
	PlayerLeave(playerID string) error                              // 玩家離桌
	PlayerReady(playerID string) error                              // 玩家準備下一手
	SubmitAction(action PlayerAction) (*Table, error)               // 玩家動作
	GetHoleCards(playerID string) ([]deck.Card, error)              // 取得自己的手牌

	WaitSettled() // 等待排隊中的結算送出
}

type tableEngine struct {
	lock                sync.Mutex
	options             *TableEngineOptions
	logger              zerolog.Logger
	table               *Table
	sm                  seat_manager.SeatManager
	pm                  pot_manager.PotManager
	tc                  timeout_controller.TimeoutController
	ogm                 open_game_manager.OpenGameManager
	sq                  *settleQueue
	deck                *deck.Deck
	holeCards           map[int][]deck.Card // key: seat
	prevPots            []pot_manager.Pot
	onTableUpdated      func(*Table)
	onTableStateUpdated func(string, *TableStateUpdate)
	onHandOutcome       func(*HandOutcome)
	onEngineError       func(*EngineError)
	onExitPayout        func(*ExitPayout)
}

func NewTableEngine(options *TableEngineOptions, opts ...TableEngineOpt) TableEngine {
	if options == nil {
		options = NewTableEngineOptions()
	}

	callbacks := NewTableEngineCallbacks()
	te := &tableEngine{
		options:             options.withDefaults(),
		logger:              options.Logger,
		pm:                  pot_manager.NewPotManager(),
		holeCards:           make(map[int][]deck.Card),
		onTableUpdated:      callbacks.OnTableUpdated,
		onTableStateUpdated: callbacks.OnTableStateUpdated,
		onHandOutcome:       callbacks.OnHandOutcome,
		onEngineError:       callbacks.OnEngineError,
		onExitPayout:        callbacks.OnExitPayout,
	}
	te.sq = newSettleQueue(te.options.Settler, te.options.SettleTimeout, te.logger)
	te.tc = timeout_controller.NewTimeoutController(te.handleActionTimeout)
	te.ogm = open_game_manager.NewOpenGameManager(open_game_manager.OpenGameOption{
		Timeout: te.options.NextHandTimeout,
		OnOpenGameReady: func(state open_game_manager.OpenGameState) {
			go te.handleNextHandReady(state.HandCount)
		},
	})

	for _, opt := range opts {
		opt(te)
	}

	return te
}

func WithPotManager(pm pot_manager.PotManager) TableEngineOpt {
	return func(te *tableEngine) {
		te.pm = pm
	}
}

func (te *tableEngine) OnTableUpdated(fn func(*Table)) {
	if fn != nil {
		te.onTableUpdated = fn
	}
}

func (te *tableEngine) OnTableStateUpdated(fn func(string, *TableStateUpdate)) {
	if fn != nil {
		te.onTableStateUpdated = fn
	}
}

func (te *tableEngine) OnHandOutcome(fn func(*HandOutcome)) {
	if fn != nil {
		te.onHandOutcome = fn
	}
}

func (te *tableEngine) OnEngineError(fn func(*EngineError)) {
	if fn != nil {
		te.onEngineError = fn
	}
}

func (te *tableEngine) OnExitPayout(fn func(*ExitPayout)) {
	if fn != nil {
		te.onExitPayout = fn
	}
}

func (te *tableEngine) GetTable() *Table {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return nil
	}

	cloneTable, err := te.table.Clone()
	if err != nil {
		return nil
	}
	return cloneTable
}

func (te *tableEngine) CreateTable(tableSetting TableSetting) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table != nil {
		return nil, ErrInvalidSetting
	}

	// validate tableSetting
	if err := tableSetting.Validate(); err != nil {
		return nil, err
	}

	if tableSetting.TableID == "" {
		tableSetting.TableID = uuid.New().String()
	}

	sm, err := seat_manager.NewSeatManager(tableSetting.SeatCapacity)
	if err != nil {
		return nil, ErrInvalidSetting
	}
	te.sm = sm

	// create table instance
	table := &Table{
		ID:   tableSetting.TableID,
		Meta: tableSetting,
		State: &TableState{
			Phase:          Phase_WaitingForPlayers,
			Seats:          NewTableSeats(tableSetting.SeatCapacity),
			ButtonSeat:     UnsetValue,
			SBSeat:         UnsetValue,
			BBSeat:         UnsetValue,
			CommunityCards: make([]deck.Card, 0),
			Pots:           make([]pot_manager.Pot, 0),
			CurrentActor:   UnsetValue,
			ActionDeadline: UnsetValue,
			NextSequence:   1,
		},
	}
	te.table = table

	te.emitEvent("CreateTable", "")
	te.emitTableStateEvent(TableStateEvent_Created)

	return te.table.Clone()
}

/*
StartHand 開始新的一手
  - 適用時機: WaitingForPlayers 或 HandComplete
  - 有籌碼的玩家少於 2 人時回到 WaitingForPlayers
*/
func (te *tableEngine) StartHand() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.startHand(); err != nil {
		if !causesFreeze(err) {
			te.emitErrorEvent("StartHand", "", err)
		}
		return err
	}
	return nil
}

/*
CloseTable 關閉桌次
  - 手牌進行中: 取消本手，底池平分給仍在爭奪底池的玩家
  - 所有入座玩家取得離桌結算
*/
func (te *tableEngine) CloseTable() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateTable(); err != nil {
		return err
	}

	te.tc.Disarm()
	te.ogm.Stop()
	te.table.State.IsClosed = true

	if te.isHandInProgress() {
		if err := te.cancelHand(); err != nil {
			te.table.State.IsClosed = false
			te.freeze(err)
			return err
		}
	}

	for _, s := range te.table.State.Seats {
		if s.Status == SeatStatus_Empty {
			continue
		}
		te.removePlayer(s)
	}

	te.table.State.Phase = Phase_WaitingForPlayers
	te.table.State.CommunityCards = make([]deck.Card, 0)

	te.emitEvent("CloseTable", "")
	te.emitTableStateEvent(TableStateEvent_Closed)
	return nil
}

/*
PlayerJoin 玩家入桌
  - seat 為 UnsetValue 時隨機入座
  - 手牌進行中入桌的玩家等到下一手才參與
  - @return 座位編號
*/
func (te *tableEngine) PlayerJoin(playerID string, buyIn int64, seat int) (int, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	seatID, err := te.playerJoin(playerID, buyIn, seat)
	if err != nil {
		te.emitErrorEvent("PlayerJoin", playerID, err)
		return UnsetValue, err
	}
	return seatID, nil
}

/*
PlayerLeave 玩家離桌
  - 非手牌進行中: 立即離桌結算
  - 手牌進行中: 仍在爭奪底池則棄牌，本手結束後離桌結算
*/
func (te *tableEngine) PlayerLeave(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.playerLeave(playerID); err != nil {
		if !causesFreeze(err) {
			te.emitErrorEvent("PlayerLeave", playerID, err)
		}
		return err
	}
	return nil
}

func (te *tableEngine) PlayerReady(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateTable(); err != nil {
		return err
	}

	if te.table.FindSeat(playerID) == UnsetValue {
		return ErrPlayerNotSeated
	}

	if te.isHandInProgress() {
		return ErrHandInProgress
	}

	// without auto start the gate is never opened
	if !te.options.AutoStartHands {
		return ErrAutoStartDisabled
	}

	err := te.ogm.Ready(playerID)
	switch {
	case errors.Is(err, open_game_manager.ErrGateClosed):
		return ErrNotEnoughPlayers
	case errors.Is(err, open_game_manager.ErrParticipantNotFound):
		return ErrPlayerNotSeated
	}

	if err == nil {
		te.emitEvent("PlayerReady", playerID)
	}
	return err
}

/*
SubmitAction 玩家動作
  - 驗證失敗時不修改任何狀態
  - @return 套用動作後的桌次 (複本)
*/
func (te *tableEngine) SubmitAction(action PlayerAction) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.submitAction(action, false); err != nil {
		return nil, err
	}

	return te.table.Clone()
}

// WaitSettled must not be called from an engine callback.
func (te *tableEngine) WaitSettled() {
	te.sq.Wait()
}

func (te *tableEngine) GetHoleCards(playerID string) ([]deck.Card, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return nil, ErrTableNotFound
	}

	seat := te.table.FindSeat(playerID)
	if seat == UnsetValue {
		return nil, ErrPlayerNotSeated
	}

	cards, exist := te.holeCards[seat]
	if !exist {
		return nil, ErrNotDealt
	}

	return append([]deck.Card{}, cards...), nil
}

func (te *tableEngine) validatorContext() action_validator.Context {
	return te.table.actionContext()
}

func validatorSeat(s *TableSeat) action_validator.Seat {
	return action_validator.Seat{
		Seat:      s.Seat,
		Stack:     s.Stack,
		Committed: s.StreetCommitted,
		CanRaise:  !s.Acted,
	}
}
