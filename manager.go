package pokerd

import (
	"sort"
	"sync"

	"github.com/pokerd/pokerd/deck"
)

type Manager interface {
	Reset()

	// TableEngine Actions
	GetTableEngine(tableID string) (TableEngine, error)
	ListTableIDs() []string
	CreateTable(options *TableEngineOptions, callbacks *TableEngineCallbacks, setting TableSetting) (*Table, error)
	StartHand(tableID string) error
	CloseTable(tableID string) error
	RemoveTable(tableID string) error

	// Player Table Actions
	JoinTable(tableID, playerID string, buyIn int64, seat int) (int, error)
	LeaveTable(tableID, playerID string) error

	// Player Game Actions
	PlayerReady(tableID, playerID string) error
	SubmitAction(tableID string, action PlayerAction) (*Table, error)
	GetHoleCards(tableID, playerID string) ([]deck.Card, error)
}

type manager struct {
	tableEngines sync.Map
}

func NewManager() Manager {
	return &manager{
		tableEngines: sync.Map{},
	}
}

func (m *manager) Reset() {
	m.tableEngines.Range(func(key, value any) bool {
		m.tableEngines.Delete(key)
		value.(TableEngine).WaitSettled()
		return true
	})
}

func (m *manager) GetTableEngine(tableID string) (TableEngine, error) {
	tableEngine, exist := m.tableEngines.Load(tableID)
	if !exist {
		return nil, ErrTableNotFound
	}
	return tableEngine.(TableEngine), nil
}

func (m *manager) ListTableIDs() []string {
	tableIDs := make([]string, 0)
	m.tableEngines.Range(func(key, value any) bool {
		tableIDs = append(tableIDs, key.(string))
		return true
	})
	sort.Strings(tableIDs)
	return tableIDs
}

func (m *manager) CreateTable(options *TableEngineOptions, callbacks *TableEngineCallbacks, setting TableSetting) (*Table, error) {
	var engineOptions *TableEngineOptions
	if options != nil {
		engineOptions = options
	} else {
		engineOptions = NewTableEngineOptions()
	}

	var engineCallbacks *TableEngineCallbacks
	if callbacks != nil {
		engineCallbacks = callbacks
	} else {
		engineCallbacks = NewTableEngineCallbacks()
	}

	if setting.TableID != "" {
		if _, exist := m.tableEngines.Load(setting.TableID); exist {
			return nil, ErrInvalidSetting
		}
	}

	tableEngine := NewTableEngine(engineOptions)
	tableEngine.OnTableUpdated(engineCallbacks.OnTableUpdated)
	tableEngine.OnTableStateUpdated(engineCallbacks.OnTableStateUpdated)
	tableEngine.OnHandOutcome(engineCallbacks.OnHandOutcome)
	tableEngine.OnEngineError(engineCallbacks.OnEngineError)
	tableEngine.OnExitPayout(engineCallbacks.OnExitPayout)
	table, err := tableEngine.CreateTable(setting)
	if err != nil {
		return nil, err
	}

	if _, loaded := m.tableEngines.LoadOrStore(table.ID, tableEngine); loaded {
		return nil, ErrInvalidSetting
	}
	return table, nil
}

func (m *manager) StartHand(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrTableNotFound
	}

	return tableEngine.StartHand()
}

// CloseTable closes the table and drops it from the registry.
func (m *manager) CloseTable(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrTableNotFound
	}

	if err := tableEngine.CloseTable(); err != nil {
		return err
	}

	m.tableEngines.Delete(tableID)
	tableEngine.WaitSettled()
	return nil
}

// RemoveTable drops an idle table with no seated players.
func (m *manager) RemoveTable(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrTableNotFound
	}

	table := tableEngine.GetTable()
	if table == nil {
		return ErrTableNotFound
	}

	if !table.State.IsClosed && !table.IsRemovable() {
		return ErrTableNotRemovable
	}

	m.tableEngines.Delete(tableID)
	return nil
}

func (m *manager) JoinTable(tableID, playerID string, buyIn int64, seat int) (int, error) {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return UnsetValue, ErrTableNotFound
	}

	return tableEngine.PlayerJoin(playerID, buyIn, seat)
}

func (m *manager) LeaveTable(tableID, playerID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrTableNotFound
	}

	return tableEngine.PlayerLeave(playerID)
}

func (m *manager) PlayerReady(tableID, playerID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrTableNotFound
	}

	return tableEngine.PlayerReady(playerID)
}

func (m *manager) SubmitAction(tableID string, action PlayerAction) (*Table, error) {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return nil, ErrTableNotFound
	}

	return tableEngine.SubmitAction(action)
}

func (m *manager) GetHoleCards(tableID, playerID string) ([]deck.Card, error) {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return nil, ErrTableNotFound
	}

	return tableEngine.GetHoleCards(playerID)
}
