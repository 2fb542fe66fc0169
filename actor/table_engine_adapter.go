package actor

import (
	"sync"

	"github.com/pokerd/pokerd"
)

type Adapter interface {
	SetActor(a Actor)
	GetTable() *pokerd.Table
	UpdateTableState(table *pokerd.Table) error

	// Requests
	SubmitAction(action pokerd.PlayerAction) error
	Ready(playerID string) error
	Leave(playerID string) error
}

/*
tableEngineAdapter 連接 Actor 與 TableEngine
  - UpdateTableState 在桌次 lock 內被呼叫，必須先複製桌次再交給 Runner
  - Runner 不可在 UpdateTableState 內同步送出請求
*/
type tableEngineAdapter struct {
	mu     sync.RWMutex
	actor  Actor
	engine pokerd.TableEngine
	table  *pokerd.Table
}

func NewTableEngineAdapter(engine pokerd.TableEngine, table *pokerd.Table) Adapter {
	return &tableEngineAdapter{
		engine: engine,
		table:  table,
	}
}

func (tea *tableEngineAdapter) SetActor(a Actor) {
	tea.actor = a
}

func (tea *tableEngineAdapter) GetTable() *pokerd.Table {
	tea.mu.RLock()
	defer tea.mu.RUnlock()
	return tea.table
}

func (tea *tableEngineAdapter) UpdateTableState(table *pokerd.Table) error {
	cloneTable, err := table.Clone()
	if err != nil {
		return err
	}

	tea.mu.Lock()
	tea.table = cloneTable
	tea.mu.Unlock()

	if tea.actor == nil || tea.actor.GetRunner() == nil {
		return nil
	}
	return tea.actor.GetRunner().UpdateTableState(cloneTable)
}

func (tea *tableEngineAdapter) SubmitAction(action pokerd.PlayerAction) error {
	_, err := tea.engine.SubmitAction(action)
	return err
}

func (tea *tableEngineAdapter) Ready(playerID string) error {
	return tea.engine.PlayerReady(playerID)
}

func (tea *tableEngineAdapter) Leave(playerID string) error {
	return tea.engine.PlayerLeave(playerID)
}
