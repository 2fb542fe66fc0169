package actor

import (
	"fmt"
	"sync"

	"github.com/pokerd/pokerd"
)

/*
observerRunner 旁觀者
  - 不送出任何動作
  - 每次更新時檢查籌碼守恆
*/
type observerRunner struct {
	mu                  sync.Mutex
	actor               Actor
	handCounts          map[int]bool
	violations          []string
	onTableStateUpdated func(*pokerd.Table)
}

func NewObserverRunner() *observerRunner {
	return &observerRunner{
		handCounts:          make(map[int]bool),
		violations:          make([]string, 0),
		onTableStateUpdated: func(*pokerd.Table) {},
	}
}

func (obr *observerRunner) SetActor(a Actor) {
	obr.actor = a
}

func (obr *observerRunner) OnTableStateUpdated(fn func(*pokerd.Table)) {
	obr.onTableStateUpdated = fn
}

func (obr *observerRunner) UpdateTableState(table *pokerd.Table) error {
	obr.mu.Lock()
	state := table.State
	if state.HandCount > 0 {
		obr.handCounts[state.HandCount] = true
	}

	if state.Phase.IsBetting() && !state.IsFrozen {
		if chips := table.ChipTotal(); chips != state.HandChipTotal {
			obr.violations = append(obr.violations, fmt.Sprintf("hand %d %s: chips %d, expected %d", state.HandCount, state.Phase, chips, state.HandChipTotal))
		}
	}
	obr.mu.Unlock()

	obr.onTableStateUpdated(table)
	return nil
}

func (obr *observerRunner) HandsObserved() int {
	obr.mu.Lock()
	defer obr.mu.Unlock()
	return len(obr.handCounts)
}

func (obr *observerRunner) Violations() []string {
	obr.mu.Lock()
	defer obr.mu.Unlock()
	return append([]string{}, obr.violations...)
}
